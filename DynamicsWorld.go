package playrho

import (
	"fmt"
	"math"
)

var World_Flags = struct {
	E_newFixture int
	E_locked     int
}{
	E_newFixture: 0x0001,
	E_locked:     0x0002,
}

/// World construction-time settings.
type WorldConf struct {
	/// Minimum vertex radius any shape added to the world may have.
	/// Shapes thinner than this fail fixture creation. This should be
	/// a significant fraction of the linear slop or the dynamics will
	/// not work right.
	MinVertexRadius float64

	/// Maximum vertex radius any shape added to the world may have.
	/// This limits how big a shape's rounding can get before the
	/// position resolution of the solver breaks down.
	MaxVertexRadius float64

	/// Initial body storage capacity, in number of body slots.
	BodyCapacity int

	/// Initial joint storage capacity, in number of joint slots.
	JointCapacity int

	/// Initial contact storage capacity, in number of contact slots.
	ContactCapacity int
}

func MakeWorldConf() WorldConf {
	return WorldConf{
		MinVertexRadius: DefaultMinVertexRadius,
		MaxVertexRadius: DefaultMaxVertexRadius,
		BodyCapacity:    16,
		JointCapacity:   16,
		ContactCapacity: 32,
	}
}

func (conf WorldConf) UseMinVertexRadius(value float64) WorldConf {
	conf.MinVertexRadius = value
	return conf
}

func (conf WorldConf) UseMaxVertexRadius(value float64) WorldConf {
	conf.MaxVertexRadius = value
	return conf
}

func (conf WorldConf) UseBodyCapacity(value int) WorldConf {
	conf.BodyCapacity = value
	return conf
}

func (conf WorldConf) UseJointCapacity(value int) WorldConf {
	conf.JointCapacity = value
	return conf
}

func (conf WorldConf) UseContactCapacity(value int) WorldConf {
	conf.ContactCapacity = value
	return conf
}

/// The world manages all the physics entities, runs the simulation, and
/// reports contact events. Entities live in slot buffers inside the world
/// and get referred to by identifier; an identifier's slot generation
/// makes stale identifiers detectable after their entity got destroyed.
///
/// The world is not safe for concurrent use and must not be copied while
/// in use.
type World struct {
	M_flags int

	M_broadPhase BroadPhase

	// Body slots. The buffer spans every slot ever allocated. The
	// generation of a slot validates identifiers: even means live, odd
	// means free, so a stale identifier is recognizable as destroyed
	// until its slot gets reused. M_bodies holds the live identifiers in
	// creation order.
	M_bodyBuffer      []Body
	M_bodyGenerations []uint16
	M_freeBodies      []int
	M_bodies          []BodyID

	// Fixture slots. Live fixtures are listed per body.
	M_fixtureBuffer      []Fixture
	M_fixtureGenerations []uint16
	M_freeFixtures       []int

	// Joint slots.
	M_jointBuffer      []Joint
	M_jointGenerations []uint16
	M_freeJoints       []int
	M_joints           []JointID

	// Contact slots.
	M_contactBuffer      []Contact
	M_contactGenerations []uint16
	M_freeContacts       []int
	M_contacts           []ContactID

	M_minVertexRadius float64
	M_maxVertexRadius float64

	// This is used to compute the time step ratio to support a variable
	// time step.
	M_inv_dt0 float64

	M_stepComplete bool
	M_subStepping  bool

	// Optional contact lifecycle listeners, called during Step with the
	// world locked.
	M_beginContactListener     ContactListener
	M_endContactListener       ContactListener
	M_preSolveContactListener  ManifoldContactListener
	M_postSolveContactListener ImpulsesContactListener

	// Optional listeners for entities destroyed implicitly. These run
	// with the world unlocked; creating or destroying entities from
	// within them invalidates the destruction already in progress.
	M_fixtureDestructionListener FixtureListener
	M_jointDestructionListener   JointListener
}

/// Makes a world per the given configuration.
func MakeWorld(conf WorldConf) World {
	assert(conf.MinVertexRadius > 0.0)
	assert(conf.MinVertexRadius <= conf.MaxVertexRadius)

	return World{
		M_broadPhase:         MakeBroadPhase(),
		M_bodyBuffer:         make([]Body, 0, conf.BodyCapacity),
		M_bodyGenerations:    make([]uint16, 0, conf.BodyCapacity),
		M_bodies:             make([]BodyID, 0, conf.BodyCapacity),
		M_fixtureBuffer:      make([]Fixture, 0, conf.BodyCapacity),
		M_fixtureGenerations: make([]uint16, 0, conf.BodyCapacity),
		M_jointBuffer:        make([]Joint, 0, conf.JointCapacity),
		M_jointGenerations:   make([]uint16, 0, conf.JointCapacity),
		M_joints:             make([]JointID, 0, conf.JointCapacity),
		M_contactBuffer:      make([]Contact, 0, conf.ContactCapacity),
		M_contactGenerations: make([]uint16, 0, conf.ContactCapacity),
		M_contacts:           make([]ContactID, 0, conf.ContactCapacity),
		M_minVertexRadius:    conf.MinVertexRadius,
		M_maxVertexRadius:    conf.MaxVertexRadius,
		M_stepComplete:       true,
	}
}

// Slot allocation. Allocating from the free list bumps the slot
// generation from odd back to even; freeing bumps it from even to odd.

func (world *World) allocBodySlot() int {
	if n := len(world.M_freeBodies); n > 0 {
		index := world.M_freeBodies[n-1]
		world.M_freeBodies = world.M_freeBodies[:n-1]
		world.M_bodyGenerations[index]++
		return index
	}
	world.M_bodyBuffer = append(world.M_bodyBuffer, Body{})
	world.M_bodyGenerations = append(world.M_bodyGenerations, 0)
	return len(world.M_bodyBuffer) - 1
}

func (world *World) freeBodySlot(index int) {
	world.M_bodyBuffer[index] = Body{}
	world.M_bodyGenerations[index]++
	world.M_freeBodies = append(world.M_freeBodies, index)
}

func (world *World) allocFixtureSlot() int {
	if n := len(world.M_freeFixtures); n > 0 {
		index := world.M_freeFixtures[n-1]
		world.M_freeFixtures = world.M_freeFixtures[:n-1]
		world.M_fixtureGenerations[index]++
		return index
	}
	world.M_fixtureBuffer = append(world.M_fixtureBuffer, Fixture{})
	world.M_fixtureGenerations = append(world.M_fixtureGenerations, 0)
	return len(world.M_fixtureBuffer) - 1
}

func (world *World) freeFixtureSlot(index int) {
	world.M_fixtureBuffer[index] = Fixture{}
	world.M_fixtureGenerations[index]++
	world.M_freeFixtures = append(world.M_freeFixtures, index)
}

func (world *World) allocJointSlot() int {
	if n := len(world.M_freeJoints); n > 0 {
		index := world.M_freeJoints[n-1]
		world.M_freeJoints = world.M_freeJoints[:n-1]
		world.M_jointGenerations[index]++
		return index
	}
	world.M_jointBuffer = append(world.M_jointBuffer, Joint{})
	world.M_jointGenerations = append(world.M_jointGenerations, 0)
	return len(world.M_jointBuffer) - 1
}

func (world *World) freeJointSlot(index int) {
	world.M_jointBuffer[index] = Joint{}
	world.M_jointGenerations[index]++
	world.M_freeJoints = append(world.M_freeJoints, index)
}

func (world *World) allocContactSlot() int {
	if n := len(world.M_freeContacts); n > 0 {
		index := world.M_freeContacts[n-1]
		world.M_freeContacts = world.M_freeContacts[:n-1]
		world.M_contactGenerations[index]++
		return index
	}
	world.M_contactBuffer = append(world.M_contactBuffer, Contact{})
	world.M_contactGenerations = append(world.M_contactGenerations, 0)
	return len(world.M_contactBuffer) - 1
}

func (world *World) freeContactSlot(index int) {
	world.M_contactBuffer[index] = Contact{}
	world.M_contactGenerations[index]++
	world.M_freeContacts = append(world.M_freeContacts, index)
}

// Unchecked slot access for identifiers already known to be live.

func (world *World) bodyPtr(id BodyID) *Body {
	return &world.M_bodyBuffer[idIndex(uint32(id))]
}

func (world *World) fixturePtr(id FixtureID) *Fixture {
	return &world.M_fixtureBuffer[idIndex(uint32(id))]
}

func (world *World) jointPtr(id JointID) *Joint {
	return &world.M_jointBuffer[idIndex(uint32(id))]
}

func (world *World) contactPtr(id ContactID) *Contact {
	return &world.M_contactBuffer[idIndex(uint32(id))]
}

// Checked slot access. A slot generation one past the identifier's means
// the identified entity got destroyed and its slot has not been reused;
// anything else mismatched means the identifier never was valid here.

func (world *World) validBody(id BodyID) (*Body, error) {
	index := idIndex(uint32(id))
	if index < len(world.M_bodyBuffer) {
		generation := world.M_bodyGenerations[index]
		if generation == idGeneration(uint32(id)) && (generation&1) == 0 {
			return &world.M_bodyBuffer[index], nil
		}
		if generation == idGeneration(uint32(id))+1 {
			return nil, fmt.Errorf("body %v: %w", id, ErrWasDestroyed)
		}
	}
	return nil, fmt.Errorf("body %v: %w", id, ErrInvalidBodyID)
}

func (world *World) validFixture(id FixtureID) (*Fixture, error) {
	index := idIndex(uint32(id))
	if index < len(world.M_fixtureBuffer) {
		generation := world.M_fixtureGenerations[index]
		if generation == idGeneration(uint32(id)) && (generation&1) == 0 {
			return &world.M_fixtureBuffer[index], nil
		}
		if generation == idGeneration(uint32(id))+1 {
			return nil, fmt.Errorf("fixture %v: %w", id, ErrWasDestroyed)
		}
	}
	return nil, fmt.Errorf("fixture %v: %w", id, ErrInvalidFixtureID)
}

func (world *World) validJoint(id JointID) (*Joint, error) {
	index := idIndex(uint32(id))
	if index < len(world.M_jointBuffer) {
		generation := world.M_jointGenerations[index]
		if generation == idGeneration(uint32(id)) && (generation&1) == 0 {
			return &world.M_jointBuffer[index], nil
		}
		if generation == idGeneration(uint32(id))+1 {
			return nil, fmt.Errorf("joint %v: %w", id, ErrWasDestroyed)
		}
	}
	return nil, fmt.Errorf("joint %v: %w", id, ErrInvalidJointID)
}

func (world *World) validContact(id ContactID) (*Contact, error) {
	index := idIndex(uint32(id))
	if index < len(world.M_contactBuffer) {
		generation := world.M_contactGenerations[index]
		if generation == idGeneration(uint32(id)) && (generation&1) == 0 {
			return &world.M_contactBuffer[index], nil
		}
		if generation == idGeneration(uint32(id))+1 {
			return nil, fmt.Errorf("contact %v: %w", id, ErrWasDestroyed)
		}
	}
	return nil, fmt.Errorf("contact %v: %w", id, ErrInvalidContactID)
}

/// Is the world locked (in the middle of a time step).
func (world *World) IsLocked() bool {
	return (world.M_flags & World_Flags.E_locked) == World_Flags.E_locked
}

/// Whether the last step ran to the end of its time interval. With
/// sub-stepping enabled, a step ends early at the first time of impact
/// and this reports false until the interval gets fully consumed.
func (world *World) IsStepComplete() bool {
	return world.M_stepComplete
}

/// Enable/disable single stepped continuous physics. For testing.
func (world *World) SetSubStepping(flag bool) {
	world.M_subStepping = flag
}

func (world *World) GetSubStepping() bool {
	return world.M_subStepping
}

/// Gets the minimum vertex radius that shapes in this world can be.
func (world *World) GetMinVertexRadius() float64 {
	return world.M_minVertexRadius
}

/// Gets the maximum vertex radius that shapes in this world can be.
func (world *World) GetMaxVertexRadius() float64 {
	return world.M_maxVertexRadius
}

/// Registers a listener for contacts starting to touch.
func (world *World) SetBeginContactListener(listener ContactListener) {
	world.M_beginContactListener = listener
}

/// Registers a listener for contacts stopping touching.
func (world *World) SetEndContactListener(listener ContactListener) {
	world.M_endContactListener = listener
}

/// Registers a listener called for touching non-sensor contacts right
/// after their manifold got updated and before they get solved.
func (world *World) SetPreSolveContactListener(listener ManifoldContactListener) {
	world.M_preSolveContactListener = listener
}

/// Registers a listener called for contacts after their island got
/// solved, with the accumulated impulses.
func (world *World) SetPostSolveContactListener(listener ImpulsesContactListener) {
	world.M_postSolveContactListener = listener
}

/// Registers a listener for fixtures destroyed implicitly, like by the
/// destruction of their body.
func (world *World) SetFixtureDestructionListener(listener FixtureListener) {
	world.M_fixtureDestructionListener = listener
}

/// Registers a listener for joints destroyed implicitly, like by the
/// destruction of one of their bodies.
func (world *World) SetJointDestructionListener(listener JointListener) {
	world.M_jointDestructionListener = listener
}

func isValidBodyConf(conf *BodyConf) bool {
	return conf.Location.IsValid() &&
		IsValidFloat(conf.Angle) &&
		conf.LinearVelocity.IsValid() &&
		IsValidFloat(conf.AngularVelocity) &&
		conf.LinearAcceleration.IsValid() &&
		IsValidFloat(conf.AngularAcceleration) &&
		IsValidFloat(conf.LinearDamping) && conf.LinearDamping >= 0.0 &&
		IsValidFloat(conf.AngularDamping) && conf.AngularDamping >= 0.0
}

/// Creates a rigid body per the given configuration and yields the
/// identifier by which the world knows it.
/// Fails with ErrWorldLocked during a step and with ErrMaxBodies when the
/// world is full.
func (world *World) CreateBody(conf BodyConf) (BodyID, error) {
	if world.IsLocked() {
		return InvalidBodyID, ErrWorldLocked
	}
	if len(world.M_bodies) >= MaxBodies {
		return InvalidBodyID, ErrMaxBodies
	}
	if !isValidBodyConf(&conf) {
		return InvalidBodyID, fmt.Errorf("non-finite or negative body configuration: %w", ErrInvalidArgument)
	}

	index := world.allocBodySlot()
	world.M_bodyBuffer[index] = *NewBody(&conf)
	id := BodyID(makeIDValue(index, world.M_bodyGenerations[index]))
	world.M_bodies = append(world.M_bodies, id)
	return id, nil
}

/// Destroys the identified body and everything attached to it.
/// Attached joints and fixtures get destroyed first; the destruction
/// listeners get told about each of those before it goes away. Attached
/// contacts get destroyed without notification.
func (world *World) DestroyBody(id BodyID) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	if _, err := world.validBody(id); err != nil {
		return err
	}

	// Destroy the attached joints.
	for {
		body := world.bodyPtr(id)
		if len(body.M_joints) == 0 {
			break
		}
		jointID := body.M_joints[0].Joint
		if world.M_jointDestructionListener != nil {
			world.M_jointDestructionListener(jointID)
		}
		world.destroyJoint(jointID)
	}

	// Destroy the attached contacts.
	for {
		body := world.bodyPtr(id)
		if len(body.M_contacts) == 0 {
			break
		}
		world.destroyContact(body.M_contacts[0].Contact)
	}

	// Destroy the attached fixtures. This destroys the broad-phase
	// proxies.
	for {
		body := world.bodyPtr(id)
		if len(body.M_fixtures) == 0 {
			break
		}
		fixtureID := body.M_fixtures[0]
		if world.M_fixtureDestructionListener != nil {
			world.M_fixtureDestructionListener(fixtureID)
		}
		world.fixturePtr(fixtureID).DestroyProxies(&world.M_broadPhase)
		world.freeFixtureSlot(idIndex(uint32(fixtureID)))
		body = world.bodyPtr(id)
		body.M_fixtures = removeFixtureID(body.M_fixtures, fixtureID)
	}

	world.M_bodies = removeBodyID(world.M_bodies, id)
	world.freeBodySlot(idIndex(uint32(id)))
	return nil
}

func (world *World) validateJointBodies(conf JointConf) error {
	if bodyIDA := conf.GetBodyA(); bodyIDA != InvalidBodyID {
		if _, err := world.validBody(bodyIDA); err != nil {
			return err
		}
	}
	if bodyIDB := conf.GetBodyB(); bodyIDB != InvalidBodyID {
		if _, err := world.validBody(bodyIDB); err != nil {
			return err
		}
	}
	if gear, ok := conf.(*GearJointConf); ok {
		if gear.TypeAC != JointType.E_revoluteJoint && gear.TypeAC != JointType.E_prismaticJoint {
			return fmt.Errorf("gear joint over a %s joint: %w", JointTypeName(gear.TypeAC), ErrInvalidArgument)
		}
		if gear.TypeBD != JointType.E_revoluteJoint && gear.TypeBD != JointType.E_prismaticJoint {
			return fmt.Errorf("gear joint over a %s joint: %w", JointTypeName(gear.TypeBD), ErrInvalidArgument)
		}
		if gear.BodyC != InvalidBodyID {
			if _, err := world.validBody(gear.BodyC); err != nil {
				return err
			}
		}
		if gear.BodyD != InvalidBodyID {
			if _, err := world.validBody(gear.BodyD); err != nil {
				return err
			}
		}
	}
	return nil
}

/// Creates a joint per the given configuration variant and yields the
/// identifier by which the world knows it. The configuration gets copied
/// in, so the joint is unaffected by later changes to it.
/// All bodies the configuration names must be live in this world.
/// Note: creating a joint does not wake the bodies.
func (world *World) CreateJoint(conf JointConf) (JointID, error) {
	if world.IsLocked() {
		return InvalidJointID, ErrWorldLocked
	}
	if conf == nil {
		return InvalidJointID, fmt.Errorf("nil joint configuration: %w", ErrInvalidArgument)
	}
	if len(world.M_joints) >= MaxJoints {
		return InvalidJointID, ErrMaxJoints
	}
	if err := world.validateJointBodies(conf); err != nil {
		return InvalidJointID, err
	}

	index := world.allocJointSlot()
	world.M_jointBuffer[index] = MakeJoint(conf)
	id := JointID(makeIDValue(index, world.M_jointGenerations[index]))
	world.M_joints = append(world.M_joints, id)

	// Connect to the bodies' constraint graphs.
	bodyIDA := conf.GetBodyA()
	bodyIDB := conf.GetBodyB()
	if bodyIDA != InvalidBodyID {
		body := world.bodyPtr(bodyIDA)
		body.M_joints = append(body.M_joints, JointEdge{Other: bodyIDB, Joint: id})
	}
	if bodyIDB != InvalidBodyID {
		body := world.bodyPtr(bodyIDB)
		body.M_joints = append(body.M_joints, JointEdge{Other: bodyIDA, Joint: id})
	}

	// If the joint prevents collisions, then flag any contacts between
	// the bodies for filtering.
	if !conf.GetCollideConnected() {
		world.flagContactsForFiltering(bodyIDA, bodyIDB)
	}

	return id, nil
}

/// Destroys the identified joint. Wakes the connected bodies.
func (world *World) DestroyJoint(id JointID) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	if _, err := world.validJoint(id); err != nil {
		return err
	}
	world.destroyJoint(id)
	return nil
}

func (world *World) destroyJoint(id JointID) {
	joint := world.jointPtr(id)
	bodyIDA := joint.GetBodyA()
	bodyIDB := joint.GetBodyB()
	collideConnected := joint.GetCollideConnected()

	world.M_joints = removeJointID(world.M_joints, id)
	world.freeJointSlot(idIndex(uint32(id)))

	// Wake up the connected bodies and disconnect the joint edges.
	if bodyIDA != InvalidBodyID {
		body := world.bodyPtr(bodyIDA)
		body.SetAwake(true)
		body.M_joints = removeJointEdge(body.M_joints, id)
	}
	if bodyIDB != InvalidBodyID {
		body := world.bodyPtr(bodyIDB)
		body.SetAwake(true)
		body.M_joints = removeJointEdge(body.M_joints, id)
	}

	// If the joint prevented collisions, then flag any contacts between
	// the bodies for filtering.
	if !collideConnected {
		world.flagContactsForFiltering(bodyIDA, bodyIDB)
	}
}

// Flags the contacts between the two identified bodies for refiltering
// on the next step. Either identifier may be invalid, in which case there
// is nothing to flag.
func (world *World) flagContactsForFiltering(bodyIDA BodyID, bodyIDB BodyID) {
	if bodyIDA == InvalidBodyID || bodyIDB == InvalidBodyID {
		return
	}
	for _, ce := range world.bodyPtr(bodyIDB).M_contacts {
		if ce.Other == bodyIDA {
			world.contactPtr(ce.Contact).FlagForFiltering()
		}
	}
}

/// Gets a copy of the identified joint. The copy carries the joint's full
/// configuration variant including its accumulated solver state, but is
/// detached: changing it does not change the joint in the world. Use
/// SetJoint to write a changed copy back.
func (world *World) GetJoint(id JointID) (Joint, error) {
	joint, err := world.validJoint(id)
	if err != nil {
		return Joint{}, err
	}
	return MakeJoint(joint.conf), nil
}

/// Replaces the identified joint's configuration with a copy of the given
/// joint's. The old and new connected bodies get woken; contact filtering
/// between them gets refreshed where collision suppression was, or now
/// is, in effect.
func (world *World) SetJoint(id JointID, joint Joint) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	stored, err := world.validJoint(id)
	if err != nil {
		return err
	}
	if !joint.IsValid() {
		return fmt.Errorf("zero valued joint: %w", ErrInvalidArgument)
	}
	if err := world.validateJointBodies(joint.conf); err != nil {
		return err
	}

	oldBodyIDA := stored.GetBodyA()
	oldBodyIDB := stored.GetBodyB()
	oldCollideConnected := stored.GetCollideConnected()

	// Disconnect the old edges and wake the old bodies.
	if oldBodyIDA != InvalidBodyID {
		body := world.bodyPtr(oldBodyIDA)
		body.SetAwake(true)
		body.M_joints = removeJointEdge(body.M_joints, id)
	}
	if oldBodyIDB != InvalidBodyID {
		body := world.bodyPtr(oldBodyIDB)
		body.SetAwake(true)
		body.M_joints = removeJointEdge(body.M_joints, id)
	}

	*stored = MakeJoint(joint.conf)

	// Connect the new edges and wake the new bodies.
	newBodyIDA := stored.GetBodyA()
	newBodyIDB := stored.GetBodyB()
	if newBodyIDA != InvalidBodyID {
		body := world.bodyPtr(newBodyIDA)
		body.SetAwake(true)
		body.M_joints = append(body.M_joints, JointEdge{Other: newBodyIDB, Joint: id})
	}
	if newBodyIDB != InvalidBodyID {
		body := world.bodyPtr(newBodyIDB)
		body.SetAwake(true)
		body.M_joints = append(body.M_joints, JointEdge{Other: newBodyIDA, Joint: id})
	}

	// Collision suppression may have moved between body pairs.
	if !oldCollideConnected {
		world.flagContactsForFiltering(oldBodyIDA, oldBodyIDB)
	}
	if !stored.GetCollideConnected() {
		world.flagContactsForFiltering(newBodyIDA, newBodyIDB)
	}
	return nil
}

/// Destroys all bodies, fixtures, joints, and contacts, returning the
/// world to its just-constructed state. The destruction listeners get
/// told about every joint and fixture going away.
func (world *World) Clear() error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	if world.M_jointDestructionListener != nil {
		for _, id := range world.M_joints {
			world.M_jointDestructionListener(id)
		}
	}
	if world.M_fixtureDestructionListener != nil {
		for _, bodyID := range world.M_bodies {
			for _, fixtureID := range world.bodyPtr(bodyID).M_fixtures {
				world.M_fixtureDestructionListener(fixtureID)
			}
		}
	}

	world.M_broadPhase = MakeBroadPhase()
	world.M_bodyBuffer = nil
	world.M_bodyGenerations = nil
	world.M_freeBodies = nil
	world.M_bodies = nil
	world.M_fixtureBuffer = nil
	world.M_fixtureGenerations = nil
	world.M_freeFixtures = nil
	world.M_jointBuffer = nil
	world.M_jointGenerations = nil
	world.M_freeJoints = nil
	world.M_joints = nil
	world.M_contactBuffer = nil
	world.M_contactGenerations = nil
	world.M_freeContacts = nil
	world.M_contacts = nil
	world.M_flags &= ^World_Flags.E_newFixture
	world.M_inv_dt0 = 0.0
	world.M_stepComplete = true
	return nil
}

/// Snapshot of the live body identifiers, in creation order.
func (world *World) GetBodies() []BodyID {
	return append([]BodyID(nil), world.M_bodies...)
}

/// Snapshot of the live joint identifiers, in creation order.
func (world *World) GetJoints() []JointID {
	return append([]JointID(nil), world.M_joints...)
}

/// Snapshot of the live contact identifiers, in creation order.
func (world *World) GetContacts() []ContactID {
	return append([]ContactID(nil), world.M_contacts...)
}

func (world *World) GetBodyCount() int {
	return len(world.M_bodies)
}

func (world *World) GetJointCount() int {
	return len(world.M_joints)
}

func (world *World) GetContactCount() int {
	return len(world.M_contacts)
}

/// Advances the simulation over the given step configuration's time
/// interval, collecting per-phase statistics along the way.
///
/// The step proceeds as: update the contacts against the current body
/// positions (destroying any that stopped overlapping in the broad
/// phase), solve the regular islands of awake interacting bodies, then
/// resolve continuous collisions by sub-stepping bodies from time of
/// impact to time of impact.
///
/// The world is locked for the duration; the contact listeners run
/// within it.
func (world *World) Step(conf StepConf) (StepStats, error) {
	stats := MakeStepStats()

	if world.IsLocked() {
		return stats, ErrWorldLocked
	}
	if !IsValidFloat(conf.DeltaTime) {
		return stats, fmt.Errorf("non-finite step time: %w", ErrInvalidArgument)
	}

	// If new fixtures were added, we need to find the new contacts.
	if (world.M_flags & World_Flags.E_newFixture) != 0 {
		added, err := world.findNewContacts()
		stats.Pre.ContactsAdded = added
		if err != nil {
			return stats, err
		}
		world.M_flags &= ^World_Flags.E_newFixture
	}

	world.M_flags |= World_Flags.E_locked
	defer func() {
		world.M_flags &= ^World_Flags.E_locked
	}()

	conf.DtRatio = world.M_inv_dt0 * conf.DeltaTime

	// Update contacts. This is where contacts that ceased overlapping
	// get destroyed and where the begin, end, and pre-solve listeners
	// get called.
	updated, skipped, destroyed := world.updateContacts()
	stats.Pre.ContactsUpdated = updated
	stats.Pre.ContactsSkipped = skipped
	stats.Pre.ContactsDestroyed = destroyed

	// Integrate velocities, solve velocity constraints, and integrate
	// positions.
	if world.M_stepComplete && conf.DeltaTime > 0.0 {
		regStats, err := world.solve(conf)
		stats.Reg = regStats
		if err != nil {
			return stats, err
		}
	}

	// Handle TOI events.
	if conf.DoToi && conf.DeltaTime > 0.0 {
		toiStats, err := world.solveTOI(conf)
		stats.Toi = toiStats
		if err != nil {
			return stats, err
		}
	}

	if conf.DeltaTime > 0.0 {
		world.M_inv_dt0 = conf.GetInvTime()
	}

	return stats, nil
}

// Finds islands of awake interacting bodies, solves each, and puts
// islands that came to rest to sleep.
func (world *World) solve(conf StepConf) (RegStepStats, error) {
	stats := RegStepStats{MinSeparation: MaxFloat}

	// Clear all the island flags.
	for _, id := range world.M_bodies {
		world.bodyPtr(id).M_flags &= ^Body_Flags.E_islandFlag
	}
	for _, id := range world.M_contacts {
		world.contactPtr(id).UnsetIslanded()
	}
	for _, id := range world.M_joints {
		world.jointPtr(id).islanded = false
	}

	// Size the island and the solver state for the worst case.
	island := MakeIsland(len(world.M_bodies), len(world.M_contacts), len(world.M_joints))
	constraints := make([]BodyConstraint, len(world.M_bodyBuffer))

	// Build and simulate all awake islands.
	stack := make([]BodyID, 0, len(world.M_bodies))
	for _, seed := range world.M_bodies {
		seedBody := world.bodyPtr(seed)
		if (seedBody.M_flags & Body_Flags.E_islandFlag) != 0 {
			continue
		}
		if !seedBody.IsAwake() || !seedBody.IsEnabled() {
			continue
		}

		// The seed can be dynamic or kinematic.
		if seedBody.GetType() == BodyType.E_static {
			continue
		}

		// Reset island and stack.
		island.Clear()
		stack = stack[:0]
		stack = append(stack, seed)
		seedBody.M_flags |= Body_Flags.E_islandFlag

		// Perform a depth first search (DFS) on the constraint graph.
		for len(stack) > 0 {
			// Grab the next body off the stack and add it to the island.
			bodyID := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			body := world.bodyPtr(bodyID)
			assert(body.IsEnabled())
			island.AddBody(bodyID)

			// Make sure the body is awake (without resetting sleep timer).
			body.M_flags |= Body_Flags.E_awakeFlag

			// To keep islands as small as possible, we don't propagate
			// islands across static bodies.
			if body.GetType() == BodyType.E_static {
				continue
			}

			// Search all contacts connected to this body.
			for _, ce := range body.M_contacts {
				contact := world.contactPtr(ce.Contact)

				// Has this contact already been added to an island?
				if contact.IsIslanded() {
					continue
				}

				// Is this contact solid and touching?
				if !contact.IsEnabled() || !contact.IsTouching() {
					continue
				}

				// Skip sensors.
				sensorA := world.fixturePtr(contact.M_fixtureA).M_isSensor
				sensorB := world.fixturePtr(contact.M_fixtureB).M_isSensor
				if sensorA || sensorB {
					continue
				}

				island.AddContact(ce.Contact)
				contact.SetIslanded()

				other := world.bodyPtr(ce.Other)

				// Was the other body already added to this island?
				if (other.M_flags & Body_Flags.E_islandFlag) != 0 {
					continue
				}

				stack = append(stack, ce.Other)
				other.M_flags |= Body_Flags.E_islandFlag
			}

			// Search all joints connected to this body.
			for _, je := range body.M_joints {
				joint := world.jointPtr(je.Joint)
				if joint.islanded {
					continue
				}

				// A joint like the target joint may have no second body;
				// it joins the island without spreading it.
				if je.Other == InvalidBodyID {
					island.AddJoint(je.Joint)
					joint.islanded = true
					continue
				}

				other := world.bodyPtr(je.Other)

				// Don't simulate joints connected to disabled bodies.
				if !other.IsEnabled() {
					continue
				}

				island.AddJoint(je.Joint)
				joint.islanded = true

				if (other.M_flags & Body_Flags.E_islandFlag) != 0 {
					continue
				}

				stack = append(stack, je.Other)
				other.M_flags |= Body_Flags.E_islandFlag
			}
		}

		stats.IslandsFound++
		islandStats := world.solveIsland(&island, conf, constraints)
		stats.MinSeparation = math.Min(stats.MinSeparation, islandStats.MinSeparation)
		stats.MaxIncImpulse = math.Max(stats.MaxIncImpulse, islandStats.MaxIncImpulse)
		stats.BodiesSlept += islandStats.BodiesSlept
		stats.SumPosIters += islandStats.PositionIters
		stats.SumVelIters += islandStats.VelocityIters
		if islandStats.Solved {
			stats.IslandsSolved++
		}

		// Post solve cleanup: allow static bodies to participate in
		// other islands.
		for _, id := range island.M_bodies {
			body := world.bodyPtr(id)
			if body.GetType() == BodyType.E_static {
				body.M_flags &= ^Body_Flags.E_islandFlag
			}
		}
	}

	// Synchronize fixtures, check for out of range bodies.
	for _, id := range world.M_bodies {
		body := world.bodyPtr(id)

		// If a body was not in an island then it did not move.
		if (body.M_flags & Body_Flags.E_islandFlag) == 0 {
			continue
		}
		if body.GetType() == BodyType.E_static {
			continue
		}

		// Update fixtures (for broad-phase).
		stats.ProxiesMoved += world.synchronizeFixtures(id)
	}

	// Look for new contacts.
	added, err := world.findNewContacts()
	stats.ContactsAdded = added
	return stats, err
}

// Finds and solves the times of impact of the current step, advancing the
// involved bodies to their impacts and sub-stepping them over the rest of
// the interval. Without this, fast bodies tunnel through thin ones: the
// discrete solve only sees the step's end positions.
func (world *World) solveTOI(conf StepConf) (ToiStepStats, error) {
	stats := ToiStepStats{MinSeparation: MaxFloat}

	island := MakeIsland(2*MaxTOIContacts, MaxTOIContacts, 0)
	constraints := make([]BodyConstraint, len(world.M_bodyBuffer))

	if world.M_stepComplete {
		for _, id := range world.M_bodies {
			body := world.bodyPtr(id)
			body.M_flags &= ^Body_Flags.E_islandFlag
			body.M_sweep.Alpha0 = 0.0
		}
		for _, id := range world.M_contacts {
			contact := world.contactPtr(id)

			// Invalidate TOI.
			contact.UnsetIslanded()
			contact.UnsetToi()
			contact.M_toiCount = 0
			contact.M_toi = 1.0
		}
	}

	// Find TOI events and solve them.
	for {
		// Find the first TOI.
		minContactID := InvalidContactID
		minAlpha := 1.0

		for _, id := range world.M_contacts {
			contact := world.contactPtr(id)

			// Is this contact disabled?
			if !contact.IsEnabled() {
				continue
			}

			// Prevent excessive sub-stepping.
			if contact.GetToiCount() > conf.MaxSubSteps {
				stats.ContactsAtMaxSubSteps++
				continue
			}

			alpha := 1.0
			if contact.HasValidToi() {
				// This contact has a valid cached TOI.
				alpha = contact.GetToi()
			} else {
				fixtureA := world.fixturePtr(contact.M_fixtureA)
				fixtureB := world.fixturePtr(contact.M_fixtureB)

				// Is there a sensor?
				if fixtureA.IsSensor() || fixtureB.IsSensor() {
					continue
				}

				bodyA := world.bodyPtr(contact.M_bodyA)
				bodyB := world.bodyPtr(contact.M_bodyB)

				typeA := bodyA.GetType()
				typeB := bodyB.GetType()
				assert(typeA == BodyType.E_dynamic || typeB == BodyType.E_dynamic)

				activeA := bodyA.IsAwake() && typeA != BodyType.E_static
				activeB := bodyB.IsAwake() && typeB != BodyType.E_static

				// Is at least one body active (awake and dynamic or
				// kinematic)?
				if !activeA && !activeB {
					continue
				}

				collideA := bodyA.IsImpenetrable() || typeA != BodyType.E_dynamic
				collideB := bodyB.IsImpenetrable() || typeB != BodyType.E_dynamic

				// Are these two non-impenetrable dynamic bodies?
				if !collideA && !collideB {
					continue
				}

				// Compute the TOI for this contact. Put the sweeps onto
				// the same time interval.
				alpha0 := bodyA.M_sweep.Alpha0
				if bodyA.M_sweep.Alpha0 < bodyB.M_sweep.Alpha0 {
					alpha0 = bodyB.M_sweep.Alpha0
					bodyA.M_sweep.Advance0(alpha0)
				} else if bodyB.M_sweep.Alpha0 < bodyA.M_sweep.Alpha0 {
					alpha0 = bodyA.M_sweep.Alpha0
					bodyB.M_sweep.Advance0(alpha0)
				}
				assert(alpha0 < 1.0)

				// Compute the time of impact in interval [0, minTOI].
				input := MakeTOIInput()
				proxyA, errA := fixtureA.GetShape().GetChild(contact.GetChildIndexA())
				assert(errA == nil)
				proxyB, errB := fixtureB.GetShape().GetChild(contact.GetChildIndexB())
				assert(errB == nil)
				input.ProxyA = proxyA
				input.ProxyB = proxyB
				input.SweepA = bodyA.M_sweep
				input.SweepB = bodyB.M_sweep

				output := TimeOfImpact(input, GetToiConf(conf))
				stats.MaxDistIters = MaxInt(stats.MaxDistIters, output.Stats.MaxDistIters)
				stats.MaxToiIters = MaxInt(stats.MaxToiIters, output.Stats.ToiIters)
				stats.MaxRootIters = MaxInt(stats.MaxRootIters, output.Stats.MaxRootIters)

				// Beta is the fraction of the remaining portion of the
				// overlap.
				if output.State == TOIOutput_State.E_touching {
					beta := output.T
					alpha = math.Min(alpha0+(1.0-alpha0)*beta, 1.0)
				} else {
					alpha = 1.0
				}

				contact.SetToi(alpha)
				stats.ContactsUpdatedToi++
			}

			if alpha < minAlpha {
				// This is the minimum TOI found so far.
				minContactID = id
				minAlpha = alpha
			}
		}

		if minContactID == InvalidContactID || 1.0-10.0*epsilon < minAlpha {
			// No more TOI events. Done!
			world.M_stepComplete = true
			break
		}

		minContact := world.contactPtr(minContactID)

		// Advance the bodies to the TOI.
		bodyIDA := minContact.M_bodyA
		bodyIDB := minContact.M_bodyB
		bodyA := world.bodyPtr(bodyIDA)
		bodyB := world.bodyPtr(bodyIDB)

		backup1 := bodyA.M_sweep
		backup2 := bodyB.M_sweep

		bodyA.Advance(minAlpha)
		bodyB.Advance(minAlpha)

		// The TOI contact likely has some new contact points.
		world.updateContact(minContactID, minContact)
		minContact.UnsetToi()
		minContact.M_toiCount++

		// Is the contact solid and touching?
		if !minContact.IsEnabled() || !minContact.IsTouching() {
			// Restore the sweeps.
			minContact.SetEnabled(false)
			bodyA.M_sweep = backup1
			bodyB.M_sweep = backup2
			bodyA.SynchronizeTransform()
			bodyB.SynchronizeTransform()
			continue
		}

		bodyA.SetAwake(true)
		bodyB.SetAwake(true)
		stats.ContactsFound++

		// Build the island.
		island.Clear()
		island.AddBody(bodyIDA)
		bodyA.M_flags |= Body_Flags.E_islandFlag
		island.AddBody(bodyIDB)
		bodyB.M_flags |= Body_Flags.E_islandFlag
		island.AddContact(minContactID)
		minContact.SetIslanded()

		// Get contacts on bodyA and bodyB.
		for _, bodyID := range [2]BodyID{bodyIDA, bodyIDB} {
			body := world.bodyPtr(bodyID)
			if body.GetType() != BodyType.E_dynamic {
				continue
			}
			for _, ce := range body.M_contacts {
				if len(island.M_bodies) == 2*MaxTOIContacts {
					break
				}
				if len(island.M_contacts) == MaxTOIContacts {
					break
				}

				contact := world.contactPtr(ce.Contact)

				// Has this contact already been added to the island?
				if contact.IsIslanded() {
					continue
				}

				// Only add if connected via a static, kinematic, or
				// impenetrable body.
				other := world.bodyPtr(ce.Other)
				if other.GetType() == BodyType.E_dynamic &&
					!body.IsImpenetrable() && !other.IsImpenetrable() {
					continue
				}

				// Skip sensors.
				sensorA := world.fixturePtr(contact.M_fixtureA).M_isSensor
				sensorB := world.fixturePtr(contact.M_fixtureB).M_isSensor
				if sensorA || sensorB {
					continue
				}

				// Tentatively advance the body to the TOI.
				backup := other.M_sweep
				if (other.M_flags & Body_Flags.E_islandFlag) == 0 {
					other.Advance(minAlpha)
				}

				// Update the contact points.
				world.updateContact(ce.Contact, contact)

				// Was the contact disabled by the user? Are there contact
				// points?
				if !contact.IsEnabled() || !contact.IsTouching() {
					other.M_sweep = backup
					other.SynchronizeTransform()
					continue
				}

				// Add the contact to the island.
				contact.SetIslanded()
				island.AddContact(ce.Contact)

				// Has the other body already been added to the island?
				if (other.M_flags & Body_Flags.E_islandFlag) != 0 {
					continue
				}

				// Add the other body to the island.
				other.M_flags |= Body_Flags.E_islandFlag
				if other.GetType() != BodyType.E_static {
					other.SetAwake(true)
				}
				island.AddBody(ce.Other)
			}
		}

		// Sub-step over the remainder of the interval, without warm
		// starting and with the accumulated impulses left alone.
		subStep := conf.SetTime((1.0 - minAlpha) * conf.DeltaTime)
		subStep.DtRatio = 1.0
		subStep.DoWarmStart = false

		stats.IslandsFound++
		islandStats := world.solveIslandTOI(&island, subStep, bodyIDA, bodyIDB, constraints)
		stats.MinSeparation = math.Min(stats.MinSeparation, islandStats.MinSeparation)
		stats.MaxIncImpulse = math.Max(stats.MaxIncImpulse, islandStats.MaxIncImpulse)
		stats.SumPosIters += islandStats.PositionIters
		stats.SumVelIters += islandStats.VelocityIters
		if islandStats.Solved {
			stats.IslandsSolved++
		}

		// Reset island flags and synchronize broad-phase proxies.
		for _, id := range island.M_bodies {
			body := world.bodyPtr(id)
			body.M_flags &= ^Body_Flags.E_islandFlag

			if body.GetType() != BodyType.E_dynamic {
				continue
			}

			stats.ProxiesMoved += world.synchronizeFixtures(id)

			// Invalidate all contact TOIs on this displaced body.
			for _, ce := range body.M_contacts {
				contact := world.contactPtr(ce.Contact)
				contact.UnsetToi()
				contact.UnsetIslanded()
			}
		}

		// Commit fixture proxy movements to the broad-phase so that new
		// contacts are created. Also, some contacts can be destroyed.
		added, err := world.findNewContacts()
		stats.ContactsAdded += added
		if err != nil {
			return stats, err
		}

		if world.M_subStepping {
			world.M_stepComplete = false
			break
		}
	}

	return stats, nil
}

/// Queries the world for all fixtures whose fattened broad-phase box
/// potentially overlaps the provided box. The callback gets each such
/// fixture's identifier and reports whether to keep querying.
func (world *World) QueryAABB(callback QueryCallback, aabb AABB) {
	world.M_broadPhase.Query(func(nodeId int) bool {
		key := world.M_broadPhase.GetKey(nodeId)
		return callback(key.Fixture)
	}, aabb)
}

/// Casts a ray from point1 to point2 against everything in the world,
/// calling back for each fixture hit. The callback return value controls
/// clipping and termination; see RayCastCallback.
func (world *World) RayCast(callback RayCastCallback, point1 Vec2, point2 Vec2) {
	input := MakeRayCastInput()
	input.P1 = point1
	input.P2 = point2
	input.MaxFraction = 1.0

	world.M_broadPhase.RayCast(func(input RayCastInput, nodeId int) float64 {
		key := world.M_broadPhase.GetKey(nodeId)
		fixture := world.fixturePtr(key.Fixture)
		xf := world.bodyPtr(fixture.M_body).GetTransform()

		output := MakeRayCastOutput()
		hit := fixture.RayCast(&output, input, xf, key.Child)
		if hit {
			fraction := output.Fraction
			point := Vec2Add(
				Vec2MulScalar(1.0-fraction, input.P1),
				Vec2MulScalar(fraction, input.P2))
			return callback(key.Fixture, point, output.Normal, fraction)
		}

		return input.MaxFraction
	}, input)
}

/// Shifts the world origin. Useful for large worlds where coordinates
/// drift into float imprecision far from the origin. The body and joint
/// positions get adjusted so that newOrigin becomes (0, 0).
func (world *World) ShiftOrigin(newOrigin Vec2) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}

	for _, id := range world.M_bodies {
		body := world.bodyPtr(id)
		body.M_xf.P.OperatorMinusInplace(newOrigin)
		body.M_sweep.Pos0.Linear.OperatorMinusInplace(newOrigin)
		body.M_sweep.Pos1.Linear.OperatorMinusInplace(newOrigin)
	}

	for _, id := range world.M_joints {
		world.jointPtr(id).ShiftOrigin(newOrigin)
	}

	world.M_broadPhase.ShiftOrigin(newOrigin)
	return nil
}

/// Gets the number of broad-phase proxies.
func (world *World) GetProxyCount() int {
	return world.M_broadPhase.GetProxyCount()
}

/// Gets the height of the broad-phase dynamic tree.
func (world *World) GetTreeHeight() int {
	return world.M_broadPhase.GetTreeHeight()
}

/// Gets the balance of the broad-phase dynamic tree.
func (world *World) GetTreeBalance() int {
	return world.M_broadPhase.GetTreeBalance()
}

/// Gets the quality metric of the broad-phase dynamic tree. The smaller
/// the better. The minimum is 1.
func (world *World) GetTreeQuality() float64 {
	return world.M_broadPhase.GetTreeQuality()
}

/// Wakes all sleeping speedable bodies, returning how many got woken.
func Awaken(world *World) int {
	count := 0
	for _, id := range world.M_bodies {
		body := world.bodyPtr(id)
		if body.IsSpeedable() && !body.IsAwake() {
			body.SetAwake(true)
			count++
		}
	}
	return count
}

/// Counts the awake bodies.
func GetAwakeCount(world *World) int {
	count := 0
	for _, id := range world.M_bodies {
		if world.bodyPtr(id).IsAwake() {
			count++
		}
	}
	return count
}

/// Counts the contacts whose shapes are touching.
func GetTouchingCount(world *World) int {
	count := 0
	for _, id := range world.M_contacts {
		if world.contactPtr(id).IsTouching() {
			count++
		}
	}
	return count
}

/// Calculates the acceleration due to the sum of the gravitational
/// attractions of all the other massed bodies in the world on the
/// identified body, per Newton's law of universal gravitation.
func CalcGravitationalAcceleration(world *World, id BodyID) (Vec2, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Vec2{}, err
	}

	m1 := body.GetMass()
	loc1 := body.GetLocation()
	sumForce := MakeVec2(0.0, 0.0)

	for _, otherID := range world.M_bodies {
		if otherID == id {
			continue
		}
		other := world.bodyPtr(otherID)
		m2 := other.GetMass()
		delta := Vec2Sub(other.GetLocation(), loc1)
		rr := Vec2Dot(delta, delta)
		if !(rr > 0.0) {
			// Direction unknowable for coincident bodies.
			continue
		}
		delta.Normalize()
		f := (BigG * math.Min(m1, m2)) * (math.Max(m1, m2) / rr)
		sumForce.OperatorPlusInplace(Vec2MulScalar(f, delta))
	}

	// F = m a.
	return Vec2MulScalar(body.GetInvMass(), sumForce), nil
}

// Order preserving removal helpers for the identifier and edge lists.

func removeBodyID(ids []BodyID, id BodyID) []BodyID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeFixtureID(ids []FixtureID, id FixtureID) []FixtureID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeJointID(ids []JointID, id JointID) []JointID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeContactID(ids []ContactID, id ContactID) []ContactID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeJointEdge(edges []JointEdge, id JointID) []JointEdge {
	for i, v := range edges {
		if v.Joint == id {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}

func removeContactEdge(edges []ContactEdge, id ContactID) []ContactEdge {
	for i, v := range edges {
		if v.Contact == id {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}
