package playrho

/// The body type.
/// static: zero mass, zero velocity, may be manually moved
/// kinematic: zero mass, non-zero velocity set by user, moved by solver
/// dynamic: positive mass, non-zero velocity determined by forces, moved by solver

var BodyType = struct {
	E_static    uint8
	E_kinematic uint8
	E_dynamic   uint8
}{
	E_static:    0,
	E_kinematic: 1,
	E_dynamic:   2,
}

/// A body configuration holds all the data needed to construct a rigid
/// body. Configurations are value types: they can be reused freely and
/// creating a body never retains the conf.
type BodyConf struct {
	/// The body type: static, kinematic, or dynamic.
	/// Note: if a dynamic body would have zero mass, the mass is set to one.
	Type uint8

	/// The world position of the body.
	Location Vec2

	/// The world angle of the body in radians.
	Angle float64

	/// The linear velocity of the body's origin in world co-ordinates.
	LinearVelocity Vec2

	/// The angular velocity of the body.
	AngularVelocity float64

	/// The linear acceleration of the body. Only accelerable (dynamic)
	/// bodies integrate acceleration. There is no world-level gravity;
	/// a falling body is simply one whose acceleration is set to
	/// (0, -9.8) or the like.
	LinearAcceleration Vec2

	/// The angular acceleration of the body.
	AngularAcceleration float64

	/// Linear damping is used to reduce the linear velocity. The damping
	/// parameter can be larger than 1 but the damping effect becomes
	/// sensitive to the time step when the damping parameter is large.
	/// Units are 1/time.
	LinearDamping float64

	/// Angular damping. Units are 1/time.
	AngularDamping float64

	/// Set this flag to false if this body should never fall asleep.
	/// Note that this increases CPU usage.
	AllowSleep bool

	/// Is this body initially awake or sleeping?
	Awake bool

	/// Should this body be prevented from rotating? Useful for characters.
	FixedRotation bool

	/// Is this a fast moving body that should be prevented from tunneling
	/// through other moving bodies? Note that all bodies are prevented from
	/// tunneling through kinematic and static bodies. This setting is only
	/// considered on dynamic bodies.
	/// @warning You should use this flag sparingly since it increases
	/// processing time.
	Bullet bool

	/// Does this body start out enabled?
	Enabled bool
}

/// This constructor sets the body configuration default values.
func MakeBodyConf() BodyConf {
	return BodyConf{
		Type:                BodyType.E_static,
		Location:            MakeVec2(0, 0),
		Angle:               0.0,
		LinearVelocity:      MakeVec2(0, 0),
		AngularVelocity:     0.0,
		LinearAcceleration:  MakeVec2(0, 0),
		AngularAcceleration: 0.0,
		LinearDamping:       0.0,
		AngularDamping:      0.0,
		AllowSleep:          true,
		Awake:               true,
		FixedRotation:       false,
		Bullet:              false,
		Enabled:             true,
	}
}

func (conf BodyConf) UseType(value uint8) BodyConf {
	conf.Type = value
	return conf
}

func (conf BodyConf) UseLocation(value Vec2) BodyConf {
	conf.Location = value
	return conf
}

func (conf BodyConf) UseAngle(value float64) BodyConf {
	conf.Angle = value
	return conf
}

func (conf BodyConf) UseLinearVelocity(value Vec2) BodyConf {
	conf.LinearVelocity = value
	return conf
}

func (conf BodyConf) UseAngularVelocity(value float64) BodyConf {
	conf.AngularVelocity = value
	return conf
}

func (conf BodyConf) UseLinearAcceleration(value Vec2) BodyConf {
	conf.LinearAcceleration = value
	return conf
}

func (conf BodyConf) UseAngularAcceleration(value float64) BodyConf {
	conf.AngularAcceleration = value
	return conf
}

func (conf BodyConf) UseLinearDamping(value float64) BodyConf {
	conf.LinearDamping = value
	return conf
}

func (conf BodyConf) UseAngularDamping(value float64) BodyConf {
	conf.AngularDamping = value
	return conf
}

func (conf BodyConf) UseAllowSleep(value bool) BodyConf {
	conf.AllowSleep = value
	return conf
}

func (conf BodyConf) UseAwake(value bool) BodyConf {
	conf.Awake = value
	return conf
}

func (conf BodyConf) UseFixedRotation(value bool) BodyConf {
	conf.FixedRotation = value
	return conf
}

func (conf BodyConf) UseBullet(value bool) BodyConf {
	conf.Bullet = value
	return conf
}

func (conf BodyConf) UseEnabled(value bool) BodyConf {
	conf.Enabled = value
	return conf
}

var Body_Flags = struct {
	E_islandFlag        uint16
	E_awakeFlag         uint16
	E_autoSleepFlag     uint16
	E_impenetrableFlag  uint16
	E_fixedRotationFlag uint16
	E_enabledFlag       uint16
	E_toiFlag           uint16
	E_massDataDirtyFlag uint16
}{
	E_islandFlag:        0x0001,
	E_awakeFlag:         0x0002,
	E_autoSleepFlag:     0x0004,
	E_impenetrableFlag:  0x0008,
	E_fixedRotationFlag: 0x0010,
	E_enabledFlag:       0x0020,
	E_toiFlag:           0x0040,
	E_massDataDirtyFlag: 0x0080,
}

/// An edge from a body to one of its joints; Other is the body on the far
/// side of the joint.
type JointEdge struct {
	Other BodyID
	Joint JointID
}

/// An edge from a body to one of its contacts; Other is the body on the
/// far side of the contact.
type ContactEdge struct {
	Other   BodyID
	Contact ContactID
}

/// A rigid body. Bodies never reference each other, their fixtures, their
/// joints, or their contacts by pointer; connectivity is expressed with
/// identifiers resolved through the owning world.
type Body struct {
	M_type uint8

	M_flags uint16

	M_islandIndex int

	M_xf    Transform // the body origin transform
	M_sweep Sweep     // the swept motion for CCD

	M_linearVelocity  Vec2
	M_angularVelocity float64

	M_linearAcceleration  Vec2
	M_angularAcceleration float64

	M_fixtures []FixtureID
	M_joints   []JointEdge
	M_contacts []ContactEdge

	M_mass, M_invMass float64

	// Rotational inertia about the center of mass.
	M_I, M_invI float64

	M_linearDamping  float64
	M_angularDamping float64

	M_sleepTime float64
}

func NewBody(conf *BodyConf) *Body {
	assert(conf.Location.IsValid())
	assert(conf.LinearVelocity.IsValid())
	assert(IsValidFloat(conf.Angle))
	assert(IsValidFloat(conf.AngularVelocity))
	assert(IsValidFloat(conf.AngularDamping) && conf.AngularDamping >= 0.0)
	assert(IsValidFloat(conf.LinearDamping) && conf.LinearDamping >= 0.0)

	body := &Body{}

	body.M_flags = 0

	if conf.Bullet {
		body.M_flags |= Body_Flags.E_impenetrableFlag
	}

	if conf.FixedRotation {
		body.M_flags |= Body_Flags.E_fixedRotationFlag
	}

	if conf.AllowSleep {
		body.M_flags |= Body_Flags.E_autoSleepFlag
	}

	if conf.Awake {
		body.M_flags |= Body_Flags.E_awakeFlag
	}

	if conf.Enabled {
		body.M_flags |= Body_Flags.E_enabledFlag
	}

	body.M_xf.P = conf.Location
	body.M_xf.Q.Set(conf.Angle)

	body.M_sweep.LocalCenter.SetZero()
	body.M_sweep.Pos0 = MakePosition(body.M_xf.P, conf.Angle)
	body.M_sweep.Pos1 = MakePosition(body.M_xf.P, conf.Angle)
	body.M_sweep.Alpha0 = 0.0

	// Velocity on a non-speedable body or acceleration on a
	// non-accelerable one would never be integrated; drop them here so
	// accessors don't report motion that can't happen.
	if conf.Type != BodyType.E_static {
		body.M_linearVelocity = conf.LinearVelocity
		body.M_angularVelocity = conf.AngularVelocity
	}

	if conf.Type == BodyType.E_dynamic {
		body.M_linearAcceleration = conf.LinearAcceleration
		body.M_angularAcceleration = conf.AngularAcceleration
	}

	body.M_linearDamping = conf.LinearDamping
	body.M_angularDamping = conf.AngularDamping

	body.M_sleepTime = 0.0

	body.M_type = conf.Type

	if body.M_type == BodyType.E_dynamic {
		body.M_mass = 1.0
		body.M_invMass = 1.0
	} else {
		body.M_mass = 0.0
		body.M_invMass = 0.0
	}

	body.M_I = 0.0
	body.M_invI = 0.0

	return body
}

func (body Body) GetType() uint8 {
	return body.M_type
}

/// Whether the solver may give this body a velocity: anything but static.
func (body Body) IsSpeedable() bool {
	return body.M_type != BodyType.E_static
}

/// Whether this body integrates acceleration: dynamic bodies only.
func (body Body) IsAccelerable() bool {
	return body.M_type == BodyType.E_dynamic
}

func (body Body) GetTransform() Transform {
	return body.M_xf
}

func (body Body) GetLocation() Vec2 {
	return body.M_xf.P
}

func (body Body) GetAngle() float64 {
	return body.M_sweep.Pos1.Angular
}

func (body Body) GetWorldCenter() Vec2 {
	return body.M_sweep.Pos1.Linear
}

func (body Body) GetLocalCenter() Vec2 {
	return body.M_sweep.LocalCenter
}

func (body Body) GetVelocity() Velocity {
	return MakeVelocity(body.M_linearVelocity, body.M_angularVelocity)
}

/// Sets the velocity, waking the body if the new velocity is non-zero.
/// A no-op on static bodies.
func (body *Body) SetVelocity(velocity Velocity) {
	if body.M_type == BodyType.E_static {
		return
	}

	if Vec2Dot(velocity.Linear, velocity.Linear) > 0.0 || velocity.Angular*velocity.Angular > 0.0 {
		body.SetAwake(true)
	}

	body.M_linearVelocity = velocity.Linear
	body.M_angularVelocity = velocity.Angular
}

func (body *Body) SetLinearVelocity(v Vec2) {
	if body.M_type == BodyType.E_static {
		return
	}

	if Vec2Dot(v, v) > 0.0 {
		body.SetAwake(true)
	}

	body.M_linearVelocity = v
}

func (body Body) GetLinearVelocity() Vec2 {
	return body.M_linearVelocity
}

func (body *Body) SetAngularVelocity(w float64) {
	if body.M_type == BodyType.E_static {
		return
	}

	if w*w > 0.0 {
		body.SetAwake(true)
	}

	body.M_angularVelocity = w
}

func (body Body) GetAngularVelocity() float64 {
	return body.M_angularVelocity
}

func (body Body) GetLinearAcceleration() Vec2 {
	return body.M_linearAcceleration
}

func (body Body) GetAngularAcceleration() float64 {
	return body.M_angularAcceleration
}

func (body Body) GetMass() float64 {
	return body.M_mass
}

func (body Body) GetInvMass() float64 {
	return body.M_invMass
}

func (body Body) GetInvRotInertia() float64 {
	return body.M_invI
}

/// Rotational inertia about the body origin.
func (body Body) GetInertia() float64 {
	return body.M_I + body.M_mass*Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter)
}

func (body Body) GetMassData() MassData {
	return MassData{
		Mass:   body.M_mass,
		I:      body.M_I + body.M_mass*Vec2Dot(body.M_sweep.LocalCenter, body.M_sweep.LocalCenter),
		Center: body.M_sweep.LocalCenter,
	}
}

func (body Body) GetWorldPoint(localPoint Vec2) Vec2 {
	return TransformVec2Mul(body.M_xf, localPoint)
}

func (body Body) GetWorldVector(localVector Vec2) Vec2 {
	return RotVec2Mul(body.M_xf.Q, localVector)
}

func (body Body) GetLocalPoint(worldPoint Vec2) Vec2 {
	return TransformVec2MulT(body.M_xf, worldPoint)
}

func (body Body) GetLocalVector(worldVector Vec2) Vec2 {
	return RotVec2MulT(body.M_xf.Q, worldVector)
}

func (body Body) GetLinearVelocityFromWorldPoint(worldPoint Vec2) Vec2 {
	return Vec2Add(body.M_linearVelocity, Vec2CrossScalarVector(body.M_angularVelocity, Vec2Sub(worldPoint, body.M_sweep.Pos1.Linear)))
}

func (body Body) GetLinearVelocityFromLocalPoint(localPoint Vec2) Vec2 {
	return body.GetLinearVelocityFromWorldPoint(body.GetWorldPoint(localPoint))
}

func (body Body) GetLinearDamping() float64 {
	return body.M_linearDamping
}

func (body *Body) SetLinearDamping(linearDamping float64) {
	body.M_linearDamping = linearDamping
}

func (body Body) GetAngularDamping() float64 {
	return body.M_angularDamping
}

func (body *Body) SetAngularDamping(angularDamping float64) {
	body.M_angularDamping = angularDamping
}

func (body *Body) SetImpenetrable(flag bool) {
	if flag {
		body.M_flags |= Body_Flags.E_impenetrableFlag
	} else {
		body.M_flags &= ^Body_Flags.E_impenetrableFlag
	}
}

func (body Body) IsImpenetrable() bool {
	return (body.M_flags & Body_Flags.E_impenetrableFlag) == Body_Flags.E_impenetrableFlag
}

/// Sets the awake/asleep state of this body. Putting a body to sleep
/// zeroes its velocity.
func (body *Body) SetAwake(flag bool) {
	if flag {
		body.M_flags |= Body_Flags.E_awakeFlag
		body.M_sleepTime = 0.0
	} else {
		body.M_flags &= ^Body_Flags.E_awakeFlag
		body.M_sleepTime = 0.0
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
	}
}

func (body Body) IsAwake() bool {
	return (body.M_flags & Body_Flags.E_awakeFlag) == Body_Flags.E_awakeFlag
}

func (body Body) IsEnabled() bool {
	return (body.M_flags & Body_Flags.E_enabledFlag) == Body_Flags.E_enabledFlag
}

func (body Body) IsFixedRotation() bool {
	return (body.M_flags & Body_Flags.E_fixedRotationFlag) == Body_Flags.E_fixedRotationFlag
}

func (body *Body) SetSleepingAllowed(flag bool) {
	if flag {
		body.M_flags |= Body_Flags.E_autoSleepFlag
	} else {
		body.M_flags &= ^Body_Flags.E_autoSleepFlag
		body.SetAwake(true)
	}
}

func (body Body) IsSleepingAllowed() bool {
	return (body.M_flags & Body_Flags.E_autoSleepFlag) == Body_Flags.E_autoSleepFlag
}

func (body Body) IsMassDataDirty() bool {
	return (body.M_flags & Body_Flags.E_massDataDirtyFlag) == Body_Flags.E_massDataDirtyFlag
}

func (body Body) GetFixtures() []FixtureID {
	return body.M_fixtures
}

func (body Body) GetJoints() []JointEdge {
	return body.M_joints
}

func (body Body) GetContacts() []ContactEdge {
	return body.M_contacts
}

func (body *Body) SynchronizeTransform() {
	body.M_xf.Q.Set(body.M_sweep.Pos1.Angular)
	body.M_xf.P = Vec2Sub(body.M_sweep.Pos1.Linear, RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

/// Advance to the new safe time. This doesn't sync the broad-phase.
func (body *Body) Advance(alpha float64) {
	body.M_sweep.Advance0(alpha)
	body.M_sweep.Pos1 = body.M_sweep.Pos0
	body.M_xf.Q.Set(body.M_sweep.Pos1.Angular)
	body.M_xf.P = Vec2Sub(body.M_sweep.Pos1.Linear, RotVec2Mul(body.M_xf.Q, body.M_sweep.LocalCenter))
}

/// Gets the solver view of this body's state.
func GetBodyConstraint(body *Body) BodyConstraint {
	return MakeBodyConstraint(
		body.M_sweep.Pos1,
		body.GetVelocity(),
		body.M_sweep.LocalCenter,
		body.M_invMass,
		body.M_invI,
	)
}
