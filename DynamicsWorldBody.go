package playrho

import "fmt"

// Synchronizes the identified body's broad-phase proxies with its swept
// motion and flags its contacts for a manifold update. Returns the
// number of proxies moved.
func (world *World) synchronizeFixtures(id BodyID) int {
	body := world.bodyPtr(id)

	xf1 := MakeTransform()
	xf1.Q.Set(body.M_sweep.Pos0.Angular)
	xf1.P = Vec2Sub(body.M_sweep.Pos0.Linear, RotVec2Mul(xf1.Q, body.M_sweep.LocalCenter))

	count := 0
	for _, fixtureID := range body.M_fixtures {
		fixture := world.fixturePtr(fixtureID)
		fixture.Synchronize(&world.M_broadPhase, xf1, body.M_xf)
		count += len(fixture.M_proxies)
	}

	// The body moved, so the manifolds of its contacts are stale.
	for _, ce := range body.M_contacts {
		world.contactPtr(ce.Contact).FlagForUpdating()
	}

	return count
}

/// Gets a copy of the identified body. The copy is detached: no amount of
/// changing it changes the body in the world.
func (world *World) GetBody(id BodyID) (Body, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Body{}, err
	}
	copied := *body
	copied.M_fixtures = append([]FixtureID(nil), body.M_fixtures...)
	copied.M_joints = append([]JointEdge(nil), body.M_joints...)
	copied.M_contacts = append([]ContactEdge(nil), body.M_contacts...)
	return copied, nil
}

func (world *World) GetBodyType(id BodyID) (uint8, error) {
	body, err := world.validBody(id)
	if err != nil {
		return BodyType.E_static, err
	}
	return body.GetType(), nil
}

/// Changes the identified body's type. Its mass data gets reset, its
/// contacts get destroyed, and its proxies get touched so that contacts
/// appropriate to the new type form over the next step.
func (world *World) SetBodyType(id BodyID, bodyType uint8) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	body, err := world.validBody(id)
	if err != nil {
		return err
	}

	if body.GetType() == bodyType {
		return nil
	}

	body.M_type = bodyType

	world.resetBodyMassData(body)

	if body.GetType() == BodyType.E_static {
		body.M_linearVelocity.SetZero()
		body.M_angularVelocity = 0.0
		body.M_sweep.Pos0 = body.M_sweep.Pos1
		world.synchronizeFixtures(id)
	}

	body.SetAwake(true)

	// Destroy the attached contacts.
	for {
		body = world.bodyPtr(id)
		if len(body.M_contacts) == 0 {
			break
		}
		world.destroyContact(body.M_contacts[0].Contact)
	}

	// Touch the proxies so that new contacts will be created (when
	// appropriate).
	for _, fixtureID := range body.M_fixtures {
		world.fixturePtr(fixtureID).TouchProxies(&world.M_broadPhase)
	}

	return nil
}

func (world *World) GetTransform(id BodyID) (Transform, error) {
	body, err := world.validBody(id)
	if err != nil {
		return MakeTransform(), err
	}
	return body.GetTransform(), nil
}

/// Teleports the identified body: sets the position of its origin and
/// its rotation. Manipulating the transform this way can cause
/// non-physical behavior; contacts get refreshed against the new
/// placement over the next step.
func (world *World) SetTransform(id BodyID, location Vec2, angle float64) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if !location.IsValid() || !IsValidFloat(angle) {
		return fmt.Errorf("non-finite transform: %w", ErrInvalidArgument)
	}

	body.M_xf.Set(location, angle)

	center := TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.Pos1 = MakePosition(center, angle)
	body.M_sweep.Pos0 = body.M_sweep.Pos1

	world.synchronizeFixtures(id)
	return nil
}

func (world *World) GetLocation(id BodyID) (Vec2, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Vec2{}, err
	}
	return body.GetLocation(), nil
}

func (world *World) GetAngle(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetAngle(), nil
}

func (world *World) GetWorldCenter(id BodyID) (Vec2, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Vec2{}, err
	}
	return body.GetWorldCenter(), nil
}

func (world *World) GetLocalCenter(id BodyID) (Vec2, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Vec2{}, err
	}
	return body.GetLocalCenter(), nil
}

func (world *World) GetVelocity(id BodyID) (Velocity, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Velocity{}, err
	}
	return body.GetVelocity(), nil
}

/// Sets the identified body's velocity. Setting a non-zero velocity wakes
/// the body. A no-op on static bodies.
func (world *World) SetVelocity(id BodyID, velocity Velocity) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if !velocity.Linear.IsValid() || !IsValidFloat(velocity.Angular) {
		return fmt.Errorf("non-finite velocity: %w", ErrInvalidArgument)
	}
	body.SetVelocity(velocity)
	return nil
}

func (world *World) GetLinearAcceleration(id BodyID) (Vec2, error) {
	body, err := world.validBody(id)
	if err != nil {
		return Vec2{}, err
	}
	return body.GetLinearAcceleration(), nil
}

func (world *World) GetAngularAcceleration(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetAngularAcceleration(), nil
}

/// Sets the acceleration the identified body integrates every step. This
/// is how gravity gets expressed: a body falls because its linear
/// acceleration is set to something like (0, -9.8). Changing the
/// acceleration of an accelerable body wakes it.
func (world *World) SetAcceleration(id BodyID, linear Vec2, angular float64) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if !linear.IsValid() || !IsValidFloat(angular) {
		return fmt.Errorf("non-finite acceleration: %w", ErrInvalidArgument)
	}

	if body.M_linearAcceleration == linear && body.M_angularAcceleration == angular {
		return nil
	}
	body.M_linearAcceleration = linear
	body.M_angularAcceleration = angular
	if body.IsAccelerable() {
		body.SetAwake(true)
	}
	return nil
}

func (world *World) GetLinearDamping(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetLinearDamping(), nil
}

func (world *World) SetLinearDamping(id BodyID, damping float64) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if !IsValidFloat(damping) || damping < 0.0 {
		return fmt.Errorf("non-finite or negative damping: %w", ErrInvalidArgument)
	}
	body.SetLinearDamping(damping)
	return nil
}

func (world *World) GetAngularDamping(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetAngularDamping(), nil
}

func (world *World) SetAngularDamping(id BodyID, damping float64) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if !IsValidFloat(damping) || damping < 0.0 {
		return fmt.Errorf("non-finite or negative damping: %w", ErrInvalidArgument)
	}
	body.SetAngularDamping(damping)
	return nil
}

func (world *World) IsAwake(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsAwake(), nil
}

/// Wakes the identified body, resetting its sleep timer.
func (world *World) SetAwake(id BodyID) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	body.SetAwake(true)
	return nil
}

/// Puts the identified body to sleep, zeroing its velocity.
func (world *World) UnsetAwake(id BodyID) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	body.SetAwake(false)
	return nil
}

func (world *World) IsSleepingAllowed(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsSleepingAllowed(), nil
}

func (world *World) SetSleepingAllowed(id BodyID, flag bool) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	body.SetSleepingAllowed(flag)
	return nil
}

func (world *World) IsEnabled(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsEnabled(), nil
}

/// Enables or disables the identified body. A disabled body keeps all its
/// fixtures and joints but has no broad-phase proxies and no contacts and
/// takes no part in simulation.
func (world *World) SetEnabled(id BodyID, flag bool) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	body, err := world.validBody(id)
	if err != nil {
		return err
	}

	if flag == body.IsEnabled() {
		return nil
	}

	if flag {
		body.M_flags |= Body_Flags.E_enabledFlag

		// Create all proxies. Contacts are created the next time step.
		for _, fixtureID := range body.M_fixtures {
			world.fixturePtr(fixtureID).CreateProxies(&world.M_broadPhase, fixtureID, body.M_xf)
		}
		world.M_flags |= World_Flags.E_newFixture
	} else {
		body.M_flags &= ^Body_Flags.E_enabledFlag

		// Destroy all proxies.
		for _, fixtureID := range body.M_fixtures {
			world.fixturePtr(fixtureID).DestroyProxies(&world.M_broadPhase)
		}

		// Destroy the attached contacts.
		for {
			body = world.bodyPtr(id)
			if len(body.M_contacts) == 0 {
				break
			}
			world.destroyContact(body.M_contacts[0].Contact)
		}
	}

	return nil
}

func (world *World) IsImpenetrable(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsImpenetrable(), nil
}

/// Marks the identified body as one that may not be tunneled through by
/// other dynamic bodies, making its contacts eligible for continuous
/// collision handling.
func (world *World) SetImpenetrable(id BodyID, flag bool) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	body.SetImpenetrable(flag)
	return nil
}

func (world *World) IsFixedRotation(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsFixedRotation(), nil
}

/// Sets whether the identified body is prevented from rotating. Changing
/// this zeroes the angular velocity and resets the mass data.
func (world *World) SetFixedRotation(id BodyID, flag bool) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}

	if flag == body.IsFixedRotation() {
		return nil
	}

	if flag {
		body.M_flags |= Body_Flags.E_fixedRotationFlag
	} else {
		body.M_flags &= ^Body_Flags.E_fixedRotationFlag
	}

	body.M_angularVelocity = 0.0

	world.resetBodyMassData(body)
	return nil
}

func (world *World) IsMassDataDirty(id BodyID) (bool, error) {
	body, err := world.validBody(id)
	if err != nil {
		return false, err
	}
	return body.IsMassDataDirty(), nil
}

func (world *World) GetMass(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetMass(), nil
}

func (world *World) GetInvMass(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetInvMass(), nil
}

func (world *World) GetInvRotInertia(id BodyID) (float64, error) {
	body, err := world.validBody(id)
	if err != nil {
		return 0.0, err
	}
	return body.GetInvRotInertia(), nil
}

func (world *World) GetMassData(id BodyID) (MassData, error) {
	body, err := world.validBody(id)
	if err != nil {
		return MassData{}, err
	}
	return body.GetMassData(), nil
}

/// Computes the identified body's mass data from its fixtures: the total
/// mass, the center of mass, and the rotational inertia about the local
/// origin. This is the mass data ResetMassData would give the body.
func (world *World) ComputeMassData(id BodyID) (MassData, error) {
	body, err := world.validBody(id)
	if err != nil {
		return MassData{}, err
	}

	mass := 0.0
	i := 0.0
	center := MakeVec2(0.0, 0.0)
	for _, fixtureID := range body.M_fixtures {
		fixture := world.fixturePtr(fixtureID)
		if fixture.GetDensity() == 0.0 {
			continue
		}
		massData := fixture.GetMassData()
		mass += massData.Mass
		center.OperatorPlusInplace(Vec2MulScalar(massData.Mass, massData.Center))
		i += massData.I
	}
	if mass > 0.0 {
		center.OperatorScalarMulInplace(1.0 / mass)
	}
	return MassData{Mass: mass, Center: center, I: i}, nil
}

/// Overrides the identified body's mass data. The body must be dynamic.
/// Setting a non-positive mass gets treated as a mass of one. The next
/// ResetMassData recomputes everything from the fixtures again.
func (world *World) SetMassData(id BodyID, massData MassData) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if body.GetType() != BodyType.E_dynamic {
		return fmt.Errorf("mass data on a non-dynamic body: %w", ErrInvalidArgument)
	}
	if !IsValidFloat(massData.Mass) || !massData.Center.IsValid() || !IsValidFloat(massData.I) {
		return fmt.Errorf("non-finite mass data: %w", ErrInvalidArgument)
	}

	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0

	body.M_mass = massData.Mass
	if body.M_mass <= 0.0 {
		body.M_mass = 1.0
	}
	body.M_invMass = 1.0 / body.M_mass

	if massData.I > 0.0 && !body.IsFixedRotation() {
		body.M_I = massData.I - body.M_mass*Vec2Dot(massData.Center, massData.Center)
		assert(body.M_I > 0.0)
		body.M_invI = 1.0 / body.M_I
	}

	// Move center of mass.
	oldCenter := body.M_sweep.Pos1.Linear
	body.M_sweep.LocalCenter = massData.Center
	newCenter := TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.Pos0.Linear = newCenter
	body.M_sweep.Pos1.Linear = newCenter

	// Update center of mass velocity.
	body.M_linearVelocity.OperatorPlusInplace(Vec2CrossScalarVector(
		body.M_angularVelocity,
		Vec2Sub(newCenter, oldCenter),
	))

	body.M_flags &= ^Body_Flags.E_massDataDirtyFlag
	return nil
}

/// Recomputes the identified body's mass data from its fixtures. Normally
/// this happens automatically as fixtures come and go; it only needs
/// calling directly after creating or destroying fixtures with automatic
/// resetting declined, or after SetMassData overrides are to be undone.
func (world *World) ResetMassData(id BodyID) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	world.resetBodyMassData(body)
	return nil
}

func (world *World) resetBodyMassData(body *Body) {
	// Compute mass data from shapes. Each shape has its own density.
	body.M_mass = 0.0
	body.M_invMass = 0.0
	body.M_I = 0.0
	body.M_invI = 0.0
	body.M_sweep.LocalCenter.SetZero()
	body.M_flags &= ^Body_Flags.E_massDataDirtyFlag

	// Static and kinematic bodies have zero mass.
	if body.GetType() == BodyType.E_static || body.GetType() == BodyType.E_kinematic {
		body.M_sweep.Pos0.Linear = body.M_xf.P
		body.M_sweep.Pos1.Linear = body.M_xf.P
		body.M_sweep.Pos0.Angular = body.M_sweep.Pos1.Angular
		return
	}

	assert(body.GetType() == BodyType.E_dynamic)

	// Accumulate mass over all fixtures.
	localCenter := MakeVec2(0.0, 0.0)
	for _, fixtureID := range body.M_fixtures {
		fixture := world.fixturePtr(fixtureID)
		if fixture.GetDensity() == 0.0 {
			continue
		}
		massData := fixture.GetMassData()
		body.M_mass += massData.Mass
		localCenter.OperatorPlusInplace(Vec2MulScalar(massData.Mass, massData.Center))
		body.M_I += massData.I
	}

	// Compute center of mass.
	if body.M_mass > 0.0 {
		body.M_invMass = 1.0 / body.M_mass
		localCenter.OperatorScalarMulInplace(body.M_invMass)
	} else {
		// Force all dynamic bodies to have a positive mass.
		body.M_mass = 1.0
		body.M_invMass = 1.0
	}

	if body.M_I > 0.0 && !body.IsFixedRotation() {
		// Center the inertia about the center of mass.
		body.M_I -= body.M_mass * Vec2Dot(localCenter, localCenter)
		assert(body.M_I > 0.0)
		body.M_invI = 1.0 / body.M_I
	} else {
		body.M_I = 0.0
		body.M_invI = 0.0
	}

	// Move center of mass.
	oldCenter := body.M_sweep.Pos1.Linear
	body.M_sweep.LocalCenter = localCenter
	newCenter := TransformVec2Mul(body.M_xf, body.M_sweep.LocalCenter)
	body.M_sweep.Pos0.Linear = newCenter
	body.M_sweep.Pos1.Linear = newCenter

	// Update center of mass velocity.
	body.M_linearVelocity.OperatorPlusInplace(Vec2CrossScalarVector(
		body.M_angularVelocity,
		Vec2Sub(newCenter, oldCenter),
	))
}

/// Applies an impulse at a world point, immediately changing the linear
/// velocity and, when the point is off the center of mass, the angular
/// velocity. The body gets woken; only dynamic bodies take impulses.
func (world *World) ApplyLinearImpulse(id BodyID, impulse Vec2, point Vec2) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if body.GetType() != BodyType.E_dynamic {
		return fmt.Errorf("impulse on a non-dynamic body: %w", ErrInvalidArgument)
	}

	body.SetAwake(true)
	body.M_linearVelocity.OperatorPlusInplace(Vec2MulScalar(body.M_invMass, impulse))
	body.M_angularVelocity += body.M_invI * Vec2Cross(
		Vec2Sub(point, body.M_sweep.Pos1.Linear),
		impulse,
	)
	return nil
}

/// Applies an angular impulse, immediately changing the angular velocity.
/// The body gets woken; only dynamic bodies take impulses.
func (world *World) ApplyAngularImpulse(id BodyID, impulse float64) error {
	body, err := world.validBody(id)
	if err != nil {
		return err
	}
	if body.GetType() != BodyType.E_dynamic {
		return fmt.Errorf("impulse on a non-dynamic body: %w", ErrInvalidArgument)
	}

	body.SetAwake(true)
	body.M_angularVelocity += body.M_invI * impulse
	return nil
}

/// Snapshot of the identified body's fixture identifiers, in creation
/// order.
func (world *World) GetFixtures(id BodyID) ([]FixtureID, error) {
	body, err := world.validBody(id)
	if err != nil {
		return nil, err
	}
	return append([]FixtureID(nil), body.M_fixtures...), nil
}

/// Snapshot of the identified body's joint edges.
func (world *World) GetBodyJoints(id BodyID) ([]JointEdge, error) {
	body, err := world.validBody(id)
	if err != nil {
		return nil, err
	}
	return append([]JointEdge(nil), body.M_joints...), nil
}

/// Snapshot of the identified body's contact edges. Contacts come and go
/// during steps, so this is only stable between steps.
func (world *World) GetBodyContacts(id BodyID) ([]ContactEdge, error) {
	body, err := world.validBody(id)
	if err != nil {
		return nil, err
	}
	return append([]ContactEdge(nil), body.M_contacts...), nil
}
