package playrho

import "fmt"

// Validates a shape for use in this world.
func (world *World) validateShape(shape Shape) error {
	if shape == nil {
		return fmt.Errorf("nil shape: %w", ErrInvalidArgument)
	}
	vertexRadius := shape.GetVertexRadius()
	if !(vertexRadius >= world.M_minVertexRadius) {
		return fmt.Errorf("vertex radius %v under minimum %v: %w",
			vertexRadius, world.M_minVertexRadius, ErrInvalidArgument)
	}
	if !(vertexRadius <= world.M_maxVertexRadius) {
		return fmt.Errorf("vertex radius %v over maximum %v: %w",
			vertexRadius, world.M_maxVertexRadius, ErrInvalidArgument)
	}
	if !IsValidFloat(shape.GetDensity()) || shape.GetDensity() < 0.0 {
		return fmt.Errorf("non-finite or negative density: %w", ErrInvalidArgument)
	}
	if !IsValidFloat(shape.GetFriction()) || shape.GetFriction() < 0.0 {
		return fmt.Errorf("non-finite or negative friction: %w", ErrInvalidArgument)
	}
	if !IsValidFloat(shape.GetRestitution()) {
		return fmt.Errorf("non-finite restitution: %w", ErrInvalidArgument)
	}
	return nil
}

/// Creates a fixture attaching the given shape to the identified body and
/// yields the identifier by which the world knows it. Contacts are not
/// created until the next time step.
/// With resetMassData the body's mass data gets recomputed right away when
/// the shape has density; declining leaves the body flagged as having
/// dirty mass data until a later reset.
func (world *World) CreateFixture(bodyID BodyID, shape Shape, conf FixtureConf, resetMassData bool) (FixtureID, error) {
	if world.IsLocked() {
		return InvalidFixtureID, ErrWorldLocked
	}
	body, err := world.validBody(bodyID)
	if err != nil {
		return InvalidFixtureID, err
	}
	if err := world.validateShape(shape); err != nil {
		return InvalidFixtureID, err
	}
	if len(world.M_fixtureBuffer)-len(world.M_freeFixtures) >= MaxFixtures {
		return InvalidFixtureID, ErrMaxFixtures
	}

	index := world.allocFixtureSlot()
	world.M_fixtureBuffer[index] = Fixture{
		M_body:     bodyID,
		M_shape:    shape,
		M_filter:   conf.Filter,
		M_isSensor: conf.IsSensor,
	}
	id := FixtureID(makeIDValue(index, world.M_fixtureGenerations[index]))

	body.M_fixtures = append(body.M_fixtures, id)

	if body.IsEnabled() {
		world.fixturePtr(id).CreateProxies(&world.M_broadPhase, id, body.M_xf)
	}

	// Adjust mass properties if needed.
	if shape.GetDensity() > 0.0 {
		if resetMassData {
			world.resetBodyMassData(body)
		} else {
			body.M_flags |= Body_Flags.E_massDataDirtyFlag
		}
	}

	// Let the world know we have a new fixture. This will cause new
	// contacts to be created at the beginning of the next time step.
	world.M_flags |= World_Flags.E_newFixture

	return id, nil
}

/// Destroys the identified fixture along with all contacts that involve
/// it. With resetMassData the body's mass data gets recomputed right away;
/// declining leaves the body flagged as having dirty mass data.
func (world *World) DestroyFixture(id FixtureID, resetMassData bool) error {
	if world.IsLocked() {
		return ErrWorldLocked
	}
	fixture, err := world.validFixture(id)
	if err != nil {
		return err
	}

	bodyID := fixture.M_body
	body := world.bodyPtr(bodyID)

	// Destroy any contacts associated with the fixture.
	edges := append([]ContactEdge(nil), body.M_contacts...)
	for _, ce := range edges {
		contact := world.contactPtr(ce.Contact)
		if contact.GetFixtureA() == id || contact.GetFixtureB() == id {
			world.destroyContact(ce.Contact)
		}
	}

	if body.IsEnabled() {
		fixture.DestroyProxies(&world.M_broadPhase)
	}

	body.M_fixtures = removeFixtureID(body.M_fixtures, id)
	world.freeFixtureSlot(idIndex(uint32(id)))

	if resetMassData {
		world.resetBodyMassData(body)
	} else {
		body.M_flags |= Body_Flags.E_massDataDirtyFlag
	}

	return nil
}

/// Gets a copy of the identified fixture. The copy is detached: it shares
/// nothing with the fixture in the world.
func (world *World) GetFixture(id FixtureID) (Fixture, error) {
	fixture, err := world.validFixture(id)
	if err != nil {
		return Fixture{}, err
	}
	copied := *fixture
	copied.M_proxies = append([]FixtureProxy(nil), fixture.M_proxies...)
	return copied, nil
}

/// Gets the shape the identified fixture attaches to its body. Shapes are
/// immutable values.
func (world *World) GetShape(id FixtureID) (Shape, error) {
	fixture, err := world.validFixture(id)
	if err != nil {
		return nil, err
	}
	return fixture.GetShape(), nil
}

func (world *World) IsSensor(id FixtureID) (bool, error) {
	fixture, err := world.validFixture(id)
	if err != nil {
		return false, err
	}
	return fixture.IsSensor(), nil
}

/// Makes the identified fixture a sensor or makes it solid again. Changing
/// this wakes the body; the change takes collision effect the next step.
func (world *World) SetSensor(id FixtureID, sensor bool) error {
	fixture, err := world.validFixture(id)
	if err != nil {
		return err
	}
	if sensor != fixture.M_isSensor {
		world.bodyPtr(fixture.M_body).SetAwake(true)
		fixture.M_isSensor = sensor
	}
	return nil
}

func (world *World) GetFilterData(id FixtureID) (Filter, error) {
	fixture, err := world.validFixture(id)
	if err != nil {
		return Filter{}, err
	}
	return fixture.GetFilterData(), nil
}

/// Replaces the identified fixture's contact filtering data and refilters
/// its contacts.
func (world *World) SetFilterData(id FixtureID, filter Filter) error {
	fixture, err := world.validFixture(id)
	if err != nil {
		return err
	}
	fixture.M_filter = filter
	world.refilter(id, fixture)
	return nil
}

/// Re-runs the collision filtering of the identified fixture's contacts,
/// for after a filter-relevant change. Existing contacts get re-checked at
/// the next step; potential new pairs get looked for as well.
func (world *World) Refilter(id FixtureID) error {
	fixture, err := world.validFixture(id)
	if err != nil {
		return err
	}
	world.refilter(id, fixture)
	return nil
}

func (world *World) refilter(id FixtureID, fixture *Fixture) {
	// Flag associated contacts for filtering.
	for _, ce := range world.bodyPtr(fixture.M_body).M_contacts {
		contact := world.contactPtr(ce.Contact)
		if contact.GetFixtureA() == id || contact.GetFixtureB() == id {
			contact.FlagForFiltering()
		}
	}

	// Touch each proxy so that new pairs may be created.
	fixture.TouchProxies(&world.M_broadPhase)
}

/// Tests a world point for containment in the identified fixture.
func (world *World) TestPoint(id FixtureID, p Vec2) (bool, error) {
	fixture, err := world.validFixture(id)
	if err != nil {
		return false, err
	}
	xf := world.bodyPtr(fixture.M_body).GetTransform()
	return fixture.TestPoint(xf, p), nil
}

/// Gets a copy of the identified contact. The copy is detached: changing
/// it changes nothing in the world. The copy carries the full collision
/// state including the manifold and any cached time of impact.
func (world *World) GetContact(id ContactID) (Contact, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return Contact{}, err
	}
	return *contact, nil
}

/// Gets a copy of the identified contact's manifold.
func (world *World) GetManifold(id ContactID) (Manifold, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return Manifold{}, err
	}
	return *contact.GetManifold(), nil
}

func (world *World) IsContactTouching(id ContactID) (bool, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return false, err
	}
	return contact.IsTouching(), nil
}

func (world *World) IsContactEnabled(id ContactID) (bool, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return false, err
	}
	return contact.IsEnabled(), nil
}

/// Enables or disables the identified contact for the current step. Meant
/// for use from the pre-solve listener to selectively ignore collisions;
/// the next manifold update re-enables the contact.
func (world *World) SetContactEnabled(id ContactID, flag bool) error {
	contact, err := world.validContact(id)
	if err != nil {
		return err
	}
	contact.SetEnabled(flag)
	return nil
}

func (world *World) GetContactFriction(id ContactID) (float64, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return 0.0, err
	}
	return contact.GetFriction(), nil
}

/// Overrides the identified contact's friction, normally mixed from the
/// two shapes. The override persists until set again or until the contact
/// gets destroyed.
func (world *World) SetContactFriction(id ContactID, friction float64) error {
	contact, err := world.validContact(id)
	if err != nil {
		return err
	}
	if !IsValidFloat(friction) || friction < 0.0 {
		return fmt.Errorf("non-finite or negative friction: %w", ErrInvalidArgument)
	}
	contact.SetFriction(friction)
	return nil
}

func (world *World) GetContactRestitution(id ContactID) (float64, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return 0.0, err
	}
	return contact.GetRestitution(), nil
}

/// Overrides the identified contact's restitution, normally mixed from
/// the two shapes.
func (world *World) SetContactRestitution(id ContactID, restitution float64) error {
	contact, err := world.validContact(id)
	if err != nil {
		return err
	}
	if !IsValidFloat(restitution) {
		return fmt.Errorf("non-finite restitution: %w", ErrInvalidArgument)
	}
	contact.SetRestitution(restitution)
	return nil
}

func (world *World) GetContactTangentSpeed(id ContactID) (float64, error) {
	contact, err := world.validContact(id)
	if err != nil {
		return 0.0, err
	}
	return contact.GetTangentSpeed(), nil
}

/// Sets the identified contact's tangent speed, for conveyor belt
/// behavior, in meters per second.
func (world *World) SetContactTangentSpeed(id ContactID, speed float64) error {
	contact, err := world.validContact(id)
	if err != nil {
		return err
	}
	if !IsValidFloat(speed) {
		return fmt.Errorf("non-finite tangent speed: %w", ErrInvalidArgument)
	}
	contact.SetTangentSpeed(speed)
	return nil
}
