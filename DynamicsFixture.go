package playrho

/// This holds contact filtering data.
type Filter struct {
	/// The collision category bits. Normally you would just set one bit.
	CategoryBits uint16

	/// The collision mask bits. This states the categories that this
	/// shape would accept for collision.
	MaskBits uint16

	/// Collision groups allow a certain group of objects to never collide
	/// (negative) or always collide (positive). Zero means no collision
	/// group. Non-zero group filtering always wins against the mask bits.
	GroupIndex int16
}

func MakeFilter() Filter {
	return Filter{
		CategoryBits: 0x0001,
		MaskBits:     0xFFFF,
		GroupIndex:   0,
	}
}

/// Determines whether collision processing should be performed between
/// two fixtures carrying these filters.
func ShouldCollideFilters(filterA Filter, filterB Filter) bool {
	if filterA.GroupIndex == filterB.GroupIndex && filterA.GroupIndex != 0 {
		return filterA.GroupIndex > 0
	}

	return (filterA.MaskBits&filterB.CategoryBits) != 0 &&
		(filterA.CategoryBits&filterB.MaskBits) != 0
}

/// A fixture configuration holds the per-attachment properties a fixture
/// gets created with. The geometry and material come separately, from the
/// shape the fixture binds to its body.
type FixtureConf struct {
	/// Contact filtering data.
	Filter Filter

	/// A sensor shape collects contact information but never generates a
	/// collision response.
	IsSensor bool
}

func MakeFixtureConf() FixtureConf {
	return FixtureConf{
		Filter:   MakeFilter(),
		IsSensor: false,
	}
}

func (conf FixtureConf) UseFilter(value Filter) FixtureConf {
	conf.Filter = value
	return conf
}

func (conf FixtureConf) UseIsSensor(value bool) FixtureConf {
	conf.IsSensor = value
	return conf
}

/// This proxy is used internally to connect fixture children to the
/// broad-phase.
type FixtureProxy struct {
	Aabb       AABB
	ChildIndex int
	ProxyId    int
}

/// A fixture attaches a shape to a body for collision detection. A fixture
/// inherits its geometry and material from the shape value it carries and
/// adds the filtering data and sensor flag. Fixtures are created and
/// destroyed through a world, which hands out identifiers for them.
type Fixture struct {
	M_body BodyID

	M_shape Shape

	M_filter Filter

	M_isSensor bool

	M_proxies []FixtureProxy
}

/// Get the type of the child shape.
func (fix Fixture) GetType() uint8 {
	return fix.M_shape.GetType()
}

/// Get the shape this fixture binds to its body. The returned value is
/// the shape the fixture was created with; shapes are immutable.
func (fix Fixture) GetShape() Shape {
	return fix.M_shape
}

/// Get the identifier of the body this fixture is attached to.
func (fix Fixture) GetBody() BodyID {
	return fix.M_body
}

/// Is this fixture a sensor (non-solid)?
func (fix Fixture) IsSensor() bool {
	return fix.M_isSensor
}

/// Get the contact filtering data.
func (fix Fixture) GetFilterData() Filter {
	return fix.M_filter
}

/// Get the density of this fixture, as configured on its shape.
func (fix Fixture) GetDensity() float64 {
	return fix.M_shape.GetDensity()
}

/// Get the coefficient of friction, as configured on the shape.
func (fix Fixture) GetFriction() float64 {
	return fix.M_shape.GetFriction()
}

/// Get the coefficient of restitution, as configured on the shape.
func (fix Fixture) GetRestitution() float64 {
	return fix.M_shape.GetRestitution()
}

/// Test a point in world coordinates for containment in this fixture.
func (fix Fixture) TestPoint(xf Transform, p Vec2) bool {
	return fix.M_shape.TestPoint(xf, p)
}

/// Cast a ray against a child of this fixture.
func (fix Fixture) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	return fix.M_shape.RayCast(output, input, xf, childIndex)
}

/// Get the mass data for this fixture's shape.
func (fix Fixture) GetMassData() MassData {
	return fix.M_shape.GetMassData()
}

func (fix Fixture) GetProxyCount() int {
	return len(fix.M_proxies)
}

func (fix Fixture) GetProxy(index int) FixtureProxy {
	assert(0 <= index && index < len(fix.M_proxies))
	return fix.M_proxies[index]
}

/// Get the fixture's AABB for the identified child. This AABB may be
/// enlarged and/or stale. If you need a more accurate AABB, compute it
/// using the shape and the body transform.
func (fix Fixture) GetAABB(childIndex int) AABB {
	assert(0 <= childIndex && childIndex < len(fix.M_proxies))
	return fix.M_proxies[childIndex].Aabb
}

// These support body activation/deactivation and fixture creation.
func (fix *Fixture) CreateProxies(broadPhase *BroadPhase, id FixtureID, xf Transform) {
	assert(len(fix.M_proxies) == 0)

	childCount := fix.M_shape.GetChildCount()
	fix.M_proxies = make([]FixtureProxy, childCount)

	for i := 0; i < childCount; i++ {
		aabb := fix.M_shape.ComputeAABB(xf, i)
		proxyId := broadPhase.CreateProxy(aabb, ProxyKey{Fixture: id, Child: i})
		fix.M_proxies[i] = FixtureProxy{
			Aabb:       aabb,
			ChildIndex: i,
			ProxyId:    proxyId,
		}
	}
}

func (fix *Fixture) DestroyProxies(broadPhase *BroadPhase) {
	for i := range fix.M_proxies {
		broadPhase.DestroyProxy(fix.M_proxies[i].ProxyId)
	}

	fix.M_proxies = fix.M_proxies[:0]
}

/// Moves the fixture's broad-phase proxies from the first transform to the
/// second. The fat AABB covers both placements so contacts that come about
/// mid-sweep are not missed.
func (fix *Fixture) Synchronize(broadPhase *BroadPhase, transform1 Transform, transform2 Transform) {
	for i := range fix.M_proxies {
		proxy := &fix.M_proxies[i]

		// Compute an AABB that covers the swept shape (may miss some
		// rotation effect).
		aabb1 := fix.M_shape.ComputeAABB(transform1, proxy.ChildIndex)
		aabb2 := fix.M_shape.ComputeAABB(transform2, proxy.ChildIndex)

		proxy.Aabb.CombineTwoInPlace(aabb1, aabb2)

		displacement := Vec2Sub(aabb2.GetCenter(), aabb1.GetCenter())

		broadPhase.MoveProxy(proxy.ProxyId, proxy.Aabb, displacement)
	}
}

/// Re-registers the fixture's proxies with the broad-phase so their pairs
/// get re-processed on the next update.
func (fix *Fixture) TouchProxies(broadPhase *BroadPhase) {
	for i := range fix.M_proxies {
		broadPhase.TouchProxy(fix.M_proxies[i].ProxyId)
	}
}
