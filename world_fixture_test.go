package playrho_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestCreateFixtureValidation(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	body, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)

	_, err = world.CreateFixture(playrho.BodyID(99), playrho.MakeDiskShapeConf(), playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)

	_, err = world.CreateFixture(body, nil, playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	tooThin := playrho.MakeDiskShapeConf().UseRadius(world.GetMinVertexRadius() / 2)
	_, err = world.CreateFixture(body, tooThin, playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	tooFat := playrho.MakeDiskShapeConf().UseRadius(world.GetMaxVertexRadius() * 2)
	_, err = world.CreateFixture(body, tooFat, playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	_, err = world.CreateFixture(body, playrho.MakeDiskShapeConf().UseDensity(-1), playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	_, err = world.CreateFixture(body, playrho.MakeDiskShapeConf().UseFriction(-0.5), playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	_, err = world.CreateFixture(body, playrho.MakeDiskShapeConf().UseRestitution(math.NaN()), playrho.MakeFixtureConf(), true)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	fixtures, err := world.GetFixtures(body)
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestFixtureLifecycleUpdatesMass(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	body, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)

	shape := playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1)
	diskMass := math.Pi * 0.5 * 0.5

	first, err := world.CreateFixture(body, shape, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	second, err := world.CreateFixture(body, shape, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	mass, err := world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, 2*diskMass, mass)

	fixtures, err := world.GetFixtures(body)
	require.NoError(t, err)
	assert.Equal(t, []playrho.FixtureID{first, second}, fixtures)

	fixture, err := world.GetFixture(first)
	require.NoError(t, err)
	assert.Equal(t, body, fixture.GetBody())
	assert.Equal(t, playrho.Shape_Type.E_disk, fixture.GetType())
	assert.False(t, fixture.IsSensor())
	assert.Equal(t, 1, fixture.GetProxyCount())

	require.NoError(t, world.DestroyFixture(first, true))
	mass, err = world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, diskMass, mass)

	fixtures, err = world.GetFixtures(body)
	require.NoError(t, err)
	assert.Equal(t, []playrho.FixtureID{second}, fixtures)

	assert.ErrorIs(t, world.DestroyFixture(first, true), playrho.ErrWasDestroyed)
	_, err = world.GetFixture(playrho.InvalidFixtureID)
	assert.ErrorIs(t, err, playrho.ErrInvalidFixtureID)

	// Declining the automatic reset leaves the mass stale until asked for.
	_, err = world.CreateFixture(body, shape, playrho.MakeFixtureConf(), false)
	require.NoError(t, err)
	mass, err = world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, diskMass, mass)

	require.NoError(t, world.ResetMassData(body))
	mass, err = world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, 2*diskMass, mass)
}

func TestMassDataOverride(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	err = world.SetMassData(ground, playrho.MassData{Mass: 5})
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	body, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	_, err = world.CreateFixture(body, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	err = world.SetMassData(body, playrho.MassData{Mass: math.NaN()})
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	require.NoError(t, world.SetMassData(body, playrho.MassData{Mass: 7}))
	mass, err := world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, 7.0, mass)
	invMass, err := world.GetInvMass(body)
	require.NoError(t, err)
	assert.Equal(t, 1.0/7.0, invMass)

	// Computing reports what the fixtures would give without applying it.
	computed, err := world.ComputeMassData(body)
	require.NoError(t, err)
	assert.Equal(t, math.Pi*0.5*0.5, computed.Mass)
	mass, err = world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, 7.0, mass)

	require.NoError(t, world.ResetMassData(body))
	mass, err = world.GetMass(body)
	require.NoError(t, err)
	assert.Equal(t, math.Pi*0.5*0.5, mass)
}

// Two dynamic disks placed overlapping. Their contact appears on the
// first step.
func makeOverlappingDisks(world *playrho.World, confA playrho.FixtureConf) (playrho.FixtureID, playrho.FixtureID) {
	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	if err != nil {
		panic(err)
	}
	fixtureA, err := world.CreateFixture(bodyA, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1), confA, true)
	if err != nil {
		panic(err)
	}

	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0.6, 0)))
	if err != nil {
		panic(err)
	}
	fixtureB, err := world.CreateFixture(bodyB, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	if err != nil {
		panic(err)
	}
	return fixtureA, fixtureB
}

func TestSensorOverlapsWithoutResponse(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtureA, _ := makeOverlappingDisks(&world, playrho.MakeFixtureConf().UseIsSensor(true))

	sensor, err := world.IsSensor(fixtureA)
	require.NoError(t, err)
	assert.True(t, sensor)

	fixture, err := world.GetFixture(fixtureA)
	require.NoError(t, err)
	bodyA := fixture.GetBody()
	locationBefore, err := world.GetLocation(bodyA)
	require.NoError(t, err)

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 10; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)
	}

	// The overlap registers as touching but produces no manifold and no
	// push-out.
	contacts := world.GetContacts()
	require.Len(t, contacts, 1)
	touching, err := world.IsContactTouching(contacts[0])
	require.NoError(t, err)
	assert.True(t, touching)
	manifold, err := world.GetManifold(contacts[0])
	require.NoError(t, err)
	assert.Zero(t, manifold.PointCount)

	locationAfter, err := world.GetLocation(bodyA)
	require.NoError(t, err)
	assert.Equal(t, locationBefore, locationAfter)

	// Changing the sensor flag wakes the body; re-stating it does not.
	require.NoError(t, world.UnsetAwake(bodyA))
	require.NoError(t, world.SetSensor(fixtureA, false))
	awake, err := world.IsAwake(bodyA)
	require.NoError(t, err)
	assert.True(t, awake)

	require.NoError(t, world.UnsetAwake(bodyA))
	require.NoError(t, world.SetSensor(fixtureA, false))
	awake, err = world.IsAwake(bodyA)
	require.NoError(t, err)
	assert.False(t, awake)
}

func TestSolidOverlapPushesBodiesApart(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtureA, fixtureB := makeOverlappingDisks(&world, playrho.MakeFixtureConf())

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 60; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)
	}

	fixA, err := world.GetFixture(fixtureA)
	require.NoError(t, err)
	fixB, err := world.GetFixture(fixtureB)
	require.NoError(t, err)
	locationA, err := world.GetLocation(fixA.GetBody())
	require.NoError(t, err)
	locationB, err := world.GetLocation(fixB.GetBody())
	require.NoError(t, err)

	assert.Less(t, locationA.X, 0.0)
	assert.Greater(t, locationB.X, 0.6)
	assert.Greater(t, locationB.X-locationA.X, 0.9)
}

func TestFilterChangeDestroysContact(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtureA, fixtureB := makeOverlappingDisks(&world, playrho.MakeFixtureConf())

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	_, err := world.Step(stepConf)
	require.NoError(t, err)
	require.Equal(t, 1, world.GetContactCount())

	// Placing both fixtures in the same negative group forbids their
	// collision; the next step's refiltering drops the contact.
	filter := playrho.MakeFilter()
	filter.GroupIndex = -3
	require.NoError(t, world.SetFilterData(fixtureA, filter))
	require.NoError(t, world.SetFilterData(fixtureB, filter))

	got, err := world.GetFilterData(fixtureA)
	require.NoError(t, err)
	assert.Equal(t, filter, got)

	stats, err := world.Step(stepConf)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pre.ContactsDestroyed)
	assert.Zero(t, world.GetContactCount())

	// Refiltering touches the broad-phase proxies, so undoing the change
	// brings the contact back without the bodies having to move.
	require.NoError(t, world.SetFilterData(fixtureA, playrho.MakeFilter()))
	require.NoError(t, world.SetFilterData(fixtureB, playrho.MakeFilter()))
	_, err = world.Step(stepConf)
	require.NoError(t, err)
	assert.Equal(t, 1, world.GetContactCount())
}

func TestShouldCollideFilters(t *testing.T) {
	defaults := playrho.MakeFilter()
	assert.True(t, playrho.ShouldCollideFilters(defaults, defaults))

	sameNegative := playrho.MakeFilter()
	sameNegative.GroupIndex = -2
	assert.False(t, playrho.ShouldCollideFilters(sameNegative, sameNegative))

	samePositive := playrho.MakeFilter()
	samePositive.GroupIndex = 4
	samePositive.MaskBits = 0
	assert.True(t, playrho.ShouldCollideFilters(samePositive, samePositive))

	// Different groups fall back to the category and mask bits.
	cat1 := playrho.Filter{CategoryBits: 0x0001, MaskBits: 0x0002}
	cat2 := playrho.Filter{CategoryBits: 0x0002, MaskBits: 0x0001}
	assert.True(t, playrho.ShouldCollideFilters(cat1, cat2))
	assert.False(t, playrho.ShouldCollideFilters(cat1, cat1))
}

func TestTestPoint(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	round, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(5, 0)))
	require.NoError(t, err)
	disk, err := world.CreateFixture(round, playrho.MakeDiskShapeConf().UseRadius(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	inside, err := world.TestPoint(disk, playrho.MakeVec2(5.9, 0))
	require.NoError(t, err)
	assert.True(t, inside)
	inside, err = world.TestPoint(disk, playrho.MakeVec2(6.5, 0))
	require.NoError(t, err)
	assert.False(t, inside)

	// A rotated box: after a quarter turn its extents swap.
	turned, err := world.CreateBody(playrho.MakeBodyConf().
		UseLocation(playrho.MakeVec2(2, 0)).
		UseAngle(math.Pi / 2))
	require.NoError(t, err)
	box, err := world.CreateFixture(turned, playrho.MakePolygonShapeConf().SetAsBox(1, 0.5), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	inside, err = world.TestPoint(box, playrho.MakeVec2(2.3, 0))
	require.NoError(t, err)
	assert.True(t, inside)
	inside, err = world.TestPoint(box, playrho.MakeVec2(2.8, 0))
	require.NoError(t, err)
	assert.False(t, inside)
	inside, err = world.TestPoint(box, playrho.MakeVec2(2, 0.9))
	require.NoError(t, err)
	assert.True(t, inside)
	inside, err = world.TestPoint(box, playrho.MakeVec2(2, 1.2))
	require.NoError(t, err)
	assert.False(t, inside)

	require.NoError(t, world.DestroyFixture(disk, true))
	_, err = world.TestPoint(disk, playrho.MakeVec2(5, 0))
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)
	_, err = world.TestPoint(playrho.InvalidFixtureID, playrho.MakeVec2(0, 0))
	assert.ErrorIs(t, err, playrho.ErrInvalidFixtureID)
}

func TestContactOverrides(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	makeOverlappingDisks(&world, playrho.MakeFixtureConf())

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	_, err := world.Step(stepConf)
	require.NoError(t, err)
	contacts := world.GetContacts()
	require.Len(t, contacts, 1)
	id := contacts[0]

	// Mixed material defaults: friction is the geometric mean, restitution
	// the maximum.
	friction, err := world.GetContactFriction(id)
	require.NoError(t, err)
	assert.InDelta(t, playrho.DefaultFriction, friction, 1e-9)
	restitution, err := world.GetContactRestitution(id)
	require.NoError(t, err)
	assert.Zero(t, restitution)
	tangentSpeed, err := world.GetContactTangentSpeed(id)
	require.NoError(t, err)
	assert.Zero(t, tangentSpeed)

	require.NoError(t, world.SetContactFriction(id, 0.75))
	friction, err = world.GetContactFriction(id)
	require.NoError(t, err)
	assert.Equal(t, 0.75, friction)
	assert.ErrorIs(t, world.SetContactFriction(id, -1), playrho.ErrInvalidArgument)

	require.NoError(t, world.SetContactRestitution(id, 0.5))
	restitution, err = world.GetContactRestitution(id)
	require.NoError(t, err)
	assert.Equal(t, 0.5, restitution)
	assert.ErrorIs(t, world.SetContactRestitution(id, math.NaN()), playrho.ErrInvalidArgument)

	require.NoError(t, world.SetContactTangentSpeed(id, 2))
	tangentSpeed, err = world.GetContactTangentSpeed(id)
	require.NoError(t, err)
	assert.Equal(t, 2.0, tangentSpeed)
	assert.ErrorIs(t, world.SetContactTangentSpeed(id, math.Inf(1)), playrho.ErrInvalidArgument)

	// Disabling holds only until the next manifold update.
	require.NoError(t, world.SetContactEnabled(id, false))
	enabled, err := world.IsContactEnabled(id)
	require.NoError(t, err)
	assert.False(t, enabled)
	_, err = world.Step(stepConf)
	require.NoError(t, err)
	enabled, err = world.IsContactEnabled(id)
	require.NoError(t, err)
	assert.True(t, enabled)

	manifold, err := world.GetManifold(id)
	require.NoError(t, err)
	assert.Equal(t, 1, manifold.PointCount)

	_, err = world.GetContact(playrho.ContactID(99))
	assert.ErrorIs(t, err, playrho.ErrInvalidContactID)
}
