package playrho_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestFreeFallUnderAcceleration(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)

	h := 1.0 / 60.0
	conf := playrho.MakeStepConf().SetTime(h)
	for i := 0; i < 60; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	// Semi-implicit Euler: velocities integrate before positions do, so
	// v(n) = g h n and y(n) = g h^2 n(n+1)/2.
	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.InDelta(t, playrho.EarthlyGravity, velocity.Linear.Y, 1e-9)
	assert.InDelta(t, 0.0, velocity.Linear.X, 1e-12)

	location, err := world.GetLocation(id)
	require.NoError(t, err)
	expectedY := playrho.EarthlyGravity * h * h * (60 * 61 / 2)
	assert.InDelta(t, expectedY, location.Y, 1e-9)
	assert.InDelta(t, 0.0, location.X, 1e-12)
}

func TestLinearDampingSlowsBody(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearVelocity(playrho.MakeVec2(10, 0)).
		UseLinearDamping(0.5).
		UseAllowSleep(false))
	require.NoError(t, err)

	h := 1.0 / 60.0
	conf := playrho.MakeStepConf().SetTime(h)
	for i := 0; i < 60; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	// v(n) = v0 / (1 + c h)^n from the Pade approximated damping.
	expected := 10.0
	for i := 0; i < 60; i++ {
		expected *= 1.0 / (1.0 + h*0.5)
	}
	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.InDelta(t, expected, velocity.Linear.X, 1e-9)
}

func TestKinematicBodyMovesAtConstantVelocity(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_kinematic).
		UseLinearVelocity(playrho.MakeVec2(1, 0)).
		UseAngularVelocity(playrho.Pi))
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 60; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	location, err := world.GetLocation(id)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, location.X, 1e-9)

	angle, err := world.GetAngle(id)
	require.NoError(t, err)
	assert.InDelta(t, playrho.Pi, angle, 1e-9)

	// Velocity is unaffected by the stepping.
	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, velocity.Linear.X, 1e-12)
}

func TestStaticBodyNeverMoves(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(0, -1)))
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakePolygonShapeConf().SetAsBox(10, 1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	// Something to collide with so the static body takes part in islands.
	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 2)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	location, err := world.GetLocation(ground)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, -1), location)

	angle, err := world.GetAngle(ground)
	require.NoError(t, err)
	assert.Equal(t, 0.0, angle)
}

func TestSoloIslandStats(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	_, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	stats, err := world.Step(conf)
	require.NoError(t, err)

	// A single contactless body forms an island of one that solves in the
	// first position iteration but still runs the full velocity budget.
	assert.Equal(t, 1, stats.Reg.IslandsFound)
	assert.Equal(t, 1, stats.Reg.IslandsSolved)
	assert.Equal(t, conf.RegVelocityIterations, stats.Reg.SumVelIters)
	assert.Equal(t, 1, stats.Reg.SumPosIters)
	assert.Equal(t, 0, stats.Reg.ContactsAdded)
	assert.Equal(t, 0, stats.Reg.BodiesSlept)
	assert.Equal(t, 0, stats.Pre.ContactsAdded)
}

func TestStillBodySleepsAfterHalfSecond(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_kinematic))
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	slept := 0
	for i := 0; i < 60; i++ {
		stats, err := world.Step(conf)
		require.NoError(t, err)
		slept += stats.Reg.BodiesSlept
	}

	assert.Equal(t, 1, slept)
	assert.Equal(t, 0, playrho.GetAwakeCount(&world))

	awake, err := world.IsAwake(id)
	require.NoError(t, err)
	assert.False(t, awake)

	// Sleeping bodies seed no islands.
	stats, err := world.Step(conf)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Reg.IslandsFound)

	assert.Equal(t, 1, playrho.Awaken(&world))
	awake, err = world.IsAwake(id)
	require.NoError(t, err)
	assert.True(t, awake)

	stats, err = world.Step(conf)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Reg.IslandsFound)
}

func TestSleepDisallowedKeepsBodyAwake(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseAllowSleep(false))
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 120; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	awake, err := world.IsAwake(id)
	require.NoError(t, err)
	assert.True(t, awake)
}

func TestBoxComesToRestOnGround(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakePolygonShapeConf().SetAsBox(10, 1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	box, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 1.6)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)
	_, err = world.CreateFixture(box, playrho.MakePolygonShapeConf().SetAsBox(0.5, 0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	slept := 0
	for i := 0; i < 120; i++ {
		stats, err := world.Step(conf)
		require.NoError(t, err)
		slept += stats.Reg.BodiesSlept
	}

	// The box dropped the tenth of a meter, settled on the ground top at
	// y=1, and went to sleep.
	location, err := world.GetLocation(box)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, location.Y, 0.04)
	assert.InDelta(t, 0.0, location.X, 0.01)

	assert.Equal(t, 1, slept)
	assert.Equal(t, 0, playrho.GetAwakeCount(&world))
	assert.Equal(t, 1, playrho.GetTouchingCount(&world))
}

func TestImpulseWakesWholeSleepingIsland(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakePolygonShapeConf().SetAsBox(10, 1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	lower, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 1.5)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)
	_, err = world.CreateFixture(lower, playrho.MakePolygonShapeConf().SetAsBox(0.5, 0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	upper, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 2.5)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
	require.NoError(t, err)
	_, err = world.CreateFixture(upper, playrho.MakePolygonShapeConf().SetAsBox(0.5, 0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 180; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}
	require.Equal(t, 0, playrho.GetAwakeCount(&world))

	// Kicking just the top box wakes its whole resting island once the
	// island gets rebuilt on the next step.
	require.NoError(t, world.ApplyLinearImpulse(upper, playrho.MakeVec2(0.5, 0), playrho.MakeVec2(0, 2.5)))
	_, err = world.Step(conf)
	require.NoError(t, err)

	for _, id := range []playrho.BodyID{lower, upper} {
		awake, err := world.IsAwake(id)
		require.NoError(t, err)
		assert.True(t, awake)
	}
}

func TestContactLifecycleStats(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakeDiskShapeConf().UseRadius(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 0.5))) // deeply overlapping
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(1).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	stats, err := world.Step(conf)
	require.NoError(t, err)

	// The first step finds the new pair and updates its fresh manifold.
	assert.Equal(t, 1, stats.Pre.ContactsAdded)
	assert.Equal(t, 1, stats.Pre.ContactsUpdated)
	assert.Equal(t, 0, stats.Pre.ContactsDestroyed)
	assert.Equal(t, 1, world.GetContactCount())
	assert.Equal(t, 1, playrho.GetTouchingCount(&world))

	// The position solver resolves the overlap without imparting any
	// velocity, leaving the ball resting on the ground disk within the
	// separation tolerance: the contact persists and the pair sleeps.
	for i := 0; i < 60; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}
	location, err := world.GetLocation(ball)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, location.Y, 0.05)
	assert.Equal(t, 1, world.GetContactCount())
	assert.Equal(t, 1, playrho.GetTouchingCount(&world))
	assert.Equal(t, 0, playrho.GetAwakeCount(&world))

	// Throwing the ball away separates the proxies and destroys the
	// contact.
	require.NoError(t, world.SetVelocity(ball, playrho.MakeVelocity(playrho.MakeVec2(0, 20), 0)))
	destroyed := 0
	for i := 0; i < 30; i++ {
		stats, err := world.Step(conf)
		require.NoError(t, err)
		destroyed += stats.Pre.ContactsDestroyed
	}
	assert.Equal(t, 1, destroyed)
	assert.Equal(t, 0, world.GetContactCount())
}

func makeSceneWorld() (playrho.World, []playrho.BodyID) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	ids := make([]playrho.BodyID, 0, 6)

	gravity := playrho.MakeVec2(0, playrho.EarthlyGravity)

	// Ground box.
	ground, err := world.CreateBody(playrho.MakeBodyConf())
	if err != nil {
		panic(err)
	}
	if _, err := world.CreateFixture(ground, playrho.MakePolygonShapeConf().SetAsBox(20, 1), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}
	ids = append(ids, ground)

	// A small tower of boxes.
	for i := 0; i < 3; i++ {
		box, err := world.CreateBody(playrho.MakeBodyConf().
			UseType(playrho.BodyType.E_dynamic).
			UseLocation(playrho.MakeVec2(0, 1.55+1.1*float64(i))).
			UseLinearAcceleration(gravity))
		if err != nil {
			panic(err)
		}
		shape := playrho.MakePolygonShapeConf().SetAsBox(0.5, 0.5).UseDensity(1).UseFriction(0.3)
		if _, err := world.CreateFixture(box, shape, playrho.MakeFixtureConf(), true); err != nil {
			panic(err)
		}
		ids = append(ids, box)
	}

	// A disk rolling in from the side.
	disk, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(-6, 1.5)).
		UseLinearVelocity(playrho.MakeVec2(3, 0)).
		UseLinearAcceleration(gravity))
	if err != nil {
		panic(err)
	}
	if _, err := world.CreateFixture(disk, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1).UseFriction(0.3), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}
	ids = append(ids, disk)

	// A pendulum swinging above the tower.
	bob, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(3, 8)).
		UseLinearAcceleration(gravity))
	if err != nil {
		panic(err)
	}
	if _, err := world.CreateFixture(bob, playrho.MakeDiskShapeConf().UseRadius(0.3).UseDensity(1), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}
	conf, err := playrho.GetRevoluteJointConf(&world, ground, bob, playrho.MakeVec2(0, 8))
	if err != nil {
		panic(err)
	}
	if _, err := world.CreateJoint(&conf); err != nil {
		panic(err)
	}
	ids = append(ids, bob)

	return world, ids
}

func runScene(steps int) string {
	world, ids := makeSceneWorld()
	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)

	var output strings.Builder
	for i := 0; i < steps; i++ {
		if _, err := world.Step(conf); err != nil {
			panic(err)
		}
		for _, id := range ids {
			location, err := world.GetLocation(id)
			if err != nil {
				panic(err)
			}
			angle, err := world.GetAngle(id)
			if err != nil {
				panic(err)
			}
			fmt.Fprintf(&output, "%v(%v): %.17g %.17g %.17g\n", i, id, location.X, location.Y, angle)
		}
	}
	return output.String()
}

func TestSteppingIsDeterministic(t *testing.T) {
	first := runScene(90)
	second := runScene(90)

	if first != second {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "First run",
			ToFile:   "Second run",
			Context:  0,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Fatalf("identical runs diverged:\n%s", text)
	}
}

func TestIslandsAreDisjointAcrossStatics(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakePolygonShapeConf().SetAsBox(20, 1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	// Two boxes resting far apart on the same ground do not wake or solve
	// as a unit: the static ground stops island propagation.
	for _, x := range []float64{-5, 5} {
		box, err := world.CreateBody(playrho.MakeBodyConf().
			UseType(playrho.BodyType.E_dynamic).
			UseLocation(playrho.MakeVec2(x, 1.51)).
			UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)))
		require.NoError(t, err)
		_, err = world.CreateFixture(box, playrho.MakePolygonShapeConf().SetAsBox(0.5, 0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
		require.NoError(t, err)
	}

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	stats, err := world.Step(conf)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Reg.IslandsFound)
}
