package playrho_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

// A thin static wall and a small fast projectile whose per-step travel
// clears the wall's thickness plus the projectile's diameter: discrete
// sample points land on either side of the wall, so only the continuous
// phase can catch the crossing.
func makeWallAndProjectile(world *playrho.World) (wall playrho.BodyID, projectile playrho.BodyID) {
	var err error

	wall, err = world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(9.5, 0)))
	if err != nil {
		panic(err)
	}
	if _, err = world.CreateFixture(wall, playrho.MakePolygonShapeConf().SetAsBox(0.1, 2), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}

	projectile, err = world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearVelocity(playrho.MakeVec2(120, 0)).
		UseAllowSleep(false))
	if err != nil {
		panic(err)
	}
	if _, err = world.CreateFixture(projectile, playrho.MakeDiskShapeConf().UseRadius(0.1).UseDensity(1), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}
	return wall, projectile
}

func TestContinuousPhaseStopsProjectileAtStaticWall(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	_, projectile := makeWallAndProjectile(&world)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	toiIslands := 0
	toiUpdates := 0
	for i := 0; i < 30; i++ {
		stats, err := world.Step(conf)
		require.NoError(t, err)
		toiIslands += stats.Toi.IslandsFound
		toiUpdates += stats.Toi.ContactsUpdatedToi
	}

	location, err := world.GetLocation(projectile)
	require.NoError(t, err)
	assert.Less(t, location.X, 9.45, "projectile must stop at the wall face")
	assert.Greater(t, location.X, 8.5, "projectile must reach the wall")

	assert.GreaterOrEqual(t, toiIslands, 1)
	assert.GreaterOrEqual(t, toiUpdates, 1)
}

func TestProjectileTunnelsWithContinuousPhaseOff(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	_, projectile := makeWallAndProjectile(&world)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	conf.DoToi = false
	for i := 0; i < 30; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	location, err := world.GetLocation(projectile)
	require.NoError(t, err)
	assert.Greater(t, location.X, 10.0, "expected the projectile to pass through undetected")
}

// Dynamic versus dynamic pairs only get continuous treatment when one of
// the bodies is flagged impenetrable ("bullet").
func makeDynamicWallAndProjectile(world *playrho.World, bullet bool) (wall playrho.BodyID, projectile playrho.BodyID) {
	var err error

	wall, err = world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(9.5, 0)))
	if err != nil {
		panic(err)
	}
	if _, err = world.CreateFixture(wall, playrho.MakePolygonShapeConf().SetAsBox(0.1, 2).UseDensity(1), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}

	projectile, err = world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearVelocity(playrho.MakeVec2(120, 0)).
		UseBullet(bullet).
		UseAllowSleep(false))
	if err != nil {
		panic(err)
	}
	if _, err = world.CreateFixture(projectile, playrho.MakeDiskShapeConf().UseRadius(0.1).UseDensity(1), playrho.MakeFixtureConf(), true); err != nil {
		panic(err)
	}
	return wall, projectile
}

func TestBulletHitsDynamicWall(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	wall, projectile := makeDynamicWallAndProjectile(&world, true)

	impenetrable, err := world.IsImpenetrable(projectile)
	require.NoError(t, err)
	require.True(t, impenetrable)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	toiIslands := 0
	for i := 0; i < 20; i++ {
		stats, err := world.Step(conf)
		require.NoError(t, err)
		toiIslands += stats.Toi.IslandsFound

		projectileLoc, err := world.GetLocation(projectile)
		require.NoError(t, err)
		wallLoc, err := world.GetLocation(wall)
		require.NoError(t, err)
		assert.Less(t, projectileLoc.X, wallLoc.X, "bullet must stay on its side of the wall")
	}
	assert.GreaterOrEqual(t, toiIslands, 1)

	// The impact transferred momentum: the wall is moving now.
	velocity, err := world.GetVelocity(wall)
	require.NoError(t, err)
	assert.Greater(t, velocity.Linear.X, 0.0)
}

func TestNonBulletPassesThroughDynamicWall(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	wall, projectile := makeDynamicWallAndProjectile(&world, false)

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 20; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
	}

	projectileLoc, err := world.GetLocation(projectile)
	require.NoError(t, err)
	wallLoc, err := world.GetLocation(wall)
	require.NoError(t, err)
	assert.Greater(t, projectileLoc.X, wallLoc.X+0.5, "expected the projectile to pass through")
	assert.InDelta(t, 9.5, wallLoc.X, 1e-9, "the undisturbed wall must not move")
}

func TestSubSteppingLeavesStepIncomplete(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	_, projectile := makeWallAndProjectile(&world)
	world.SetSubStepping(true)
	require.True(t, world.GetSubStepping())

	conf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	incomplete := 0
	for i := 0; i < 200; i++ {
		_, err := world.Step(conf)
		require.NoError(t, err)
		if !world.IsStepComplete() {
			incomplete++
		}
	}

	assert.GreaterOrEqual(t, incomplete, 1, "expected at least one step to pause at a time of impact")
	assert.True(t, world.IsStepComplete(), "the world must eventually consume the whole interval")

	location, err := world.GetLocation(projectile)
	require.NoError(t, err)
	assert.Less(t, location.X, 9.45)
}
