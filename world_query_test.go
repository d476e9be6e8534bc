package playrho_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

// Four static disks of radius a half: three in a row along the x axis
// and one off above the middle.
func makeQueryScene(world *playrho.World) []playrho.FixtureID {
	locations := []playrho.Vec2{
		playrho.MakeVec2(0, 0),
		playrho.MakeVec2(5, 0),
		playrho.MakeVec2(10, 0),
		playrho.MakeVec2(5, 5),
	}
	fixtures := make([]playrho.FixtureID, 0, len(locations))
	for _, location := range locations {
		body, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(location))
		if err != nil {
			panic(err)
		}
		fixture, err := world.CreateFixture(body, playrho.MakeDiskShapeConf().UseRadius(0.5), playrho.MakeFixtureConf(), true)
		if err != nil {
			panic(err)
		}
		fixtures = append(fixtures, fixture)
	}
	return fixtures
}

func TestQueryAABB(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtures := makeQueryScene(&world)

	query := func(aabb playrho.AABB) []playrho.FixtureID {
		var found []playrho.FixtureID
		world.QueryAABB(func(id playrho.FixtureID) bool {
			found = append(found, id)
			return true
		}, aabb)
		return found
	}

	middle := query(playrho.AABB{
		LowerBound: playrho.MakeVec2(4, -1),
		UpperBound: playrho.MakeVec2(6, 1),
	})
	assert.Equal(t, []playrho.FixtureID{fixtures[1]}, middle)

	everything := query(playrho.AABB{
		LowerBound: playrho.MakeVec2(-1, -2),
		UpperBound: playrho.MakeVec2(12, 7),
	})
	assert.ElementsMatch(t, fixtures, everything)

	nothing := query(playrho.AABB{
		LowerBound: playrho.MakeVec2(20, 20),
		UpperBound: playrho.MakeVec2(21, 21),
	})
	assert.Empty(t, nothing)

	// A declining callback stops the query after the first report.
	count := 0
	world.QueryAABB(func(playrho.FixtureID) bool {
		count++
		return false
	}, playrho.AABB{
		LowerBound: playrho.MakeVec2(-1, -2),
		UpperBound: playrho.MakeVec2(12, 7),
	})
	assert.Equal(t, 1, count)
}

func TestRayCastClosestHit(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtures := makeQueryScene(&world)

	// Clipping the ray to each hit leaves the closest fixture as the
	// last reported one, whatever order the tree visits them in.
	var hitID playrho.FixtureID
	var hitPoint, hitNormal playrho.Vec2
	hitFraction := 0.0
	hits := 0
	world.RayCast(func(id playrho.FixtureID, point, normal playrho.Vec2, fraction float64) float64 {
		hits++
		hitID = id
		hitPoint = point
		hitNormal = normal
		hitFraction = fraction
		return fraction
	}, playrho.MakeVec2(-2, 0), playrho.MakeVec2(12, 0))

	require.GreaterOrEqual(t, hits, 1)
	assert.Equal(t, fixtures[0], hitID)
	assert.InDelta(t, -0.5, hitPoint.X, 1e-9)
	assert.InDelta(t, 0.0, hitPoint.Y, 1e-9)
	assert.InDelta(t, -1.0, hitNormal.X, 1e-9)
	assert.InDelta(t, 0.0, hitNormal.Y, 1e-9)
	assert.InDelta(t, 1.5/14.0, hitFraction, 1e-12)
}

func TestRayCastReportsEveryFixtureOnTheLine(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	makeQueryScene(&world)

	// Ignoring each hit keeps the cast going at full length. The off-axis
	// disk never reports.
	hits := 0
	world.RayCast(func(playrho.FixtureID, playrho.Vec2, playrho.Vec2, float64) float64 {
		hits++
		return -1
	}, playrho.MakeVec2(-2, 0), playrho.MakeVec2(12, 0))
	assert.Equal(t, 3, hits)

	// Continuing without clipping reports the same set.
	hits = 0
	world.RayCast(func(playrho.FixtureID, playrho.Vec2, playrho.Vec2, float64) float64 {
		hits++
		return 1
	}, playrho.MakeVec2(-2, 0), playrho.MakeVec2(12, 0))
	assert.Equal(t, 3, hits)

	// A zero return terminates on the first report.
	hits = 0
	world.RayCast(func(playrho.FixtureID, playrho.Vec2, playrho.Vec2, float64) float64 {
		hits++
		return 0
	}, playrho.MakeVec2(-2, 0), playrho.MakeVec2(12, 0))
	assert.Equal(t, 1, hits)
}

func TestRayCastVertical(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	fixtures := makeQueryScene(&world)

	var hitID playrho.FixtureID
	var hitPoint, hitNormal playrho.Vec2
	world.RayCast(func(id playrho.FixtureID, point, normal playrho.Vec2, fraction float64) float64 {
		hitID = id
		hitPoint = point
		hitNormal = normal
		return fraction
	}, playrho.MakeVec2(5, 3), playrho.MakeVec2(5, 7))

	assert.Equal(t, fixtures[3], hitID)
	assert.InDelta(t, 5.0, hitPoint.X, 1e-9)
	assert.InDelta(t, 4.5, hitPoint.Y, 1e-9)
	assert.InDelta(t, 0.0, hitNormal.X, 1e-9)
	assert.InDelta(t, -1.0, hitNormal.Y, 1e-9)
}

func TestBroadPhaseTreeDiagnostics(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	assert.Equal(t, 0, world.GetTreeHeight())
	assert.Equal(t, 0, world.GetTreeBalance())

	makeQueryScene(&world)

	assert.Equal(t, 4, world.GetProxyCount())
	assert.GreaterOrEqual(t, world.GetTreeHeight(), 2)
	assert.GreaterOrEqual(t, world.GetTreeBalance(), 0)
	assert.GreaterOrEqual(t, world.GetTreeQuality(), 1.0)
}
