package playrho_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestDiskShape(t *testing.T) {
	conf := playrho.MakeDiskShapeConf().
		UseRadius(0.5).
		UseDensity(2).
		UseLocation(playrho.MakeVec2(1, 0))

	assert.Equal(t, playrho.Shape_Type.E_disk, conf.GetType())
	assert.Equal(t, 1, conf.GetChildCount())

	child, err := conf.GetChild(0)
	require.NoError(t, err)
	assert.Equal(t, 1, child.GetVertexCount())
	assert.Equal(t, playrho.MakeVec2(1, 0), child.GetVertex(0))
	assert.Equal(t, 0.5, child.M_radius)

	_, err = conf.GetChild(1)
	assert.ErrorIs(t, err, playrho.ErrInvalidChildIndex)

	massData := conf.GetMassData()
	mass := 2 * math.Pi * 0.5 * 0.5
	assert.Equal(t, mass, massData.Mass)
	assert.Equal(t, playrho.MakeVec2(1, 0), massData.Center)
	assert.InDelta(t, mass*(0.5*0.5*0.5+1.0), massData.I, 1e-12)

	aabb := conf.ComputeAABB(playrho.MakeTransform(), 0)
	assert.Equal(t, playrho.MakeVec2(0.5, -0.5), aabb.LowerBound)
	assert.Equal(t, playrho.MakeVec2(1.5, 0.5), aabb.UpperBound)

	assert.True(t, conf.TestPoint(playrho.MakeTransform(), playrho.MakeVec2(1.4, 0)))
	assert.False(t, conf.TestPoint(playrho.MakeTransform(), playrho.MakeVec2(1.6, 0)))
}

func TestDiskShapeRayCast(t *testing.T) {
	conf := playrho.MakeDiskShapeConf().UseRadius(0.5).UseLocation(playrho.MakeVec2(1, 0))

	input := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-2, 0),
		P2:          playrho.MakeVec2(2, 0),
		MaxFraction: 1,
	}
	var output playrho.RayCastOutput
	require.True(t, conf.RayCast(&output, input, playrho.MakeTransform(), 0))
	assert.Equal(t, 0.625, output.Fraction)
	assert.Equal(t, playrho.MakeVec2(-1, 0), output.Normal)

	// A parallel ray half a unit above grazes past.
	miss := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-2, 1),
		P2:          playrho.MakeVec2(2, 1),
		MaxFraction: 1,
	}
	assert.False(t, conf.RayCast(&output, miss, playrho.MakeTransform(), 0))

	// A ray stopping short of the disk misses too.
	short := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-2, 0),
		P2:          playrho.MakeVec2(2, 0),
		MaxFraction: 0.5,
	}
	assert.False(t, conf.RayCast(&output, short, playrho.MakeTransform(), 0))
}

func TestPolygonShapeBox(t *testing.T) {
	conf := playrho.MakePolygonShapeConf().SetAsBox(2, 1).UseDensity(1)

	assert.Equal(t, playrho.Shape_Type.E_polygon, conf.GetType())
	assert.Equal(t, 1, conf.GetChildCount())
	assert.True(t, conf.Validate())

	assert.Equal(t, 4, conf.Count)
	assert.Equal(t, playrho.MakeVec2(-2, -1), conf.GetVertex(0))
	assert.Equal(t, playrho.MakeVec2(2, -1), conf.GetVertex(1))
	assert.Equal(t, playrho.MakeVec2(2, 1), conf.GetVertex(2))
	assert.Equal(t, playrho.MakeVec2(-2, 1), conf.GetVertex(3))
	assert.Equal(t, playrho.MakeVec2(0, -1), conf.Normals[0])
	assert.Equal(t, playrho.MakeVec2(1, 0), conf.Normals[1])
	assert.Equal(t, playrho.MakeVec2(0, 1), conf.Normals[2])
	assert.Equal(t, playrho.MakeVec2(-1, 0), conf.Normals[3])
	assert.Equal(t, playrho.MakeVec2(0, 0), conf.Centroid)

	child, err := conf.GetChild(0)
	require.NoError(t, err)
	assert.Equal(t, 4, child.GetVertexCount())
	_, err = conf.GetChild(1)
	assert.ErrorIs(t, err, playrho.ErrInvalidChildIndex)

	massData := conf.GetMassData()
	assert.InDelta(t, 8.0, massData.Mass, 1e-12)
	assert.InDelta(t, 0.0, massData.Center.X, 1e-12)
	assert.InDelta(t, 0.0, massData.Center.Y, 1e-12)
	assert.InDelta(t, 8.0*(16.0+4.0)/12.0, massData.I, 1e-9)

	aabb := conf.ComputeAABB(playrho.MakeTransform(), 0)
	assert.Equal(t, playrho.MakeVec2(-2-playrho.DefaultPolygonRadius, -1-playrho.DefaultPolygonRadius), aabb.LowerBound)
	assert.Equal(t, playrho.MakeVec2(2+playrho.DefaultPolygonRadius, 1+playrho.DefaultPolygonRadius), aabb.UpperBound)
}

func TestPolygonShapeRayCast(t *testing.T) {
	conf := playrho.MakePolygonShapeConf().SetAsBox(2, 1)

	input := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-5, 0),
		P2:          playrho.MakeVec2(5, 0),
		MaxFraction: 1,
	}
	var output playrho.RayCastOutput
	require.True(t, conf.RayCast(&output, input, playrho.MakeTransform(), 0))
	assert.Equal(t, 0.3, output.Fraction)
	assert.Equal(t, playrho.MakeVec2(-1, 0), output.Normal)

	// Starting inside yields no hit.
	inside := playrho.RayCastInput{
		P1:          playrho.MakeVec2(0, 0),
		P2:          playrho.MakeVec2(5, 0),
		MaxFraction: 1,
	}
	assert.False(t, conf.RayCast(&output, inside, playrho.MakeTransform(), 0))

	miss := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-5, 3),
		P2:          playrho.MakeVec2(5, 3),
		MaxFraction: 1,
	}
	assert.False(t, conf.RayCast(&output, miss, playrho.MakeTransform(), 0))
}

func TestPolygonShapeFromHull(t *testing.T) {
	// A square given in a scrambled order with a duplicate vertex comes
	// back out as the welded convex hull.
	points := []playrho.Vec2{
		playrho.MakeVec2(1, 1),
		playrho.MakeVec2(-1, -1),
		playrho.MakeVec2(1, -1),
		playrho.MakeVec2(1, -1),
		playrho.MakeVec2(-1, 1),
	}
	conf := playrho.MakePolygonShapeConf().Set(points)

	assert.Equal(t, 4, conf.Count)
	assert.True(t, conf.Validate())
	assert.Equal(t, playrho.MakeVec2(0, 0), conf.Centroid)

	offset := playrho.MakePolygonShapeConf().SetAsBoxFromCenterAndAngle(1, 1, playrho.MakeVec2(3, 0), 0)
	assert.Equal(t, playrho.MakeVec2(3, 0), offset.Centroid)
	assert.Equal(t, playrho.MakeVec2(2, -1), offset.GetVertex(0))
	assert.Equal(t, playrho.MakeVec2(4, 1), offset.GetVertex(2))
}

func TestEdgeShape(t *testing.T) {
	conf := playrho.MakeEdgeShapeConf().
		UseVertex0(playrho.MakeVec2(-1, 0)).
		Set(playrho.MakeVec2(0, 0), playrho.MakeVec2(2, 0))

	assert.Equal(t, playrho.Shape_Type.E_edge, conf.GetType())
	assert.Equal(t, 1, conf.GetChildCount())
	// Set drops the ghost vertices.
	assert.False(t, conf.HasVertex0)
	assert.False(t, conf.HasVertex3)

	conf = conf.UseVertex0(playrho.MakeVec2(-1, 0)).UseVertex3(playrho.MakeVec2(3, 0))
	assert.True(t, conf.HasVertex0)
	assert.True(t, conf.HasVertex3)

	child, err := conf.GetChild(0)
	require.NoError(t, err)
	assert.Equal(t, 2, child.GetVertexCount())
	assert.Equal(t, playrho.MakeVec2(0, 0), child.GetVertex(0))
	assert.Equal(t, playrho.MakeVec2(2, 0), child.GetVertex(1))
	_, err = conf.GetChild(1)
	assert.ErrorIs(t, err, playrho.ErrInvalidChildIndex)

	assert.False(t, conf.TestPoint(playrho.MakeTransform(), playrho.MakeVec2(1, 0)))

	massData := conf.GetMassData()
	assert.Zero(t, massData.Mass)
	assert.Equal(t, playrho.MakeVec2(1, 0), massData.Center)
	assert.Zero(t, massData.I)

	aabb := conf.ComputeAABB(playrho.MakeTransform(), 0)
	assert.Equal(t, playrho.MakeVec2(-conf.VertexRadius, -conf.VertexRadius), aabb.LowerBound)
	assert.Equal(t, playrho.MakeVec2(2+conf.VertexRadius, conf.VertexRadius), aabb.UpperBound)
}

func TestEdgeShapeRayCast(t *testing.T) {
	conf := playrho.MakeEdgeShapeConf().Set(playrho.MakeVec2(0, 0), playrho.MakeVec2(2, 0))

	input := playrho.RayCastInput{
		P1:          playrho.MakeVec2(1, 1),
		P2:          playrho.MakeVec2(1, -1),
		MaxFraction: 1,
	}
	var output playrho.RayCastOutput
	require.True(t, conf.RayCast(&output, input, playrho.MakeTransform(), 0))
	assert.Equal(t, 0.5, output.Fraction)
	assert.Equal(t, playrho.MakeVec2(0, 1), output.Normal)

	// Crossing the segment's line beyond its end does not count.
	past := playrho.RayCastInput{
		P1:          playrho.MakeVec2(3, 1),
		P2:          playrho.MakeVec2(3, -1),
		MaxFraction: 1,
	}
	assert.False(t, conf.RayCast(&output, past, playrho.MakeTransform(), 0))

	parallel := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-1, 1),
		P2:          playrho.MakeVec2(3, 1),
		MaxFraction: 1,
	}
	assert.False(t, conf.RayCast(&output, parallel, playrho.MakeTransform(), 0))
}

func TestChainShape(t *testing.T) {
	vertices := []playrho.Vec2{
		playrho.MakeVec2(0, 0),
		playrho.MakeVec2(1, 0),
		playrho.MakeVec2(1, 1),
		playrho.MakeVec2(0, 1),
	}

	chain := playrho.MakeChainShapeConf().CreateChain(vertices)
	assert.Equal(t, playrho.Shape_Type.E_chain, chain.GetType())
	assert.Equal(t, 3, chain.GetChildCount())
	assert.False(t, chain.HasPrevVertex)
	assert.False(t, chain.HasNextVertex)

	child, err := chain.GetChild(1)
	require.NoError(t, err)
	assert.Equal(t, 2, child.GetVertexCount())
	assert.Equal(t, playrho.MakeVec2(1, 0), child.GetVertex(0))
	assert.Equal(t, playrho.MakeVec2(1, 1), child.GetVertex(1))

	_, err = chain.GetChild(3)
	assert.ErrorIs(t, err, playrho.ErrInvalidChildIndex)
	_, err = chain.GetChild(-1)
	assert.ErrorIs(t, err, playrho.ErrInvalidChildIndex)

	// Interior edges carry their neighbors as ghost vertices.
	middle := chain.GetChildEdge(1)
	assert.Equal(t, playrho.MakeVec2(1, 0), middle.Vertex1)
	assert.Equal(t, playrho.MakeVec2(1, 1), middle.Vertex2)
	assert.True(t, middle.HasVertex0)
	assert.Equal(t, playrho.MakeVec2(0, 0), middle.Vertex0)
	assert.True(t, middle.HasVertex3)
	assert.Equal(t, playrho.MakeVec2(0, 1), middle.Vertex3)

	first := chain.GetChildEdge(0)
	assert.False(t, first.HasVertex0)
	last := chain.GetChildEdge(2)
	assert.False(t, last.HasVertex3)

	massData := chain.GetMassData()
	assert.Zero(t, massData.Mass)
}

func TestChainShapeLoop(t *testing.T) {
	vertices := []playrho.Vec2{
		playrho.MakeVec2(0, 0),
		playrho.MakeVec2(2, 0),
		playrho.MakeVec2(2, 2),
		playrho.MakeVec2(0, 2),
	}

	loop := playrho.MakeChainShapeConf().CreateLoop(vertices)
	assert.Equal(t, 4, loop.GetChildCount())
	assert.True(t, loop.HasPrevVertex)
	assert.True(t, loop.HasNextVertex)
	assert.Equal(t, playrho.MakeVec2(0, 2), loop.PrevVertex)
	assert.Equal(t, playrho.MakeVec2(2, 0), loop.NextVertex)

	// The loop wraps: its first edge sees the last vertex as its ghost.
	first := loop.GetChildEdge(0)
	assert.True(t, first.HasVertex0)
	assert.Equal(t, playrho.MakeVec2(0, 2), first.Vertex0)

	// One broad-phase proxy per edge when attached to a body.
	world := playrho.MakeWorld(playrho.MakeWorldConf())
	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	fixtureID, err := world.CreateFixture(ground, loop, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	fixture, err := world.GetFixture(fixtureID)
	require.NoError(t, err)
	assert.Equal(t, 4, fixture.GetProxyCount())
}

func TestAABBOperations(t *testing.T) {
	box := playrho.AABB{
		LowerBound: playrho.MakeVec2(0, 0),
		UpperBound: playrho.MakeVec2(2, 2),
	}

	assert.Equal(t, playrho.MakeVec2(1, 1), box.GetCenter())
	assert.Equal(t, playrho.MakeVec2(1, 1), box.GetExtents())
	assert.Equal(t, 8.0, box.GetPerimeter())
	assert.True(t, box.IsValid())

	other := playrho.AABB{
		LowerBound: playrho.MakeVec2(1, 1),
		UpperBound: playrho.MakeVec2(3, 3),
	}
	assert.False(t, box.Contains(other))

	combined := box.Clone()
	combined.CombineInPlace(other)
	assert.Equal(t, playrho.MakeVec2(0, 0), combined.LowerBound)
	assert.Equal(t, playrho.MakeVec2(3, 3), combined.UpperBound)
	assert.True(t, combined.Contains(box))
	assert.True(t, combined.Contains(other))

	assert.True(t, playrho.TestOverlapBoundingBoxes(box, other))
	apart := playrho.AABB{
		LowerBound: playrho.MakeVec2(5, 5),
		UpperBound: playrho.MakeVec2(6, 6),
	}
	assert.False(t, playrho.TestOverlapBoundingBoxes(box, apart))

	input := playrho.RayCastInput{
		P1:          playrho.MakeVec2(-1, 1),
		P2:          playrho.MakeVec2(3, 1),
		MaxFraction: 1,
	}
	var output playrho.RayCastOutput
	require.True(t, box.RayCast(&output, input))
	assert.Equal(t, 0.25, output.Fraction)
	assert.Equal(t, playrho.MakeVec2(-1, 0), output.Normal)
}

func TestOverlapShapes(t *testing.T) {
	disk := playrho.MakeDiskShapeConf().UseRadius(0.5)

	near := playrho.MakeTransform()
	near.P = playrho.MakeVec2(0.9, 0)
	assert.True(t, playrho.TestOverlapShapes(disk, 0, disk, 0, playrho.MakeTransform(), near))

	far := playrho.MakeTransform()
	far.P = playrho.MakeVec2(1.1, 0)
	assert.False(t, playrho.TestOverlapShapes(disk, 0, disk, 0, playrho.MakeTransform(), far))
}

func TestDistanceProxySupport(t *testing.T) {
	box := playrho.MakePolygonShapeConf().SetAsBox(1, 1)
	proxy, err := box.GetChild(0)
	require.NoError(t, err)

	assert.Equal(t, 2, proxy.GetSupport(playrho.MakeVec2(1, 1)))
	assert.Equal(t, playrho.MakeVec2(1, 1), proxy.GetSupportVertex(playrho.MakeVec2(1, 1)))
	assert.Equal(t, 0, proxy.GetSupport(playrho.MakeVec2(-1, -1)))

	apart := playrho.MakeTransform()
	apart.P = playrho.MakeVec2(5, 0)
	output := playrho.Distance(playrho.NewSimplexCache(), playrho.DistanceInput{
		ProxyA:     proxy,
		ProxyB:     proxy,
		TransformA: playrho.MakeTransform(),
		TransformB: apart,
		UseRadii:   false,
	})
	assert.InDelta(t, 3.0, output.Distance, 1e-9)
}
