package playrho

import (
	"fmt"
)

/// A chain shape is a free form sequence of line segments.
/// The chain has two-sided collision, so you can use inside and outside
/// collision. Therefore, you may use any winding order.
/// Connectivity information is used to create smooth collisions.
/// WARNING: The chain will not collide properly if there are
/// self-intersections.
type ChainShapeConf struct {
	ShapeConf

	/// The vertices.
	Vertices []Vec2

	PrevVertex    Vec2
	NextVertex    Vec2
	HasPrevVertex bool
	HasNextVertex bool
}

func MakeChainShapeConf() ChainShapeConf {
	return ChainShapeConf{
		ShapeConf:     MakeShapeConf(),
		Vertices:      nil,
		HasPrevVertex: false,
		HasNextVertex: false,
	}
}

/// Creates a loop. This automatically adjusts connectivity and closes the
/// loop by appending the first vertex. The vertex count must be 3 or more.
func (conf ChainShapeConf) CreateLoop(vertices []Vec2) ChainShapeConf {
	count := len(vertices)
	assert(count >= 3)
	if count < 3 {
		return conf
	}

	for i := 1; i < count; i++ {
		// If this trips, the vertices are too close together.
		assert(Vec2DistanceSquared(vertices[i-1], vertices[i]) > DefaultLinearSlop*DefaultLinearSlop)
	}

	conf.Vertices = make([]Vec2, count+1)
	copy(conf.Vertices, vertices)
	conf.Vertices[count] = conf.Vertices[0]
	conf.PrevVertex = conf.Vertices[count-1]
	conf.NextVertex = conf.Vertices[1]
	conf.HasPrevVertex = true
	conf.HasNextVertex = true
	return conf
}

/// Creates an open-ended chain. The vertex count must be 2 or more.
func (conf ChainShapeConf) CreateChain(vertices []Vec2) ChainShapeConf {
	count := len(vertices)
	assert(count >= 2)
	for i := 1; i < count; i++ {
		// If this trips, the vertices are too close together.
		assert(Vec2DistanceSquared(vertices[i-1], vertices[i]) > DefaultLinearSlop*DefaultLinearSlop)
	}

	conf.Vertices = make([]Vec2, count)
	copy(conf.Vertices, vertices)

	conf.HasPrevVertex = false
	conf.HasNextVertex = false

	conf.PrevVertex.SetZero()
	conf.NextVertex.SetZero()
	return conf
}

/// Uses the given value as the vertex establishing connectivity to a
/// previous chain.
func (conf ChainShapeConf) UsePrevVertex(prevVertex Vec2) ChainShapeConf {
	conf.PrevVertex = prevVertex
	conf.HasPrevVertex = true
	return conf
}

/// Uses the given value as the vertex establishing connectivity to a
/// following chain.
func (conf ChainShapeConf) UseNextVertex(nextVertex Vec2) ChainShapeConf {
	conf.NextVertex = nextVertex
	conf.HasNextVertex = true
	return conf
}

func (conf ChainShapeConf) UseFriction(friction float64) ChainShapeConf {
	conf.Friction = friction
	return conf
}

func (conf ChainShapeConf) UseRestitution(restitution float64) ChainShapeConf {
	conf.Restitution = restitution
	return conf
}

///////////////////////////////////////////////////////////////////////////////

func (conf ChainShapeConf) GetType() uint8 {
	return Shape_Type.E_chain
}

func (conf ChainShapeConf) GetChildCount() int {
	// edge count = vertex count - 1
	return len(conf.Vertices) - 1
}

/// Gets the child edge at the given index, including the ghost vertices
/// taken from the chain's neighboring segments.
func (conf ChainShapeConf) GetChildEdge(index int) EdgeShapeConf {
	count := len(conf.Vertices)
	assert(0 <= index && index < count-1)

	edge := MakeEdgeShapeConf()
	edge.VertexRadius = conf.VertexRadius
	edge.Friction = conf.Friction
	edge.Restitution = conf.Restitution

	edge.Vertex1 = conf.Vertices[index+0]
	edge.Vertex2 = conf.Vertices[index+1]

	if index > 0 {
		edge.Vertex0 = conf.Vertices[index-1]
		edge.HasVertex0 = true
	} else {
		edge.Vertex0 = conf.PrevVertex
		edge.HasVertex0 = conf.HasPrevVertex
	}

	if index < count-2 {
		edge.Vertex3 = conf.Vertices[index+2]
		edge.HasVertex3 = true
	} else {
		edge.Vertex3 = conf.NextVertex
		edge.HasVertex3 = conf.HasNextVertex
	}

	return edge
}

func (conf ChainShapeConf) GetChild(index int) (DistanceProxy, error) {
	if index < 0 || index >= conf.GetChildCount() {
		return DistanceProxy{}, fmt.Errorf("no child %d in chain shape: %w", index, ErrInvalidChildIndex)
	}
	return DistanceProxy{
		M_vertices: []Vec2{conf.Vertices[index], conf.Vertices[index+1]},
		M_count:    2,
		M_radius:   conf.VertexRadius,
	}, nil
}

func (conf ChainShapeConf) TestPoint(xf Transform, p Vec2) bool {
	return false
}

func (conf ChainShapeConf) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	count := len(conf.Vertices)
	assert(childIndex < count)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == count {
		i2 = 0
	}

	edge := MakeEdgeShapeConf()
	edge.Vertex1 = conf.Vertices[i1]
	edge.Vertex2 = conf.Vertices[i2]

	return edge.RayCast(output, input, xf, 0)
}

func (conf ChainShapeConf) ComputeAABB(xf Transform, childIndex int) AABB {
	count := len(conf.Vertices)
	assert(childIndex < count)

	i1 := childIndex
	i2 := childIndex + 1
	if i2 == count {
		i2 = 0
	}

	v1 := TransformVec2Mul(xf, conf.Vertices[i1])
	v2 := TransformVec2Mul(xf, conf.Vertices[i2])

	return AABB{
		LowerBound: Vec2Min(v1, v2),
		UpperBound: Vec2Max(v1, v2),
	}
}

func (conf ChainShapeConf) GetMassData() MassData {
	return MassData{
		Mass:   0.0,
		Center: MakeVec2(0, 0),
		I:      0.0,
	}
}
