package playrho

import (
	"fmt"
)

/// A line segment (edge) shape. These can be connected in chains or loops
/// to other edge shapes. The connectivity information is used to ensure
/// correct contact normals.
type EdgeShapeConf struct {
	ShapeConf

	/// These are the edge vertices
	Vertex1, Vertex2 Vec2

	/// Optional adjacent vertices. These are used for smooth collision.
	Vertex0, Vertex3       Vec2
	HasVertex0, HasVertex3 bool
}

func MakeEdgeShapeConf() EdgeShapeConf {
	return EdgeShapeConf{
		ShapeConf:  MakeShapeConf(),
		Vertex0:    MakeVec2(0, 0),
		Vertex3:    MakeVec2(0, 0),
		HasVertex0: false,
		HasVertex3: false,
	}
}

/// Uses the given vertices as the segment's end points and drops any
/// previously set ghost vertices.
func (conf EdgeShapeConf) Set(v1, v2 Vec2) EdgeShapeConf {
	conf.Vertex1 = v1
	conf.Vertex2 = v2
	conf.HasVertex0 = false
	conf.HasVertex3 = false
	return conf
}

/// Uses the given value as the ghost vertex before vertex 1.
func (conf EdgeShapeConf) UseVertex0(v Vec2) EdgeShapeConf {
	conf.Vertex0 = v
	conf.HasVertex0 = true
	return conf
}

/// Uses the given value as the ghost vertex after vertex 2.
func (conf EdgeShapeConf) UseVertex3(v Vec2) EdgeShapeConf {
	conf.Vertex3 = v
	conf.HasVertex3 = true
	return conf
}

func (conf EdgeShapeConf) UseDensity(density float64) EdgeShapeConf {
	conf.Density = density
	return conf
}

func (conf EdgeShapeConf) UseFriction(friction float64) EdgeShapeConf {
	conf.Friction = friction
	return conf
}

func (conf EdgeShapeConf) UseRestitution(restitution float64) EdgeShapeConf {
	conf.Restitution = restitution
	return conf
}

///////////////////////////////////////////////////////////////////////////////

func (conf EdgeShapeConf) GetType() uint8 {
	return Shape_Type.E_edge
}

func (conf EdgeShapeConf) GetChildCount() int {
	return 1
}

func (conf EdgeShapeConf) GetChild(index int) (DistanceProxy, error) {
	if index != 0 {
		return DistanceProxy{}, fmt.Errorf("no child %d in edge shape: %w", index, ErrInvalidChildIndex)
	}
	return DistanceProxy{
		M_vertices: []Vec2{conf.Vertex1, conf.Vertex2},
		M_count:    2,
		M_radius:   conf.VertexRadius,
	}, nil
}

func (conf EdgeShapeConf) TestPoint(xf Transform, p Vec2) bool {
	return false
}

// p = p1 + t * d
// v = v1 + s * e
// p1 + t * d = v1 + s * e
// s * e - t * d = p1 - v1
func (conf EdgeShapeConf) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	// Put the ray into the edge's frame of reference.
	p1 := RotVec2MulT(xf.Q, Vec2Sub(input.P1, xf.P))
	p2 := RotVec2MulT(xf.Q, Vec2Sub(input.P2, xf.P))
	d := Vec2Sub(p2, p1)

	v1 := conf.Vertex1
	v2 := conf.Vertex2
	e := Vec2Sub(v2, v1)
	normal := MakeVec2(e.Y, -e.X)
	normal.Normalize()

	// q = p1 + t * d
	// dot(normal, q - v1) = 0
	// dot(normal, p1 - v1) + t * dot(normal, d) = 0
	numerator := Vec2Dot(normal, Vec2Sub(v1, p1))
	denominator := Vec2Dot(normal, d)

	if denominator == 0.0 {
		return false
	}

	t := numerator / denominator
	if t < 0.0 || input.MaxFraction < t {
		return false
	}

	q := Vec2Add(p1, Vec2MulScalar(t, d))

	// q = v1 + s * r
	// s = dot(q - v1, r) / dot(r, r)
	r := Vec2Sub(v2, v1)
	rr := Vec2Dot(r, r)
	if rr == 0.0 {
		return false
	}

	s := Vec2Dot(Vec2Sub(q, v1), r) / rr
	if s < 0.0 || 1.0 < s {
		return false
	}

	output.Fraction = t
	if numerator > 0.0 {
		output.Normal = RotVec2Mul(xf.Q, normal).OperatorNegate()
	} else {
		output.Normal = RotVec2Mul(xf.Q, normal)
	}

	return true
}

func (conf EdgeShapeConf) ComputeAABB(xf Transform, childIndex int) AABB {
	v1 := TransformVec2Mul(xf, conf.Vertex1)
	v2 := TransformVec2Mul(xf, conf.Vertex2)

	lower := Vec2Min(v1, v2)
	upper := Vec2Max(v1, v2)

	r := MakeVec2(conf.VertexRadius, conf.VertexRadius)
	return AABB{
		LowerBound: Vec2Sub(lower, r),
		UpperBound: Vec2Add(upper, r),
	}
}

func (conf EdgeShapeConf) GetMassData() MassData {
	return MassData{
		Mass:   0.0,
		Center: Vec2MulScalar(0.5, Vec2Add(conf.Vertex1, conf.Vertex2)),
		I:      0.0,
	}
}
