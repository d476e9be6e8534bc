package playrho

import (
	"fmt"
	"math"
)

/// A disk: a circular geometry with a center location. Unlike the other
/// shape variants, a disk's extent comes entirely from its vertex radius.
type DiskShapeConf struct {
	ShapeConf

	/// Center of the disk in local coordinates.
	Location Vec2
}

func MakeDiskShapeConf() DiskShapeConf {
	conf := DiskShapeConf{
		ShapeConf: MakeShapeConf(),
		Location:  MakeVec2(0, 0),
	}
	conf.VertexRadius = DefaultMinVertexRadius
	return conf
}

/// Uses the given value as the radius.
func (conf DiskShapeConf) UseRadius(radius float64) DiskShapeConf {
	conf.VertexRadius = radius
	return conf
}

/// Uses the given value as the location.
func (conf DiskShapeConf) UseLocation(location Vec2) DiskShapeConf {
	conf.Location = location
	return conf
}

func (conf DiskShapeConf) UseDensity(density float64) DiskShapeConf {
	conf.Density = density
	return conf
}

func (conf DiskShapeConf) UseFriction(friction float64) DiskShapeConf {
	conf.Friction = friction
	return conf
}

func (conf DiskShapeConf) UseRestitution(restitution float64) DiskShapeConf {
	conf.Restitution = restitution
	return conf
}

///////////////////////////////////////////////////////////////////////////////

func (conf DiskShapeConf) GetType() uint8 {
	return Shape_Type.E_disk
}

func (conf DiskShapeConf) GetChildCount() int {
	return 1
}

func (conf DiskShapeConf) GetChild(index int) (DistanceProxy, error) {
	if index != 0 {
		return DistanceProxy{}, fmt.Errorf("no child %d in disk shape: %w", index, ErrInvalidChildIndex)
	}
	return DistanceProxy{
		M_vertices: []Vec2{conf.Location},
		M_count:    1,
		M_radius:   conf.VertexRadius,
	}, nil
}

func (conf DiskShapeConf) TestPoint(transform Transform, p Vec2) bool {
	center := Vec2Add(transform.P, RotVec2Mul(transform.Q, conf.Location))
	d := Vec2Sub(p, center)
	return Vec2Dot(d, d) <= conf.VertexRadius*conf.VertexRadius
}

// Collision Detection in Interactive 3D Environments by Gino van den Bergen
// From Section 3.1.2
// x = s + a * r
// norm(x) = radius
func (conf DiskShapeConf) RayCast(output *RayCastOutput, input RayCastInput, transform Transform, childIndex int) bool {
	position := Vec2Add(transform.P, RotVec2Mul(transform.Q, conf.Location))
	s := Vec2Sub(input.P1, position)
	b := Vec2Dot(s, s) - conf.VertexRadius*conf.VertexRadius

	// Solve quadratic equation.
	r := Vec2Sub(input.P2, input.P1)
	c := Vec2Dot(s, r)
	rr := Vec2Dot(r, r)
	sigma := c*c - rr*b

	// Check for negative discriminant and short segment.
	if sigma < 0.0 || rr < epsilon {
		return false
	}

	// Find the point of intersection of the line with the circle.
	a := -(c + math.Sqrt(sigma))

	// Is the intersection point on the segment?
	if 0.0 <= a && a <= input.MaxFraction*rr {
		a /= rr
		output.Fraction = a
		output.Normal = Vec2Add(s, Vec2MulScalar(a, r))
		output.Normal.Normalize()
		return true
	}

	return false
}

func (conf DiskShapeConf) ComputeAABB(transform Transform, childIndex int) AABB {
	p := Vec2Add(transform.P, RotVec2Mul(transform.Q, conf.Location))
	return AABB{
		LowerBound: MakeVec2(p.X-conf.VertexRadius, p.Y-conf.VertexRadius),
		UpperBound: MakeVec2(p.X+conf.VertexRadius, p.Y+conf.VertexRadius),
	}
}

func (conf DiskShapeConf) GetMassData() MassData {
	mass := conf.Density * Pi * conf.VertexRadius * conf.VertexRadius
	return MassData{
		Mass:   mass,
		Center: conf.Location,
		// inertia about the local origin
		I: mass * (0.5*conf.VertexRadius*conf.VertexRadius + Vec2Dot(conf.Location, conf.Location)),
	}
}
