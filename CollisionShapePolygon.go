package playrho

import (
	"fmt"
)

/// A convex polygon. It is assumed that the interior of the polygon is to
/// the left of each edge.
/// Polygons have a maximum number of vertices equal to MaxPolygonVertices.
/// In most cases you should not need many vertices for a convex polygon.
type PolygonShapeConf struct {
	ShapeConf

	Centroid Vec2
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
}

func MakePolygonShapeConf() PolygonShapeConf {
	return PolygonShapeConf{
		ShapeConf: MakeShapeConf(),
		Count:     0,
		Centroid:  MakeVec2(0, 0),
	}
}

func (conf PolygonShapeConf) UseDensity(density float64) PolygonShapeConf {
	conf.Density = density
	return conf
}

func (conf PolygonShapeConf) UseFriction(friction float64) PolygonShapeConf {
	conf.Friction = friction
	return conf
}

func (conf PolygonShapeConf) UseRestitution(restitution float64) PolygonShapeConf {
	conf.Restitution = restitution
	return conf
}

func (conf PolygonShapeConf) UseVertexRadius(radius float64) PolygonShapeConf {
	conf.VertexRadius = radius
	return conf
}

func (conf PolygonShapeConf) GetVertex(index int) Vec2 {
	assert(0 <= index && index < conf.Count)
	return conf.Vertices[index]
}

/// Builds an axis-aligned box with the given half-width and half-height,
/// centered on the local origin.
func (conf PolygonShapeConf) SetAsBox(hx, hy float64) PolygonShapeConf {
	conf.Count = 4
	conf.Vertices[0].Set(-hx, -hy)
	conf.Vertices[1].Set(hx, -hy)
	conf.Vertices[2].Set(hx, hy)
	conf.Vertices[3].Set(-hx, hy)
	conf.Normals[0].Set(0.0, -1.0)
	conf.Normals[1].Set(1.0, 0.0)
	conf.Normals[2].Set(0.0, 1.0)
	conf.Normals[3].Set(-1.0, 0.0)
	conf.Centroid.SetZero()
	return conf
}

/// Builds a box with the given half-width and half-height, offset by the
/// given center and rotated by the given angle in radians.
func (conf PolygonShapeConf) SetAsBoxFromCenterAndAngle(hx, hy float64, center Vec2, angle float64) PolygonShapeConf {
	conf = conf.SetAsBox(hx, hy)
	conf.Centroid = center

	xf := MakeTransform()
	xf.P = center
	xf.Q.Set(angle)

	// Transform vertices and normals.
	for i := 0; i < conf.Count; i++ {
		conf.Vertices[i] = TransformVec2Mul(xf, conf.Vertices[i])
		conf.Normals[i] = RotVec2Mul(xf.Q, conf.Normals[i])
	}

	return conf
}

/// Builds the convex hull of the given points. The count of points after
/// welding must be in [3, MaxPolygonVertices].
func (conf PolygonShapeConf) Set(vertices []Vec2) PolygonShapeConf {
	count := len(vertices)
	assert(3 <= count && count <= MaxPolygonVertices)
	if count < 3 {
		return conf.SetAsBox(1.0, 1.0)
	}

	n := MinInt(count, MaxPolygonVertices)

	// Perform welding and copy vertices into local buffer.
	ps := make([]Vec2, MaxPolygonVertices)
	tempCount := 0

	for i := 0; i < n; i++ {
		v := vertices[i]

		unique := true
		for j := 0; j < tempCount; j++ {
			if Vec2DistanceSquared(v, ps[j]) < ((0.5 * DefaultLinearSlop) * (0.5 * DefaultLinearSlop)) {
				unique = false
				break
			}
		}

		if unique {
			ps[tempCount] = v
			tempCount++
		}
	}

	n = tempCount
	if n < 3 {
		// Polygon is degenerate.
		assert(false)
		return conf.SetAsBox(1.0, 1.0)
	}

	// Create the convex hull using the Gift wrapping algorithm
	// http://en.wikipedia.org/wiki/Gift_wrapping_algorithm

	// Find the right most point on the hull
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	hull := make([]int, MaxPolygonVertices)
	m := 0
	ih := i0

	for {
		assert(m < MaxPolygonVertices)
		hull[m] = ih

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := Vec2Sub(ps[ie], ps[hull[m]])
			v := Vec2Sub(ps[j], ps[hull[m]])
			c := Vec2Cross(r, v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		m++
		ih = ie

		if ie == i0 {
			break
		}
	}

	if m < 3 {
		// Polygon is degenerate.
		assert(false)
		return conf.SetAsBox(1.0, 1.0)
	}

	conf.Count = m

	// Copy vertices.
	for i := 0; i < m; i++ {
		conf.Vertices[i] = ps[hull[i]]
	}

	// Compute normals. Ensure the edges have non-zero length.
	for i := 0; i < m; i++ {
		i1 := i
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}

		edge := Vec2Sub(conf.Vertices[i2], conf.Vertices[i1])
		assert(edge.LengthSquared() > epsilon*epsilon)
		conf.Normals[i] = Vec2CrossVectorScalar(edge, 1.0)
		conf.Normals[i].Normalize()
	}

	// Compute the polygon centroid.
	conf.Centroid = ComputeCentroid(conf.Vertices[:], m)

	return conf
}

func ComputeCentroid(vs []Vec2, count int) Vec2 {
	assert(count >= 3)

	c := MakeVec2(0, 0)
	area := 0.0

	// pRef is the reference point for forming triangles.
	// Its location doesn't change the result (except for rounding error).
	pRef := MakeVec2(0.0, 0.0)

	// This code would put the reference point inside the polygon.
	for i := 0; i < count; i++ {
		pRef.OperatorPlusInplace(vs[i])
	}
	pRef.OperatorScalarMulInplace(1.0 / float64(count))

	inv3 := 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		p3 := MakeVec2(0, 0)
		if i+1 < count {
			p3 = vs[i+1]
		} else {
			p3 = vs[0]
		}

		e1 := Vec2Sub(p2, p1)
		e2 := Vec2Sub(p3, p1)

		D := Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		c.OperatorPlusInplace(Vec2MulScalar(triangleArea*inv3, Vec2Add(Vec2Add(p1, p2), p3)))
	}

	// Centroid
	assert(area > epsilon)
	c.OperatorScalarMulInplace(1.0 / area)
	return c
}

///////////////////////////////////////////////////////////////////////////////

func (conf PolygonShapeConf) GetType() uint8 {
	return Shape_Type.E_polygon
}

func (conf PolygonShapeConf) GetChildCount() int {
	return 1
}

func (conf PolygonShapeConf) GetChild(index int) (DistanceProxy, error) {
	if index != 0 {
		return DistanceProxy{}, fmt.Errorf("no child %d in polygon shape: %w", index, ErrInvalidChildIndex)
	}
	return DistanceProxy{
		M_vertices: conf.Vertices[:conf.Count],
		M_count:    conf.Count,
		M_radius:   conf.VertexRadius,
	}, nil
}

func (conf PolygonShapeConf) TestPoint(xf Transform, p Vec2) bool {
	pLocal := RotVec2MulT(xf.Q, Vec2Sub(p, xf.P))

	for i := 0; i < conf.Count; i++ {
		dot := Vec2Dot(conf.Normals[i], Vec2Sub(pLocal, conf.Vertices[i]))
		if dot > 0.0 {
			return false
		}
	}

	return true
}

func (conf PolygonShapeConf) RayCast(output *RayCastOutput, input RayCastInput, xf Transform, childIndex int) bool {
	// Put the ray into the polygon's frame of reference.
	p1 := RotVec2MulT(xf.Q, Vec2Sub(input.P1, xf.P))
	p2 := RotVec2MulT(xf.Q, Vec2Sub(input.P2, xf.P))
	d := Vec2Sub(p2, p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < conf.Count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := Vec2Dot(conf.Normals[i], Vec2Sub(conf.Vertices[i], p1))
		denominator := Vec2Dot(conf.Normals[i], d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// Note: we want this predicate without division:
			// lower < numerator / denominator, where denominator < 0
			// Since denominator < 0, we have to flip the inequality:
			// lower < numerator / denominator <==> denominator * lower > numerator.
			if denominator < 0.0 && numerator < lower*denominator {
				// Increase lower.
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// Decrease upper.
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return false
		}
	}

	assert(0.0 <= lower && lower <= input.MaxFraction)

	if index >= 0 {
		output.Fraction = lower
		output.Normal = RotVec2Mul(xf.Q, conf.Normals[index])
		return true
	}

	return false
}

func (conf PolygonShapeConf) ComputeAABB(xf Transform, childIndex int) AABB {
	lower := TransformVec2Mul(xf, conf.Vertices[0])
	upper := lower

	for i := 1; i < conf.Count; i++ {
		v := TransformVec2Mul(xf, conf.Vertices[i])
		lower = Vec2Min(lower, v)
		upper = Vec2Max(upper, v)
	}

	r := MakeVec2(conf.VertexRadius, conf.VertexRadius)
	return AABB{
		LowerBound: Vec2Sub(lower, r),
		UpperBound: Vec2Add(upper, r),
	}
}

func (conf PolygonShapeConf) GetMassData() MassData {
	// Polygon mass, centroid, and inertia.
	// Let rho be the polygon density in mass per unit area.
	// Then:
	// mass = rho * int(dA)
	// centroid.x = (1/mass) * rho * int(x * dA)
	// centroid.y = (1/mass) * rho * int(y * dA)
	// I = rho * int((x*x + y*y) * dA)
	//
	// We can compute these integrals by summing all the integrals
	// for each triangle of the polygon. To evaluate the integral
	// for a single triangle, we make a change of variables to
	// the (u,v) coordinates of the triangle:
	// x = x0 + e1x * u + e2x * v
	// y = y0 + e1y * u + e2y * v
	// where 0 <= u && 0 <= v && u + v <= 1.
	//
	// We integrate u from [0,1-v] and then v from [0,1].
	// We also need to use the Jacobian of the transformation:
	// D = cross(e1, e2)
	//
	// Simplification: triangle centroid = (1/3) * (p1 + p2 + p3)

	assert(conf.Count >= 3)

	center := MakeVec2(0, 0)

	area := 0.0
	I := 0.0

	// s is the reference point for forming triangles.
	// Its location doesn't change the result (except for rounding error).
	s := MakeVec2(0.0, 0.0)

	// This code would put the reference point inside the polygon.
	for i := 0; i < conf.Count; i++ {
		s.OperatorPlusInplace(conf.Vertices[i])
	}

	s.OperatorScalarMulInplace(1.0 / float64(conf.Count))

	k_inv3 := 1.0 / 3.0

	for i := 0; i < conf.Count; i++ {
		// Triangle vertices.
		e1 := Vec2Sub(conf.Vertices[i], s)
		e2 := MakeVec2(0, 0)

		if i+1 < conf.Count {
			e2 = Vec2Sub(conf.Vertices[i+1], s)
		} else {
			e2 = Vec2Sub(conf.Vertices[0], s)
		}

		D := Vec2Cross(e1, e2)

		triangleArea := 0.5 * D
		area += triangleArea

		// Area weighted centroid
		center.OperatorPlusInplace(Vec2MulScalar(triangleArea*k_inv3, Vec2Add(e1, e2)))

		ex1 := e1.X
		ey1 := e1.Y
		ex2 := e2.X
		ey2 := e2.Y

		intx2 := ex1*ex1 + ex2*ex1 + ex2*ex2
		inty2 := ey1*ey1 + ey2*ey1 + ey2*ey2

		I += (0.25 * k_inv3 * D) * (intx2 + inty2)
	}

	massData := MakeMassData()

	// Total mass
	massData.Mass = conf.Density * area

	// Center of mass
	assert(area > epsilon)
	center.OperatorScalarMulInplace(1.0 / area)
	massData.Center = Vec2Add(center, s)

	// Inertia tensor relative to the local origin (point s).
	massData.I = conf.Density * I

	// Shift to center of mass then to original body origin.
	massData.I += massData.Mass * (Vec2Dot(massData.Center, massData.Center) - Vec2Dot(center, center))

	return massData
}

/// Checks the polygon's vertices for convexity in counter-clockwise order.
func (conf PolygonShapeConf) Validate() bool {
	for i := 0; i < conf.Count; i++ {
		i1 := i
		i2 := 0

		if i < conf.Count-1 {
			i2 = i1 + 1
		}

		p := conf.Vertices[i1]
		e := Vec2Sub(conf.Vertices[i2], p)

		for j := 0; j < conf.Count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			v := Vec2Sub(conf.Vertices[j], p)
			c := Vec2Cross(e, v)
			if c < 0.0 {
				return false
			}
		}
	}

	return true
}
