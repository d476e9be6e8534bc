package playrho

/// This holds the mass data computed for a shape.
type MassData struct {
	/// The mass of the shape, usually in kilograms.
	Mass float64

	/// The position of the shape's centroid relative to the shape's origin.
	Center Vec2

	/// The rotational inertia of the shape about the local origin.
	I float64
}

func MakeMassData() MassData {
	return MassData{
		Mass:   0.0,
		Center: MakeVec2(0, 0),
		I:      0.0,
	}
}

func NewMassData() *MassData {
	res := MakeMassData()
	return &res
}

var Shape_Type = struct {
	E_disk      uint8
	E_edge      uint8
	E_polygon   uint8
	E_chain     uint8
	E_typeCount uint8
}{
	E_disk:      0,
	E_edge:      1,
	E_polygon:   2,
	E_chain:     3,
	E_typeCount: 4,
}

/// A shape is an immutable value describing geometry plus the material
/// properties collision responses depend on: vertex radius, density,
/// friction and restitution. Shapes carry no position or velocity; they
/// get bound to a body through a fixture and may be shared between
/// fixtures. Concrete variants are the *ShapeConf types.
type Shape interface {
	/// Get the type of this shape. You can use this to down cast to the
	/// concrete shape.
	GetType() uint8

	/// Get the number of child primitives.
	GetChildCount() int

	/// Gets the distance proxy of the identified child.
	/// Returns an error wrapping ErrInvalidChildIndex when the index does
	/// not identify a child of this shape.
	GetChild(index int) (DistanceProxy, error)

	/// Gets the vertex radius: the radius of the rounding that extends
	/// the shape's geometry outwards from its vertices.
	GetVertexRadius() float64

	/// Gets the density in kilograms per square meter.
	GetDensity() float64

	/// Gets the coefficient of friction.
	GetFriction() float64

	/// Gets the coefficient of restitution.
	GetRestitution() float64

	/// Compute the mass properties of this shape using its dimensions and
	/// density. The inertia tensor is computed about the local origin.
	GetMassData() MassData

	/// Test a point for containment in this shape. This only works for
	/// convex shapes.
	/// @param xf the shape world transform.
	/// @param p a point in world coordinates.
	TestPoint(xf Transform, p Vec2) bool

	/// Cast a ray against a child shape.
	/// @param output the ray-cast results.
	/// @param input the ray-cast input parameters.
	/// @param transform the transform to be applied to the shape.
	/// @param childIndex the child shape index
	RayCast(output *RayCastOutput, input RayCastInput, transform Transform, childIndex int) bool

	/// Given a transform, compute the associated axis aligned bounding box
	/// for a child shape.
	/// @param xf the world transform of the shape.
	/// @param childIndex the child shape
	ComputeAABB(xf Transform, childIndex int) AABB
}

/// Part properties common to every shape variant. Variants embed this and
/// provide their own fluent builders so chains keep the concrete type.
type ShapeConf struct {
	/// Vertex radius.
	/// This is the radius from the vertex that the shape's "skin" should
	/// extend outward by. While any zero or non-zero value may be used,
	/// a value of less than the world's minimum vertex radius produces
	/// fixture creation errors.
	VertexRadius float64

	/// Friction coefficient.
	/// A value of zero is frictionless, higher values rub harder. Usually
	/// in the range [0,1].
	Friction float64

	/// Restitution (elasticity) of the shape.
	Restitution float64

	/// Density of the shape in kilograms per square meter.
	Density float64
}

func MakeShapeConf() ShapeConf {
	return ShapeConf{
		VertexRadius: DefaultPolygonRadius,
		Friction:     DefaultFriction,
		Restitution:  0.0,
		Density:      0.0,
	}
}

func (conf ShapeConf) GetVertexRadius() float64 {
	return conf.VertexRadius
}

func (conf ShapeConf) GetDensity() float64 {
	return conf.Density
}

func (conf ShapeConf) GetFriction() float64 {
	return conf.Friction
}

func (conf ShapeConf) GetRestitution() float64 {
	return conf.Restitution
}
