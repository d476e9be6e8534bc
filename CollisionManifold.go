package playrho

import (
	"math"
)

const nullFeature uint8 = math.MaxUint8

var ContactFeature_Type = struct {
	E_vertex uint8
	E_face   uint8
}{
	E_vertex: 0,
	E_face:   1,
}

/// The features that intersect to form the contact point
/// This must be 4 bytes or less.
type ContactFeature struct {
	IndexA uint8 ///< Feature index on shapeA
	IndexB uint8 ///< Feature index on shapeB
	TypeA  uint8 ///< The feature type on shapeA
	TypeB  uint8 ///< The feature type on shapeB
}

func MakeContactFeature() ContactFeature {
	return ContactFeature{}
}

/// Used to quickly compare contact features for warm starting.
func (v ContactFeature) Key() uint32 {
	var key uint32 = 0
	key |= uint32(v.IndexA)
	key |= uint32(v.IndexB) << 8
	key |= uint32(v.TypeA) << 16
	key |= uint32(v.TypeB) << 24
	return key
}

func (v *ContactFeature) SetKey(key uint32) {
	(*v).IndexA = uint8(key & 0xFF)
	(*v).IndexB = byte(key >> 8 & 0xFF)
	(*v).TypeA = byte(key >> 16 & 0xFF)
	(*v).TypeB = byte(key >> 24 & 0xFF)
}

/// A manifold point is a contact point belonging to a contact
/// manifold. It holds details related to the geometry and dynamics
/// of the contact points.
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleB
/// -e_faceA: the local center of cirlceB or the clip point of polygonB
/// -e_faceB: the clip point of polygonA
/// This structure is stored across time steps, so we keep it small.
/// Note: the impulses are used for internal caching and may not
/// provide reliable contact forces, especially for high speed collisions.
type ManifoldPoint struct {
	LocalPoint     Vec2           ///< usage depends on manifold type
	NormalImpulse  float64        ///< the non-penetration impulse
	TangentImpulse float64        ///< the friction impulse
	Id             ContactFeature ///< uniquely identifies a contact point between two shapes
}

/// A manifold for two touching convex shapes.
/// Multiple types of contact are supported:
/// - clip point versus plane with radius
/// - point versus point with radius (circles)
/// The local point usage depends on the manifold type:
/// -e_circles: the local center of circleA
/// -e_faceA: the center of faceA
/// -e_faceB: the center of faceB
/// Similarly the local normal usage:
/// -e_circles: not used
/// -e_faceA: the normal on polygonA
/// -e_faceB: the normal on polygonB
/// We store contacts in this way so that position correction can
/// account for movement, which is critical for continuous physics.
/// All contact scenarios must be expressed in one of these types.
/// This structure is stored across time steps, so we keep it small.

var Manifold_Type = struct {
	E_circles uint8
	E_faceA   uint8
	E_faceB   uint8
}{
	E_circles: 0,
	E_faceA:   1,
	E_faceB:   2,
}

type Manifold struct {
	Points      [MaxManifoldPoints]ManifoldPoint ///< the points of contact
	LocalNormal Vec2                             ///< not used for Type::e_circles
	LocalPoint  Vec2                             ///< usage depends on manifold type
	Type        uint8                            // Manifold_Type
	PointCount  int                              ///< the number of manifold points
}

func NewManifold() *Manifold {
	return &Manifold{}
}

/// This is used to compute the current state of a contact manifold.
type WorldManifold struct {
	Normal      Vec2                         ///< world vector pointing from A to B
	Points      [MaxManifoldPoints]Vec2      ///< world contact point (point of intersection)
	Separations [MaxManifoldPoints]float64   ///< a negative value indicates overlap, in meters
}

func MakeWorldManifold() WorldManifold {
	return WorldManifold{}
}

/// Evaluate the manifold with supplied transforms. This assumes
/// modest motion from the original state. This does not change the
/// point count, impulses, etc. The radii must come from the shapes
/// that generated the manifold.
func (wm *WorldManifold) Initialize(manifold *Manifold, xfA Transform, radiusA float64, xfB Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case Manifold_Type.E_circles:
		wm.Normal.Set(1.0, 0.0)
		pointA := TransformVec2Mul(xfA, manifold.LocalPoint)
		pointB := TransformVec2Mul(xfB, manifold.Points[0].LocalPoint)
		if Vec2DistanceSquared(pointA, pointB) > epsilon*epsilon {
			wm.Normal = Vec2Sub(pointB, pointA)
			wm.Normal.Normalize()
		}

		cA := Vec2Add(pointA, Vec2MulScalar(radiusA, wm.Normal))
		cB := Vec2Sub(pointB, Vec2MulScalar(radiusB, wm.Normal))

		wm.Points[0] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
		wm.Separations[0] = Vec2Dot(Vec2Sub(cB, cA), wm.Normal)

	case Manifold_Type.E_faceA:
		wm.Normal = RotVec2Mul(xfA.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfA, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := TransformVec2Mul(xfB, manifold.Points[i].LocalPoint)
			cA := Vec2Add(
				clipPoint,
				Vec2MulScalar(
					radiusA-Vec2Dot(
						Vec2Sub(clipPoint, planePoint),
						wm.Normal,
					),
					wm.Normal,
				),
			)
			cB := Vec2Sub(clipPoint, Vec2MulScalar(radiusB, wm.Normal))
			wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
			wm.Separations[i] = Vec2Dot(
				Vec2Sub(cB, cA),
				wm.Normal,
			)
		}

	case Manifold_Type.E_faceB:
		wm.Normal = RotVec2Mul(xfB.Q, manifold.LocalNormal)
		planePoint := TransformVec2Mul(xfB, manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := TransformVec2Mul(xfA, manifold.Points[i].LocalPoint)
			cB := Vec2Add(clipPoint, Vec2MulScalar(
				radiusB-Vec2Dot(
					Vec2Sub(clipPoint, planePoint),
					wm.Normal,
				), wm.Normal,
			))
			cA := Vec2Sub(clipPoint, Vec2MulScalar(radiusA, wm.Normal))
			wm.Points[i] = Vec2MulScalar(0.5, Vec2Add(cA, cB))
			wm.Separations[i] = Vec2Dot(
				Vec2Sub(cA, cB),
				wm.Normal,
			)
		}

		// Ensure normal points from A to B.
		wm.Normal = wm.Normal.OperatorNegate()
	}
}

var PointState = struct {
	E_nullState    uint8 ///< point does not exist
	E_addState     uint8 ///< point was added in the update
	E_persistState uint8 ///< point persisted across the update
	E_removeState  uint8 ///< point was removed in the update
}{
	E_nullState:    0,
	E_addState:     1,
	E_persistState: 2,
	E_removeState:  3,
}

/// Compute the point states given two manifolds. The states pertain to
/// the transition from manifold1 to manifold2. So state1 is either persist
/// or remove while state2 is either add or persist.
func GetPointStates(state1 *[MaxManifoldPoints]uint8, state2 *[MaxManifoldPoints]uint8, manifold1 Manifold, manifold2 Manifold) {

	for i := 0; i < MaxManifoldPoints; i++ {
		state1[i] = PointState.E_nullState
		state2[i] = PointState.E_nullState
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		id := manifold1.Points[i].Id

		state1[i] = PointState.E_removeState

		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].Id.Key() == id.Key() {
				state1[i] = PointState.E_persistState
				break
			}
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		id := manifold2.Points[i].Id

		state2[i] = PointState.E_addState

		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].Id.Key() == id.Key() {
				state2[i] = PointState.E_persistState
				break
			}
		}
	}
}

/// Used for computing contact manifolds.
type ClipVertex struct {
	V  Vec2
	Id ContactFeature
}

// Sutherland-Hodgman clipping.
func ClipSegmentToLine(vOut []ClipVertex, vIn []ClipVertex, normal Vec2, offset float64, vertexIndexA int) int {

	// Start with no output points
	numOut := 0

	// Calculate the distance of end points to the line
	distance0 := Vec2Dot(normal, vIn[0].V) - offset
	distance1 := Vec2Dot(normal, vIn[1].V) - offset

	// If the points are behind the plane
	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}

	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// If the points are on different sides of the plane
	if distance0*distance1 < 0.0 {
		// Find intersection point of edge and plane
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = Vec2Add(
			vIn[0].V,
			Vec2MulScalar(interp, Vec2Sub(vIn[1].V, vIn[0].V)),
		)

		// VertexA is hitting edgeB.
		vOut[numOut].Id.IndexA = uint8(vertexIndexA)
		vOut[numOut].Id.IndexB = vIn[0].Id.IndexB
		vOut[numOut].Id.TypeA = ContactFeature_Type.E_vertex
		vOut[numOut].Id.TypeB = ContactFeature_Type.E_face
		numOut++
	}

	return numOut
}
