package playrho

import (
	"math"
)

/// Friction mixing law. The idea is to allow either shape to drive the friction to zero.
/// For example, anything slides on ice.
func MixFriction(friction1, friction2 float64) float64 {
	return math.Sqrt(friction1 * friction2)
}

/// Restitution mixing law. The idea is allow for anything to bounce off an inelastic surface.
/// For example, a superball bounces on anything.
func MixRestitution(restitution1, restitution2 float64) float64 {
	if restitution1 > restitution2 {
		return restitution1
	}

	return restitution2
}

var Contact_Flag = struct {
	// Used when crawling contact graph when forming islands.
	E_islandFlag uint32

	// Set when the shapes are touching.
	E_touchingFlag uint32

	// This contact can be disabled (by user)
	E_enabledFlag uint32

	// This contact needs filtering because a fixture filter was changed.
	E_filterFlag uint32

	// This contact has a valid TOI in m_toi
	E_toiFlag uint32

	// This contact needs its manifold updated.
	E_dirtyFlag uint32
}{
	E_islandFlag:   0x0001,
	E_touchingFlag: 0x0002,
	E_enabledFlag:  0x0004,
	E_filterFlag:   0x0008,
	E_toiFlag:      0x0010,
	E_dirtyFlag:    0x0020,
}

/// Ranks a shape type for the purpose of fixture ordering within a
/// contact. Shapes whose collision is face based (edges and chains) come
/// first, then polygons, then disks, so manifold computation only has to
/// handle each mixed pairing in a single order.
func collisionRank(shapeType uint8) int {
	switch shapeType {
	case Shape_Type.E_edge, Shape_Type.E_chain:
		return 0
	case Shape_Type.E_polygon:
		return 1
	}
	return 2
}

/// A contact manages the collision between the children of two fixtures.
/// A contact exists for each overlapping AABB in the broad-phase (except
/// if filtered), so a contact may exist that has no contact points.
/// Fixtures within a contact are ordered so that the lower collision
/// ranked shape is always fixture A.
type Contact struct {
	M_flags uint32

	M_fixtureA FixtureID
	M_fixtureB FixtureID

	// Body identifiers, cached from the fixtures at creation.
	M_bodyA BodyID
	M_bodyB BodyID

	M_indexA int
	M_indexB int

	// Vertex radii of the fixtures' shapes, cached from the fixtures at
	// creation. Shapes are immutable so these never go stale.
	M_radiusA float64
	M_radiusB float64

	M_manifold Manifold

	M_toiCount int
	M_toi      float64

	M_friction     float64
	M_restitution  float64
	M_tangentSpeed float64
}

/// Makes an enabled contact between the identified fixture children with
/// friction and restitution mixed from the fixtures' shapes. The caller is
/// responsible for having ordered the fixtures by collision rank.
func MakeContact(idA FixtureID, fixtureA *Fixture, indexA int, idB FixtureID, fixtureB *Fixture, indexB int) Contact {
	return Contact{
		M_flags: Contact_Flag.E_enabledFlag | Contact_Flag.E_dirtyFlag,

		M_fixtureA: idA,
		M_fixtureB: idB,

		M_bodyA: fixtureA.M_body,
		M_bodyB: fixtureB.M_body,

		M_indexA: indexA,
		M_indexB: indexB,

		M_radiusA: fixtureA.M_shape.GetVertexRadius(),
		M_radiusB: fixtureB.M_shape.GetVertexRadius(),

		M_toiCount: 0,

		M_friction:     MixFriction(fixtureA.GetFriction(), fixtureB.GetFriction()),
		M_restitution:  MixRestitution(fixtureA.GetRestitution(), fixtureB.GetRestitution()),
		M_tangentSpeed: 0.0,
	}
}

func (contact Contact) GetFixtureA() FixtureID {
	return contact.M_fixtureA
}

func (contact Contact) GetFixtureB() FixtureID {
	return contact.M_fixtureB
}

func (contact Contact) GetBodyA() BodyID {
	return contact.M_bodyA
}

func (contact Contact) GetBodyB() BodyID {
	return contact.M_bodyB
}

func (contact Contact) GetChildIndexA() int {
	return contact.M_indexA
}

func (contact Contact) GetChildIndexB() int {
	return contact.M_indexB
}

func (contact Contact) GetVertexRadiusA() float64 {
	return contact.M_radiusA
}

func (contact Contact) GetVertexRadiusB() float64 {
	return contact.M_radiusB
}

/// Get the contact manifold. Do not modify the manifold unless you
/// understand the internals of the solver.
func (contact *Contact) GetManifold() *Manifold {
	return &contact.M_manifold
}

func (contact Contact) GetToiCount() int {
	return contact.M_toiCount
}

/// Whether a time of impact has been computed and cached for the current
/// sweep positions of the contact's bodies.
func (contact Contact) HasValidToi() bool {
	return (contact.M_flags & Contact_Flag.E_toiFlag) == Contact_Flag.E_toiFlag
}

func (contact Contact) GetToi() float64 {
	assert(contact.HasValidToi())
	return contact.M_toi
}

func (contact *Contact) SetToi(toi float64) {
	assert(0.0 <= toi && toi <= 1.0)
	contact.M_toi = toi
	contact.M_flags |= Contact_Flag.E_toiFlag
}

func (contact *Contact) UnsetToi() {
	contact.M_flags &= ^Contact_Flag.E_toiFlag
}

func (contact Contact) GetFriction() float64 {
	return contact.M_friction
}

/// Override the default friction mixture. This value persists until set
/// or reset again.
func (contact *Contact) SetFriction(friction float64) {
	contact.M_friction = friction
}

func (contact Contact) GetRestitution() float64 {
	return contact.M_restitution
}

/// Override the default restitution mixture. This value persists until
/// set or reset again.
func (contact *Contact) SetRestitution(restitution float64) {
	contact.M_restitution = restitution
}

func (contact Contact) GetTangentSpeed() float64 {
	return contact.M_tangentSpeed
}

/// Set the desired tangent speed for a conveyor belt behavior, in meters
/// per second.
func (contact *Contact) SetTangentSpeed(speed float64) {
	contact.M_tangentSpeed = speed
}

/// Enable/disable this contact. The contact is only disabled for the
/// current time step (or sub-step in continuous collisions).
func (contact *Contact) SetEnabled(flag bool) {
	if flag {
		contact.M_flags |= Contact_Flag.E_enabledFlag
	} else {
		contact.M_flags &= ^Contact_Flag.E_enabledFlag
	}
}

func (contact Contact) IsEnabled() bool {
	return (contact.M_flags & Contact_Flag.E_enabledFlag) == Contact_Flag.E_enabledFlag
}

/// Is this contact touching?
func (contact Contact) IsTouching() bool {
	return (contact.M_flags & Contact_Flag.E_touchingFlag) == Contact_Flag.E_touchingFlag
}

/// Flag this contact for filtering. Filtering will occur the next time
/// step.
func (contact *Contact) FlagForFiltering() {
	contact.M_flags |= Contact_Flag.E_filterFlag
}

func (contact *Contact) UnflagForFiltering() {
	contact.M_flags &= ^Contact_Flag.E_filterFlag
}

func (contact Contact) NeedsFiltering() bool {
	return (contact.M_flags & Contact_Flag.E_filterFlag) == Contact_Flag.E_filterFlag
}

/// Flag this contact as needing a manifold update. Contacts get flagged
/// when created and whenever a body of theirs moved, so unflagged contacts
/// can skip manifold recomputation entirely.
func (contact *Contact) FlagForUpdating() {
	contact.M_flags |= Contact_Flag.E_dirtyFlag
}

func (contact *Contact) UnflagForUpdating() {
	contact.M_flags &= ^Contact_Flag.E_dirtyFlag
}

func (contact Contact) NeedsUpdating() bool {
	return (contact.M_flags & Contact_Flag.E_dirtyFlag) == Contact_Flag.E_dirtyFlag
}

func (contact Contact) IsIslanded() bool {
	return (contact.M_flags & Contact_Flag.E_islandFlag) == Contact_Flag.E_islandFlag
}

func (contact *Contact) SetIslanded() {
	contact.M_flags |= Contact_Flag.E_islandFlag
}

func (contact *Contact) UnsetIslanded() {
	contact.M_flags &= ^Contact_Flag.E_islandFlag
}

/// Computes the contact manifold for the identified shape children at the
/// given transforms. The shape of lower collision rank must come first.
/// Pairings with no manifold computation (edge against edge or chain)
/// produce an empty manifold.
func CollideShapes(manifold *Manifold, shapeA Shape, indexA int, xfA Transform, shapeB Shape, indexB int, xfB Transform) {
	switch a := shapeA.(type) {
	case DiskShapeConf:
		switch b := shapeB.(type) {
		case DiskShapeConf:
			CollideDisks(manifold, &a, xfA, &b, xfB)
		default:
			manifold.PointCount = 0
		}
	case PolygonShapeConf:
		switch b := shapeB.(type) {
		case PolygonShapeConf:
			CollidePolygons(manifold, &a, xfA, &b, xfB)
		case DiskShapeConf:
			CollidePolygonAndDisk(manifold, &a, xfA, &b, xfB)
		default:
			manifold.PointCount = 0
		}
	case EdgeShapeConf:
		switch b := shapeB.(type) {
		case DiskShapeConf:
			CollideEdgeAndDisk(manifold, &a, xfA, &b, xfB)
		case PolygonShapeConf:
			CollideEdgeAndPolygon(manifold, &a, xfA, &b, xfB)
		default:
			manifold.PointCount = 0
		}
	case ChainShapeConf:
		edge := a.GetChildEdge(indexA)
		switch b := shapeB.(type) {
		case DiskShapeConf:
			CollideEdgeAndDisk(manifold, &edge, xfA, &b, xfB)
		case PolygonShapeConf:
			CollideEdgeAndPolygon(manifold, &edge, xfA, &b, xfB)
		default:
			manifold.PointCount = 0
		}
	default:
		manifold.PointCount = 0
	}
}

/// Updates the contact manifold and touching status and clears the update
/// flag. Impulses of manifold points matching points of the old manifold
/// carry over so the solver can warm start. Sensor contacts get a boolean
/// overlap test and keep an empty manifold.
/// Note: do not assume the fixture AABBs are overlapping or are valid.
/// Returns the old manifold plus the prior and current touching state so
/// the caller can notify listeners and wake the bodies on transitions.
func (contact *Contact) Update(shapeA Shape, xfA Transform, shapeB Shape, xfB Transform, sensor bool) (Manifold, bool, bool) {
	oldManifold := contact.M_manifold

	// Re-enable this contact.
	contact.M_flags |= Contact_Flag.E_enabledFlag

	touching := false
	wasTouching := contact.IsTouching()

	if sensor {
		touching = TestOverlapShapes(shapeA, contact.M_indexA, shapeB, contact.M_indexB, xfA, xfB)

		// Sensors don't generate manifolds.
		contact.M_manifold.PointCount = 0
	} else {
		CollideShapes(&contact.M_manifold, shapeA, contact.M_indexA, xfA, shapeB, contact.M_indexB, xfB)
		touching = contact.M_manifold.PointCount > 0

		// Match old contact ids to new contact ids and copy the
		// stored impulses to warm start the solver.
		for i := 0; i < contact.M_manifold.PointCount; i++ {
			mp2 := &contact.M_manifold.Points[i]
			mp2.NormalImpulse = 0.0
			mp2.TangentImpulse = 0.0
			id2 := mp2.Id

			for j := 0; j < oldManifold.PointCount; j++ {
				mp1 := &oldManifold.Points[j]

				if mp1.Id.Key() == id2.Key() {
					mp2.NormalImpulse = mp1.NormalImpulse
					mp2.TangentImpulse = mp1.TangentImpulse
					break
				}
			}
		}
	}

	if touching {
		contact.M_flags |= Contact_Flag.E_touchingFlag
	} else {
		contact.M_flags &= ^Contact_Flag.E_touchingFlag
	}

	contact.UnflagForUpdating()

	return oldManifold, wasTouching, touching
}
