package playrho

/// Contact impulses for reporting. Impulses are used instead of forces
/// because sub-step forces may approach infinity for rigid body collisions.
/// These match up one-to-one with the manifold points.
type ContactImpulse struct {
	NormalImpulses  [MaxManifoldPoints]float64
	TangentImpulses [MaxManifoldPoints]float64
	Count           int
}

/// Listener type for a contact that starts or stops touching.
/// Called during Step processing with the world locked, so the identified
/// contact and the step's other entities can be inspected but not
/// structurally changed.
type ContactListener func(id ContactID)

/// Listener type for inspecting a touching contact before it gets solved.
/// Receives the manifold the contact had before its latest update, which
/// allows detecting changes in the contact points. Setting the contact
/// disabled from within this listener excludes it from the solver until
/// its next update.
type ManifoldContactListener func(id ContactID, oldManifold Manifold)

/// Listener type for inspecting a contact after its island got solved.
/// Receives the impulses that the solver accumulated for the contact's
/// manifold points and the number of velocity iterations the island used.
type ImpulsesContactListener func(id ContactID, impulses *ContactImpulse, solved int)

/// Listener type for fixtures that get destroyed implicitly, like when
/// their body gets destroyed or the world gets cleared. Not called for
/// fixtures destroyed directly by identifier.
type FixtureListener func(id FixtureID)

/// Listener type for joints that get destroyed implicitly, like when one
/// of their bodies gets destroyed or the world gets cleared. Not called
/// for joints destroyed directly by identifier.
type JointListener func(id JointID)

/// Callback type for AABB queries. Called for each fixture whose
/// fattened broad-phase box overlaps the queried region.
/// Return true to continue the query, false to terminate it.
type QueryCallback func(id FixtureID) bool

/// Callback type for world ray casts. Called for each fixture that the
/// ray hits, in no particular order, with the hit point, the surface
/// normal at the hit point, and the fraction of the ray at the hit.
/// The return value controls how the cast proceeds:
/// return -1 to ignore this hit and continue,
/// return 0 to terminate the cast,
/// return the fraction to clip the ray to this hit point,
/// return 1 to continue without clipping.
type RayCastCallback func(id FixtureID, point Vec2, normal Vec2, fraction float64) float64
