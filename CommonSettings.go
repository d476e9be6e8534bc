package playrho

import (
	"math"
)

const MaxFloat = math.MaxFloat64
const Pi = math.Pi

/// Machine epsilon for 64-bit floats: the smallest e such that 1 + e != 1.
const epsilon = 2.220446049250313e-16

// Collision

/// The maximum number of contact points between two convex shapes. Do
/// not change this value.
const MaxManifoldPoints = 2

/// The maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

/// This is used to fatten AABBs in the dynamic tree. This allows proxies
/// to move by a small amount without triggering a tree adjustment.
/// This is in meters.
const AabbExtension = 0.1

/// This is used to fatten AABBs in the dynamic tree. This is used to
/// predict the future position based on the current displacement.
/// This is a dimensionless multiplier.
const AabbMultiplier = 2.0

/// A small length used as a collision and constraint tolerance. Usually
/// it is chosen to be numerically significant, but visually insignificant.
const DefaultLinearSlop = 0.005

/// A small angle used as a collision and constraint tolerance. Usually
/// it is chosen to be numerically significant, but visually insignificant.
const DefaultAngularSlop = 2.0 / 180.0 * Pi

/// The radius of the polygon/edge shape skin. This should not be modified.
/// Making this smaller means polygons will have an insufficient buffer
/// for continuous collision. Making it larger may create artifacts for
/// vertex collision.
const DefaultPolygonRadius = 2.0 * DefaultLinearSlop

/// The minimum vertex radius any shape may have. Shapes smaller than this
/// produce degenerate mass data and distance results.
const DefaultMinVertexRadius = DefaultLinearSlop * 2.0

/// Default friction coefficient for new shapes.
const DefaultFriction = 0.2

/// The maximum vertex radius any shape may have.
const DefaultMaxVertexRadius = 255.0 * DefaultLinearSlop

/// Maximum number of sub-steps per contact in continuous physics simulation.
const DefaultMaxSubSteps = 8

/// Default maximum number of outer iterations the time of impact routine
/// may take before giving up.
const DefaultMaxToiIters = 20

/// Default maximum number of iterations the time of impact root finder
/// may take per outer iteration before giving up.
const DefaultMaxToiRootIters = 30

/// Default maximum number of iterations the distance routine may take
/// before giving up.
const DefaultMaxDistanceIters = 20

// Dynamics

/// Maximum number of contacts to be handled to solve a TOI impact.
const MaxTOIContacts = 32

/// A velocity threshold for elastic collisions. Any collision with a
/// relative linear velocity below this threshold will be treated as
/// inelastic.
const DefaultVelocityThreshold = 1.0

/// The maximum linear position correction used when solving constraints.
/// This helps to prevent overshoot.
const DefaultMaxLinearCorrection = 0.2

/// The maximum angular position correction used when solving constraints.
/// This helps to prevent overshoot.
const DefaultMaxAngularCorrection = 8.0 / 180.0 * Pi

/// The maximum linear translation of a body per step. This limit is very
/// large and is used to prevent numerical problems. You shouldn't need to
/// adjust this.
const DefaultMaxTranslation = 2.0

/// The maximum angular rotation of a body per step. This limit is very
/// large and is used to prevent numerical problems. You shouldn't need to
/// adjust this.
const DefaultMaxRotation = 0.5 * Pi

/// This scale factor controls how fast overlap is resolved during the
/// regular phase. Ideally this would be 1 so that overlap is removed in
/// one time step. However using values close to 1 often leads to overshoot.
const DefaultRegResolutionRate = 0.2

/// This scale factor controls how fast overlap is resolved during the
/// TOI phase.
const DefaultToiResolutionRate = 0.75

// Sleep

/// The time that a body must be still before it will go to sleep.
const DefaultMinStillTimeToSleep = 0.5

/// A body cannot sleep if its linear velocity is above this tolerance.
const DefaultLinearSleepTolerance = 0.01

/// A body cannot sleep if its angular velocity is above this tolerance.
const DefaultAngularSleepTolerance = 2.0 / 180.0 * Pi

// Physical constants

/// Newtonian constant of gravitation, in cubic meters per kilogram per
/// square second. From the 2014 CODATA recommended values.
const BigG = 6.67408e-11

/// Earthly gravitational acceleration, in meters per square second, as
/// the Y component of a body's linear acceleration.
const EarthlyGravity = -9.8

// Identifier ranges

/// Maximum number of bodies a world may hold at any one time.
const MaxBodies = 0xFFFE

/// Maximum number of fixtures a world may hold at any one time.
const MaxFixtures = 0xFFFE

/// Maximum number of joints a world may hold at any one time.
const MaxJoints = 0xFFFE

/// Maximum number of contacts a world may track at any one time.
const MaxContacts = 0xFFFE

func assert(a bool) {
	if !a {
		panic("assert")
	}
}
