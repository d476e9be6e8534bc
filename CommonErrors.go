package playrho

import (
	"errors"
)

// Sentinel errors returned by world and joint operations. Callers should
// match these with errors.Is since returned errors may wrap them with
// call-site context.
var (
	/// Returned by operations that cannot run during a step.
	ErrWorldLocked = errors.New("world is locked")

	/// Returned when a caller-supplied value is outside the supported range.
	ErrInvalidArgument = errors.New("invalid argument")

	/// Returned when creating a body would exceed MaxBodies.
	ErrMaxBodies = errors.New("operation would exceed maximum number of bodies")

	/// Returned when creating a fixture would exceed MaxFixtures.
	ErrMaxFixtures = errors.New("operation would exceed maximum number of fixtures")

	/// Returned when creating a joint would exceed MaxJoints.
	ErrMaxJoints = errors.New("operation would exceed maximum number of joints")

	/// Returned when tracking a contact would exceed MaxContacts.
	ErrMaxContacts = errors.New("operation would exceed maximum number of contacts")

	/// Returned when a body identifier does not refer to a live body.
	ErrInvalidBodyID = errors.New("invalid body identifier")

	/// Returned when a fixture identifier does not refer to a live fixture.
	ErrInvalidFixtureID = errors.New("invalid fixture identifier")

	/// Returned when a joint identifier does not refer to a live joint.
	ErrInvalidJointID = errors.New("invalid joint identifier")

	/// Returned when a contact identifier does not refer to a live contact.
	ErrInvalidContactID = errors.New("invalid contact identifier")

	/// Returned when a child index does not identify a child of the shape.
	ErrInvalidChildIndex = errors.New("invalid child index")

	/// Returned by accessors and setters that the value's type takes no
	/// part in, like asking a distance joint for its motor speed.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	/// Returned when an operation names an entity destroyed earlier.
	ErrWasDestroyed = errors.New("was destroyed")
)
