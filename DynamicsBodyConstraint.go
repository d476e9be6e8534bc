package playrho

/// Constraint solver view of a body.
/// An ephemeral value: built from a body at the start of an island solve,
/// mutated by the velocity and position solvers, and written back to the
/// body when the island is done. Holding the solver state in a compact
/// slice keeps the hot loops cache friendly and leaves the body itself
/// untouched until the solution is final.
type BodyConstraint struct {
	Position Position
	Velocity Velocity

	/// Local center of mass.
	LocalCenter Vec2

	/// Inverse mass. Zero for non-accelerable bodies.
	InvMass float64

	/// Inverse rotational inertia about the center of mass.
	InvRotInertia float64
}

func MakeBodyConstraint(position Position, velocity Velocity, localCenter Vec2, invMass float64, invRotInertia float64) BodyConstraint {
	return BodyConstraint{
		Position:      position,
		Velocity:      velocity,
		LocalCenter:   localCenter,
		InvMass:       invMass,
		InvRotInertia: invRotInertia,
	}
}

/// Gets the body constraint for the identified body.
/// The slice must span the world's body slots; the identifier selects by
/// slot index.
func At(constraints []BodyConstraint, id BodyID) *BodyConstraint {
	return &constraints[idIndex(uint32(id))]
}
