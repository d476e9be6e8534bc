package playrho

import "math"

/// The entities of an isolated group of interacting bodies, identified by
/// their handles. Islands are rebuilt from the constraint graph on every
/// step: bodies connected through touching non-sensor contacts or through
/// joints wake and sleep as a unit and get solved as a unit. Static bodies
/// terminate the flood fill, so two stacks resting on the same ground are
/// two islands.
type Island struct {
	M_bodies   []BodyID
	M_contacts []ContactID
	M_joints   []JointID
}

func MakeIsland(bodyCapacity int, contactCapacity int, jointCapacity int) Island {
	return Island{
		M_bodies:   make([]BodyID, 0, bodyCapacity),
		M_contacts: make([]ContactID, 0, contactCapacity),
		M_joints:   make([]JointID, 0, jointCapacity),
	}
}

func (island *Island) Clear() {
	island.M_bodies = island.M_bodies[:0]
	island.M_contacts = island.M_contacts[:0]
	island.M_joints = island.M_joints[:0]
}

func (island *Island) AddBody(id BodyID) {
	island.M_bodies = append(island.M_bodies, id)
}

func (island *Island) AddContact(id ContactID) {
	island.M_contacts = append(island.M_contacts, id)
}

func (island *Island) AddJoint(id JointID) {
	island.M_joints = append(island.M_joints, id)
}

/// What solving a single island produced. The world folds these into the
/// step statistics of the phase that ran the solve.
type IslandStats struct {
	MinSeparation float64
	MaxIncImpulse float64
	BodiesSlept   int
	PositionIters int
	VelocityIters int
	Solved        bool
}

// Solves the given island over the full regular step.
//
// This is a sequential impulse solver: velocities get integrated from the
// body accelerations, constraints then get relaxed iteratively in velocity
// space with accumulated (and warm started) impulses, positions get
// integrated from the solved velocities, and remaining position error gets
// relaxed iteratively with pseudo impulses that do not affect the
// velocities. The pseudo impulse pass trades energy correctness for
// stacking stability.
//
// The constraints slice must span all of the world's body slots; only the
// entries of this island's bodies get written and read.
func (world *World) solveIsland(island *Island, step StepConf, constraints []BodyConstraint) IslandStats {
	stats := IslandStats{MinSeparation: MaxFloat}

	h := step.DeltaTime

	// Integrate velocities and apply damping. Initialize the solver state
	// for the island's bodies.
	for _, id := range island.M_bodies {
		body := world.bodyPtr(id)

		// Store positions for continuous collision.
		body.M_sweep.Pos0 = body.M_sweep.Pos1

		velocity := body.GetVelocity()

		if body.IsAccelerable() {
			// Integrate velocities.
			velocity.Linear.OperatorPlusInplace(Vec2MulScalar(h, body.M_linearAcceleration))
			velocity.Angular += h * body.M_angularAcceleration

			// Apply damping.
			// ODE: dv/dt + c * v = 0
			// Solution: v(t) = v0 * exp(-c * t)
			// Time step: v(t + dt) = v0 * exp(-c * (t + dt))
			//                      = v(t) * exp(-c * dt)
			// Pade approximation of exp(-c * dt):
			// v2 = v1 * 1 / (1 + c * dt)
			velocity.Linear.OperatorScalarMulInplace(1.0 / (1.0 + h*body.M_linearDamping))
			velocity.Angular *= 1.0 / (1.0 + h*body.M_angularDamping)
		}

		*At(constraints, id) = GetBodyConstraint(body)
		At(constraints, id).Velocity = velocity
	}

	solverConf := GetRegConstraintSolverConf(step)

	contacts := make([]*Contact, 0, len(island.M_contacts))
	for _, id := range island.M_contacts {
		contacts = append(contacts, world.contactPtr(id))
	}

	solverDef := ContactSolverDef{
		Step:     step,
		Contacts: contacts,
		Bodies:   constraints,
	}
	contactSolver := MakeContactSolver(&solverDef)
	contactSolver.InitializeVelocityConstraints()

	if step.DoWarmStart {
		contactSolver.WarmStart()
	}

	for _, id := range island.M_joints {
		world.jointPtr(id).InitVelocityConstraints(constraints, &step, solverConf)
	}

	// Solve velocity constraints.
	for i := 0; i < step.RegVelocityIterations; i++ {
		stats.VelocityIters = i + 1

		for _, id := range island.M_joints {
			world.jointPtr(id).SolveVelocityConstraints(constraints, &step)
		}

		incImpulse := contactSolver.SolveVelocityConstraints()
		stats.MaxIncImpulse = math.Max(stats.MaxIncImpulse, incImpulse)
	}

	// Store impulses for warm starting.
	contactSolver.StoreImpulses()

	// Integrate positions.
	for _, id := range island.M_bodies {
		bc := At(constraints, id)
		c := bc.Position.Linear
		a := bc.Position.Angular
		v := bc.Velocity.Linear
		w := bc.Velocity.Angular

		// Check for large velocities and clamp them.
		translation := Vec2MulScalar(h, v)
		if Vec2Dot(translation, translation) > step.MaxTranslation*step.MaxTranslation {
			ratio := step.MaxTranslation / translation.Length()
			v.OperatorScalarMulInplace(ratio)
		}

		rotation := h * w
		if rotation*rotation > step.MaxRotation*step.MaxRotation {
			ratio := step.MaxRotation / math.Abs(rotation)
			w *= ratio
		}

		// Integrate.
		c.OperatorPlusInplace(Vec2MulScalar(h, v))
		a += h * w

		bc.Position = MakePosition(c, a)
		bc.Velocity = MakeVelocity(v, w)
	}

	// Solve position constraints.
	positionSolved := false
	for i := 0; i < step.RegPositionIterations; i++ {
		stats.PositionIters = i + 1

		minSeparation := contactSolver.SolvePositionConstraints(solverConf)
		stats.MinSeparation = math.Min(stats.MinSeparation, minSeparation)
		contactsOkay := minSeparation >= step.RegMinSeparation

		jointsOkay := true
		for _, id := range island.M_joints {
			jointOkay := world.jointPtr(id).SolvePositionConstraints(constraints, solverConf)
			jointsOkay = jointsOkay && jointOkay
		}

		if contactsOkay && jointsOkay {
			// Exit early if the position errors are small.
			positionSolved = true
			break
		}
	}
	stats.Solved = positionSolved

	// Copy the solver state back to the bodies.
	for _, id := range island.M_bodies {
		body := world.bodyPtr(id)
		bc := At(constraints, id)
		body.M_sweep.Pos1 = bc.Position
		body.M_linearVelocity = bc.Velocity.Linear
		body.M_angularVelocity = bc.Velocity.Angular
		body.SynchronizeTransform()
	}

	world.report(island.M_contacts, contactSolver.M_velocityConstraints, stats.VelocityIters)

	// Update sleep timers and put islands at rest to sleep. A single fast
	// body keeps its whole island awake.
	minSleepTime := MaxFloat
	linTolSqr := step.LinearSleepTolerance * step.LinearSleepTolerance
	angTolSqr := step.AngularSleepTolerance * step.AngularSleepTolerance

	for _, id := range island.M_bodies {
		body := world.bodyPtr(id)
		if body.GetType() == BodyType.E_static {
			continue
		}

		if !body.IsSleepingAllowed() ||
			body.M_angularVelocity*body.M_angularVelocity > angTolSqr ||
			Vec2Dot(body.M_linearVelocity, body.M_linearVelocity) > linTolSqr {
			body.M_sleepTime = 0.0
			minSleepTime = 0.0
		} else {
			body.M_sleepTime += h
			minSleepTime = math.Min(minSleepTime, body.M_sleepTime)
		}
	}

	if minSleepTime >= step.MinStillTimeToSleep && positionSolved {
		for _, id := range island.M_bodies {
			body := world.bodyPtr(id)
			if body.IsSpeedable() && body.IsAwake() {
				stats.BodiesSlept++
			}
			body.SetAwake(false)
		}
	}

	return stats
}

// Solves the given island over a TOI sub-step.
//
// The sub-step solve runs the position pass first so that the two bodies
// advanced to their time of impact become the new safe initial state, then
// relaxes velocities from that state. Impulses are not warm started and
// not stored: sub-step impulses can be very large and would poison the
// next regular solve.
func (world *World) solveIslandTOI(island *Island, subStep StepConf, toiBodyA BodyID, toiBodyB BodyID, constraints []BodyConstraint) IslandStats {
	stats := IslandStats{MinSeparation: MaxFloat}

	// Initialize the solver state for the island's bodies.
	for _, id := range island.M_bodies {
		*At(constraints, id) = GetBodyConstraint(world.bodyPtr(id))
	}

	contacts := make([]*Contact, 0, len(island.M_contacts))
	for _, id := range island.M_contacts {
		contacts = append(contacts, world.contactPtr(id))
	}

	solverDef := ContactSolverDef{
		Step:     subStep,
		Contacts: contacts,
		Bodies:   constraints,
	}
	contactSolver := MakeContactSolver(&solverDef)

	// Solve TOI position constraints: resolve the overlap of the two
	// advanced bodies against everything in the island without letting
	// anything else get pushed around.
	solverConf := GetToiConstraintSolverConf(subStep)
	for i := 0; i < subStep.ToiPositionIterations; i++ {
		stats.PositionIters = i + 1

		minSeparation := contactSolver.SolveTOIPositionConstraints(toiBodyA, toiBodyB, solverConf)
		stats.MinSeparation = math.Min(stats.MinSeparation, minSeparation)

		if minSeparation >= subStep.ToiMinSeparation {
			stats.Solved = true
			break
		}
	}

	// Leap of faith to the new safe state: the resolved positions become
	// the sweep start for the remainder of the step.
	bodyA := world.bodyPtr(toiBodyA)
	bodyA.M_sweep.Pos0 = At(constraints, toiBodyA).Position
	bodyB := world.bodyPtr(toiBodyB)
	bodyB.M_sweep.Pos0 = At(constraints, toiBodyB).Position

	// No warm starting is needed for TOI events because warm starting
	// impulses were applied in the discrete solver.
	contactSolver.InitializeVelocityConstraints()

	// Solve velocity constraints.
	for i := 0; i < subStep.ToiVelocityIterations; i++ {
		stats.VelocityIters = i + 1

		incImpulse := contactSolver.SolveVelocityConstraints()
		stats.MaxIncImpulse = math.Max(stats.MaxIncImpulse, incImpulse)
	}

	// Don't store the TOI contact impulses for warm starting because they
	// can be quite large.

	h := subStep.DeltaTime

	// Integrate positions and write the state back.
	for _, id := range island.M_bodies {
		bc := At(constraints, id)
		c := bc.Position.Linear
		a := bc.Position.Angular
		v := bc.Velocity.Linear
		w := bc.Velocity.Angular

		// Check for large velocities and clamp them.
		translation := Vec2MulScalar(h, v)
		if Vec2Dot(translation, translation) > subStep.MaxTranslation*subStep.MaxTranslation {
			ratio := subStep.MaxTranslation / translation.Length()
			v.OperatorScalarMulInplace(ratio)
		}

		rotation := h * w
		if rotation*rotation > subStep.MaxRotation*subStep.MaxRotation {
			ratio := subStep.MaxRotation / math.Abs(rotation)
			w *= ratio
		}

		// Integrate.
		c.OperatorPlusInplace(Vec2MulScalar(h, v))
		a += h * w

		bc.Position = MakePosition(c, a)
		bc.Velocity = MakeVelocity(v, w)

		// Sync the body state.
		body := world.bodyPtr(id)
		body.M_sweep.Pos1 = bc.Position
		body.M_linearVelocity = v
		body.M_angularVelocity = w
		body.SynchronizeTransform()
	}

	world.report(island.M_contacts, contactSolver.M_velocityConstraints, stats.VelocityIters)

	return stats
}

// Reports the solved contacts to the post solve listener, if any.
func (world *World) report(contacts []ContactID, constraints []ContactVelocityConstraint, solved int) {
	if world.M_postSolveContactListener == nil {
		return
	}

	for i, id := range contacts {
		vc := &constraints[i]

		impulse := ContactImpulse{Count: vc.PointCount}
		for j := 0; j < vc.PointCount; j++ {
			impulse.NormalImpulses[j] = vc.Points[j].NormalImpulse
			impulse.TangentImpulses[j] = vc.Points[j].TangentImpulse
		}

		world.M_postSolveContactListener(id, &impulse, solved)
	}
}
