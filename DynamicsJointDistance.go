package playrho

import (
	"math"
)

// 1-D constrained system
// m (v2 - v1) = lambda
// v2 + (beta/h) * x1 + gamma * lambda = 0, gamma has units of inverse mass.
// x2 = x1 + h * v2

// 1-D mass-damper-spring system
// m (v2 - v1) + h * d * v2 + h * k *

// C = norm(p2 - p1) - L
// u = (p2 - p1) / norm(p2 - p1)
// Cdot = dot(u, v2 + cross(w2, r2) - v1 - cross(w1, r1))
// J = [-u -cross(r1, u) u cross(r2, u)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u)^2 + invMass2 + invI2 * cross(r2, u)^2

/// Distance joint configuration. A distance joint constrains two points
/// on two bodies to remain at a fixed distance from each other. You can
/// view this as a massless, rigid rod. The configuration uses local
/// anchor points and the non-zero length of the joint, so the initial
/// configuration can violate the constraint slightly.
/// @warning Do not use a zero or short length.
type DistanceJointConf struct {
	/// The first attached body.
	BodyA BodyID

	/// The second attached body.
	BodyB BodyID

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool

	/// The local anchor point relative to body A's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to body B's origin.
	LocalAnchorB Vec2

	/// The natural length between the anchor points.
	Length float64

	/// The mass-spring-damper frequency in hertz. A value of 0
	/// disables softness.
	Frequency float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64

	// Accumulated impulse, persisted across steps for warm starting.
	M_impulse float64

	// Solver temp
	M_u            Vec2
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_mass         float64
	M_gamma        float64
	M_bias         float64
}

func MakeDistanceJointConf(bodyA BodyID, bodyB BodyID) DistanceJointConf {
	return DistanceJointConf{
		BodyA:  bodyA,
		BodyB:  bodyB,
		Length: 1.0,
	}
}

func (joint DistanceJointConf) UseCollideConnected(flag bool) DistanceJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint DistanceJointConf) UseLocalAnchorA(value Vec2) DistanceJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint DistanceJointConf) UseLocalAnchorB(value Vec2) DistanceJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint DistanceJointConf) UseLength(value float64) DistanceJointConf {
	joint.Length = value
	return joint
}

func (joint DistanceJointConf) UseFrequency(value float64) DistanceJointConf {
	joint.Frequency = value
	return joint
}

func (joint DistanceJointConf) UseDampingRatio(value float64) DistanceJointConf {
	joint.DampingRatio = value
	return joint
}

func (joint DistanceJointConf) GetType() uint8 {
	return JointType.E_distanceJoint
}

func (joint DistanceJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint DistanceJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint DistanceJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint DistanceJointConf) GetLinearReaction() Vec2 {
	return Vec2MulScalar(joint.M_impulse, joint.M_u)
}

func (joint DistanceJointConf) GetAngularReaction() float64 {
	return 0.0
}

func (joint DistanceJointConf) clone() JointConf {
	return &joint
}

func (joint *DistanceJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *DistanceJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	joint.M_localCenterA = bcA.LocalCenter
	joint.M_localCenterB = bcB.LocalCenter
	joint.M_invMassA = bcA.InvMass
	joint.M_invMassB = bcB.InvMass
	joint.M_invIA = bcA.InvRotInertia
	joint.M_invIB = bcB.InvRotInertia

	cA := bcA.Position.Linear
	aA := bcA.Position.Angular
	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular

	cB := bcB.Position.Linear
	aB := bcB.Position.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	joint.M_rA = RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	joint.M_rB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))
	joint.M_u = Vec2Sub(Vec2Sub(Vec2Add(cB, joint.M_rB), cA), joint.M_rA)

	// Handle singularity.
	length := joint.M_u.Length()
	if length > conf.LinearSlop {
		joint.M_u.OperatorScalarMulInplace(1.0 / length)
	} else {
		joint.M_u.Set(0.0, 0.0)
	}

	crAu := Vec2Cross(joint.M_rA, joint.M_u)
	crBu := Vec2Cross(joint.M_rB, joint.M_u)
	invMass := joint.M_invMassA + joint.M_invIA*crAu*crAu + joint.M_invMassB + joint.M_invIB*crBu*crBu

	// Compute the effective mass matrix.
	if invMass != 0.0 {
		joint.M_mass = 1.0 / invMass
	} else {
		joint.M_mass = 0
	}

	if joint.Frequency > 0.0 {
		C := length - joint.Length

		// Frequency
		omega := 2.0 * Pi * joint.Frequency

		// Damping coefficient
		d := 2.0 * joint.M_mass * joint.DampingRatio * omega

		// Spring stiffness
		k := joint.M_mass * omega * omega

		// magic formulas
		h := step.DeltaTime
		joint.M_gamma = h * (d + h*k)
		if joint.M_gamma != 0.0 {
			joint.M_gamma = 1.0 / joint.M_gamma
		} else {
			joint.M_gamma = 0.0
		}
		joint.M_bias = C * h * k * joint.M_gamma

		invMass += joint.M_gamma
		if invMass != 0.0 {
			joint.M_mass = 1.0 / invMass
		} else {
			joint.M_mass = 0.0
		}
	} else {
		joint.M_gamma = 0.0
		joint.M_bias = 0.0
	}

	if step.DoWarmStart {
		// Scale the impulse to support a variable time step.
		joint.M_impulse *= step.DtRatio

		P := Vec2MulScalar(joint.M_impulse, joint.M_u)
		vA.OperatorMinusInplace(Vec2MulScalar(joint.M_invMassA, P))
		wA -= joint.M_invIA * Vec2Cross(joint.M_rA, P)
		vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, P))
		wB += joint.M_invIB * Vec2Cross(joint.M_rB, P)
	} else {
		joint.M_impulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *DistanceJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	// Cdot = dot(u, v + cross(w, r))
	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.M_rA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB))
	Cdot := Vec2Dot(joint.M_u, Vec2Sub(vpB, vpA))

	impulse := -joint.M_mass * (Cdot + joint.M_bias + joint.M_gamma*joint.M_impulse)
	joint.M_impulse += impulse

	P := Vec2MulScalar(impulse, joint.M_u)
	vA.OperatorMinusInplace(Vec2MulScalar(joint.M_invMassA, P))
	wA -= joint.M_invIA * Vec2Cross(joint.M_rA, P)
	vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, P))
	wB += joint.M_invIB * Vec2Cross(joint.M_rB, P)

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return impulse == 0.0
}

func (joint *DistanceJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	if joint.Frequency > 0.0 {
		// There is no position correction for soft distance constraints.
		return true
	}

	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	cA := bcA.Position.Linear
	aA := bcA.Position.Angular
	cB := bcB.Position.Linear
	aB := bcB.Position.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))
	u := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	length := u.Normalize()
	C := length - joint.Length
	C = FloatClamp(C, -conf.MaxLinearCorrection, conf.MaxLinearCorrection)

	impulse := -joint.M_mass * C
	P := Vec2MulScalar(impulse, u)

	cA.OperatorMinusInplace(Vec2MulScalar(joint.M_invMassA, P))
	aA -= joint.M_invIA * Vec2Cross(rA, P)
	cB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, P))
	aB += joint.M_invIB * Vec2Cross(rB, P)

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return math.Abs(C) < conf.LinearSlop
}

/// Gets a distance joint configuration anchored at the given world points,
/// with its length taken from their current distance apart.
func GetDistanceJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchorA Vec2, anchorB Vec2) (DistanceJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return DistanceJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return DistanceJointConf{}, err
	}
	conf := MakeDistanceJointConf(bodyIDA, bodyIDB)
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchorA)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchorB)
	conf.Length = Vec2Sub(anchorB, anchorA).Length()
	return conf, nil
}
