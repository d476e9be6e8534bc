package playrho

import (
	"math"
)

// Limit:
// C = norm(pB - pA) - L
// u = (pB - pA) / norm(pB - pA)
// Cdot = dot(u, vB + cross(wB, rB) - vA - cross(wA, rA))
// J = [-u -cross(rA, u) u cross(rB, u)]
// K = J * invM * JT
//   = invMassA + invIA * cross(rA, u)^2 + invMassB + invIB * cross(rB, u)^2

/// Rope joint configuration. A rope joint enforces a maximum distance
/// between two points on two bodies. It has no other effect.
/// @warning The maximum length must be larger than the linear slop or
/// the joint will have no effect.
/// @warning Changing the maximum length during the simulation gives
/// some non-physical behavior. Use a distance joint instead if you want
/// to dynamically control the length.
type RopeJointConf struct {
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

	/// The maximum length of the rope.
	MaxLength float64

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
	M_length       float64
	M_limitState   uint8
}

func MakeRopeJointConf(bodyA BodyID, bodyB BodyID) RopeJointConf {
	return RopeJointConf{
		BodyA:        bodyA,
		BodyB:        bodyB,
		LocalAnchorA: MakeVec2(-1.0, 0.0),
		LocalAnchorB: MakeVec2(1.0, 0.0),
		M_limitState: LimitState.E_inactiveLimit,
	}
}

func (joint RopeJointConf) UseCollideConnected(flag bool) RopeJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint RopeJointConf) UseLocalAnchorA(value Vec2) RopeJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint RopeJointConf) UseLocalAnchorB(value Vec2) RopeJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint RopeJointConf) UseMaxLength(value float64) RopeJointConf {
	joint.MaxLength = value
	return joint
}

func (joint RopeJointConf) GetType() uint8 {
	return JointType.E_ropeJoint
}

func (joint RopeJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint RopeJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint RopeJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint RopeJointConf) GetLinearReaction() Vec2 {
	return Vec2MulScalar(joint.M_impulse, joint.M_u)
}

func (joint RopeJointConf) GetAngularReaction() float64 {
	return 0.0
}

func (joint RopeJointConf) clone() JointConf {
	return &joint
}

func (joint *RopeJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *RopeJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	joint.M_length = joint.M_u.Length()

	C := joint.M_length - joint.MaxLength
	if C > 0.0 {
		joint.M_limitState = LimitState.E_atUpperLimit
	} else {
		joint.M_limitState = LimitState.E_inactiveLimit
	}

	if joint.M_length > conf.LinearSlop {
		joint.M_u.OperatorScalarMulInplace(1.0 / joint.M_length)
	} else {
		joint.M_u.SetZero()
		joint.M_mass = 0.0
		joint.M_impulse = 0.0
		return
	}

	// Compute effective mass.
	crA := Vec2Cross(joint.M_rA, joint.M_u)
	crB := Vec2Cross(joint.M_rB, joint.M_u)
	invMass := joint.M_invMassA + joint.M_invIA*crA*crA + joint.M_invMassB + joint.M_invIB*crB*crB

	if invMass != 0.0 {
		joint.M_mass = 1.0 / invMass
	} else {
		joint.M_mass = 0.0
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

func (joint *RopeJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	// Cdot = dot(u, v + cross(w, r))
	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.M_rA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB))
	C := joint.M_length - joint.MaxLength
	Cdot := Vec2Dot(joint.M_u, Vec2Sub(vpB, vpA))

	// Predictive constraint.
	if C < 0.0 {
		Cdot += step.GetInvTime() * C
	}

	impulse := -joint.M_mass * Cdot
	oldImpulse := joint.M_impulse
	joint.M_impulse = math.Min(0.0, joint.M_impulse+impulse)
	impulse = joint.M_impulse - oldImpulse

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

func (joint *RopeJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
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
	C := length - joint.MaxLength

	C = FloatClamp(C, 0.0, conf.MaxLinearCorrection)

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

	return length-joint.MaxLength < conf.LinearSlop
}
