package playrho

import (
	"fmt"
	"math"
)

// Pulley:
// length1 = norm(p1 - s1)
// length2 = norm(p2 - s2)
// C0 = (length1 + ratio * length2)_initial
// C = C0 - (length1 + ratio * length2)
// u1 = (p1 - s1) / norm(p1 - s1)
// u2 = (p2 - s2) / norm(p2 - s2)
// Cdot = -dot(u1, v1 + cross(w1, r1)) - ratio * dot(u2, v2 + cross(w2, r2))
// J = -[u1 cross(r1, u1) ratio * u2  ratio * cross(r2, u2)]
// K = J * invM * JT
//   = invMass1 + invI1 * cross(r1, u1)^2 + ratio^2 * (invMass2 + invI2 * cross(r2, u2)^2)

/// Pulley joint configuration. The pulley joint is connected to two
/// bodies and two fixed ground points. The pulley supports a ratio such
/// that: length1 + ratio * length2 <= constant.
/// Yes, the force transmitted is scaled by the ratio.
/// @warning The pulley joint can get a bit squirrelly by itself. They
/// often work better when combined with prismatic joints. You should
/// also cover the anchor points with static shapes to prevent one side
/// from going to zero length.
type PulleyJointConf struct {
	/// The first attached body.
	BodyA BodyID

	/// The second attached body.
	BodyB BodyID

	/// Set this flag to true if the attached bodies should collide.
	/// Defaults to true for pulley joints.
	CollideConnected bool

	/// The first ground anchor in world coordinates. This point never
	/// moves.
	GroundAnchorA Vec2

	/// The second ground anchor in world coordinates. This point never
	/// moves.
	GroundAnchorB Vec2

	/// The local anchor point relative to body A's origin.
	LocalAnchorA Vec2

	/// The local anchor point relative to body B's origin.
	LocalAnchorB Vec2

	/// The reference length for the segment attached to body A.
	LengthA float64

	/// The reference length for the segment attached to body B.
	LengthB float64

	/// The pulley ratio, used to simulate a block-and-tackle.
	Ratio float64

	/// The rest total: lengthA + ratio * lengthB as captured at
	/// creation. The constraint maintains this total.
	Constant float64

	// Accumulated impulse, persisted across steps for warm starting.
	M_impulse float64

	// Solver temp
	M_uA           Vec2
	M_uB           Vec2
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_mass         float64
}

func MakePulleyJointConf(bodyA BodyID, bodyB BodyID) PulleyJointConf {
	return PulleyJointConf{
		BodyA:            bodyA,
		BodyB:            bodyB,
		CollideConnected: true,
		GroundAnchorA:    MakeVec2(-1.0, 1.0),
		GroundAnchorB:    MakeVec2(1.0, 1.0),
		LocalAnchorA:     MakeVec2(-1.0, 0.0),
		LocalAnchorB:     MakeVec2(1.0, 0.0),
		Ratio:            1.0,
	}
}

func (joint PulleyJointConf) UseCollideConnected(flag bool) PulleyJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint PulleyJointConf) UseGroundAnchorA(value Vec2) PulleyJointConf {
	joint.GroundAnchorA = value
	return joint
}

func (joint PulleyJointConf) UseGroundAnchorB(value Vec2) PulleyJointConf {
	joint.GroundAnchorB = value
	return joint
}

func (joint PulleyJointConf) UseLocalAnchorA(value Vec2) PulleyJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint PulleyJointConf) UseLocalAnchorB(value Vec2) PulleyJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint PulleyJointConf) UseLengthA(value float64) PulleyJointConf {
	joint.LengthA = value
	return joint
}

func (joint PulleyJointConf) UseLengthB(value float64) PulleyJointConf {
	joint.LengthB = value
	return joint
}

func (joint PulleyJointConf) UseRatio(value float64) PulleyJointConf {
	assert(value != 0.0)
	joint.Ratio = value
	return joint
}

func (joint PulleyJointConf) UseConstant(value float64) PulleyJointConf {
	joint.Constant = value
	return joint
}

func (joint PulleyJointConf) GetType() uint8 {
	return JointType.E_pulleyJoint
}

func (joint PulleyJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint PulleyJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint PulleyJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint PulleyJointConf) GetLinearReaction() Vec2 {
	return Vec2MulScalar(joint.M_impulse, joint.M_uB)
}

func (joint PulleyJointConf) GetAngularReaction() float64 {
	return 0.0
}

func (joint PulleyJointConf) clone() JointConf {
	return &joint
}

func (joint *PulleyJointConf) shiftOrigin(newOrigin Vec2) bool {
	joint.GroundAnchorA.OperatorMinusInplace(newOrigin)
	joint.GroundAnchorB.OperatorMinusInplace(newOrigin)
	return true
}

func (joint *PulleyJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	// Get the pulley axes.
	joint.M_uA = Vec2Sub(Vec2Add(cA, joint.M_rA), joint.GroundAnchorA)
	joint.M_uB = Vec2Sub(Vec2Add(cB, joint.M_rB), joint.GroundAnchorB)

	lengthA := joint.M_uA.Length()
	lengthB := joint.M_uB.Length()

	if lengthA > 10.0*conf.LinearSlop {
		joint.M_uA.OperatorScalarMulInplace(1.0 / lengthA)
	} else {
		joint.M_uA.SetZero()
	}

	if lengthB > 10.0*conf.LinearSlop {
		joint.M_uB.OperatorScalarMulInplace(1.0 / lengthB)
	} else {
		joint.M_uB.SetZero()
	}

	// Compute effective mass.
	ruA := Vec2Cross(joint.M_rA, joint.M_uA)
	ruB := Vec2Cross(joint.M_rB, joint.M_uB)

	mA := joint.M_invMassA + joint.M_invIA*ruA*ruA
	mB := joint.M_invMassB + joint.M_invIB*ruB*ruB

	joint.M_mass = mA + joint.Ratio*joint.Ratio*mB

	if joint.M_mass > 0.0 {
		joint.M_mass = 1.0 / joint.M_mass
	}

	if step.DoWarmStart {
		// Scale impulses to support variable time steps.
		joint.M_impulse *= step.DtRatio

		// Warm starting.
		PA := Vec2MulScalar(-joint.M_impulse, joint.M_uA)
		PB := Vec2MulScalar(-joint.Ratio*joint.M_impulse, joint.M_uB)

		vA.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassA, PA))
		wA += joint.M_invIA * Vec2Cross(joint.M_rA, PA)
		vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, PB))
		wB += joint.M_invIB * Vec2Cross(joint.M_rB, PB)
	} else {
		joint.M_impulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *PulleyJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	vpA := Vec2Add(vA, Vec2CrossScalarVector(wA, joint.M_rA))
	vpB := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB))

	Cdot := -Vec2Dot(joint.M_uA, vpA) - joint.Ratio*Vec2Dot(joint.M_uB, vpB)
	impulse := -joint.M_mass * Cdot
	joint.M_impulse += impulse

	PA := Vec2MulScalar(-impulse, joint.M_uA)
	PB := Vec2MulScalar(-joint.Ratio*impulse, joint.M_uB)
	vA.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassA, PA))
	wA += joint.M_invIA * Vec2Cross(joint.M_rA, PA)
	vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, PB))
	wB += joint.M_invIB * Vec2Cross(joint.M_rB, PB)

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return impulse == 0.0
}

func (joint *PulleyJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
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

	// Get the pulley axes.
	uA := Vec2Sub(Vec2Add(cA, rA), joint.GroundAnchorA)
	uB := Vec2Sub(Vec2Add(cB, rB), joint.GroundAnchorB)

	lengthA := uA.Length()
	lengthB := uB.Length()

	if lengthA > 10.0*conf.LinearSlop {
		uA.OperatorScalarMulInplace(1.0 / lengthA)
	} else {
		uA.SetZero()
	}

	if lengthB > 10.0*conf.LinearSlop {
		uB.OperatorScalarMulInplace(1.0 / lengthB)
	} else {
		uB.SetZero()
	}

	// Compute effective mass.
	ruA := Vec2Cross(rA, uA)
	ruB := Vec2Cross(rB, uB)

	mA := joint.M_invMassA + joint.M_invIA*ruA*ruA
	mB := joint.M_invMassB + joint.M_invIB*ruB*ruB

	mass := mA + joint.Ratio*joint.Ratio*mB

	if mass > 0.0 {
		mass = 1.0 / mass
	}

	C := joint.Constant - lengthA - joint.Ratio*lengthB
	linearError := math.Abs(C)

	impulse := -mass * C

	PA := Vec2MulScalar(-impulse, uA)
	PB := Vec2MulScalar(-joint.Ratio*impulse, uB)

	cA.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassA, PA))
	aA += joint.M_invIA * Vec2Cross(rA, PA)
	cB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, PB))
	aB += joint.M_invIB * Vec2Cross(rB, PB)

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return linearError < conf.LinearSlop
}

/// Gets a pulley joint configuration hanging the identified bodies from
/// the given world ground anchors through the given world anchor points.
/// The idle rope lengths come from the current anchor placements and the
/// constraint constant is lengthA + ratio * lengthB.
func GetPulleyJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, groundA Vec2, groundB Vec2, anchorA Vec2, anchorB Vec2, ratio float64) (PulleyJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return PulleyJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return PulleyJointConf{}, err
	}
	if !(ratio > epsilon) {
		return PulleyJointConf{}, fmt.Errorf("pulley ratio %v too small: %w", ratio, ErrInvalidArgument)
	}
	conf := MakePulleyJointConf(bodyIDA, bodyIDB)
	conf.GroundAnchorA = groundA
	conf.GroundAnchorB = groundB
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchorA)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchorB)
	conf.LengthA = Vec2Sub(anchorA, groundA).Length()
	conf.LengthB = Vec2Sub(anchorB, groundB).Length()
	conf.Ratio = ratio
	conf.Constant = conf.LengthA + ratio*conf.LengthB
	return conf, nil
}
