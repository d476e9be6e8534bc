package playrho

import (
	"fmt"
)

// Gear Joint:
// C0 = (coordinate1 + ratio * coordinate2)_initial
// C = (coordinate1 + ratio * coordinate2) - C0 = 0
// J = [J1 ratio * J2]
// K = J * invM * JT
//   = J1 * invM1 * J1T + ratio * ratio * J2 * invM2 * J2T
//
// Revolute:
// coordinate = rotation
// Cdot = angularVelocity
// J = [0 0 1]
// K = J * invM * JT = invI
//
// Prismatic:
// coordinate = dot(p - pg, ug)
// Cdot = dot(v + cross(w, r), ug)
// J = [ug cross(r, ug)]
// K = J * invM * JT = invMass + invI * cross(r, ug)^2

/// Gear joint configuration. A gear joint is used to connect two
/// joints together. Either joint can be a revolute or prismatic
/// joint. You specify a gear ratio to bind the motions together:
/// coordinate1 + ratio * coordinate2 = constant.
/// The ratio can be negative or positive. If one joint is a revolute
/// joint and the other joint is a prismatic joint, then the ratio
/// will have units of length or units of 1/length.
/// The configuration captures the geometry of the two supporting
/// joints at creation time. Use GetGearJointConf to build one from a
/// pair of existing joints.
/// @warning Destroy the gear joint if either supporting joint is
/// destroyed.
type GearJointConf struct {
	/// The second body of the first supporting joint.
	BodyA BodyID

	/// The second body of the second supporting joint.
	BodyB BodyID

	/// The first body of the first supporting joint. Body A is
	/// connected to body C.
	BodyC BodyID

	/// The first body of the second supporting joint. Body B is
	/// connected to body D.
	BodyD BodyID

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool

	/// The joint type of the first supporting joint: revolute or
	/// prismatic.
	TypeAC uint8

	/// The joint type of the second supporting joint: revolute or
	/// prismatic.
	TypeBD uint8

	/// The local anchor point on body A, from the first supporting
	/// joint.
	LocalAnchorA Vec2

	/// The local anchor point on body B, from the second supporting
	/// joint.
	LocalAnchorB Vec2

	/// The local anchor point on body C, from the first supporting
	/// joint.
	LocalAnchorC Vec2

	/// The local anchor point on body D, from the second supporting
	/// joint.
	LocalAnchorD Vec2

	/// The translation axis on body C when the first supporting joint
	/// is prismatic.
	LocalAxisC Vec2

	/// The translation axis on body D when the second supporting
	/// joint is prismatic.
	LocalAxisD Vec2

	/// The reference angle of the first supporting joint when it is
	/// revolute.
	ReferenceAngleA float64

	/// The reference angle of the second supporting joint when it is
	/// revolute.
	ReferenceAngleB float64

	/// The gear ratio.
	Ratio float64

	/// The gear total: coordinate1 + ratio * coordinate2 as captured
	/// at creation. The constraint maintains this total.
	Constant float64

	// Accumulated impulse, persisted across steps for warm starting.
	M_impulse float64

	// Solver temp
	M_lcA, M_lcB, M_lcC, M_lcD Vec2
	M_mA, M_mB, M_mC, M_mD     float64
	M_iA, M_iB, M_iC, M_iD     float64
	M_JvAC, M_JvBD             Vec2
	M_JwA, M_JwB, M_JwC, M_JwD float64
	M_mass                     float64
}

func MakeGearJointConf(bodyA BodyID, bodyB BodyID, bodyC BodyID, bodyD BodyID) GearJointConf {
	return GearJointConf{
		BodyA:  bodyA,
		BodyB:  bodyB,
		BodyC:  bodyC,
		BodyD:  bodyD,
		TypeAC: JointType.E_revoluteJoint,
		TypeBD: JointType.E_revoluteJoint,
		Ratio:  1.0,
	}
}

func (joint GearJointConf) UseCollideConnected(flag bool) GearJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint GearJointConf) UseRatio(value float64) GearJointConf {
	assert(IsValidFloat(value))
	joint.Ratio = value
	return joint
}

func (joint GearJointConf) UseConstant(value float64) GearJointConf {
	joint.Constant = value
	return joint
}

func (joint GearJointConf) GetType() uint8 {
	return JointType.E_gearJoint
}

func (joint GearJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint GearJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint GearJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint GearJointConf) GetLinearReaction() Vec2 {
	return Vec2MulScalar(joint.M_impulse, joint.M_JvAC)
}

func (joint GearJointConf) GetAngularReaction() float64 {
	return joint.M_impulse * joint.M_JwA
}

func (joint GearJointConf) clone() JointConf {
	return &joint
}

func (joint *GearJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *GearJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)
	bcC := At(bodies, joint.BodyC)
	bcD := At(bodies, joint.BodyD)

	joint.M_lcA = bcA.LocalCenter
	joint.M_lcB = bcB.LocalCenter
	joint.M_lcC = bcC.LocalCenter
	joint.M_lcD = bcD.LocalCenter
	joint.M_mA = bcA.InvMass
	joint.M_mB = bcB.InvMass
	joint.M_mC = bcC.InvMass
	joint.M_mD = bcD.InvMass
	joint.M_iA = bcA.InvRotInertia
	joint.M_iB = bcB.InvRotInertia
	joint.M_iC = bcC.InvRotInertia
	joint.M_iD = bcD.InvRotInertia

	aA := bcA.Position.Angular
	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular

	aB := bcB.Position.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	aC := bcC.Position.Angular
	vC := bcC.Velocity.Linear
	wC := bcC.Velocity.Angular

	aD := bcD.Position.Angular
	vD := bcD.Velocity.Linear
	wD := bcD.Velocity.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)
	qC := MakeRotFromAngle(aC)
	qD := MakeRotFromAngle(aD)

	joint.M_mass = 0.0

	if joint.TypeAC == JointType.E_revoluteJoint {
		joint.M_JvAC.SetZero()
		joint.M_JwA = 1.0
		joint.M_JwC = 1.0
		joint.M_mass += joint.M_iA + joint.M_iC
	} else {
		u := RotVec2Mul(qC, joint.LocalAxisC)
		rC := RotVec2Mul(qC, Vec2Sub(joint.LocalAnchorC, joint.M_lcC))
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_lcA))
		joint.M_JvAC = u
		joint.M_JwC = Vec2Cross(rC, u)
		joint.M_JwA = Vec2Cross(rA, u)
		joint.M_mass += joint.M_mC + joint.M_mA + joint.M_iC*joint.M_JwC*joint.M_JwC + joint.M_iA*joint.M_JwA*joint.M_JwA
	}

	if joint.TypeBD == JointType.E_revoluteJoint {
		joint.M_JvBD.SetZero()
		joint.M_JwB = joint.Ratio
		joint.M_JwD = joint.Ratio
		joint.M_mass += joint.Ratio * joint.Ratio * (joint.M_iB + joint.M_iD)
	} else {
		u := RotVec2Mul(qD, joint.LocalAxisD)
		rD := RotVec2Mul(qD, Vec2Sub(joint.LocalAnchorD, joint.M_lcD))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_lcB))
		joint.M_JvBD = Vec2MulScalar(joint.Ratio, u)
		joint.M_JwD = joint.Ratio * Vec2Cross(rD, u)
		joint.M_JwB = joint.Ratio * Vec2Cross(rB, u)
		joint.M_mass += joint.Ratio*joint.Ratio*(joint.M_mD+joint.M_mB) + joint.M_iD*joint.M_JwD*joint.M_JwD + joint.M_iB*joint.M_JwB*joint.M_JwB
	}

	// Compute effective mass.
	if joint.M_mass > 0.0 {
		joint.M_mass = 1.0 / joint.M_mass
	} else {
		joint.M_mass = 0.0
	}

	if step.DoWarmStart {
		vA.OperatorPlusInplace(Vec2MulScalar(joint.M_mA*joint.M_impulse, joint.M_JvAC))
		wA += joint.M_iA * joint.M_impulse * joint.M_JwA
		vB.OperatorPlusInplace(Vec2MulScalar(joint.M_mB*joint.M_impulse, joint.M_JvBD))
		wB += joint.M_iB * joint.M_impulse * joint.M_JwB
		vC.OperatorMinusInplace(Vec2MulScalar(joint.M_mC*joint.M_impulse, joint.M_JvAC))
		wC -= joint.M_iC * joint.M_impulse * joint.M_JwC
		vD.OperatorMinusInplace(Vec2MulScalar(joint.M_mD*joint.M_impulse, joint.M_JvBD))
		wD -= joint.M_iD * joint.M_impulse * joint.M_JwD
	} else {
		joint.M_impulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
	bcC.Velocity.Linear = vC
	bcC.Velocity.Angular = wC
	bcD.Velocity.Linear = vD
	bcD.Velocity.Angular = wD
}

func (joint *GearJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)
	bcC := At(bodies, joint.BodyC)
	bcD := At(bodies, joint.BodyD)

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular
	vC := bcC.Velocity.Linear
	wC := bcC.Velocity.Angular
	vD := bcD.Velocity.Linear
	wD := bcD.Velocity.Angular

	Cdot := Vec2Dot(joint.M_JvAC, Vec2Sub(vA, vC)) + Vec2Dot(joint.M_JvBD, Vec2Sub(vB, vD))
	Cdot += (joint.M_JwA*wA - joint.M_JwC*wC) + (joint.M_JwB*wB - joint.M_JwD*wD)

	impulse := -joint.M_mass * Cdot
	joint.M_impulse += impulse

	vA.OperatorPlusInplace(Vec2MulScalar(joint.M_mA*impulse, joint.M_JvAC))
	wA += joint.M_iA * impulse * joint.M_JwA
	vB.OperatorPlusInplace(Vec2MulScalar(joint.M_mB*impulse, joint.M_JvBD))
	wB += joint.M_iB * impulse * joint.M_JwB
	vC.OperatorMinusInplace(Vec2MulScalar(joint.M_mC*impulse, joint.M_JvAC))
	wC -= joint.M_iC * impulse * joint.M_JwC
	vD.OperatorMinusInplace(Vec2MulScalar(joint.M_mD*impulse, joint.M_JvBD))
	wD -= joint.M_iD * impulse * joint.M_JwD

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
	bcC.Velocity.Linear = vC
	bcC.Velocity.Angular = wC
	bcD.Velocity.Linear = vD
	bcD.Velocity.Angular = wD

	return impulse == 0.0
}

func (joint *GearJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)
	bcC := At(bodies, joint.BodyC)
	bcD := At(bodies, joint.BodyD)

	cA := bcA.Position.Linear
	aA := bcA.Position.Angular
	cB := bcB.Position.Linear
	aB := bcB.Position.Angular
	cC := bcC.Position.Linear
	aC := bcC.Position.Angular
	cD := bcD.Position.Linear
	aD := bcD.Position.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)
	qC := MakeRotFromAngle(aC)
	qD := MakeRotFromAngle(aD)

	// TODO: compute an actual position error for the gear constraint.
	linearError := 0.0

	coordinateA := 0.0
	coordinateB := 0.0

	var JvAC Vec2
	var JvBD Vec2
	var JwA, JwB, JwC, JwD float64
	mass := 0.0

	if joint.TypeAC == JointType.E_revoluteJoint {
		JvAC.SetZero()
		JwA = 1.0
		JwC = 1.0
		mass += joint.M_iA + joint.M_iC

		coordinateA = aA - aC - joint.ReferenceAngleA
	} else {
		u := RotVec2Mul(qC, joint.LocalAxisC)
		rC := RotVec2Mul(qC, Vec2Sub(joint.LocalAnchorC, joint.M_lcC))
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_lcA))
		JvAC = u
		JwC = Vec2Cross(rC, u)
		JwA = Vec2Cross(rA, u)
		mass += joint.M_mC + joint.M_mA + joint.M_iC*JwC*JwC + joint.M_iA*JwA*JwA

		pC := Vec2Sub(joint.LocalAnchorC, joint.M_lcC)
		pA := RotVec2MulT(qC, Vec2Add(rA, Vec2Sub(cA, cC)))
		coordinateA = Vec2Dot(Vec2Sub(pA, pC), joint.LocalAxisC)
	}

	if joint.TypeBD == JointType.E_revoluteJoint {
		JvBD.SetZero()
		JwB = joint.Ratio
		JwD = joint.Ratio
		mass += joint.Ratio * joint.Ratio * (joint.M_iB + joint.M_iD)

		coordinateB = aB - aD - joint.ReferenceAngleB
	} else {
		u := RotVec2Mul(qD, joint.LocalAxisD)
		rD := RotVec2Mul(qD, Vec2Sub(joint.LocalAnchorD, joint.M_lcD))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_lcB))
		JvBD = Vec2MulScalar(joint.Ratio, u)
		JwD = joint.Ratio * Vec2Cross(rD, u)
		JwB = joint.Ratio * Vec2Cross(rB, u)
		mass += joint.Ratio*joint.Ratio*(joint.M_mD+joint.M_mB) + joint.M_iD*JwD*JwD + joint.M_iB*JwB*JwB

		pD := Vec2Sub(joint.LocalAnchorD, joint.M_lcD)
		pB := RotVec2MulT(qD, Vec2Add(rB, Vec2Sub(cB, cD)))
		coordinateB = Vec2Dot(Vec2Sub(pB, pD), joint.LocalAxisD)
	}

	C := (coordinateA + joint.Ratio*coordinateB) - joint.Constant

	impulse := 0.0
	if mass > 0.0 {
		impulse = -C / mass
	}

	cA.OperatorPlusInplace(Vec2MulScalar(joint.M_mA*impulse, JvAC))
	aA += joint.M_iA * impulse * JwA
	cB.OperatorPlusInplace(Vec2MulScalar(joint.M_mB*impulse, JvBD))
	aB += joint.M_iB * impulse * JwB
	cC.OperatorMinusInplace(Vec2MulScalar(joint.M_mC*impulse, JvAC))
	aC -= joint.M_iC * impulse * JwC
	cD.OperatorMinusInplace(Vec2MulScalar(joint.M_mD*impulse, JvBD))
	aD -= joint.M_iD * impulse * JwD

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB
	bcC.Position.Linear = cC
	bcC.Position.Angular = aC
	bcD.Position.Linear = cD
	bcD.Position.Angular = aD

	return linearError < conf.LinearSlop
}

/// Gets a gear joint configuration tying together two existing revolute
/// or prismatic joints, where the first connects body C to body A and the
/// second connects body D to body B. The supporting joints' geometry gets
/// captured into the configuration: the gear is unaffected by them from
/// here on, and holds coordinateA + ratio * coordinateB at its value as
/// of this call.
func GetGearJointConf(world *World, jointID1 JointID, jointID2 JointID, ratio float64) (GearJointConf, error) {
	joint1, err := world.validJoint(jointID1)
	if err != nil {
		return GearJointConf{}, err
	}
	joint2, err := world.validJoint(jointID2)
	if err != nil {
		return GearJointConf{}, err
	}

	conf := MakeGearJointConf(joint1.GetBodyB(), joint2.GetBodyB(), joint1.GetBodyA(), joint2.GetBodyA())
	conf.Ratio = ratio

	bodyA := world.bodyPtr(conf.BodyA)
	bodyC := world.bodyPtr(conf.BodyC)

	var coordinateA float64
	switch supporting := joint1.conf.(type) {
	case *RevoluteJointConf:
		conf.TypeAC = JointType.E_revoluteJoint
		conf.LocalAnchorC = supporting.LocalAnchorA
		conf.LocalAnchorA = supporting.LocalAnchorB
		conf.ReferenceAngleA = supporting.ReferenceAngle
		conf.LocalAxisC.SetZero()
		coordinateA = bodyA.GetAngle() - bodyC.GetAngle() - conf.ReferenceAngleA
	case *PrismaticJointConf:
		conf.TypeAC = JointType.E_prismaticJoint
		conf.LocalAnchorC = supporting.LocalAnchorA
		conf.LocalAnchorA = supporting.LocalAnchorB
		conf.ReferenceAngleA = supporting.ReferenceAngle
		conf.LocalAxisC = supporting.LocalXAxisA
		xfA := bodyA.GetTransform()
		xfC := bodyC.GetTransform()
		pC := conf.LocalAnchorC
		pA := RotVec2MulT(xfC.Q, Vec2Add(RotVec2Mul(xfA.Q, conf.LocalAnchorA), Vec2Sub(xfA.P, xfC.P)))
		coordinateA = Vec2Dot(Vec2Sub(pA, pC), conf.LocalAxisC)
	default:
		return GearJointConf{}, fmt.Errorf("gear joint over a %s joint: %w",
			JointTypeName(joint1.GetType()), ErrInvalidArgument)
	}

	bodyB := world.bodyPtr(conf.BodyB)
	bodyD := world.bodyPtr(conf.BodyD)

	var coordinateB float64
	switch supporting := joint2.conf.(type) {
	case *RevoluteJointConf:
		conf.TypeBD = JointType.E_revoluteJoint
		conf.LocalAnchorD = supporting.LocalAnchorA
		conf.LocalAnchorB = supporting.LocalAnchorB
		conf.ReferenceAngleB = supporting.ReferenceAngle
		conf.LocalAxisD.SetZero()
		coordinateB = bodyB.GetAngle() - bodyD.GetAngle() - conf.ReferenceAngleB
	case *PrismaticJointConf:
		conf.TypeBD = JointType.E_prismaticJoint
		conf.LocalAnchorD = supporting.LocalAnchorA
		conf.LocalAnchorB = supporting.LocalAnchorB
		conf.ReferenceAngleB = supporting.ReferenceAngle
		conf.LocalAxisD = supporting.LocalXAxisA
		xfB := bodyB.GetTransform()
		xfD := bodyD.GetTransform()
		pD := conf.LocalAnchorD
		pB := RotVec2MulT(xfD.Q, Vec2Add(RotVec2Mul(xfB.Q, conf.LocalAnchorB), Vec2Sub(xfB.P, xfD.P)))
		coordinateB = Vec2Dot(Vec2Sub(pB, pD), conf.LocalAxisD)
	default:
		return GearJointConf{}, fmt.Errorf("gear joint over a %s joint: %w",
			JointTypeName(joint2.GetType()), ErrInvalidArgument)
	}

	conf.Constant = coordinateA + conf.Ratio*coordinateB
	return conf, nil
}
