package playrho

import (
	"math"
)

// Point-to-point constraint
// C = p2 - p1
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Motor constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

/// Revolute joint configuration. A revolute joint constrains two bodies
/// to share a common point while they are free to rotate about the
/// point. The relative rotation about the shared point is the joint
/// angle. You can limit the relative rotation with a joint limit that
/// specifies a lower and upper angle. You can use a motor to drive the
/// relative rotation about the shared point. A maximum motor torque is
/// provided so that infinite forces are not generated.
/// The local anchor points are measured from the body's origin rather
/// than the center of mass because:
/// 1. you might not know where the center of mass will be;
/// 2. if you add/remove shapes from a body and recompute the mass, the
///    joints will be broken.
type RevoluteJointConf struct {
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

	/// The body B angle minus body A angle in the reference state
	/// (radians).
	ReferenceAngle float64

	/// A flag to enable joint limits.
	EnableLimit bool

	/// The lower angle for the joint limit (radians).
	LowerAngle float64

	/// The upper angle for the joint limit (radians).
	UpperAngle float64

	/// A flag to enable the joint motor.
	EnableMotor bool

	/// The desired motor speed. Usually in radians per second.
	MotorSpeed float64

	/// The maximum motor torque used to achieve the desired motor speed.
	/// Usually in N-m.
	MaxMotorTorque float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_impulse      Vec3
	M_motorImpulse float64

	// Solver temp
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_mass         Mat33 // effective mass for point-to-point constraint.
	M_motorMass    float64
	M_limitState   uint8
}

func MakeRevoluteJointConf(bodyA BodyID, bodyB BodyID) RevoluteJointConf {
	return RevoluteJointConf{
		BodyA:        bodyA,
		BodyB:        bodyB,
		M_limitState: LimitState.E_inactiveLimit,
	}
}

func (joint RevoluteJointConf) UseCollideConnected(flag bool) RevoluteJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint RevoluteJointConf) UseLocalAnchorA(value Vec2) RevoluteJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint RevoluteJointConf) UseLocalAnchorB(value Vec2) RevoluteJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint RevoluteJointConf) UseReferenceAngle(value float64) RevoluteJointConf {
	joint.ReferenceAngle = value
	return joint
}

func (joint RevoluteJointConf) UseEnableLimit(flag bool) RevoluteJointConf {
	joint.EnableLimit = flag
	return joint
}

func (joint RevoluteJointConf) UseLowerAngle(value float64) RevoluteJointConf {
	joint.LowerAngle = value
	return joint
}

func (joint RevoluteJointConf) UseUpperAngle(value float64) RevoluteJointConf {
	joint.UpperAngle = value
	return joint
}

func (joint RevoluteJointConf) UseEnableMotor(flag bool) RevoluteJointConf {
	joint.EnableMotor = flag
	return joint
}

func (joint RevoluteJointConf) UseMotorSpeed(value float64) RevoluteJointConf {
	joint.MotorSpeed = value
	return joint
}

func (joint RevoluteJointConf) UseMaxMotorTorque(value float64) RevoluteJointConf {
	joint.MaxMotorTorque = value
	return joint
}

func (joint RevoluteJointConf) GetType() uint8 {
	return JointType.E_revoluteJoint
}

func (joint RevoluteJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint RevoluteJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint RevoluteJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint RevoluteJointConf) GetLinearReaction() Vec2 {
	return MakeVec2(joint.M_impulse.X, joint.M_impulse.Y)
}

func (joint RevoluteJointConf) GetAngularReaction() float64 {
	return joint.M_impulse.Z
}

func (joint RevoluteJointConf) clone() JointConf {
	return &joint
}

func (joint *RevoluteJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *RevoluteJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	joint.M_localCenterA = bcA.LocalCenter
	joint.M_localCenterB = bcB.LocalCenter
	joint.M_invMassA = bcA.InvMass
	joint.M_invMassB = bcB.InvMass
	joint.M_invIA = bcA.InvRotInertia
	joint.M_invIB = bcB.InvRotInertia

	aA := bcA.Position.Angular
	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular

	aB := bcB.Position.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	joint.M_rA = RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	joint.M_rB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))

	// J = [-I -r1_skew I r2_skew]
	//     [ 0       -1 0       1]
	// r_skew = [-ry; rx]

	// Matlab
	// K = [ mA+r1y^2*iA+mB+r2y^2*iB,  -r1y*iA*r1x-r2y*iB*r2x,          -r1y*iA-r2y*iB]
	//     [  -r1y*iA*r1x-r2y*iB*r2x, mA+r1x^2*iA+mB+r2x^2*iB,           r1x*iA+r2x*iB]
	//     [          -r1y*iA-r2y*iB,           r1x*iA+r2x*iB,                   iA+iB]

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

	fixedRotation := (iA+iB == 0.0)

	joint.M_mass.Ex.X = mA + mB + joint.M_rA.Y*joint.M_rA.Y*iA + joint.M_rB.Y*joint.M_rB.Y*iB
	joint.M_mass.Ey.X = -joint.M_rA.Y*joint.M_rA.X*iA - joint.M_rB.Y*joint.M_rB.X*iB
	joint.M_mass.Ez.X = -joint.M_rA.Y*iA - joint.M_rB.Y*iB
	joint.M_mass.Ex.Y = joint.M_mass.Ey.X
	joint.M_mass.Ey.Y = mA + mB + joint.M_rA.X*joint.M_rA.X*iA + joint.M_rB.X*joint.M_rB.X*iB
	joint.M_mass.Ez.Y = joint.M_rA.X*iA + joint.M_rB.X*iB
	joint.M_mass.Ex.Z = joint.M_mass.Ez.X
	joint.M_mass.Ey.Z = joint.M_mass.Ez.Y
	joint.M_mass.Ez.Z = iA + iB

	joint.M_motorMass = iA + iB
	if joint.M_motorMass > 0.0 {
		joint.M_motorMass = 1.0 / joint.M_motorMass
	}

	if !joint.EnableMotor || fixedRotation {
		joint.M_motorImpulse = 0.0
	}

	if joint.EnableLimit && !fixedRotation {
		jointAngle := aB - aA - joint.ReferenceAngle
		if math.Abs(joint.UpperAngle-joint.LowerAngle) < 2.0*conf.AngularSlop {
			joint.M_limitState = LimitState.E_equalLimits
		} else if jointAngle <= joint.LowerAngle {
			if joint.M_limitState != LimitState.E_atLowerLimit {
				joint.M_impulse.Z = 0.0
			}
			joint.M_limitState = LimitState.E_atLowerLimit
		} else if jointAngle >= joint.UpperAngle {
			if joint.M_limitState != LimitState.E_atUpperLimit {
				joint.M_impulse.Z = 0.0
			}
			joint.M_limitState = LimitState.E_atUpperLimit
		} else {
			joint.M_limitState = LimitState.E_inactiveLimit
			joint.M_impulse.Z = 0.0
		}
	} else {
		joint.M_limitState = LimitState.E_inactiveLimit
	}

	if step.DoWarmStart {
		// Scale impulses to support a variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_motorImpulse *= step.DtRatio

		P := MakeVec2(joint.M_impulse.X, joint.M_impulse.Y)

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * (Vec2Cross(joint.M_rA, P) + joint.M_motorImpulse + joint.M_impulse.Z)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * (Vec2Cross(joint.M_rB, P) + joint.M_motorImpulse + joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *RevoluteJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

	fixedRotation := (iA+iB == 0.0)

	solved := true

	// Solve motor constraint.
	if joint.EnableMotor && joint.M_limitState != LimitState.E_equalLimits && !fixedRotation {
		Cdot := wB - wA - joint.MotorSpeed
		impulse := -joint.M_motorMass * Cdot
		oldImpulse := joint.M_motorImpulse
		maxImpulse := step.DeltaTime * joint.MaxMotorTorque
		joint.M_motorImpulse = FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse

		if impulse != 0.0 {
			solved = false
		}
	}

	// Solve limit constraint.
	if joint.EnableLimit && joint.M_limitState != LimitState.E_inactiveLimit && !fixedRotation {
		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA))
		Cdot2 := wB - wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := joint.M_mass.Solve33(Cdot).OperatorNegate()

		if joint.M_limitState == LimitState.E_equalLimits {
			joint.M_impulse.OperatorPlusInplace(impulse)
		} else if joint.M_limitState == LimitState.E_atLowerLimit {
			newImpulse := joint.M_impulse.Z + impulse.Z
			if newImpulse < 0.0 {
				rhs := Vec2Add(Cdot1.OperatorNegate(), Vec2MulScalar(joint.M_impulse.Z, MakeVec2(joint.M_mass.Ez.X, joint.M_mass.Ez.Y)))
				reduced := joint.M_mass.Solve22(rhs)
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -joint.M_impulse.Z
				joint.M_impulse.X += reduced.X
				joint.M_impulse.Y += reduced.Y
				joint.M_impulse.Z = 0.0
			} else {
				joint.M_impulse.OperatorPlusInplace(impulse)
			}
		} else if joint.M_limitState == LimitState.E_atUpperLimit {
			newImpulse := joint.M_impulse.Z + impulse.Z
			if newImpulse > 0.0 {
				rhs := Vec2Add(Cdot1.OperatorNegate(), Vec2MulScalar(joint.M_impulse.Z, MakeVec2(joint.M_mass.Ez.X, joint.M_mass.Ez.Y)))
				reduced := joint.M_mass.Solve22(rhs)
				impulse.X = reduced.X
				impulse.Y = reduced.Y
				impulse.Z = -joint.M_impulse.Z
				joint.M_impulse.X += reduced.X
				joint.M_impulse.Y += reduced.Y
				joint.M_impulse.Z = 0.0
			} else {
				joint.M_impulse.OperatorPlusInplace(impulse)
			}
		}

		P := MakeVec2(impulse.X, impulse.Y)

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * (Vec2Cross(joint.M_rA, P) + impulse.Z)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * (Vec2Cross(joint.M_rB, P) + impulse.Z)

		if impulse.X != 0.0 || impulse.Y != 0.0 || impulse.Z != 0.0 {
			solved = false
		}
	} else {
		// Solve point-to-point constraint
		Cdot := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA))
		impulse := joint.M_mass.Solve22(Cdot.OperatorNegate())

		joint.M_impulse.X += impulse.X
		joint.M_impulse.Y += impulse.Y

		vA.OperatorMinusInplace(Vec2MulScalar(mA, impulse))
		wA -= iA * Vec2Cross(joint.M_rA, impulse)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, impulse))
		wB += iB * Vec2Cross(joint.M_rB, impulse)

		if impulse.X != 0.0 || impulse.Y != 0.0 {
			solved = false
		}
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return solved
}

func (joint *RevoluteJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	cA := bcA.Position.Linear
	aA := bcA.Position.Angular
	cB := bcB.Position.Linear
	aB := bcB.Position.Angular

	angularError := 0.0
	positionError := 0.0

	fixedRotation := (joint.M_invIA+joint.M_invIB == 0.0)

	// Solve angular limit constraint.
	if joint.EnableLimit && joint.M_limitState != LimitState.E_inactiveLimit && !fixedRotation {
		angle := aB - aA - joint.ReferenceAngle
		limitImpulse := 0.0

		if joint.M_limitState == LimitState.E_equalLimits {
			// Prevent large angular corrections
			C := FloatClamp(angle-joint.LowerAngle, -conf.MaxAngularCorrection, conf.MaxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
			angularError = math.Abs(C)
		} else if joint.M_limitState == LimitState.E_atLowerLimit {
			C := angle - joint.LowerAngle
			angularError = -C

			// Prevent large angular corrections and allow some slop.
			C = FloatClamp(C+conf.AngularSlop, -conf.MaxAngularCorrection, 0.0)
			limitImpulse = -joint.M_motorMass * C
		} else if joint.M_limitState == LimitState.E_atUpperLimit {
			C := angle - joint.UpperAngle
			angularError = C

			// Prevent large angular corrections and allow some slop.
			C = FloatClamp(C-conf.AngularSlop, 0.0, conf.MaxAngularCorrection)
			limitImpulse = -joint.M_motorMass * C
		}

		aA -= joint.M_invIA * limitImpulse
		aB += joint.M_invIB * limitImpulse
	}

	// Solve point-to-point constraint.
	{
		qA := MakeRotFromAngle(aA)
		qB := MakeRotFromAngle(aB)
		rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
		rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))

		C := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)
		positionError = C.Length()

		mA := joint.M_invMassA
		mB := joint.M_invMassB
		iA := joint.M_invIA
		iB := joint.M_invIB

		var K Mat22
		K.Ex.X = mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
		K.Ex.Y = -iA*rA.X*rA.Y - iB*rB.X*rB.Y
		K.Ey.X = K.Ex.Y
		K.Ey.Y = mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X

		impulse := K.Solve(C).OperatorNegate()

		cA.OperatorMinusInplace(Vec2MulScalar(mA, impulse))
		aA -= iA * Vec2Cross(rA, impulse)

		cB.OperatorPlusInplace(Vec2MulScalar(mB, impulse))
		aB += iB * Vec2Cross(rB, impulse)
	}

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return positionError <= conf.LinearSlop && angularError <= conf.AngularSlop
}

/// Gets a revolute joint configuration pinning the identified bodies about
/// the given world anchor at their current relative angle.
func GetRevoluteJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchor Vec2) (RevoluteJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return RevoluteJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return RevoluteJointConf{}, err
	}
	conf := MakeRevoluteJointConf(bodyIDA, bodyIDB)
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	conf.ReferenceAngle = bodyB.GetAngle() - bodyA.GetAngle()
	return conf, nil
}
