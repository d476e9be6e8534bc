package playrho

import (
	"math"
)

// Linear constraint (point-to-line)
// d = p2 - p1 = x2 + r2 - x1 - r1
// C = dot(perp, d)
// Cdot = dot(d, cross(w1, perp)) + dot(perp, v2 + cross(w2, r2) - v1 - cross(w1, r1))
//      = -dot(perp, v1) - dot(cross(d + r1, perp), w1) + dot(perp, v2) + dot(cross(r2, perp), v2)
// J = [-perp, -cross(d + r1, perp), perp, cross(r2,perp)]
//
// Angular constraint
// C = a2 - a1 + a_initial
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
//
// K = J * invM * JT
//
// J = [-a -s1 a s2]
//     [0  -1  0  1]
// a = perp
// s1 = cross(d + r1, a) = cross(p2 - x1, a)
// s2 = cross(r2, a) = cross(p2 - x2, a)

// Motor/Limit linear constraint
// C = dot(ax1, d)
// Cdot = = -dot(ax1, v1) - dot(cross(d + r1, ax1), w1) + dot(ax1, v2) + dot(cross(r2, ax1), v2)
// J = [-ax1 -cross(d+r1,ax1) ax1 cross(r2,ax1)]

// Block Solver
// We develop a block solver that includes the joint limit. This makes the limit stiff (inelastic) even
// when the mass has poor distribution (leading to large torques about the joint anchor points).
//
// The Jacobian has 3 rows:
// J = [-uT -s1 uT s2] // linear
//     [0   -1   0  1] // angular
//     [-vT -a1 vT a2] // limit
//
// u = perp
// v = axis
// s1 = cross(d + r1, u), s2 = cross(r2, u)
// a1 = cross(d + r1, v), a2 = cross(r2, v)

/// Prismatic joint configuration. This joint provides one degree of
/// freedom: translation along an axis fixed in body A. Relative
/// rotation is prevented. You can use a joint limit to restrict the
/// range of motion and a joint motor to drive the motion or to model
/// joint friction. The joint translation is zero when the local anchor
/// points coincide in world space.
type PrismaticJointConf struct {
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

	/// The local translation unit axis in body A.
	LocalXAxisA Vec2

	/// The perpendicular of the local translation axis.
	LocalYAxisA Vec2

	/// The constrained angle between the bodies:
	/// body B angle minus body A angle.
	ReferenceAngle float64

	/// Enable/disable the joint limit.
	EnableLimit bool

	/// The lower translation limit, usually in meters.
	LowerTranslation float64

	/// The upper translation limit, usually in meters.
	UpperTranslation float64

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor force, usually in N.
	MaxMotorForce float64

	/// The desired motor speed in meters per second.
	MotorSpeed float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_impulse      Vec3
	M_motorImpulse float64

	// Solver temp
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_axis, M_perp Vec2
	M_s1, M_s2     float64
	M_a1, M_a2     float64
	M_K            Mat33
	M_motorMass    float64
	M_limitState   uint8
}

func MakePrismaticJointConf(bodyA BodyID, bodyB BodyID) PrismaticJointConf {
	return PrismaticJointConf{
		BodyA:        bodyA,
		BodyB:        bodyB,
		LocalXAxisA:  MakeVec2(1.0, 0.0),
		LocalYAxisA:  MakeVec2(0.0, 1.0),
		M_limitState: LimitState.E_inactiveLimit,
	}
}

func (joint PrismaticJointConf) UseCollideConnected(flag bool) PrismaticJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint PrismaticJointConf) UseLocalAnchorA(value Vec2) PrismaticJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint PrismaticJointConf) UseLocalAnchorB(value Vec2) PrismaticJointConf {
	joint.LocalAnchorB = value
	return joint
}

/// Sets the local axis of motion, normalizing it and deriving the
/// perpendicular axis.
func (joint PrismaticJointConf) UseLocalAxisA(axis Vec2) PrismaticJointConf {
	axis.Normalize()
	joint.LocalXAxisA = axis
	joint.LocalYAxisA = Vec2CrossScalarVector(1.0, axis)
	return joint
}

func (joint PrismaticJointConf) UseReferenceAngle(value float64) PrismaticJointConf {
	joint.ReferenceAngle = value
	return joint
}

func (joint PrismaticJointConf) UseEnableLimit(flag bool) PrismaticJointConf {
	joint.EnableLimit = flag
	return joint
}

func (joint PrismaticJointConf) UseLowerTranslation(value float64) PrismaticJointConf {
	joint.LowerTranslation = value
	return joint
}

func (joint PrismaticJointConf) UseUpperTranslation(value float64) PrismaticJointConf {
	joint.UpperTranslation = value
	return joint
}

func (joint PrismaticJointConf) UseEnableMotor(flag bool) PrismaticJointConf {
	joint.EnableMotor = flag
	return joint
}

func (joint PrismaticJointConf) UseMaxMotorForce(value float64) PrismaticJointConf {
	joint.MaxMotorForce = value
	return joint
}

func (joint PrismaticJointConf) UseMotorSpeed(value float64) PrismaticJointConf {
	joint.MotorSpeed = value
	return joint
}

func (joint PrismaticJointConf) GetType() uint8 {
	return JointType.E_prismaticJoint
}

func (joint PrismaticJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint PrismaticJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint PrismaticJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint PrismaticJointConf) GetLinearReaction() Vec2 {
	return Vec2Add(Vec2MulScalar(joint.M_impulse.X, joint.M_perp), Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Z, joint.M_axis))
}

func (joint PrismaticJointConf) GetAngularReaction() float64 {
	return joint.M_impulse.Y
}

func (joint PrismaticJointConf) clone() JointConf {
	return &joint
}

func (joint *PrismaticJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *PrismaticJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	// Compute the effective masses.
	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))
	d := Vec2Sub(Vec2Add(Vec2Sub(cB, cA), rB), rA)

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

	// Compute motor Jacobian and effective mass.
	{
		joint.M_axis = RotVec2Mul(qA, joint.LocalXAxisA)
		joint.M_a1 = Vec2Cross(Vec2Add(d, rA), joint.M_axis)
		joint.M_a2 = Vec2Cross(rB, joint.M_axis)

		joint.M_motorMass = mA + mB + iA*joint.M_a1*joint.M_a1 + iB*joint.M_a2*joint.M_a2
		if joint.M_motorMass > 0.0 {
			joint.M_motorMass = 1.0 / joint.M_motorMass
		}
	}

	// Prismatic constraint.
	{
		joint.M_perp = RotVec2Mul(qA, joint.LocalYAxisA)

		joint.M_s1 = Vec2Cross(Vec2Add(d, rA), joint.M_perp)
		joint.M_s2 = Vec2Cross(rB, joint.M_perp)

		k11 := mA + mB + iA*joint.M_s1*joint.M_s1 + iB*joint.M_s2*joint.M_s2
		k12 := iA*joint.M_s1 + iB*joint.M_s2
		k13 := iA*joint.M_s1*joint.M_a1 + iB*joint.M_s2*joint.M_a2
		k22 := iA + iB
		if k22 == 0.0 {
			// For bodies with fixed rotation.
			k22 = 1.0
		}
		k23 := iA*joint.M_a1 + iB*joint.M_a2
		k33 := mA + mB + iA*joint.M_a1*joint.M_a1 + iB*joint.M_a2*joint.M_a2

		joint.M_K.Ex.Set(k11, k12, k13)
		joint.M_K.Ey.Set(k12, k22, k23)
		joint.M_K.Ez.Set(k13, k23, k33)
	}

	// Compute motor and limit terms.
	if joint.EnableLimit {
		jointTranslation := Vec2Dot(joint.M_axis, d)
		if math.Abs(joint.UpperTranslation-joint.LowerTranslation) < 2.0*conf.LinearSlop {
			joint.M_limitState = LimitState.E_equalLimits
		} else if jointTranslation <= joint.LowerTranslation {
			if joint.M_limitState != LimitState.E_atLowerLimit {
				joint.M_limitState = LimitState.E_atLowerLimit
				joint.M_impulse.Z = 0.0
			}
		} else if jointTranslation >= joint.UpperTranslation {
			if joint.M_limitState != LimitState.E_atUpperLimit {
				joint.M_limitState = LimitState.E_atUpperLimit
				joint.M_impulse.Z = 0.0
			}
		} else {
			joint.M_limitState = LimitState.E_inactiveLimit
			joint.M_impulse.Z = 0.0
		}
	} else {
		joint.M_limitState = LimitState.E_inactiveLimit
		joint.M_impulse.Z = 0.0
	}

	if !joint.EnableMotor {
		joint.M_motorImpulse = 0.0
	}

	if step.DoWarmStart {
		// Account for variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_motorImpulse *= step.DtRatio

		P := Vec2Add(Vec2MulScalar(joint.M_impulse.X, joint.M_perp), Vec2MulScalar(joint.M_motorImpulse+joint.M_impulse.Z, joint.M_axis))
		LA := joint.M_impulse.X*joint.M_s1 + joint.M_impulse.Y + (joint.M_motorImpulse+joint.M_impulse.Z)*joint.M_a1
		LB := joint.M_impulse.X*joint.M_s2 + joint.M_impulse.Y + (joint.M_motorImpulse+joint.M_impulse.Z)*joint.M_a2

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB
	} else {
		joint.M_impulse.SetZero()
		joint.M_motorImpulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *PrismaticJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
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

	solved := true

	// Solve linear motor constraint.
	if joint.EnableMotor && joint.M_limitState != LimitState.E_equalLimits {
		Cdot := Vec2Dot(joint.M_axis, Vec2Sub(vB, vA)) + joint.M_a2*wB - joint.M_a1*wA
		impulse := joint.M_motorMass * (joint.MotorSpeed - Cdot)
		oldImpulse := joint.M_motorImpulse
		maxImpulse := step.DeltaTime * joint.MaxMotorForce
		joint.M_motorImpulse = FloatClamp(joint.M_motorImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_motorImpulse - oldImpulse

		P := Vec2MulScalar(impulse, joint.M_axis)
		LA := impulse * joint.M_a1
		LB := impulse * joint.M_a2

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB

		if impulse != 0.0 {
			solved = false
		}
	}

	var Cdot1 Vec2
	Cdot1.X = Vec2Dot(joint.M_perp, Vec2Sub(vB, vA)) + joint.M_s2*wB - joint.M_s1*wA
	Cdot1.Y = wB - wA

	if joint.EnableLimit && joint.M_limitState != LimitState.E_inactiveLimit {
		// Solve prismatic and limit constraint in block form.
		Cdot2 := Vec2Dot(joint.M_axis, Vec2Sub(vB, vA)) + joint.M_a2*wB - joint.M_a1*wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		f1 := joint.M_impulse
		df := joint.M_K.Solve33(Cdot.OperatorNegate())
		joint.M_impulse.OperatorPlusInplace(df)

		if joint.M_limitState == LimitState.E_atLowerLimit {
			joint.M_impulse.Z = math.Max(joint.M_impulse.Z, 0.0)
		} else if joint.M_limitState == LimitState.E_atUpperLimit {
			joint.M_impulse.Z = math.Min(joint.M_impulse.Z, 0.0)
		}

		// f2(1:2) = invK(1:2,1:2) * (-Cdot(1:2) - K(1:2,3) * (f2(3) - f1(3))) + f1(1:2)
		b := Vec2Sub(Cdot1.OperatorNegate(), Vec2MulScalar(joint.M_impulse.Z-f1.Z, MakeVec2(joint.M_K.Ez.X, joint.M_K.Ez.Y)))
		f2r := Vec2Add(joint.M_K.Solve22(b), MakeVec2(f1.X, f1.Y))
		joint.M_impulse.X = f2r.X
		joint.M_impulse.Y = f2r.Y

		df = Vec3Sub(joint.M_impulse, f1)

		P := Vec2Add(Vec2MulScalar(df.X, joint.M_perp), Vec2MulScalar(df.Z, joint.M_axis))
		LA := df.X*joint.M_s1 + df.Y + df.Z*joint.M_a1
		LB := df.X*joint.M_s2 + df.Y + df.Z*joint.M_a2

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB

		if df.X != 0.0 || df.Y != 0.0 || df.Z != 0.0 {
			solved = false
		}
	} else {
		// Limit is inactive, just solve the prismatic constraint in block form.
		df := joint.M_K.Solve22(Cdot1.OperatorNegate())
		joint.M_impulse.X += df.X
		joint.M_impulse.Y += df.Y

		P := Vec2MulScalar(df.X, joint.M_perp)
		LA := df.X*joint.M_s1 + df.Y
		LB := df.X*joint.M_s2 + df.Y

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB

		if df.X != 0.0 || df.Y != 0.0 {
			solved = false
		}
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return solved
}

// A velocity based solver computes reaction forces (impulses) using the velocity constraint solver. Under this context,
// the position solver is not there to resolve forces. It is only there to cope with integration error.
//
// Therefore, the pseudo impulses in the position solver do not have any physical meaning. Thus it is okay if they suck.
//
// We could take the active state from the velocity solver. However, the joint might push past the limit when the velocity
// solver indicates the limit is inactive.
func (joint *PrismaticJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	cA := bcA.Position.Linear
	aA := bcA.Position.Angular
	cB := bcB.Position.Linear
	aB := bcB.Position.Angular

	qA := MakeRotFromAngle(aA)
	qB := MakeRotFromAngle(aB)

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

	// Compute fresh Jacobians
	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))
	d := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	axis := RotVec2Mul(qA, joint.LocalXAxisA)
	a1 := Vec2Cross(Vec2Add(d, rA), axis)
	a2 := Vec2Cross(rB, axis)
	perp := RotVec2Mul(qA, joint.LocalYAxisA)

	s1 := Vec2Cross(Vec2Add(d, rA), perp)
	s2 := Vec2Cross(rB, perp)

	impulse := MakeVec3(0, 0, 0)
	C1 := MakeVec2(0, 0)
	C1.X = Vec2Dot(perp, d)
	C1.Y = aB - aA - joint.ReferenceAngle

	linearError := math.Abs(C1.X)
	angularError := math.Abs(C1.Y)

	active := false
	C2 := 0.0
	if joint.EnableLimit {
		translation := Vec2Dot(axis, d)
		if math.Abs(joint.UpperTranslation-joint.LowerTranslation) < 2.0*conf.LinearSlop {
			// Prevent large angular corrections
			C2 = FloatClamp(translation, -conf.MaxLinearCorrection, conf.MaxLinearCorrection)
			linearError = math.Max(linearError, math.Abs(translation))
			active = true
		} else if translation <= joint.LowerTranslation {
			// Prevent large linear corrections and allow some slop.
			C2 = FloatClamp(translation-joint.LowerTranslation+conf.LinearSlop, -conf.MaxLinearCorrection, 0.0)
			linearError = math.Max(linearError, joint.LowerTranslation-translation)
			active = true
		} else if translation >= joint.UpperTranslation {
			// Prevent large linear corrections and allow some slop.
			C2 = FloatClamp(translation-joint.UpperTranslation-conf.LinearSlop, 0.0, conf.MaxLinearCorrection)
			linearError = math.Max(linearError, translation-joint.UpperTranslation)
			active = true
		}
	}

	if active {
		k11 := mA + mB + iA*s1*s1 + iB*s2*s2
		k12 := iA*s1 + iB*s2
		k13 := iA*s1*a1 + iB*s2*a2
		k22 := iA + iB
		if k22 == 0.0 {
			// For fixed rotation
			k22 = 1.0
		}
		k23 := iA*a1 + iB*a2
		k33 := mA + mB + iA*a1*a1 + iB*a2*a2

		K := MakeMat33()
		K.Ex.Set(k11, k12, k13)
		K.Ey.Set(k12, k22, k23)
		K.Ez.Set(k13, k23, k33)

		C := MakeVec3(C1.X, C1.Y, C2)

		impulse = K.Solve33(C.OperatorNegate())
	} else {
		k11 := mA + mB + iA*s1*s1 + iB*s2*s2
		k12 := iA*s1 + iB*s2
		k22 := iA + iB
		if k22 == 0.0 {
			k22 = 1.0
		}

		K := MakeMat22()
		K.Ex.Set(k11, k12)
		K.Ey.Set(k12, k22)

		impulse1 := K.Solve(C1.OperatorNegate())
		impulse.X = impulse1.X
		impulse.Y = impulse1.Y
		impulse.Z = 0.0
	}

	P := Vec2Add(Vec2MulScalar(impulse.X, perp), Vec2MulScalar(impulse.Z, axis))
	LA := impulse.X*s1 + impulse.Y + impulse.Z*a1
	LB := impulse.X*s2 + impulse.Y + impulse.Z*a2

	cA.OperatorMinusInplace(Vec2MulScalar(mA, P))
	aA -= iA * LA
	cB.OperatorPlusInplace(Vec2MulScalar(mB, P))
	aB += iB * LB

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return linearError <= conf.LinearSlop && angularError <= conf.AngularSlop
}

/// Gets a prismatic joint configuration sliding the identified bodies
/// along the given world axis through the given world anchor, at their
/// current relative angle.
func GetPrismaticJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchor Vec2, axis Vec2) (PrismaticJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return PrismaticJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return PrismaticJointConf{}, err
	}
	conf := MakePrismaticJointConf(bodyIDA, bodyIDB).UseLocalAxisA(bodyA.GetLocalVector(axis))
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	conf.ReferenceAngle = bodyB.GetAngle() - bodyA.GetAngle()
	return conf, nil
}
