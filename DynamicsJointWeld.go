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

// Angle constraint
// C = angle2 - angle1 - referenceAngle
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

/// Weld joint configuration. A weld joint essentially glues two bodies
/// together. A weld joint may distort somewhat because the island
/// constraint solver is approximate. You need to specify the local
/// anchor points where the bodies are attached and the relative body
/// angle. The position of the anchor points is important for computing
/// the reaction torque.
type WeldJointConf struct {
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

	/// The mass-spring-damper frequency in hertz. Rotation only.
	/// Disable softness with a value of 0.
	Frequency float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_impulse Vec3

	// Solver temp
	M_bias         float64
	M_gamma        float64
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_mass         Mat33
}

func MakeWeldJointConf(bodyA BodyID, bodyB BodyID) WeldJointConf {
	return WeldJointConf{
		BodyA: bodyA,
		BodyB: bodyB,
	}
}

func (joint WeldJointConf) UseCollideConnected(flag bool) WeldJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint WeldJointConf) UseLocalAnchorA(value Vec2) WeldJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint WeldJointConf) UseLocalAnchorB(value Vec2) WeldJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint WeldJointConf) UseReferenceAngle(value float64) WeldJointConf {
	joint.ReferenceAngle = value
	return joint
}

func (joint WeldJointConf) UseFrequency(value float64) WeldJointConf {
	joint.Frequency = value
	return joint
}

func (joint WeldJointConf) UseDampingRatio(value float64) WeldJointConf {
	joint.DampingRatio = value
	return joint
}

func (joint WeldJointConf) GetType() uint8 {
	return JointType.E_weldJoint
}

func (joint WeldJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint WeldJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint WeldJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint WeldJointConf) GetLinearReaction() Vec2 {
	return MakeVec2(joint.M_impulse.X, joint.M_impulse.Y)
}

func (joint WeldJointConf) GetAngularReaction() float64 {
	return joint.M_impulse.Z
}

func (joint WeldJointConf) clone() JointConf {
	return &joint
}

func (joint *WeldJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *WeldJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	var K Mat33
	K.Ex.X = mA + mB + joint.M_rA.Y*joint.M_rA.Y*iA + joint.M_rB.Y*joint.M_rB.Y*iB
	K.Ey.X = -joint.M_rA.Y*joint.M_rA.X*iA - joint.M_rB.Y*joint.M_rB.X*iB
	K.Ez.X = -joint.M_rA.Y*iA - joint.M_rB.Y*iB
	K.Ex.Y = K.Ey.X
	K.Ey.Y = mA + mB + joint.M_rA.X*joint.M_rA.X*iA + joint.M_rB.X*joint.M_rB.X*iB
	K.Ez.Y = joint.M_rA.X*iA + joint.M_rB.X*iB
	K.Ex.Z = K.Ez.X
	K.Ey.Z = K.Ez.Y
	K.Ez.Z = iA + iB

	if joint.Frequency > 0.0 {
		K.GetInverse22(&joint.M_mass)

		invM := iA + iB
		m := 0.0
		if invM > 0.0 {
			m = 1.0 / invM
		}

		C := aB - aA - joint.ReferenceAngle

		// Frequency
		omega := 2.0 * Pi * joint.Frequency

		// Damping coefficient
		d := 2.0 * m * joint.DampingRatio * omega

		// Spring stiffness
		k := m * omega * omega

		// magic formulas
		h := step.DeltaTime
		joint.M_gamma = h * (d + h*k)
		if joint.M_gamma != 0.0 {
			joint.M_gamma = 1.0 / joint.M_gamma
		} else {
			joint.M_gamma = 0.0
		}
		joint.M_bias = C * h * k * joint.M_gamma

		invM += joint.M_gamma
		if invM != 0.0 {
			joint.M_mass.Ez.Z = 1.0 / invM
		} else {
			joint.M_mass.Ez.Z = 0.0
		}
	} else if K.Ez.Z == 0.0 {
		K.GetInverse22(&joint.M_mass)
		joint.M_gamma = 0.0
		joint.M_bias = 0.0
	} else {
		K.GetSymInverse33(&joint.M_mass)
		joint.M_gamma = 0.0
		joint.M_bias = 0.0
	}

	if step.DoWarmStart {
		// Scale impulses to support a variable time step.
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)

		P := MakeVec2(joint.M_impulse.X, joint.M_impulse.Y)

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * (Vec2Cross(joint.M_rA, P) + joint.M_impulse.Z)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * (Vec2Cross(joint.M_rB, P) + joint.M_impulse.Z)
	} else {
		joint.M_impulse.SetZero()
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *WeldJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
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

	if joint.Frequency > 0.0 {
		Cdot2 := wB - wA

		impulse2 := -joint.M_mass.Ez.Z * (Cdot2 + joint.M_bias + joint.M_gamma*joint.M_impulse.Z)
		joint.M_impulse.Z += impulse2

		wA -= iA * impulse2
		wB += iB * impulse2

		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA))

		impulse1 := Vec2Mat33Mul22(joint.M_mass, Cdot1).OperatorNegate()
		joint.M_impulse.X += impulse1.X
		joint.M_impulse.Y += impulse1.Y

		P := impulse1

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * Vec2Cross(joint.M_rA, P)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * Vec2Cross(joint.M_rB, P)

		if impulse2 != 0.0 || impulse1.X != 0.0 || impulse1.Y != 0.0 {
			solved = false
		}
	} else {
		Cdot1 := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA))
		Cdot2 := wB - wA
		Cdot := MakeVec3(Cdot1.X, Cdot1.Y, Cdot2)

		impulse := Vec3Mat33Mul(joint.M_mass, Cdot).OperatorNegate()
		joint.M_impulse.OperatorPlusInplace(impulse)

		P := MakeVec2(impulse.X, impulse.Y)

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * (Vec2Cross(joint.M_rA, P) + impulse.Z)

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * (Vec2Cross(joint.M_rB, P) + impulse.Z)

		if impulse.X != 0.0 || impulse.Y != 0.0 || impulse.Z != 0.0 {
			solved = false
		}
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return solved
}

func (joint *WeldJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
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

	rA := RotVec2Mul(qA, Vec2Sub(joint.LocalAnchorA, joint.M_localCenterA))
	rB := RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))

	positionError := 0.0
	angularError := 0.0

	var K Mat33
	K.Ex.X = mA + mB + rA.Y*rA.Y*iA + rB.Y*rB.Y*iB
	K.Ey.X = -rA.Y*rA.X*iA - rB.Y*rB.X*iB
	K.Ez.X = -rA.Y*iA - rB.Y*iB
	K.Ex.Y = K.Ey.X
	K.Ey.Y = mA + mB + rA.X*rA.X*iA + rB.X*rB.X*iB
	K.Ez.Y = rA.X*iA + rB.X*iB
	K.Ex.Z = K.Ez.X
	K.Ey.Z = K.Ez.Y
	K.Ez.Z = iA + iB

	if joint.Frequency > 0.0 {
		C1 := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

		positionError = C1.Length()
		angularError = 0.0

		P := K.Solve22(C1).OperatorNegate()

		cA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		aA -= iA * Vec2Cross(rA, P)

		cB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		aB += iB * Vec2Cross(rB, P)
	} else {
		C1 := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)
		C2 := aB - aA - joint.ReferenceAngle

		positionError = C1.Length()
		angularError = math.Abs(C2)

		C := MakeVec3(C1.X, C1.Y, C2)

		var impulse Vec3
		if K.Ez.Z > 0.0 {
			impulse = K.Solve33(C).OperatorNegate()
		} else {
			impulse2 := K.Solve22(C1).OperatorNegate()
			impulse.Set(impulse2.X, impulse2.Y, 0.0)
		}

		P := MakeVec2(impulse.X, impulse.Y)

		cA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		aA -= iA * (Vec2Cross(rA, P) + impulse.Z)

		cB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		aB += iB * (Vec2Cross(rB, P) + impulse.Z)
	}

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return positionError <= conf.LinearSlop && angularError <= conf.AngularSlop
}

/// Gets a weld joint configuration fusing the identified bodies about the
/// given world anchor at their current relative angle.
func GetWeldJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchor Vec2) (WeldJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return WeldJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return WeldJointConf{}, err
	}
	conf := MakeWeldJointConf(bodyIDA, bodyIDB)
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	conf.ReferenceAngle = bodyB.GetAngle() - bodyA.GetAngle()
	return conf, nil
}
