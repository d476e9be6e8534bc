package playrho

import (
	"math"
)

// Linear constraint (point-to-line)
// d = pB - pA = xB + rB - xA - rA
// C = dot(ay, d)
// Cdot = dot(d, cross(wA, ay)) + dot(ay, vB + cross(wB, rB) - vA - cross(wA, rA))
//      = -dot(ay, vA) - dot(cross(d + rA, ay), wA) + dot(ay, vB) + dot(cross(rB, ay), vB)
// J = [-ay, -cross(d + rA, ay), ay, cross(rB, ay)]

// Spring linear constraint
// C = dot(ax, d)
// Cdot = = -dot(ax, vA) - dot(cross(d + rA, ax), wA) + dot(ax, vB) + dot(cross(rB, ax), vB)
// J = [-ax -cross(d+rA, ax) ax cross(rB, ax)]

// Motor rotational constraint
// Cdot = wB - wA
// J = [0 0 -1 0 0 1]

/// Wheel joint configuration. This joint provides two degrees of
/// freedom: translation along an axis fixed in body A and rotation in
/// the plane. In other words, it is a point to line constraint with a
/// rotational motor and a linear spring/damper. This joint is designed
/// for vehicle suspensions.
type WheelJointConf struct {
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

	/// The local translation axis in body A.
	LocalXAxisA Vec2

	/// The perpendicular of the local translation axis.
	LocalYAxisA Vec2

	/// Enable/disable the joint motor.
	EnableMotor bool

	/// The maximum motor torque, usually in N-m.
	MaxMotorTorque float64

	/// The desired motor speed in radians per second.
	MotorSpeed float64

	/// Suspension frequency, zero indicates no suspension.
	Frequency float64

	/// Suspension damping ratio, one indicates critical damping.
	DampingRatio float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_impulse        float64
	M_angularImpulse float64
	M_springImpulse  float64

	// Solver temp
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64

	M_ax  Vec2
	M_ay  Vec2
	M_sAx float64
	M_sBx float64
	M_sAy float64
	M_sBy float64

	M_mass        float64
	M_angularMass float64
	M_springMass  float64

	M_bias  float64
	M_gamma float64
}

func MakeWheelJointConf(bodyA BodyID, bodyB BodyID) WheelJointConf {
	return WheelJointConf{
		BodyA:        bodyA,
		BodyB:        bodyB,
		LocalXAxisA:  MakeVec2(1.0, 0.0),
		LocalYAxisA:  MakeVec2(0.0, 1.0),
		Frequency:    2.0,
		DampingRatio: 0.7,
	}
}

func (joint WheelJointConf) UseCollideConnected(flag bool) WheelJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint WheelJointConf) UseLocalAnchorA(value Vec2) WheelJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint WheelJointConf) UseLocalAnchorB(value Vec2) WheelJointConf {
	joint.LocalAnchorB = value
	return joint
}

/// Sets the local axis of translation, normalizing it and deriving the
/// perpendicular axis.
func (joint WheelJointConf) UseLocalAxisA(axis Vec2) WheelJointConf {
	axis.Normalize()
	joint.LocalXAxisA = axis
	joint.LocalYAxisA = Vec2CrossScalarVector(1.0, axis)
	return joint
}

func (joint WheelJointConf) UseEnableMotor(flag bool) WheelJointConf {
	joint.EnableMotor = flag
	return joint
}

func (joint WheelJointConf) UseMaxMotorTorque(value float64) WheelJointConf {
	joint.MaxMotorTorque = value
	return joint
}

func (joint WheelJointConf) UseMotorSpeed(value float64) WheelJointConf {
	joint.MotorSpeed = value
	return joint
}

func (joint WheelJointConf) UseFrequency(value float64) WheelJointConf {
	joint.Frequency = value
	return joint
}

func (joint WheelJointConf) UseDampingRatio(value float64) WheelJointConf {
	joint.DampingRatio = value
	return joint
}

func (joint WheelJointConf) GetType() uint8 {
	return JointType.E_wheelJoint
}

func (joint WheelJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint WheelJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint WheelJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint WheelJointConf) GetLinearReaction() Vec2 {
	return Vec2Add(Vec2MulScalar(joint.M_impulse, joint.M_ay), Vec2MulScalar(joint.M_springImpulse, joint.M_ax))
}

func (joint WheelJointConf) GetAngularReaction() float64 {
	return joint.M_angularImpulse
}

func (joint WheelJointConf) clone() JointConf {
	return &joint
}

func (joint *WheelJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *WheelJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	joint.M_localCenterA = bcA.LocalCenter
	joint.M_localCenterB = bcB.LocalCenter
	joint.M_invMassA = bcA.InvMass
	joint.M_invMassB = bcB.InvMass
	joint.M_invIA = bcA.InvRotInertia
	joint.M_invIB = bcB.InvRotInertia

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

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
	d := Vec2Sub(Vec2Sub(Vec2Add(cB, rB), cA), rA)

	// Point to line constraint
	{
		joint.M_ay = RotVec2Mul(qA, joint.LocalYAxisA)
		joint.M_sAy = Vec2Cross(Vec2Add(d, rA), joint.M_ay)
		joint.M_sBy = Vec2Cross(rB, joint.M_ay)

		joint.M_mass = mA + mB + iA*joint.M_sAy*joint.M_sAy + iB*joint.M_sBy*joint.M_sBy

		if joint.M_mass > 0.0 {
			joint.M_mass = 1.0 / joint.M_mass
		}
	}

	// Spring constraint
	joint.M_springMass = 0.0
	joint.M_bias = 0.0
	joint.M_gamma = 0.0
	if joint.Frequency > 0.0 {
		joint.M_ax = RotVec2Mul(qA, joint.LocalXAxisA)
		joint.M_sAx = Vec2Cross(Vec2Add(d, rA), joint.M_ax)
		joint.M_sBx = Vec2Cross(rB, joint.M_ax)

		invMass := mA + mB + iA*joint.M_sAx*joint.M_sAx + iB*joint.M_sBx*joint.M_sBx

		if invMass > 0.0 {
			joint.M_springMass = 1.0 / invMass

			C := Vec2Dot(d, joint.M_ax)

			// Frequency
			omega := 2.0 * Pi * joint.Frequency

			// Damping coefficient
			damp := 2.0 * joint.M_springMass * joint.DampingRatio * omega

			// Spring stiffness
			k := joint.M_springMass * omega * omega

			// magic formulas
			h := step.DeltaTime
			joint.M_gamma = h * (damp + h*k)
			if joint.M_gamma > 0.0 {
				joint.M_gamma = 1.0 / joint.M_gamma
			}

			joint.M_bias = C * h * k * joint.M_gamma

			joint.M_springMass = invMass + joint.M_gamma
			if joint.M_springMass > 0.0 {
				joint.M_springMass = 1.0 / joint.M_springMass
			}
		}
	} else {
		joint.M_springImpulse = 0.0
	}

	// Rotational motor
	if joint.EnableMotor {
		joint.M_angularMass = iA + iB
		if joint.M_angularMass > 0.0 {
			joint.M_angularMass = 1.0 / joint.M_angularMass
		}
	} else {
		joint.M_angularMass = 0.0
		joint.M_angularImpulse = 0.0
	}

	if step.DoWarmStart {
		// Account for variable time step.
		joint.M_impulse *= step.DtRatio
		joint.M_springImpulse *= step.DtRatio
		joint.M_angularImpulse *= step.DtRatio

		P := Vec2Add(Vec2MulScalar(joint.M_impulse, joint.M_ay), Vec2MulScalar(joint.M_springImpulse, joint.M_ax))
		LA := joint.M_impulse*joint.M_sAy + joint.M_springImpulse*joint.M_sAx + joint.M_angularImpulse
		LB := joint.M_impulse*joint.M_sBy + joint.M_springImpulse*joint.M_sBx + joint.M_angularImpulse

		vA.OperatorMinusInplace(Vec2MulScalar(joint.M_invMassA, P))
		wA -= joint.M_invIA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, P))
		wB += joint.M_invIB * LB
	} else {
		joint.M_impulse = 0.0
		joint.M_springImpulse = 0.0
		joint.M_angularImpulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *WheelJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcA := At(bodies, joint.BodyA)
	bcB := At(bodies, joint.BodyB)

	mA := joint.M_invMassA
	mB := joint.M_invMassB
	iA := joint.M_invIA
	iB := joint.M_invIB

	vA := bcA.Velocity.Linear
	wA := bcA.Velocity.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	solved := true

	// Solve spring constraint
	{
		Cdot := Vec2Dot(joint.M_ax, Vec2Sub(vB, vA)) + joint.M_sBx*wB - joint.M_sAx*wA
		impulse := -joint.M_springMass * (Cdot + joint.M_bias + joint.M_gamma*joint.M_springImpulse)
		joint.M_springImpulse += impulse

		P := Vec2MulScalar(impulse, joint.M_ax)
		LA := impulse * joint.M_sAx
		LB := impulse * joint.M_sBx

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB

		if impulse != 0.0 {
			solved = false
		}
	}

	// Solve rotational motor constraint
	{
		Cdot := wB - wA - joint.MotorSpeed
		impulse := -joint.M_angularMass * Cdot

		oldImpulse := joint.M_angularImpulse
		maxImpulse := step.DeltaTime * joint.MaxMotorTorque
		joint.M_angularImpulse = FloatClamp(joint.M_angularImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_angularImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse

		if impulse != 0.0 {
			solved = false
		}
	}

	// Solve point to line constraint
	{
		Cdot := Vec2Dot(joint.M_ay, Vec2Sub(vB, vA)) + joint.M_sBy*wB - joint.M_sAy*wA
		impulse := -joint.M_mass * Cdot
		joint.M_impulse += impulse

		P := Vec2MulScalar(impulse, joint.M_ay)
		LA := impulse * joint.M_sAy
		LB := impulse * joint.M_sBy

		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * LA

		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * LB

		if impulse != 0.0 {
			solved = false
		}
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return solved
}

func (joint *WheelJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
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
	d := Vec2Sub(Vec2Add(Vec2Sub(cB, cA), rB), rA)

	ay := RotVec2Mul(qA, joint.LocalYAxisA)

	sAy := Vec2Cross(Vec2Add(d, rA), ay)
	sBy := Vec2Cross(rB, ay)

	C := Vec2Dot(d, ay)

	k := joint.M_invMassA + joint.M_invMassB + joint.M_invIA*joint.M_sAy*joint.M_sAy + joint.M_invIB*joint.M_sBy*joint.M_sBy

	impulse := 0.0
	if k != 0.0 {
		impulse = -C / k
	}

	P := Vec2MulScalar(impulse, ay)
	LA := impulse * sAy
	LB := impulse * sBy

	cA.OperatorMinusInplace(Vec2MulScalar(joint.M_invMassA, P))
	aA -= joint.M_invIA * LA
	cB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, P))
	aB += joint.M_invIB * LB

	bcA.Position.Linear = cA
	bcA.Position.Angular = aA
	bcB.Position.Linear = cB
	bcB.Position.Angular = aB

	return math.Abs(C) <= conf.LinearSlop
}

/// Gets a wheel joint configuration suspending body B from body A along
/// the given world axis through the given world anchor.
func GetWheelJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchor Vec2, axis Vec2) (WheelJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return WheelJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return WheelJointConf{}, err
	}
	conf := MakeWheelJointConf(bodyIDA, bodyIDB).UseLocalAxisA(bodyA.GetLocalVector(axis))
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	return conf, nil
}
