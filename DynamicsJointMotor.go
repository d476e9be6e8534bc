package playrho

// Point-to-point constraint
// Cdot = v2 - v1
//      = v2 + cross(w2, r2) - v1 - cross(w1, r1)
// J = [-I -r1_skew I r2_skew ]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

// Angle constraint
// Cdot = w2 - w1
// J = [0 0 -1 0 0 1]
// K = invI1 + invI2

/// Motor joint configuration. A motor joint is used to control the
/// relative motion between two bodies. A typical usage is to control
/// the movement of a dynamic body with respect to the ground.
type MotorJointConf struct {
	/// The first attached body.
	BodyA BodyID

	/// The second attached body.
	BodyB BodyID

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool

	/// Position of bodyB minus the position of bodyA, in bodyA's
	/// frame, in meters.
	LinearOffset Vec2

	/// The bodyB angle minus bodyA angle in radians.
	AngularOffset float64

	/// The maximum motor force in N.
	MaxForce float64

	/// The maximum motor torque in N-m.
	MaxTorque float64

	/// Position correction factor in the range [0,1].
	CorrectionFactor float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_linearImpulse  Vec2
	M_angularImpulse float64

	// Solver temp
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_linearError  Vec2
	M_angularError float64
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_linearMass   Mat22
	M_angularMass  float64
}

func MakeMotorJointConf(bodyA BodyID, bodyB BodyID) MotorJointConf {
	return MotorJointConf{
		BodyA:            bodyA,
		BodyB:            bodyB,
		MaxForce:         1.0,
		MaxTorque:        1.0,
		CorrectionFactor: 0.3,
	}
}

func (joint MotorJointConf) UseCollideConnected(flag bool) MotorJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint MotorJointConf) UseLinearOffset(value Vec2) MotorJointConf {
	joint.LinearOffset = value
	return joint
}

func (joint MotorJointConf) UseAngularOffset(value float64) MotorJointConf {
	joint.AngularOffset = value
	return joint
}

func (joint MotorJointConf) UseMaxForce(value float64) MotorJointConf {
	assert(IsValidFloat(value) && value >= 0.0)
	joint.MaxForce = value
	return joint
}

func (joint MotorJointConf) UseMaxTorque(value float64) MotorJointConf {
	assert(IsValidFloat(value) && value >= 0.0)
	joint.MaxTorque = value
	return joint
}

func (joint MotorJointConf) UseCorrectionFactor(value float64) MotorJointConf {
	assert(IsValidFloat(value) && 0.0 <= value && value <= 1.0)
	joint.CorrectionFactor = value
	return joint
}

func (joint MotorJointConf) GetType() uint8 {
	return JointType.E_motorJoint
}

func (joint MotorJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint MotorJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint MotorJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint MotorJointConf) GetLinearReaction() Vec2 {
	return joint.M_linearImpulse
}

func (joint MotorJointConf) GetAngularReaction() float64 {
	return joint.M_angularImpulse
}

func (joint MotorJointConf) clone() JointConf {
	return &joint
}

func (joint *MotorJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *MotorJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	// Compute the effective mass matrix.
	joint.M_rA = RotVec2Mul(qA, joint.M_localCenterA.OperatorNegate())
	joint.M_rB = RotVec2Mul(qB, joint.M_localCenterB.OperatorNegate())

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

	var K Mat22
	K.Ex.X = mA + mB + iA*joint.M_rA.Y*joint.M_rA.Y + iB*joint.M_rB.Y*joint.M_rB.Y
	K.Ex.Y = -iA*joint.M_rA.X*joint.M_rA.Y - iB*joint.M_rB.X*joint.M_rB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = mA + mB + iA*joint.M_rA.X*joint.M_rA.X + iB*joint.M_rB.X*joint.M_rB.X

	joint.M_linearMass = K.GetInverse()

	joint.M_angularMass = iA + iB
	if joint.M_angularMass > 0.0 {
		joint.M_angularMass = 1.0 / joint.M_angularMass
	}

	joint.M_linearError = Vec2Sub(Vec2Sub(Vec2Sub(Vec2Add(cB, joint.M_rB), cA), joint.M_rA), RotVec2Mul(qA, joint.LinearOffset))
	joint.M_angularError = aB - aA - joint.AngularOffset

	if step.DoWarmStart {
		// Scale impulses to support a variable time step.
		joint.M_linearImpulse.OperatorScalarMulInplace(step.DtRatio)
		joint.M_angularImpulse *= step.DtRatio

		P := MakeVec2(joint.M_linearImpulse.X, joint.M_linearImpulse.Y)
		vA.OperatorMinusInplace(Vec2MulScalar(mA, P))
		wA -= iA * (Vec2Cross(joint.M_rA, P) + joint.M_angularImpulse)
		vB.OperatorPlusInplace(Vec2MulScalar(mB, P))
		wB += iB * (Vec2Cross(joint.M_rB, P) + joint.M_angularImpulse)
	} else {
		joint.M_linearImpulse.SetZero()
		joint.M_angularImpulse = 0.0
	}

	bcA.Velocity.Linear = vA
	bcA.Velocity.Angular = wA
	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *MotorJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
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

	h := step.DeltaTime
	invH := step.GetInvTime()

	solved := true

	// Solve angular friction
	{
		Cdot := wB - wA + invH*joint.CorrectionFactor*joint.M_angularError
		impulse := -joint.M_angularMass * Cdot

		oldImpulse := joint.M_angularImpulse
		maxImpulse := h * joint.MaxTorque
		joint.M_angularImpulse = FloatClamp(joint.M_angularImpulse+impulse, -maxImpulse, maxImpulse)
		impulse = joint.M_angularImpulse - oldImpulse

		wA -= iA * impulse
		wB += iB * impulse

		if impulse != 0.0 {
			solved = false
		}
	}

	// Solve linear friction
	{
		Cdot := Vec2Add(Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA)), Vec2MulScalar(invH*joint.CorrectionFactor, joint.M_linearError))

		impulse := Vec2Mat22Mul(joint.M_linearMass, Cdot).OperatorNegate()
		oldImpulse := joint.M_linearImpulse
		joint.M_linearImpulse.OperatorPlusInplace(impulse)

		maxImpulse := h * joint.MaxForce

		if joint.M_linearImpulse.LengthSquared() > maxImpulse*maxImpulse {
			joint.M_linearImpulse.Normalize()
			joint.M_linearImpulse.OperatorScalarMulInplace(maxImpulse)
		}

		impulse = Vec2Sub(joint.M_linearImpulse, oldImpulse)

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

func (joint *MotorJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	return true
}

/// Gets a motor joint configuration for driving body B relative to body A
/// from their current relative placement.
func GetMotorJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID) (MotorJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return MotorJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return MotorJointConf{}, err
	}
	conf := MakeMotorJointConf(bodyIDA, bodyIDB)
	conf.LinearOffset = bodyA.GetLocalPoint(bodyB.GetLocation())
	conf.AngularOffset = bodyB.GetAngle() - bodyA.GetAngle()
	return conf, nil
}
