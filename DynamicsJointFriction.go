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

/// Friction joint configuration. This is used for top-down friction.
/// It provides 2D translational friction and angular friction.
type FrictionJointConf struct {
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

	/// The maximum friction force in N.
	MaxForce float64

	/// The maximum friction torque in N-m.
	MaxTorque float64

	// Accumulated impulses, persisted across steps for warm starting.
	M_linearImpulse  Vec2
	M_angularImpulse float64

	// Solver temp
	M_rA           Vec2
	M_rB           Vec2
	M_localCenterA Vec2
	M_localCenterB Vec2
	M_invMassA     float64
	M_invMassB     float64
	M_invIA        float64
	M_invIB        float64
	M_linearMass   Mat22
	M_angularMass  float64
}

func MakeFrictionJointConf(bodyA BodyID, bodyB BodyID) FrictionJointConf {
	return FrictionJointConf{
		BodyA: bodyA,
		BodyB: bodyB,
	}
}

func (joint FrictionJointConf) UseCollideConnected(flag bool) FrictionJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint FrictionJointConf) UseLocalAnchorA(value Vec2) FrictionJointConf {
	joint.LocalAnchorA = value
	return joint
}

func (joint FrictionJointConf) UseLocalAnchorB(value Vec2) FrictionJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint FrictionJointConf) UseMaxForce(value float64) FrictionJointConf {
	joint.MaxForce = value
	return joint
}

func (joint FrictionJointConf) UseMaxTorque(value float64) FrictionJointConf {
	joint.MaxTorque = value
	return joint
}

func (joint FrictionJointConf) GetType() uint8 {
	return JointType.E_frictionJoint
}

func (joint FrictionJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint FrictionJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint FrictionJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint FrictionJointConf) GetLinearReaction() Vec2 {
	return joint.M_linearImpulse
}

func (joint FrictionJointConf) GetAngularReaction() float64 {
	return joint.M_angularImpulse
}

func (joint FrictionJointConf) clone() JointConf {
	return &joint
}

func (joint *FrictionJointConf) shiftOrigin(newOrigin Vec2) bool {
	return false
}

func (joint *FrictionJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
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

	// Compute the effective mass matrix.
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

func (joint *FrictionJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
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

	solved := true

	// Solve angular friction
	{
		Cdot := wB - wA
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
		Cdot := Vec2Sub(Vec2Sub(Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB)), vA), Vec2CrossScalarVector(wA, joint.M_rA))

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

func (joint *FrictionJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	return true
}

/// Gets a friction joint configuration between the identified bodies
/// anchored at the given world point.
func GetFrictionJointConf(world *World, bodyIDA BodyID, bodyIDB BodyID, anchor Vec2) (FrictionJointConf, error) {
	bodyA, err := world.validBody(bodyIDA)
	if err != nil {
		return FrictionJointConf{}, err
	}
	bodyB, err := world.validBody(bodyIDB)
	if err != nil {
		return FrictionJointConf{}, err
	}
	conf := MakeFrictionJointConf(bodyIDA, bodyIDB)
	conf.LocalAnchorA = bodyA.GetLocalPoint(anchor)
	conf.LocalAnchorB = bodyB.GetLocalPoint(anchor)
	return conf, nil
}
