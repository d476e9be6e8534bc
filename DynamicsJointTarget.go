package playrho

// p = attached point, m = target point
// C = p - m
// Cdot = v
//      = v + cross(w, r)
// J = [I r_skew]
// Identity used:
// w k % (rx i + ry j) = w * (-ry i + rx j)

/// Target joint configuration. A target joint is used to make a point
/// on a body track a specified world point. This a soft constraint
/// with a maximum force. This allows the constraint to stretch and
/// without applying huge forces.
/// Only body B participates in this joint. Body A is unused and
/// defaults to the invalid body identifier.
type TargetJointConf struct {
	/// Unused. Kept so the configuration carries the same body pair
	/// layout as the other joints.
	BodyA BodyID

	/// The attached body.
	BodyB BodyID

	/// Set this flag to true if the attached bodies should collide.
	CollideConnected bool

	/// The world target point. This is assumed to coincide with the
	/// body anchor initially.
	Target Vec2

	/// The local anchor point relative to body B's origin.
	LocalAnchorB Vec2

	/// The maximum constraint force that can be exerted to move the
	/// candidate body. Usually you will express as some multiple of
	/// the weight (multiplier * mass * acceleration).
	MaxForce float64

	/// The response speed in hertz.
	Frequency float64

	/// The damping ratio. 0 = no damping, 1 = critical damping.
	DampingRatio float64

	/// Softness parameter with units of inverse mass. Computed each
	/// step from the frequency and damping ratio.
	M_gamma float64

	// Accumulated impulse, persisted across steps for warm starting.
	M_impulse Vec2

	// Solver temp
	M_rB           Vec2
	M_localCenterB Vec2
	M_invMassB     float64
	M_invIB        float64
	M_mass         Mat22
	M_C            Vec2
}

func MakeTargetJointConf(bodyB BodyID) TargetJointConf {
	return TargetJointConf{
		BodyA:        InvalidBodyID,
		BodyB:        bodyB,
		Frequency:    5.0,
		DampingRatio: 0.7,
	}
}

func (joint TargetJointConf) UseCollideConnected(flag bool) TargetJointConf {
	joint.CollideConnected = flag
	return joint
}

func (joint TargetJointConf) UseTarget(value Vec2) TargetJointConf {
	assert(value.IsValid())
	joint.Target = value
	return joint
}

func (joint TargetJointConf) UseLocalAnchorB(value Vec2) TargetJointConf {
	joint.LocalAnchorB = value
	return joint
}

func (joint TargetJointConf) UseMaxForce(value float64) TargetJointConf {
	assert(IsValidFloat(value) && value >= 0.0)
	joint.MaxForce = value
	return joint
}

func (joint TargetJointConf) UseFrequency(value float64) TargetJointConf {
	assert(IsValidFloat(value) && value >= 0.0)
	joint.Frequency = value
	return joint
}

func (joint TargetJointConf) UseDampingRatio(value float64) TargetJointConf {
	assert(IsValidFloat(value) && value >= 0.0)
	joint.DampingRatio = value
	return joint
}

func (joint TargetJointConf) GetType() uint8 {
	return JointType.E_targetJoint
}

func (joint TargetJointConf) GetBodyA() BodyID {
	return joint.BodyA
}

func (joint TargetJointConf) GetBodyB() BodyID {
	return joint.BodyB
}

func (joint TargetJointConf) GetCollideConnected() bool {
	return joint.CollideConnected
}

func (joint TargetJointConf) GetLinearReaction() Vec2 {
	return joint.M_impulse
}

func (joint TargetJointConf) GetAngularReaction() float64 {
	return 0.0
}

func (joint TargetJointConf) clone() JointConf {
	return &joint
}

func (joint *TargetJointConf) shiftOrigin(newOrigin Vec2) bool {
	joint.Target.OperatorMinusInplace(newOrigin)
	return true
}

func (joint *TargetJointConf) initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	bcB := At(bodies, joint.BodyB)

	joint.M_localCenterB = bcB.LocalCenter
	joint.M_invMassB = bcB.InvMass
	joint.M_invIB = bcB.InvRotInertia

	cB := bcB.Position.Linear
	aB := bcB.Position.Angular
	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	qB := MakeRotFromAngle(aB)

	mass := 0.0
	if joint.M_invMassB != 0.0 {
		mass = 1.0 / joint.M_invMassB
	}

	// Frequency
	omega := 2.0 * Pi * joint.Frequency

	// Damping coefficient
	d := 2.0 * mass * joint.DampingRatio * omega

	// Spring stiffness
	k := mass * (omega * omega)

	// magic formulas
	// gamma has units of inverse mass.
	// beta has units of inverse time.
	h := step.DeltaTime
	assert(d+h*k > epsilon)
	joint.M_gamma = h * (d + h*k)
	if joint.M_gamma != 0.0 {
		joint.M_gamma = 1.0 / joint.M_gamma
	}
	beta := h * k * joint.M_gamma

	// Compute the effective mass matrix.
	joint.M_rB = RotVec2Mul(qB, Vec2Sub(joint.LocalAnchorB, joint.M_localCenterB))

	// K    = [(1/m1 + 1/m2) * eye(2) - skew(r1) * invI1 * skew(r1) - skew(r2) * invI2 * skew(r2)]
	//      = [1/m1+1/m2     0    ] + invI1 * [r1.y*r1.y -r1.x*r1.y] + invI2 * [r1.y*r1.y -r1.x*r1.y]
	//        [    0     1/m1+1/m2]           [-r1.x*r1.y r1.x*r1.x]           [-r1.x*r1.y r1.x*r1.x]
	var K Mat22
	K.Ex.X = joint.M_invMassB + joint.M_invIB*joint.M_rB.Y*joint.M_rB.Y + joint.M_gamma
	K.Ex.Y = -joint.M_invIB * joint.M_rB.X * joint.M_rB.Y
	K.Ey.X = K.Ex.Y
	K.Ey.Y = joint.M_invMassB + joint.M_invIB*joint.M_rB.X*joint.M_rB.X + joint.M_gamma

	joint.M_mass = K.GetInverse()

	joint.M_C = Vec2Sub(Vec2Add(cB, joint.M_rB), joint.Target)
	joint.M_C.OperatorScalarMulInplace(beta)

	// Cheat with some damping
	wB *= 0.98

	if step.DoWarmStart {
		joint.M_impulse.OperatorScalarMulInplace(step.DtRatio)
		vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, joint.M_impulse))
		wB += joint.M_invIB * Vec2Cross(joint.M_rB, joint.M_impulse)
	} else {
		joint.M_impulse.SetZero()
	}

	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB
}

func (joint *TargetJointConf) solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	bcB := At(bodies, joint.BodyB)

	vB := bcB.Velocity.Linear
	wB := bcB.Velocity.Angular

	// Cdot = v + cross(w, r)
	Cdot := Vec2Add(vB, Vec2CrossScalarVector(wB, joint.M_rB))
	impulse := Vec2Mat22Mul(joint.M_mass, (Vec2Add(Vec2Add(Cdot, joint.M_C), Vec2MulScalar(joint.M_gamma, joint.M_impulse))).OperatorNegate())

	oldImpulse := joint.M_impulse
	joint.M_impulse.OperatorPlusInplace(impulse)
	maxImpulse := step.DeltaTime * joint.MaxForce
	if joint.M_impulse.LengthSquared() > maxImpulse*maxImpulse {
		joint.M_impulse.OperatorScalarMulInplace(maxImpulse / joint.M_impulse.Length())
	}
	impulse = Vec2Sub(joint.M_impulse, oldImpulse)

	vB.OperatorPlusInplace(Vec2MulScalar(joint.M_invMassB, impulse))
	wB += joint.M_invIB * Vec2Cross(joint.M_rB, impulse)

	bcB.Velocity.Linear = vB
	bcB.Velocity.Angular = wB

	return impulse.X == 0.0 && impulse.Y == 0.0
}

func (joint *TargetJointConf) solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	return true
}

/// Gets a target joint configuration for dragging the identified body
/// toward the given world target, anchored at the target's current spot
/// on the body.
func GetTargetJointConf(world *World, bodyID BodyID, target Vec2) (TargetJointConf, error) {
	body, err := world.validBody(bodyID)
	if err != nil {
		return TargetJointConf{}, err
	}
	conf := MakeTargetJointConf(bodyID)
	conf.Target = target
	conf.LocalAnchorB = body.GetLocalPoint(target)
	return conf, nil
}
