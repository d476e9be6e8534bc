package playrho

import (
	"fmt"
)

var JointType = struct {
	E_unknownJoint   uint8
	E_revoluteJoint  uint8
	E_prismaticJoint uint8
	E_distanceJoint  uint8
	E_pulleyJoint    uint8
	E_targetJoint    uint8
	E_gearJoint      uint8
	E_wheelJoint     uint8
	E_weldJoint      uint8
	E_frictionJoint  uint8
	E_ropeJoint      uint8
	E_motorJoint     uint8
}{
	E_unknownJoint:   1,
	E_revoluteJoint:  2,
	E_prismaticJoint: 3,
	E_distanceJoint:  4,
	E_pulleyJoint:    5,
	E_targetJoint:    6,
	E_gearJoint:      7,
	E_wheelJoint:     8,
	E_weldJoint:      9,
	E_frictionJoint:  10,
	E_ropeJoint:      11,
	E_motorJoint:     12,
}

func JointTypeName(jointType uint8) string {
	switch jointType {
	case JointType.E_revoluteJoint:
		return "revolute"
	case JointType.E_prismaticJoint:
		return "prismatic"
	case JointType.E_distanceJoint:
		return "distance"
	case JointType.E_pulleyJoint:
		return "pulley"
	case JointType.E_targetJoint:
		return "target"
	case JointType.E_gearJoint:
		return "gear"
	case JointType.E_wheelJoint:
		return "wheel"
	case JointType.E_weldJoint:
		return "weld"
	case JointType.E_frictionJoint:
		return "friction"
	case JointType.E_ropeJoint:
		return "rope"
	case JointType.E_motorJoint:
		return "motor"
	}
	return "unknown"
}

var LimitState = struct {
	E_inactiveLimit uint8
	E_atLowerLimit  uint8
	E_atUpperLimit  uint8
	E_equalLimits   uint8
}{
	E_inactiveLimit: 1,
	E_atLowerLimit:  2,
	E_atUpperLimit:  3,
	E_equalLimits:   4,
}

/// The interface the joint configuration variants implement. The solving
/// and cloning methods are unexported so the set of variants is closed:
/// the eleven *JointConf types in this package are the only implementations.
///
/// Solver-temporary fields of a variant (relative anchor arms, effective
/// mass matrices) are only valid from its initVelocityConstraints call to
/// the end of the enclosing step. Accumulated impulses persist across
/// steps for warm starting and are only zeroed at construction.
type JointConf interface {
	GetType() uint8
	GetBodyA() BodyID
	GetBodyB() BodyID
	GetCollideConnected() bool

	/// Gets the accumulated linear impulse of the most recent velocity
	/// solving, in kilogram meters per second.
	GetLinearReaction() Vec2

	/// Gets the accumulated angular impulse of the most recent velocity
	/// solving, in kilogram square meters per second.
	GetAngularReaction() float64

	// Translates any stored world coordinates by -newOrigin and reports
	// whether anything changed.
	shiftOrigin(newOrigin Vec2) bool

	initVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf)
	solveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool
	solvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool

	clone() JointConf
}

/// A joint constrains two bodies together in some fashion; some joints
/// also feature limits and motors. Joint is a value type over the closed
/// set of configuration variants: copying a Joint copies the full variant
/// state, and joints move in and out of a world by value.
type Joint struct {
	conf JointConf

	// Marks membership in the island currently being built. Only
	// meaningful to the world between clearing flags and solving.
	islanded bool
}

/// Makes a joint from the given configuration variant. The variant is
/// copied, so the joint is unaffected by later changes to it.
func MakeJoint(conf JointConf) Joint {
	assert(conf != nil)
	return Joint{conf: conf.clone()}
}

/// Whether this joint holds a configuration. The zero Joint does not.
func (j Joint) IsValid() bool {
	return j.conf != nil
}

func (j Joint) GetType() uint8 {
	if j.conf == nil {
		return JointType.E_unknownJoint
	}
	return j.conf.GetType()
}

func (j Joint) GetBodyA() BodyID {
	if j.conf == nil {
		return InvalidBodyID
	}
	return j.conf.GetBodyA()
}

func (j Joint) GetBodyB() BodyID {
	if j.conf == nil {
		return InvalidBodyID
	}
	return j.conf.GetBodyB()
}

func (j Joint) GetCollideConnected() bool {
	if j.conf == nil {
		return false
	}
	return j.conf.GetCollideConnected()
}

func (j Joint) GetLinearReaction() Vec2 {
	if j.conf == nil {
		return MakeVec2(0, 0)
	}
	return j.conf.GetLinearReaction()
}

func (j Joint) GetAngularReaction() float64 {
	if j.conf == nil {
		return 0.0
	}
	return j.conf.GetAngularReaction()
}

/// Shifts the origin of any world coordinates the joint stores, for
/// coordinate system re-centering. Returns whether the joint changed.
func (j *Joint) ShiftOrigin(newOrigin Vec2) bool {
	if j.conf == nil {
		return false
	}
	return j.conf.shiftOrigin(newOrigin)
}

/// Initializes the joint's velocity constraint data from the bodies'
/// current positions and velocities. This must be called once before
/// solving the velocity constraints of a step; it mutates only the
/// joint's solver-temporary fields, warm starting the bodies' velocities
/// from the accumulated impulses.
func (j *Joint) InitVelocityConstraints(bodies []BodyConstraint, step *StepConf, conf ConstraintSolverConf) {
	j.conf.initVelocityConstraints(bodies, step, conf)
}

/// Applies one sequential-impulse correction to the bodies' velocities
/// and accumulates the applied impulse. Returns whether the constraint is
/// satisfied to tolerance. Callers run their full iteration budget
/// regardless of the result; it is reporting only.
func (j *Joint) SolveVelocityConstraints(bodies []BodyConstraint, step *StepConf) bool {
	return j.conf.solveVelocityConstraints(bodies, step)
}

/// Applies one positional correction to the bodies' positions, never
/// touching velocities. Returns true if the positional error is within
/// the configuration's tolerance.
func (j *Joint) SolvePositionConstraints(bodies []BodyConstraint, conf ConstraintSolverConf) bool {
	return j.conf.solvePositionConstraints(bodies, conf)
}

func errJointUnsupported(op string, jointType uint8) error {
	return fmt.Errorf("%s on a %s joint: %w", op, JointTypeName(jointType), ErrUnsupportedOperation)
}

/// Gets the local anchor point on body A for joint types that anchor to
/// body A. For target and motor joints this is the zero point.
func GetLocalAnchorA(j Joint) (Vec2, error) {
	switch conf := j.conf.(type) {
	case *DistanceJointConf:
		return conf.LocalAnchorA, nil
	case *FrictionJointConf:
		return conf.LocalAnchorA, nil
	case *PrismaticJointConf:
		return conf.LocalAnchorA, nil
	case *PulleyJointConf:
		return conf.LocalAnchorA, nil
	case *RevoluteJointConf:
		return conf.LocalAnchorA, nil
	case *RopeJointConf:
		return conf.LocalAnchorA, nil
	case *WeldJointConf:
		return conf.LocalAnchorA, nil
	case *WheelJointConf:
		return conf.LocalAnchorA, nil
	case *MotorJointConf:
		return MakeVec2(0, 0), nil
	case *TargetJointConf:
		return MakeVec2(0, 0), nil
	}
	return Vec2{}, errJointUnsupported("GetLocalAnchorA", j.GetType())
}

/// Gets the local anchor point on body B for joint types that anchor to
/// body B. For motor joints this is the zero point.
func GetLocalAnchorB(j Joint) (Vec2, error) {
	switch conf := j.conf.(type) {
	case *DistanceJointConf:
		return conf.LocalAnchorB, nil
	case *FrictionJointConf:
		return conf.LocalAnchorB, nil
	case *PrismaticJointConf:
		return conf.LocalAnchorB, nil
	case *PulleyJointConf:
		return conf.LocalAnchorB, nil
	case *RevoluteJointConf:
		return conf.LocalAnchorB, nil
	case *RopeJointConf:
		return conf.LocalAnchorB, nil
	case *TargetJointConf:
		return conf.LocalAnchorB, nil
	case *WeldJointConf:
		return conf.LocalAnchorB, nil
	case *WheelJointConf:
		return conf.LocalAnchorB, nil
	case *MotorJointConf:
		return MakeVec2(0, 0), nil
	}
	return Vec2{}, errJointUnsupported("GetLocalAnchorB", j.GetType())
}

/// Gets the reference angle between the joint's bodies if the type has
/// one.
func GetReferenceAngle(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.ReferenceAngle, nil
	case *RevoluteJointConf:
		return conf.ReferenceAngle, nil
	case *WeldJointConf:
		return conf.ReferenceAngle, nil
	}
	return 0, errJointUnsupported("GetReferenceAngle", j.GetType())
}

/// Gets the local X axis of motion for joints that constrain motion to an
/// axis of body A.
func GetLocalXAxisA(j Joint) (Vec2, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.LocalXAxisA, nil
	case *WheelJointConf:
		return conf.LocalXAxisA, nil
	}
	return Vec2{}, errJointUnsupported("GetLocalXAxisA", j.GetType())
}

/// Gets the local Y axis, the counter-clockwise perpendicular of the
/// local X axis.
func GetLocalYAxisA(j Joint) (Vec2, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.LocalYAxisA, nil
	case *WheelJointConf:
		return conf.LocalYAxisA, nil
	}
	return Vec2{}, errJointUnsupported("GetLocalYAxisA", j.GetType())
}

/// Gets the motor speed of motorized joints; angular (radians per
/// second) for revolute and wheel joints, linear (meters per second)
/// for prismatic joints.
func GetMotorSpeed(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.MotorSpeed, nil
	case *RevoluteJointConf:
		return conf.MotorSpeed, nil
	case *WheelJointConf:
		return conf.MotorSpeed, nil
	}
	return 0, errJointUnsupported("GetMotorSpeed", j.GetType())
}

func SetMotorSpeed(j *Joint, speed float64) error {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		conf.MotorSpeed = speed
		return nil
	case *RevoluteJointConf:
		conf.MotorSpeed = speed
		return nil
	case *WheelJointConf:
		conf.MotorSpeed = speed
		return nil
	}
	return errJointUnsupported("SetMotorSpeed", j.GetType())
}

/// Gets the rotational inertia the joint's velocity constraint works
/// against, in kilogram square meters. Only valid after the joint's
/// constraints got initialized.
func GetAngularMass(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *FrictionJointConf:
		return conf.M_angularMass, nil
	case *MotorJointConf:
		return conf.M_angularMass, nil
	case *RevoluteJointConf:
		return conf.M_motorMass, nil
	case *WheelJointConf:
		return conf.M_angularMass, nil
	}
	return 0, errJointUnsupported("GetAngularMass", j.GetType())
}

func GetMaxMotorTorque(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *RevoluteJointConf:
		return conf.MaxMotorTorque, nil
	case *WheelJointConf:
		return conf.MaxMotorTorque, nil
	}
	return 0, errJointUnsupported("GetMaxMotorTorque", j.GetType())
}

func SetMaxMotorTorque(j *Joint, torque float64) error {
	switch conf := j.conf.(type) {
	case *RevoluteJointConf:
		conf.MaxMotorTorque = torque
		return nil
	case *WheelJointConf:
		conf.MaxMotorTorque = torque
		return nil
	}
	return errJointUnsupported("SetMaxMotorTorque", j.GetType())
}

/// Gets the maximum motor force for joints with a linear motor or force
/// limit.
func GetMaxForce(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *FrictionJointConf:
		return conf.MaxForce, nil
	case *MotorJointConf:
		return conf.MaxForce, nil
	case *PrismaticJointConf:
		return conf.MaxMotorForce, nil
	case *TargetJointConf:
		return conf.MaxForce, nil
	}
	return 0, errJointUnsupported("GetMaxForce", j.GetType())
}

/// Gets the maximum torque for joints with a torque limit.
func GetMaxTorque(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *FrictionJointConf:
		return conf.MaxTorque, nil
	case *MotorJointConf:
		return conf.MaxTorque, nil
	}
	return 0, errJointUnsupported("GetMaxTorque", j.GetType())
}

/// Gets the ratio of gear and pulley joints.
func GetRatio(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *GearJointConf:
		return conf.Ratio, nil
	case *PulleyJointConf:
		return conf.Ratio, nil
	}
	return 0, errJointUnsupported("GetRatio", j.GetType())
}

/// Gets the frequency in hertz of joints with a soft constraint. Zero
/// means rigid.
func GetFrequency(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *DistanceJointConf:
		return conf.Frequency, nil
	case *TargetJointConf:
		return conf.Frequency, nil
	case *WeldJointConf:
		return conf.Frequency, nil
	case *WheelJointConf:
		return conf.Frequency, nil
	}
	return 0, errJointUnsupported("GetFrequency", j.GetType())
}

func SetFrequency(j *Joint, frequency float64) error {
	switch conf := j.conf.(type) {
	case *DistanceJointConf:
		conf.Frequency = frequency
		return nil
	case *TargetJointConf:
		conf.Frequency = frequency
		return nil
	case *WeldJointConf:
		conf.Frequency = frequency
		return nil
	case *WheelJointConf:
		conf.Frequency = frequency
		return nil
	}
	return errJointUnsupported("SetFrequency", j.GetType())
}

/// Gets the damping ratio of joints with a soft constraint. Zero means no
/// damping, one critical damping.
func GetDampingRatio(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *DistanceJointConf:
		return conf.DampingRatio, nil
	case *TargetJointConf:
		return conf.DampingRatio, nil
	case *WeldJointConf:
		return conf.DampingRatio, nil
	case *WheelJointConf:
		return conf.DampingRatio, nil
	}
	return 0, errJointUnsupported("GetDampingRatio", j.GetType())
}

/// Gets the length of distance joints.
func GetLength(j Joint) (float64, error) {
	if conf, ok := j.conf.(*DistanceJointConf); ok {
		return conf.Length, nil
	}
	return 0, errJointUnsupported("GetLength", j.GetType())
}

/// Gets the maximum length of rope joints.
func GetMaxLength(j Joint) (float64, error) {
	if conf, ok := j.conf.(*RopeJointConf); ok {
		return conf.MaxLength, nil
	}
	return 0, errJointUnsupported("GetMaxLength", j.GetType())
}

/// Gets the accumulated angular impulse of the motor of revolute and
/// wheel joints.
func GetAngularMotorImpulse(j Joint) (float64, error) {
	switch conf := j.conf.(type) {
	case *RevoluteJointConf:
		return conf.M_motorImpulse, nil
	case *WheelJointConf:
		return conf.M_angularImpulse, nil
	}
	return 0, errJointUnsupported("GetAngularMotorImpulse", j.GetType())
}

/// Gets the accumulated linear motor impulse of prismatic joints.
func GetLinearMotorImpulse(j Joint) (float64, error) {
	if conf, ok := j.conf.(*PrismaticJointConf); ok {
		return conf.M_motorImpulse, nil
	}
	return 0, errJointUnsupported("GetLinearMotorImpulse", j.GetType())
}

/// Gets the target point of target joints.
func GetTarget(j Joint) (Vec2, error) {
	if conf, ok := j.conf.(*TargetJointConf); ok {
		return conf.Target, nil
	}
	return Vec2{}, errJointUnsupported("GetTarget", j.GetType())
}

func SetTarget(j *Joint, target Vec2) error {
	if conf, ok := j.conf.(*TargetJointConf); ok {
		conf.Target = target
		return nil
	}
	return errJointUnsupported("SetTarget", j.GetType())
}

/// Gets the lower angular limit of revolute joints.
func GetAngularLowerLimit(j Joint) (float64, error) {
	if conf, ok := j.conf.(*RevoluteJointConf); ok {
		return conf.LowerAngle, nil
	}
	return 0, errJointUnsupported("GetAngularLowerLimit", j.GetType())
}

/// Gets the upper angular limit of revolute joints.
func GetAngularUpperLimit(j Joint) (float64, error) {
	if conf, ok := j.conf.(*RevoluteJointConf); ok {
		return conf.UpperAngle, nil
	}
	return 0, errJointUnsupported("GetAngularUpperLimit", j.GetType())
}

/// Sets the angular limits of revolute joints.
func SetAngularLimits(j *Joint, lower, upper float64) error {
	if conf, ok := j.conf.(*RevoluteJointConf); ok {
		if !(lower <= upper) {
			return fmt.Errorf("angular limits %v > %v: %w", lower, upper, ErrInvalidArgument)
		}
		conf.LowerAngle = lower
		conf.UpperAngle = upper
		return nil
	}
	return errJointUnsupported("SetAngularLimits", j.GetType())
}

/// Gets the lower linear limit of prismatic joints.
func GetLinearLowerLimit(j Joint) (float64, error) {
	if conf, ok := j.conf.(*PrismaticJointConf); ok {
		return conf.LowerTranslation, nil
	}
	return 0, errJointUnsupported("GetLinearLowerLimit", j.GetType())
}

/// Gets the upper linear limit of prismatic joints.
func GetLinearUpperLimit(j Joint) (float64, error) {
	if conf, ok := j.conf.(*PrismaticJointConf); ok {
		return conf.UpperTranslation, nil
	}
	return 0, errJointUnsupported("GetLinearUpperLimit", j.GetType())
}

/// Sets the linear limits of prismatic joints.
func SetLinearLimits(j *Joint, lower, upper float64) error {
	if conf, ok := j.conf.(*PrismaticJointConf); ok {
		if !(lower <= upper) {
			return fmt.Errorf("linear limits %v > %v: %w", lower, upper, ErrInvalidArgument)
		}
		conf.LowerTranslation = lower
		conf.UpperTranslation = upper
		return nil
	}
	return errJointUnsupported("SetLinearLimits", j.GetType())
}

func IsLimitEnabled(j Joint) (bool, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.EnableLimit, nil
	case *RevoluteJointConf:
		return conf.EnableLimit, nil
	}
	return false, errJointUnsupported("IsLimitEnabled", j.GetType())
}

func EnableLimit(j *Joint, flag bool) error {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		conf.EnableLimit = flag
		return nil
	case *RevoluteJointConf:
		conf.EnableLimit = flag
		return nil
	}
	return errJointUnsupported("EnableLimit", j.GetType())
}

func IsMotorEnabled(j Joint) (bool, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.EnableMotor, nil
	case *RevoluteJointConf:
		return conf.EnableMotor, nil
	case *WheelJointConf:
		return conf.EnableMotor, nil
	}
	return false, errJointUnsupported("IsMotorEnabled", j.GetType())
}

func EnableMotor(j *Joint, flag bool) error {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		conf.EnableMotor = flag
		return nil
	case *RevoluteJointConf:
		conf.EnableMotor = flag
		return nil
	case *WheelJointConf:
		conf.EnableMotor = flag
		return nil
	}
	return errJointUnsupported("EnableMotor", j.GetType())
}

/// Gets the state of the joint limit of revolute, prismatic and rope
/// joints. Only meaningful after constraint initialization.
func GetLimitState(j Joint) (uint8, error) {
	switch conf := j.conf.(type) {
	case *PrismaticJointConf:
		return conf.M_limitState, nil
	case *RevoluteJointConf:
		return conf.M_limitState, nil
	case *RopeJointConf:
		return conf.M_limitState, nil
	}
	return 0, errJointUnsupported("GetLimitState", j.GetType())
}

/// Gets the linear offset of motor joints: the target position of body B
/// minus the position of body A, in body A's frame.
func GetLinearOffset(j Joint) (Vec2, error) {
	if conf, ok := j.conf.(*MotorJointConf); ok {
		return conf.LinearOffset, nil
	}
	return Vec2{}, errJointUnsupported("GetLinearOffset", j.GetType())
}

func SetLinearOffset(j *Joint, offset Vec2) error {
	if conf, ok := j.conf.(*MotorJointConf); ok {
		conf.LinearOffset = offset
		return nil
	}
	return errJointUnsupported("SetLinearOffset", j.GetType())
}

/// Gets the angular offset of motor joints: the target angle of body B
/// minus the angle of body A.
func GetAngularOffset(j Joint) (float64, error) {
	if conf, ok := j.conf.(*MotorJointConf); ok {
		return conf.AngularOffset, nil
	}
	return 0, errJointUnsupported("GetAngularOffset", j.GetType())
}

func SetAngularOffset(j *Joint, offset float64) error {
	if conf, ok := j.conf.(*MotorJointConf); ok {
		conf.AngularOffset = offset
		return nil
	}
	return errJointUnsupported("SetAngularOffset", j.GetType())
}

/// Gets the position correction factor of motor joints, in [0,1].
func GetCorrectionFactor(j Joint) (float64, error) {
	if conf, ok := j.conf.(*MotorJointConf); ok {
		return conf.CorrectionFactor, nil
	}
	return 0, errJointUnsupported("GetCorrectionFactor", j.GetType())
}

/// Gets the first ground anchor of pulley joints, in world coordinates.
func GetGroundAnchorA(j Joint) (Vec2, error) {
	if conf, ok := j.conf.(*PulleyJointConf); ok {
		return conf.GroundAnchorA, nil
	}
	return Vec2{}, errJointUnsupported("GetGroundAnchorA", j.GetType())
}

/// Gets the second ground anchor of pulley joints, in world coordinates.
func GetGroundAnchorB(j Joint) (Vec2, error) {
	if conf, ok := j.conf.(*PulleyJointConf); ok {
		return conf.GroundAnchorB, nil
	}
	return Vec2{}, errJointUnsupported("GetGroundAnchorB", j.GetType())
}
