package playrho_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestJointTypeName(t *testing.T) {
	names := map[uint8]string{
		playrho.JointType.E_unknownJoint:   "unknown",
		playrho.JointType.E_revoluteJoint:  "revolute",
		playrho.JointType.E_prismaticJoint: "prismatic",
		playrho.JointType.E_distanceJoint:  "distance",
		playrho.JointType.E_pulleyJoint:    "pulley",
		playrho.JointType.E_targetJoint:    "target",
		playrho.JointType.E_gearJoint:      "gear",
		playrho.JointType.E_wheelJoint:     "wheel",
		playrho.JointType.E_weldJoint:      "weld",
		playrho.JointType.E_frictionJoint:  "friction",
		playrho.JointType.E_ropeJoint:      "rope",
		playrho.JointType.E_motorJoint:     "motor",
	}
	for jointType, want := range names {
		assert.Equal(t, want, playrho.JointTypeName(jointType))
	}
	assert.Equal(t, "unknown", playrho.JointTypeName(0))
	assert.Equal(t, "unknown", playrho.JointTypeName(200))
}

func TestJointConfDefaults(t *testing.T) {
	bodyA := playrho.BodyID(1)
	bodyB := playrho.BodyID(2)

	distance := playrho.MakeDistanceJointConf(bodyA, bodyB)
	assert.Equal(t, 1.0, distance.Length)
	assert.Zero(t, distance.Frequency)
	assert.False(t, distance.CollideConnected)

	pulley := playrho.MakePulleyJointConf(bodyA, bodyB)
	assert.True(t, pulley.CollideConnected)
	assert.Equal(t, 1.0, pulley.Ratio)
	assert.Equal(t, playrho.MakeVec2(-1, 1), pulley.GroundAnchorA)
	assert.Equal(t, playrho.MakeVec2(1, 1), pulley.GroundAnchorB)
	assert.Equal(t, playrho.MakeVec2(-1, 0), pulley.LocalAnchorA)
	assert.Equal(t, playrho.MakeVec2(1, 0), pulley.LocalAnchorB)

	gear := playrho.MakeGearJointConf(bodyA, bodyB, playrho.BodyID(3), playrho.BodyID(4))
	assert.Equal(t, playrho.JointType.E_revoluteJoint, gear.TypeAC)
	assert.Equal(t, playrho.JointType.E_revoluteJoint, gear.TypeBD)
	assert.Equal(t, 1.0, gear.Ratio)

	target := playrho.MakeTargetJointConf(bodyB)
	assert.Equal(t, playrho.InvalidBodyID, target.BodyA)
	assert.Equal(t, bodyB, target.BodyB)
	assert.Equal(t, 5.0, target.Frequency)
	assert.Equal(t, 0.7, target.DampingRatio)
	assert.Zero(t, target.MaxForce)

	motor := playrho.MakeMotorJointConf(bodyA, bodyB)
	assert.Equal(t, 1.0, motor.MaxForce)
	assert.Equal(t, 1.0, motor.MaxTorque)
	assert.Equal(t, 0.3, motor.CorrectionFactor)

	wheel := playrho.MakeWheelJointConf(bodyA, bodyB)
	assert.Equal(t, playrho.MakeVec2(1, 0), wheel.LocalXAxisA)
	assert.Equal(t, playrho.MakeVec2(0, 1), wheel.LocalYAxisA)
	assert.Equal(t, 2.0, wheel.Frequency)
	assert.Equal(t, 0.7, wheel.DampingRatio)

	rope := playrho.MakeRopeJointConf(bodyA, bodyB)
	assert.Equal(t, playrho.MakeVec2(-1, 0), rope.LocalAnchorA)
	assert.Equal(t, playrho.MakeVec2(1, 0), rope.LocalAnchorB)
	assert.Zero(t, rope.MaxLength)

	prismatic := playrho.MakePrismaticJointConf(bodyA, bodyB)
	assert.Equal(t, playrho.MakeVec2(1, 0), prismatic.LocalXAxisA)
	assert.Equal(t, playrho.MakeVec2(0, 1), prismatic.LocalYAxisA)
	assert.False(t, prismatic.EnableLimit)
	assert.False(t, prismatic.EnableMotor)
}

func TestJointConfBuilderChains(t *testing.T) {
	bodyA := playrho.BodyID(1)
	bodyB := playrho.BodyID(2)

	revolute := playrho.MakeRevoluteJointConf(bodyA, bodyB).
		UseCollideConnected(true).
		UseLocalAnchorA(playrho.MakeVec2(0.5, 0)).
		UseLocalAnchorB(playrho.MakeVec2(-0.5, 0)).
		UseReferenceAngle(0.25).
		UseEnableLimit(true).
		UseLowerAngle(-0.5).
		UseUpperAngle(0.5).
		UseEnableMotor(true).
		UseMotorSpeed(2).
		UseMaxMotorTorque(10)
	assert.True(t, revolute.CollideConnected)
	assert.Equal(t, playrho.MakeVec2(0.5, 0), revolute.LocalAnchorA)
	assert.Equal(t, playrho.MakeVec2(-0.5, 0), revolute.LocalAnchorB)
	assert.Equal(t, 0.25, revolute.ReferenceAngle)
	assert.True(t, revolute.EnableLimit)
	assert.Equal(t, -0.5, revolute.LowerAngle)
	assert.Equal(t, 0.5, revolute.UpperAngle)
	assert.True(t, revolute.EnableMotor)
	assert.Equal(t, 2.0, revolute.MotorSpeed)
	assert.Equal(t, 10.0, revolute.MaxMotorTorque)

	// The axis builder normalizes and derives the perpendicular.
	wheel := playrho.MakeWheelJointConf(bodyA, bodyB).UseLocalAxisA(playrho.MakeVec2(0, 1))
	assert.Equal(t, playrho.MakeVec2(0, 1), wheel.LocalXAxisA)
	assert.Equal(t, playrho.MakeVec2(-1, 0), wheel.LocalYAxisA)

	motor := playrho.MakeMotorJointConf(bodyA, bodyB).
		UseLinearOffset(playrho.MakeVec2(1, 2)).
		UseAngularOffset(0.75).
		UseMaxForce(50).
		UseMaxTorque(40).
		UseCorrectionFactor(0.5)
	assert.Equal(t, playrho.MakeVec2(1, 2), motor.LinearOffset)
	assert.Equal(t, 0.75, motor.AngularOffset)
	assert.Equal(t, 50.0, motor.MaxForce)
	assert.Equal(t, 40.0, motor.MaxTorque)
	assert.Equal(t, 0.5, motor.CorrectionFactor)
}

func TestMakeJointCopiesItsConfiguration(t *testing.T) {
	conf := playrho.MakeDistanceJointConf(playrho.BodyID(1), playrho.BodyID(2)).UseLength(2)
	joint := playrho.MakeJoint(&conf)

	conf.Length = 9

	length, err := playrho.GetLength(joint)
	require.NoError(t, err)
	assert.Equal(t, 2.0, length)
	assert.Equal(t, playrho.MakeVec2(0, 0), joint.GetLinearReaction())
	assert.Zero(t, joint.GetAngularReaction())
}

// One joint of every configuration variant, for exercising the accessor
// support matrix.
func makeAllJoints() map[uint8]playrho.Joint {
	bodyA := playrho.BodyID(1)
	bodyB := playrho.BodyID(2)

	distance := playrho.MakeDistanceJointConf(bodyA, bodyB)
	friction := playrho.MakeFrictionJointConf(bodyA, bodyB)
	gear := playrho.MakeGearJointConf(bodyA, bodyB, playrho.BodyID(3), playrho.BodyID(4))
	motor := playrho.MakeMotorJointConf(bodyA, bodyB)
	prismatic := playrho.MakePrismaticJointConf(bodyA, bodyB)
	pulley := playrho.MakePulleyJointConf(bodyA, bodyB)
	revolute := playrho.MakeRevoluteJointConf(bodyA, bodyB)
	rope := playrho.MakeRopeJointConf(bodyA, bodyB)
	target := playrho.MakeTargetJointConf(bodyB)
	weld := playrho.MakeWeldJointConf(bodyA, bodyB)
	wheel := playrho.MakeWheelJointConf(bodyA, bodyB)

	return map[uint8]playrho.Joint{
		playrho.JointType.E_distanceJoint:  playrho.MakeJoint(&distance),
		playrho.JointType.E_frictionJoint:  playrho.MakeJoint(&friction),
		playrho.JointType.E_gearJoint:      playrho.MakeJoint(&gear),
		playrho.JointType.E_motorJoint:     playrho.MakeJoint(&motor),
		playrho.JointType.E_prismaticJoint: playrho.MakeJoint(&prismatic),
		playrho.JointType.E_pulleyJoint:    playrho.MakeJoint(&pulley),
		playrho.JointType.E_revoluteJoint:  playrho.MakeJoint(&revolute),
		playrho.JointType.E_ropeJoint:      playrho.MakeJoint(&rope),
		playrho.JointType.E_targetJoint:    playrho.MakeJoint(&target),
		playrho.JointType.E_weldJoint:      playrho.MakeJoint(&weld),
		playrho.JointType.E_wheelJoint:     playrho.MakeJoint(&wheel),
	}
}

func supportsOp(types []uint8, jointType uint8) bool {
	for _, v := range types {
		if v == jointType {
			return true
		}
	}
	return false
}

func TestJointAccessorSupportMatrix(t *testing.T) {
	jt := playrho.JointType
	allButGear := []uint8{
		jt.E_distanceJoint, jt.E_frictionJoint, jt.E_motorJoint,
		jt.E_prismaticJoint, jt.E_pulleyJoint, jt.E_revoluteJoint,
		jt.E_ropeJoint, jt.E_targetJoint, jt.E_weldJoint, jt.E_wheelJoint,
	}

	cases := []struct {
		name      string
		supported []uint8
		call      func(playrho.Joint) error
	}{
		{"GetLocalAnchorA", allButGear,
			func(j playrho.Joint) error { _, err := playrho.GetLocalAnchorA(j); return err }},
		{"GetLocalAnchorB", allButGear,
			func(j playrho.Joint) error { _, err := playrho.GetLocalAnchorB(j); return err }},
		{"GetReferenceAngle", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_weldJoint},
			func(j playrho.Joint) error { _, err := playrho.GetReferenceAngle(j); return err }},
		{"GetLocalXAxisA", []uint8{jt.E_prismaticJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLocalXAxisA(j); return err }},
		{"GetLocalYAxisA", []uint8{jt.E_prismaticJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLocalYAxisA(j); return err }},
		{"GetMotorSpeed", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetMotorSpeed(j); return err }},
		{"GetAngularMass", []uint8{jt.E_frictionJoint, jt.E_motorJoint, jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetAngularMass(j); return err }},
		{"GetMaxMotorTorque", []uint8{jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetMaxMotorTorque(j); return err }},
		{"GetMaxForce", []uint8{jt.E_frictionJoint, jt.E_motorJoint, jt.E_prismaticJoint, jt.E_targetJoint},
			func(j playrho.Joint) error { _, err := playrho.GetMaxForce(j); return err }},
		{"GetMaxTorque", []uint8{jt.E_frictionJoint, jt.E_motorJoint},
			func(j playrho.Joint) error { _, err := playrho.GetMaxTorque(j); return err }},
		{"GetRatio", []uint8{jt.E_gearJoint, jt.E_pulleyJoint},
			func(j playrho.Joint) error { _, err := playrho.GetRatio(j); return err }},
		{"GetFrequency", []uint8{jt.E_distanceJoint, jt.E_targetJoint, jt.E_weldJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetFrequency(j); return err }},
		{"GetDampingRatio", []uint8{jt.E_distanceJoint, jt.E_targetJoint, jt.E_weldJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetDampingRatio(j); return err }},
		{"GetLength", []uint8{jt.E_distanceJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLength(j); return err }},
		{"GetMaxLength", []uint8{jt.E_ropeJoint},
			func(j playrho.Joint) error { _, err := playrho.GetMaxLength(j); return err }},
		{"GetAngularMotorImpulse", []uint8{jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.GetAngularMotorImpulse(j); return err }},
		{"GetLinearMotorImpulse", []uint8{jt.E_prismaticJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLinearMotorImpulse(j); return err }},
		{"GetTarget", []uint8{jt.E_targetJoint},
			func(j playrho.Joint) error { _, err := playrho.GetTarget(j); return err }},
		{"GetAngularLowerLimit", []uint8{jt.E_revoluteJoint},
			func(j playrho.Joint) error { _, err := playrho.GetAngularLowerLimit(j); return err }},
		{"GetAngularUpperLimit", []uint8{jt.E_revoluteJoint},
			func(j playrho.Joint) error { _, err := playrho.GetAngularUpperLimit(j); return err }},
		{"GetLinearLowerLimit", []uint8{jt.E_prismaticJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLinearLowerLimit(j); return err }},
		{"GetLinearUpperLimit", []uint8{jt.E_prismaticJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLinearUpperLimit(j); return err }},
		{"IsLimitEnabled", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint},
			func(j playrho.Joint) error { _, err := playrho.IsLimitEnabled(j); return err }},
		{"IsMotorEnabled", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j playrho.Joint) error { _, err := playrho.IsMotorEnabled(j); return err }},
		{"GetLimitState", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_ropeJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLimitState(j); return err }},
		{"GetLinearOffset", []uint8{jt.E_motorJoint},
			func(j playrho.Joint) error { _, err := playrho.GetLinearOffset(j); return err }},
		{"GetAngularOffset", []uint8{jt.E_motorJoint},
			func(j playrho.Joint) error { _, err := playrho.GetAngularOffset(j); return err }},
		{"GetCorrectionFactor", []uint8{jt.E_motorJoint},
			func(j playrho.Joint) error { _, err := playrho.GetCorrectionFactor(j); return err }},
		{"GetGroundAnchorA", []uint8{jt.E_pulleyJoint},
			func(j playrho.Joint) error { _, err := playrho.GetGroundAnchorA(j); return err }},
		{"GetGroundAnchorB", []uint8{jt.E_pulleyJoint},
			func(j playrho.Joint) error { _, err := playrho.GetGroundAnchorB(j); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for jointType, joint := range makeAllJoints() {
				err := tc.call(joint)
				if supportsOp(tc.supported, jointType) {
					assert.NoError(t, err, "on a %s joint", playrho.JointTypeName(jointType))
				} else {
					assert.ErrorIs(t, err, playrho.ErrUnsupportedOperation,
						"on a %s joint", playrho.JointTypeName(jointType))
				}
			}
		})
	}
}

func TestJointSetterSupportMatrix(t *testing.T) {
	jt := playrho.JointType

	cases := []struct {
		name      string
		supported []uint8
		call      func(*playrho.Joint) error
	}{
		{"SetMotorSpeed", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j *playrho.Joint) error { return playrho.SetMotorSpeed(j, 1) }},
		{"SetMaxMotorTorque", []uint8{jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j *playrho.Joint) error { return playrho.SetMaxMotorTorque(j, 5) }},
		{"SetFrequency", []uint8{jt.E_distanceJoint, jt.E_targetJoint, jt.E_weldJoint, jt.E_wheelJoint},
			func(j *playrho.Joint) error { return playrho.SetFrequency(j, 3) }},
		{"SetTarget", []uint8{jt.E_targetJoint},
			func(j *playrho.Joint) error { return playrho.SetTarget(j, playrho.MakeVec2(1, 1)) }},
		{"SetAngularLimits", []uint8{jt.E_revoluteJoint},
			func(j *playrho.Joint) error { return playrho.SetAngularLimits(j, -1, 1) }},
		{"SetLinearLimits", []uint8{jt.E_prismaticJoint},
			func(j *playrho.Joint) error { return playrho.SetLinearLimits(j, -1, 1) }},
		{"EnableLimit", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint},
			func(j *playrho.Joint) error { return playrho.EnableLimit(j, true) }},
		{"EnableMotor", []uint8{jt.E_prismaticJoint, jt.E_revoluteJoint, jt.E_wheelJoint},
			func(j *playrho.Joint) error { return playrho.EnableMotor(j, true) }},
		{"SetLinearOffset", []uint8{jt.E_motorJoint},
			func(j *playrho.Joint) error { return playrho.SetLinearOffset(j, playrho.MakeVec2(1, 0)) }},
		{"SetAngularOffset", []uint8{jt.E_motorJoint},
			func(j *playrho.Joint) error { return playrho.SetAngularOffset(j, 0.5) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for jointType, joint := range makeAllJoints() {
				err := tc.call(&joint)
				if supportsOp(tc.supported, jointType) {
					assert.NoError(t, err, "on a %s joint", playrho.JointTypeName(jointType))
				} else {
					assert.ErrorIs(t, err, playrho.ErrUnsupportedOperation,
						"on a %s joint", playrho.JointTypeName(jointType))
				}
			}
		})
	}
}

func TestJointSettersRoundTrip(t *testing.T) {
	revConf := playrho.MakeRevoluteJointConf(playrho.BodyID(1), playrho.BodyID(2))
	revolute := playrho.MakeJoint(&revConf)

	require.NoError(t, playrho.SetMotorSpeed(&revolute, 3))
	speed, err := playrho.GetMotorSpeed(revolute)
	require.NoError(t, err)
	assert.Equal(t, 3.0, speed)

	require.NoError(t, playrho.EnableMotor(&revolute, true))
	enabled, err := playrho.IsMotorEnabled(revolute)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, playrho.SetAngularLimits(&revolute, -0.5, 0.5))
	lower, err := playrho.GetAngularLowerLimit(revolute)
	require.NoError(t, err)
	assert.Equal(t, -0.5, lower)
	upper, err := playrho.GetAngularUpperLimit(revolute)
	require.NoError(t, err)
	assert.Equal(t, 0.5, upper)

	// Inverted limits are rejected and leave the joint unchanged.
	err = playrho.SetAngularLimits(&revolute, 1, -1)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
	lower, err = playrho.GetAngularLowerLimit(revolute)
	require.NoError(t, err)
	assert.Equal(t, -0.5, lower)

	prisConf := playrho.MakePrismaticJointConf(playrho.BodyID(1), playrho.BodyID(2))
	prismatic := playrho.MakeJoint(&prisConf)
	err = playrho.SetLinearLimits(&prismatic, 2, -2)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
	require.NoError(t, playrho.SetLinearLimits(&prismatic, -2, 2))
	lower, err = playrho.GetLinearLowerLimit(prismatic)
	require.NoError(t, err)
	assert.Equal(t, -2.0, lower)
}

func TestUnsupportedOperationMessage(t *testing.T) {
	conf := playrho.MakeDistanceJointConf(playrho.BodyID(1), playrho.BodyID(2))
	joint := playrho.MakeJoint(&conf)

	_, err := playrho.GetMotorSpeed(joint)
	assert.EqualError(t, err, "GetMotorSpeed on a distance joint: unsupported operation")

	_, err = playrho.GetLength(playrho.Joint{})
	assert.ErrorIs(t, err, playrho.ErrUnsupportedOperation)
}
