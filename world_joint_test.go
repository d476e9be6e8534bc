package playrho_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestCreateJointValidation(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(3, 0)))
	require.NoError(t, err)

	_, err = world.CreateJoint(nil)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	require.NoError(t, world.DestroyBody(bodyB))
	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(3)
	_, err = world.CreateJoint(&conf)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)

	conf = playrho.MakeDistanceJointConf(bodyA, playrho.BodyID(99)).UseLength(3)
	_, err = world.CreateJoint(&conf)
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)

	assert.Zero(t, world.GetJointCount())
}

func TestJointLifecycle(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(2, 0)))
	require.NoError(t, err)

	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(2)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)
	assert.Equal(t, 1, world.GetJointCount())
	assert.Equal(t, []playrho.JointID{id}, world.GetJoints())

	joint, err := world.GetJoint(id)
	require.NoError(t, err)
	assert.True(t, joint.IsValid())
	assert.Equal(t, playrho.JointType.E_distanceJoint, joint.GetType())
	assert.Equal(t, bodyA, joint.GetBodyA())
	assert.Equal(t, bodyB, joint.GetBodyB())
	assert.False(t, joint.GetCollideConnected())

	length, err := playrho.GetLength(joint)
	require.NoError(t, err)
	assert.Equal(t, 2.0, length)

	edges, err := world.GetBodyJoints(bodyA)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, bodyB, edges[0].Other)
	assert.Equal(t, id, edges[0].Joint)

	require.NoError(t, world.DestroyJoint(id))
	assert.Zero(t, world.GetJointCount())
	edges, err = world.GetBodyJoints(bodyA)
	require.NoError(t, err)
	assert.Empty(t, edges)

	_, err = world.GetJoint(id)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)
	assert.ErrorIs(t, world.DestroyJoint(id), playrho.ErrWasDestroyed)
	_, err = world.GetJoint(playrho.InvalidJointID)
	assert.ErrorIs(t, err, playrho.ErrInvalidJointID)
	_, err = world.GetJoint(playrho.JointID(7))
	assert.ErrorIs(t, err, playrho.ErrInvalidJointID)
}

func TestJointWakeSemantics(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(2, 0)))
	require.NoError(t, err)
	require.NoError(t, world.UnsetAwake(bodyA))
	require.NoError(t, world.UnsetAwake(bodyB))

	// Creating a joint leaves the connected bodies sleeping.
	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(2)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)
	for _, body := range []playrho.BodyID{bodyA, bodyB} {
		awake, err := world.IsAwake(body)
		require.NoError(t, err)
		assert.False(t, awake)
	}

	// Destroying it wakes them.
	require.NoError(t, world.DestroyJoint(id))
	for _, body := range []playrho.BodyID{bodyA, bodyB} {
		awake, err := world.IsAwake(body)
		require.NoError(t, err)
		assert.True(t, awake)
	}
}

func TestJointSuppressesContactsBetweenConnectedBodies(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	anchor, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(anchor, playrho.MakeDiskShapeConf().UseRadius(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0.5, 0)))
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(1).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeDistanceJointConf(anchor, ball).UseLength(0.5)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	// The overlapping pair gets no contact while the joint suppresses it.
	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	stats, err := world.Step(stepConf)
	require.NoError(t, err)
	assert.Zero(t, stats.Pre.ContactsAdded)
	assert.Zero(t, world.GetContactCount())

	// With the joint gone the pair collides again once the broad phase
	// sees the ball move.
	require.NoError(t, world.DestroyJoint(id))
	require.NoError(t, world.SetTransform(ball, playrho.MakeVec2(0.25, 0), 0))
	stats, err = world.Step(stepConf)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Reg.ContactsAdded)
	assert.Equal(t, 1, world.GetContactCount())

	_, err = world.Step(stepConf)
	require.NoError(t, err)
	assert.Equal(t, 1, playrho.GetTouchingCount(&world))
}

func TestJointCopiesAreDetached(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(2, 0)))
	require.NoError(t, err)

	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(2)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	// Mutating a fetched copy must not touch the stored joint.
	joint, err := world.GetJoint(id)
	require.NoError(t, err)
	require.NoError(t, playrho.SetFrequency(&joint, 4))

	stored, err := world.GetJoint(id)
	require.NoError(t, err)
	frequency, err := playrho.GetFrequency(stored)
	require.NoError(t, err)
	assert.Zero(t, frequency)

	// Writing the copy back does.
	require.NoError(t, world.SetJoint(id, joint))
	stored, err = world.GetJoint(id)
	require.NoError(t, err)
	frequency, err = playrho.GetFrequency(stored)
	require.NoError(t, err)
	assert.Equal(t, 4.0, frequency)

	// The zero Joint holds no configuration to copy in.
	var zero playrho.Joint
	assert.False(t, zero.IsValid())
	assert.Equal(t, playrho.JointType.E_unknownJoint, zero.GetType())
	assert.Equal(t, playrho.InvalidBodyID, zero.GetBodyA())
	assert.ErrorIs(t, world.SetJoint(id, zero), playrho.ErrInvalidArgument)

	require.NoError(t, world.DestroyJoint(id))
	assert.ErrorIs(t, world.SetJoint(id, joint), playrho.ErrWasDestroyed)
}

func TestDistanceJointActsAsRigidRod(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	anchor, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(0, 4)))
	require.NoError(t, err)
	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(2, 4)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(0.2).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf, err := playrho.GetDistanceJointConf(&world, anchor, ball, playrho.MakeVec2(0, 4), playrho.MakeVec2(2, 4))
	require.NoError(t, err)
	assert.Equal(t, 2.0, conf.Length)
	assert.Equal(t, playrho.MakeVec2(0, 0), conf.LocalAnchorA)
	assert.Equal(t, playrho.MakeVec2(0, 0), conf.LocalAnchorB)
	_, err = world.CreateJoint(&conf)
	require.NoError(t, err)

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	minY := 4.0
	for i := 0; i < 120; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)

		location, err := world.GetLocation(ball)
		require.NoError(t, err)
		distance := math.Hypot(location.X, location.Y-4)
		assert.InDelta(t, 2.0, distance, 0.05)
		minY = math.Min(minY, location.Y)
	}
	assert.Less(t, minY, 2.3, "the ball must swing through the bottom of its arc")
}

func TestRevoluteJointPinsPendulum(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	pivot := playrho.MakeVec2(0, 2)
	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	bob, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(1.5, 2)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(bob, playrho.MakeDiskShapeConf().UseRadius(0.3).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf, err := playrho.GetRevoluteJointConf(&world, ground, bob, pivot)
	require.NoError(t, err)
	assert.Equal(t, pivot, conf.LocalAnchorA)
	assert.Equal(t, playrho.MakeVec2(-1.5, 0), conf.LocalAnchorB)
	assert.Zero(t, conf.ReferenceAngle)
	_, err = world.CreateJoint(&conf)
	require.NoError(t, err)

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	minY := 2.0
	for i := 0; i < 120; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)

		location, err := world.GetLocation(bob)
		require.NoError(t, err)
		distance := math.Hypot(location.X, location.Y-2)
		assert.InDelta(t, 1.5, distance, 0.05)
		minY = math.Min(minY, location.Y)
	}
	assert.Less(t, minY, 0.8, "the bob must swing through the bottom of its arc")
}

func TestGearJointCouplesRevoluteJoints(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	gearA, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(gearA, playrho.MakeDiskShapeConf().UseRadius(0.3).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	gearB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(2, 0)).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(gearB, playrho.MakeDiskShapeConf().UseRadius(0.3).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	revConfA, err := playrho.GetRevoluteJointConf(&world, ground, gearA, playrho.MakeVec2(0, 0))
	require.NoError(t, err)
	revA, err := world.CreateJoint(&revConfA)
	require.NoError(t, err)
	revConfB, err := playrho.GetRevoluteJointConf(&world, ground, gearB, playrho.MakeVec2(2, 0))
	require.NoError(t, err)
	revB, err := world.CreateJoint(&revConfB)
	require.NoError(t, err)

	conf, err := playrho.GetGearJointConf(&world, revA, revB, 2)
	require.NoError(t, err)
	assert.Equal(t, playrho.JointType.E_revoluteJoint, conf.TypeAC)
	assert.Equal(t, playrho.JointType.E_revoluteJoint, conf.TypeBD)
	assert.Equal(t, gearA, conf.BodyA)
	assert.Equal(t, gearB, conf.BodyB)
	assert.Equal(t, ground, conf.BodyC)
	assert.Equal(t, ground, conf.BodyD)
	assert.Equal(t, 2.0, conf.Ratio)
	assert.Zero(t, conf.Constant)
	gearID, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	joint, err := world.GetJoint(gearID)
	require.NoError(t, err)
	ratio, err := playrho.GetRatio(joint)
	require.NoError(t, err)
	assert.Equal(t, 2.0, ratio)

	// Spin the first gear. The coupling holds angleA + 2*angleB at zero,
	// so the unit angular velocity splits into 0.8 and -0.4 between two
	// bodies of equal rotational inertia.
	require.NoError(t, world.SetVelocity(gearA, playrho.MakeVelocity(playrho.MakeVec2(0, 0), 1)))
	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 60; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)
	}

	angleA, err := world.GetAngle(gearA)
	require.NoError(t, err)
	angleB, err := world.GetAngle(gearB)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, angleA+2*angleB, 1e-9)
	assert.InDelta(t, 0.8, angleA, 1e-6)
	assert.InDelta(t, -0.4, angleB, 1e-6)

	// Gears ride on revolute or prismatic joints, nothing else.
	distConf := playrho.MakeDistanceJointConf(gearA, gearB).UseLength(2)
	distID, err := world.CreateJoint(&distConf)
	require.NoError(t, err)
	_, err = playrho.GetGearJointConf(&world, distID, revB, 1)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	badConf := playrho.MakeGearJointConf(gearA, gearB, ground, ground)
	badConf.TypeAC = playrho.JointType.E_distanceJoint
	_, err = world.CreateJoint(&badConf)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
}

func TestPulleyJointConservesTotalRopeLength(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	groundAnchorA := playrho.MakeVec2(-1, 8)
	groundAnchorB := playrho.MakeVec2(1, 8)

	left, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(-1, 5)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity)).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(left, playrho.MakeDiskShapeConf().UseRadius(0.2).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	right, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(1, 5)).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(right, playrho.MakeDiskShapeConf().UseRadius(0.2).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	_, err = playrho.GetPulleyJointConf(&world, left, right,
		groundAnchorA, groundAnchorB, playrho.MakeVec2(-1, 5), playrho.MakeVec2(1, 5), 0)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	conf, err := playrho.GetPulleyJointConf(&world, left, right,
		groundAnchorA, groundAnchorB, playrho.MakeVec2(-1, 5), playrho.MakeVec2(1, 5), 1)
	require.NoError(t, err)
	assert.Equal(t, 3.0, conf.LengthA)
	assert.Equal(t, 3.0, conf.LengthB)
	assert.Equal(t, 6.0, conf.Constant)
	assert.True(t, conf.CollideConnected)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	joint, err := world.GetJoint(id)
	require.NoError(t, err)
	groundA, err := playrho.GetGroundAnchorA(joint)
	require.NoError(t, err)
	assert.Equal(t, groundAnchorA, groundA)
	groundB, err := playrho.GetGroundAnchorB(joint)
	require.NoError(t, err)
	assert.Equal(t, groundAnchorB, groundB)

	// Only the left body is under gravity: it descends and hoists the
	// right one, keeping the total rope length constant.
	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 60; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)
	}

	leftLoc, err := world.GetLocation(left)
	require.NoError(t, err)
	rightLoc, err := world.GetLocation(right)
	require.NoError(t, err)
	assert.Less(t, leftLoc.Y, 4.5)
	assert.Greater(t, rightLoc.Y, 5.5)

	lengthA := math.Hypot(leftLoc.X-groundAnchorA.X, leftLoc.Y-groundAnchorA.Y)
	lengthB := math.Hypot(rightLoc.X-groundAnchorB.X, rightLoc.Y-groundAnchorB.Y)
	assert.InDelta(t, 6.0, lengthA+lengthB, 0.05)
}

func TestTargetJointDragsBodyToTarget(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseAllowSleep(false))
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	mass, err := world.GetMass(ball)
	require.NoError(t, err)

	conf, err := playrho.GetTargetJointConf(&world, ball, playrho.MakeVec2(0, 0))
	require.NoError(t, err)
	assert.Equal(t, playrho.InvalidBodyID, conf.BodyA)
	assert.Equal(t, ball, conf.BodyB)
	assert.Equal(t, playrho.MakeVec2(0, 0), conf.LocalAnchorB)
	assert.Equal(t, 5.0, conf.Frequency)
	assert.Equal(t, 0.7, conf.DampingRatio)
	conf = conf.UseMaxForce(1000 * mass)
	id, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	// Move the target; the soft constraint reels the body in.
	joint, err := world.GetJoint(id)
	require.NoError(t, err)
	require.NoError(t, playrho.SetTarget(&joint, playrho.MakeVec2(2, 1)))
	require.NoError(t, world.SetJoint(id, joint))

	stored, err := world.GetJoint(id)
	require.NoError(t, err)
	target, err := playrho.GetTarget(stored)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(2, 1), target)

	stepConf := playrho.MakeStepConf().SetTime(1.0 / 60.0)
	for i := 0; i < 180; i++ {
		_, err := world.Step(stepConf)
		require.NoError(t, err)
	}

	location, err := world.GetLocation(ball)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, location.X, 0.05)
	assert.InDelta(t, 1.0, location.Y, 0.05)
}

func TestGravitationalAccelerationBetweenBodies(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	shape := playrho.MakeDiskShapeConf().UseRadius(1).UseDensity(1e10)
	bodyA, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(-8, 0)))
	require.NoError(t, err)
	_, err = world.CreateFixture(bodyA, shape, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	// A body alone in the world feels nothing.
	accelA, err := playrho.CalcGravitationalAcceleration(&world, bodyA)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), accelA)

	bodyB, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(8, 0)))
	require.NoError(t, err)
	_, err = world.CreateFixture(bodyB, shape, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)
	massB, err := world.GetMass(bodyB)
	require.NoError(t, err)

	// Equal masses 16 meters apart attract per m*G/r^2, along the line
	// between them.
	expected := playrho.BigG * massB / 256.0
	accelA, err = playrho.CalcGravitationalAcceleration(&world, bodyA)
	require.NoError(t, err)
	assert.InEpsilon(t, expected, accelA.X, 1e-12)
	assert.Zero(t, accelA.Y)

	accelB, err := playrho.CalcGravitationalAcceleration(&world, bodyB)
	require.NoError(t, err)
	assert.Equal(t, accelA.X, -accelB.X)
	assert.Zero(t, accelB.Y)

	_, err = playrho.CalcGravitationalAcceleration(&world, playrho.BodyID(42))
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)
}
