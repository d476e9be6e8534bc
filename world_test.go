package playrho_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func TestWorldDefaults(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	assert.False(t, world.IsLocked())
	assert.True(t, world.IsStepComplete())
	assert.False(t, world.GetSubStepping())
	assert.Equal(t, playrho.DefaultMinVertexRadius, world.GetMinVertexRadius())
	assert.Equal(t, playrho.DefaultMaxVertexRadius, world.GetMaxVertexRadius())
	assert.Equal(t, 0, world.GetBodyCount())
	assert.Equal(t, 0, world.GetJointCount())
	assert.Equal(t, 0, world.GetContactCount())
	assert.Equal(t, 0, world.GetProxyCount())
	assert.Empty(t, world.GetBodies())
	assert.Empty(t, world.GetJoints())
	assert.Empty(t, world.GetContacts())
}

func TestWorldConfBuilders(t *testing.T) {
	conf := playrho.MakeWorldConf().
		UseMinVertexRadius(0.02).
		UseMaxVertexRadius(20.0).
		UseBodyCapacity(64).
		UseJointCapacity(8).
		UseContactCapacity(128)

	assert.Equal(t, 0.02, conf.MinVertexRadius)
	assert.Equal(t, 20.0, conf.MaxVertexRadius)
	assert.Equal(t, 64, conf.BodyCapacity)
	assert.Equal(t, 8, conf.JointCapacity)
	assert.Equal(t, 128, conf.ContactCapacity)

	world := playrho.MakeWorld(conf)
	assert.Equal(t, 0.02, world.GetMinVertexRadius())
	assert.Equal(t, 20.0, world.GetMaxVertexRadius())
}

func TestCreateBodyDefaults(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	require.NotEqual(t, playrho.InvalidBodyID, id)

	bodyType, err := world.GetBodyType(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.BodyType.E_static, bodyType)

	location, err := world.GetLocation(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), location)

	angle, err := world.GetAngle(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, angle)

	mass, err := world.GetMass(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mass)

	awake, err := world.IsAwake(id)
	require.NoError(t, err)
	assert.True(t, awake)

	enabled, err := world.IsEnabled(id)
	require.NoError(t, err)
	assert.True(t, enabled)

	fixtures, err := world.GetFixtures(id)
	require.NoError(t, err)
	assert.Empty(t, fixtures)

	assert.Equal(t, 1, world.GetBodyCount())
	assert.Equal(t, []playrho.BodyID{id}, world.GetBodies())
}

func TestCreateBodyDynamicDefaultsToUnitMass(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)

	mass, err := world.GetMass(id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mass)

	invMass, err := world.GetInvMass(id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, invMass)
}

func TestCreateBodyRejectsNonFiniteConf(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	conf := playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(math.NaN(), 0))
	id, err := world.CreateBody(conf)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
	assert.Equal(t, playrho.InvalidBodyID, id)

	conf = playrho.MakeBodyConf().UseAngle(math.Inf(1))
	_, err = world.CreateBody(conf)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	conf = playrho.MakeBodyConf().UseLinearDamping(-1.0)
	_, err = world.CreateBody(conf)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	assert.Equal(t, 0, world.GetBodyCount())
}

func TestStaticBodyDropsConfMotion(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	// Velocity and acceleration make no sense on a static body; creation
	// accepts the conf but keeps the body motionless.
	conf := playrho.MakeBodyConf().
		UseLinearVelocity(playrho.MakeVec2(1, 2)).
		UseAngularVelocity(3).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity))
	id, err := world.CreateBody(conf)
	require.NoError(t, err)

	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), velocity.Linear)
	assert.Equal(t, 0.0, velocity.Angular)

	acceleration, err := world.GetLinearAcceleration(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), acceleration)
}

func TestKinematicBodyDropsConfAcceleration(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	conf := playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_kinematic).
		UseLinearVelocity(playrho.MakeVec2(1, 0)).
		UseLinearAcceleration(playrho.MakeVec2(0, playrho.EarthlyGravity))
	id, err := world.CreateBody(conf)
	require.NoError(t, err)

	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(1, 0), velocity.Linear)

	acceleration, err := world.GetLinearAcceleration(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), acceleration)
}

func TestDestroyBodyInvalidatesIdentifier(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	require.NoError(t, world.DestroyBody(id))

	assert.Equal(t, 0, world.GetBodyCount())

	_, err = world.GetLocation(id)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)

	err = world.DestroyBody(id)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)
}

func TestBodyIdentifierNeverValid(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	_, err := world.GetLocation(playrho.InvalidBodyID)
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)

	// An index beyond anything ever allocated.
	_, err = world.GetLocation(playrho.BodyID(42))
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)

	// A live slot index with a generation from another world's lifetime.
	id, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	forged := playrho.BodyID(uint32(id) | 0x00040000)
	_, err = world.GetLocation(forged)
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)
}

func TestBodySlotReuseChangesGeneration(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	first, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	require.NoError(t, world.DestroyBody(first))

	second, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(3, 4)))
	require.NoError(t, err)

	// The slot gets reused but the identifier does not.
	assert.NotEqual(t, first, second)

	location, err := world.GetLocation(second)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(3, 4), location)

	// Once the slot has a new tenant the stale identifier is just invalid.
	_, err = world.GetLocation(first)
	assert.ErrorIs(t, err, playrho.ErrInvalidBodyID)
}

func TestDestroyBodyDestroysAttachments(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic).UseLocation(playrho.MakeVec2(0, 2)))
	require.NoError(t, err)

	shape := playrho.MakeDiskShapeConf().UseRadius(0.5).UseDensity(1)
	fixture, err := world.CreateFixture(bodyA, shape, playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(2)
	joint, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	destroyedFixtures := []playrho.FixtureID{}
	world.SetFixtureDestructionListener(func(id playrho.FixtureID) {
		destroyedFixtures = append(destroyedFixtures, id)
	})
	destroyedJoints := []playrho.JointID{}
	world.SetJointDestructionListener(func(id playrho.JointID) {
		destroyedJoints = append(destroyedJoints, id)
	})

	require.NoError(t, world.DestroyBody(bodyA))

	assert.Equal(t, []playrho.FixtureID{fixture}, destroyedFixtures)
	assert.Equal(t, []playrho.JointID{joint}, destroyedJoints)

	_, err = world.GetFixture(fixture)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)
	_, err = world.GetJoint(joint)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)

	// The surviving body no longer knows the joint.
	edges, err := world.GetBodyJoints(bodyB)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestWorldLockedDuringStep(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	// Two overlapping disks so that stepping makes a contact begin to
	// touch and the listener below runs mid-step.
	ground, err := world.CreateBody(playrho.MakeBodyConf())
	require.NoError(t, err)
	_, err = world.CreateFixture(ground, playrho.MakeDiskShapeConf().UseRadius(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	ball, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLocation(playrho.MakeVec2(0, 0.5)))
	require.NoError(t, err)
	_, err = world.CreateFixture(ball, playrho.MakeDiskShapeConf().UseRadius(1).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	var insideStep []error
	world.SetBeginContactListener(func(id playrho.ContactID) {
		assert.True(t, world.IsLocked())
		_, err := world.CreateBody(playrho.MakeBodyConf())
		insideStep = append(insideStep, err)
		err = world.DestroyBody(ball)
		insideStep = append(insideStep, err)
		_, err = world.Step(playrho.MakeStepConf().SetTime(1.0 / 60.0))
		insideStep = append(insideStep, err)
	})

	_, err = world.Step(playrho.MakeStepConf().SetTime(1.0 / 60.0))
	require.NoError(t, err)

	require.NotEmpty(t, insideStep, "expected the begin contact listener to run")
	for _, err := range insideStep {
		assert.ErrorIs(t, err, playrho.ErrWorldLocked)
	}
	assert.False(t, world.IsLocked())
}

func TestStepRejectsNonFiniteTime(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	_, err := world.Step(playrho.MakeStepConf().SetTime(math.NaN()))
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	_, err = world.Step(playrho.MakeStepConf().SetTime(math.Inf(1)))
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
}

func TestStepZeroTimeIsANoOp(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearVelocity(playrho.MakeVec2(10, 0)))
	require.NoError(t, err)

	_, err = world.Step(playrho.MakeStepConf())
	require.NoError(t, err)

	location, err := world.GetLocation(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), location)
}

func TestClearDestroysEverything(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	bodyA, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)
	bodyB, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic).UseLocation(playrho.MakeVec2(5, 0)))
	require.NoError(t, err)

	fixture, err := world.CreateFixture(bodyA, playrho.MakeDiskShapeConf().UseRadius(1).UseDensity(1), playrho.MakeFixtureConf(), true)
	require.NoError(t, err)

	conf := playrho.MakeDistanceJointConf(bodyA, bodyB).UseLength(5)
	joint, err := world.CreateJoint(&conf)
	require.NoError(t, err)

	fixturesSeen := 0
	world.SetFixtureDestructionListener(func(id playrho.FixtureID) {
		assert.Equal(t, fixture, id)
		fixturesSeen++
	})
	jointsSeen := 0
	world.SetJointDestructionListener(func(id playrho.JointID) {
		assert.Equal(t, joint, id)
		jointsSeen++
	})

	require.NoError(t, world.Clear())

	assert.Equal(t, 1, fixturesSeen)
	assert.Equal(t, 1, jointsSeen)
	assert.Equal(t, 0, world.GetBodyCount())
	assert.Equal(t, 0, world.GetJointCount())
	assert.Equal(t, 0, world.GetContactCount())
	assert.Equal(t, 0, world.GetProxyCount())

	_, err = world.GetLocation(bodyA)
	assert.ErrorIs(t, err, playrho.ErrWasDestroyed)

	// A cleared world is usable again.
	_, err = world.CreateBody(playrho.MakeBodyConf())
	assert.NoError(t, err)
}

func TestSetTransform(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)

	require.NoError(t, world.SetTransform(id, playrho.MakeVec2(2, 3), 0.5))

	xf, err := world.GetTransform(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(2, 3), xf.P)

	angle, err := world.GetAngle(id)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, angle, 1e-12)

	err = world.SetTransform(id, playrho.MakeVec2(math.NaN(), 0), 0)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)
}

func TestSetBodyType(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseLinearVelocity(playrho.MakeVec2(4, 0)))
	require.NoError(t, err)

	require.NoError(t, world.SetBodyType(id, playrho.BodyType.E_static))

	bodyType, err := world.GetBodyType(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.BodyType.E_static, bodyType)

	// Becoming static stops the body.
	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, 0), velocity.Linear)
	assert.Equal(t, 0.0, velocity.Angular)

	mass, err := world.GetMass(id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, mass)

	require.NoError(t, world.SetBodyType(id, playrho.BodyType.E_dynamic))
	mass, err = world.GetMass(id)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mass)
}

func TestSetVelocityValidation(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().UseType(playrho.BodyType.E_dynamic))
	require.NoError(t, err)

	err = world.SetVelocity(id, playrho.MakeVelocity(playrho.MakeVec2(math.Inf(-1), 0), 0))
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	require.NoError(t, world.SetVelocity(id, playrho.MakeVelocity(playrho.MakeVec2(1, 2), 3)))
	velocity, err := world.GetVelocity(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(1, 2), velocity.Linear)
	assert.Equal(t, 3.0, velocity.Angular)
}

func TestSetAccelerationWakesAccelerable(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().
		UseType(playrho.BodyType.E_dynamic).
		UseAwake(false))
	require.NoError(t, err)

	awake, err := world.IsAwake(id)
	require.NoError(t, err)
	require.False(t, awake)

	err = world.SetAcceleration(id, playrho.MakeVec2(0, math.NaN()), 0)
	assert.ErrorIs(t, err, playrho.ErrInvalidArgument)

	require.NoError(t, world.SetAcceleration(id, playrho.MakeVec2(0, playrho.EarthlyGravity), 0))

	awake, err = world.IsAwake(id)
	require.NoError(t, err)
	assert.True(t, awake)

	acceleration, err := world.GetLinearAcceleration(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(0, playrho.EarthlyGravity), acceleration)
}

func TestShiftOrigin(t *testing.T) {
	world := playrho.MakeWorld(playrho.MakeWorldConf())

	id, err := world.CreateBody(playrho.MakeBodyConf().UseLocation(playrho.MakeVec2(10, 5)))
	require.NoError(t, err)

	require.NoError(t, world.ShiftOrigin(playrho.MakeVec2(4, 1)))

	location, err := world.GetLocation(id)
	require.NoError(t, err)
	assert.Equal(t, playrho.MakeVec2(6, 4), location)
}
