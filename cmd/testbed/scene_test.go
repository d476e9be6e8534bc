package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	playrho "github.com/gmaf/PlayRho"
)

func stepScene(t *testing.T, scene *Scene, steps int) playrho.StepStats {
	t.Helper()
	conf := playrho.MakeStepConf().SetTime(1.0 / 60)
	var stats playrho.StepStats
	for i := 0; i < steps; i++ {
		var err error
		stats, err = scene.World.Step(conf)
		require.NoError(t, err)
	}
	return stats
}

func TestLoadSceneMissingFile(t *testing.T) {
	_, err := LoadScene(filepath.Join("scenes", "no-such-scene.yaml"))
	assert.Error(t, err)
}

func TestLoadPyramidScene(t *testing.T) {
	scene, err := LoadScene(filepath.Join("scenes", "pyramid.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, scene.World.GetBodyCount())
	require.Contains(t, scene.Bodies, "wrecker")

	stepScene(t, scene, 60)

	// The stack is still on the ground side of the world after a second.
	for name, id := range scene.Bodies {
		location, err := scene.World.GetLocation(id)
		require.NoError(t, err)
		assert.Greater(t, location.Y, -1.0, "body %s fell through the ground", name)
	}
}

func TestLoadBulletSceneNoTunneling(t *testing.T) {
	scene, err := LoadScene(filepath.Join("scenes", "bullet.yaml"))
	require.NoError(t, err)
	bullet := scene.Bodies["bullet"]

	stepScene(t, scene, 30)

	// The wall face is at x=8; the disk must stay on the near side.
	location, err := scene.World.GetLocation(bullet)
	require.NoError(t, err)
	assert.Less(t, location.X, 8.0)
}

func TestLoadPendulumSceneScript(t *testing.T) {
	scene, err := LoadScene(filepath.Join("scenes", "pendulum.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, scene.ScriptPath)

	script, err := loadStepScript(scene.ScriptPath, scene)
	require.NoError(t, err)
	require.NoError(t, script.run(1.0/60, 0))

	velocity, err := scene.World.GetVelocity(scene.Bodies["spinner"])
	require.NoError(t, err)
	assert.Equal(t, 2.0, velocity.Angular)

	stepScene(t, scene, 10)

	// The revolute joint keeps the bob four meters from the anchor.
	bob, err := scene.World.GetLocation(scene.Bodies["bob"])
	require.NoError(t, err)
	anchor, err := scene.World.GetLocation(scene.Bodies["anchor"])
	require.NoError(t, err)
	distance := playrho.Vec2Sub(bob, anchor).Length()
	assert.InDelta(t, 4.0, distance, 0.1)
}
