package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, MovementWorld, cfg.Movement.Mode)
	assert.Equal(t, float32(0.1), cfg.Movement.Step)
	assert.Equal(t, float32(0.1), cfg.Movement.TurnStep)
	assert.Equal(t, FollowOffset, cfg.Follow.Mode)
	assert.Equal(t, [3]float32{-2, 2.5, 5}, cfg.Follow.Offset)
	assert.Equal(t, float32(2.5), cfg.Follow.Height)
	assert.Equal(t, float32(4.0), cfg.Follow.MinDistance)
	assert.Equal(t, PlayerCube, cfg.Scene.PlayerModel)
	assert.Equal(t, float32(5), cfg.Scene.PlaneSize)
	assert.Equal(t, [3]float32{4, 8, 4}, cfg.Scene.Light.Position)
	assert.Equal(t, float32(1500), cfg.Scene.Light.Intensity)
	assert.Equal(t, [3]float32{-2, 2.5, 5}, cfg.Scene.Camera.Position)
	assert.True(t, cfg.Window.HUD)
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("follow:\n  mode: trail\n"))
	require.NoError(t, err)

	assert.Equal(t, FollowTrail, cfg.Follow.Mode)
	assert.Equal(t, float32(4.0), cfg.Follow.MinDistance)
	assert.Equal(t, MovementWorld, cfg.Movement.Mode)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("movement: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("follow:\n  offset: [1, 2]\n"))
	assert.Error(t, err, "offset needs three components")
}

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to embedded default", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Source)
		assert.Equal(t, Default().Movement, cfg.Movement)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chasecam.yaml")
		require.NoError(t, os.WriteFile(path, []byte("movement:\n  mode: local\n  step: 0.25\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, cfg.Source)
		assert.Equal(t, MovementLocal, cfg.Movement.Mode)
		assert.Equal(t, float32(0.25), cfg.Movement.Step)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chasecam.yaml")
		require.NoError(t, os.WriteFile(path, []byte("movement:\n  mode: sideways\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "movement.mode")
	})
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHASECAM_DEBUG", "true")
	t.Setenv("CHASECAM_FOLLOW_MODE", "trail")
	t.Setenv("CHASECAM_FOLLOW_MIN_DISTANCE", "6")
	t.Setenv("CHASECAM_MOVEMENT_STEP", "0.5")
	t.Setenv("CHASECAM_SCENE_PLAYER_MODEL", "gizmo")
	t.Setenv("CHASECAM_WINDOW_HUD", "false")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	assert.True(t, cfg.Debug)
	assert.Equal(t, FollowTrail, cfg.Follow.Mode)
	assert.Equal(t, float32(6), cfg.Follow.MinDistance)
	assert.Equal(t, float32(0.5), cfg.Movement.Step)
	assert.Equal(t, PlayerGizmo, cfg.Scene.PlayerModel)
	assert.False(t, cfg.Window.HUD)
	assert.Equal(t, MovementWorld, cfg.Movement.Mode, "unset variables keep file values")
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("CHASECAM_MOVEMENT_STEP", "fast")
	assert.Error(t, ApplyEnv(Default()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"zero step", func(c *Config) { c.Movement.Step = 0 }, "movement.step"},
		{"negative turn step", func(c *Config) { c.Movement.TurnStep = -1 }, "movement.turn_step"},
		{"deadzone too large", func(c *Config) { c.Movement.Deadzone = 1 }, "movement.deadzone"},
		{"unknown follow mode", func(c *Config) { c.Follow.Mode = "orbit" }, "follow.mode"},
		{"trail without min distance", func(c *Config) {
			c.Follow.Mode = FollowTrail
			c.Follow.MinDistance = 0
		}, "min_distance"},
		{"max below min", func(c *Config) { c.Follow.MaxDistance = 2 }, "max_distance"},
		{"window size", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"fov", func(c *Config) { c.Scene.Camera.Fov = 180 }, "fov"},
		{"near far", func(c *Config) { c.Scene.Camera.Far = 0.05 }, "near"},
		{"player model", func(c *Config) { c.Scene.PlayerModel = "sphere" }, "player_model"},
		{"plane size", func(c *Config) { c.Scene.PlaneSize = 0 }, "plane_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("offset mode ignores min distance", func(t *testing.T) {
		cfg := Default()
		cfg.Follow.MinDistance = 0
		assert.NoError(t, cfg.Validate())
	})
}
