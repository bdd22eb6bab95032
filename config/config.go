// Package config loads the chasecam settings: an embedded YAML default, an
// optional YAML file layered on top, and CHASECAM_* environment overrides.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	MovementWorld = "world"
	MovementLocal = "local"

	FollowOffset = "offset"
	FollowTrail  = "trail"

	PlayerCube  = "cube"
	PlayerGizmo = "gizmo"
)

type Config struct {
	Debug    bool     `yaml:"debug" env:"DEBUG"`
	Window   Window   `yaml:"window" envPrefix:"WINDOW_"`
	Movement Movement `yaml:"movement" envPrefix:"MOVEMENT_"`
	Follow   Follow   `yaml:"follow" envPrefix:"FOLLOW_"`
	Scene    Scene    `yaml:"scene" envPrefix:"SCENE_"`

	// Source is the file the config was read from, empty for the embedded default.
	Source string `yaml:"-"`
}

type Window struct {
	Width      int        `yaml:"width" env:"WIDTH"`
	Height     int        `yaml:"height" env:"HEIGHT"`
	Title      string     `yaml:"title" env:"TITLE"`
	ClearColor [3]float32 `yaml:"clear_color"`
	HUD        bool       `yaml:"hud" env:"HUD"`
}

type Movement struct {
	Mode     string  `yaml:"mode" env:"MODE"`
	Step     float32 `yaml:"step" env:"STEP"`
	TurnStep float32 `yaml:"turn_step" env:"TURN_STEP"`
	Gamepad  bool    `yaml:"gamepad" env:"GAMEPAD"`
	Deadzone float32 `yaml:"deadzone" env:"DEADZONE"`
}

type Follow struct {
	Mode        string     `yaml:"mode" env:"MODE"`
	Offset      [3]float32 `yaml:"offset"`
	Height      float32    `yaml:"height" env:"HEIGHT"`
	MinDistance float32    `yaml:"min_distance" env:"MIN_DISTANCE"`
	MaxDistance float32    `yaml:"max_distance" env:"MAX_DISTANCE"`
}

type Scene struct {
	PlaneSize   float32 `yaml:"plane_size"`
	PlayerModel string  `yaml:"player_model" env:"PLAYER_MODEL"`
	DebugLines  bool    `yaml:"debug_lines" env:"DEBUG_LINES"`
	Light       Light   `yaml:"light"`
	Camera      Camera  `yaml:"camera"`
}

type Light struct {
	Position  [3]float32 `yaml:"position"`
	Intensity float32    `yaml:"intensity"`
}

type Camera struct {
	Position [3]float32 `yaml:"position"`
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return &cfg
}

// Load reads path (or the embedded default when path does not exist), layers
// it over the defaults, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, fromDisk, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if fromDisk {
		cfg.Source = path
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes data over the defaults. Keys missing from data keep their
// default values. It does not validate.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from CHASECAM_* variables, e.g. CHASECAM_FOLLOW_MODE=trail.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "CHASECAM_"}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	switch c.Movement.Mode {
	case MovementWorld, MovementLocal:
	default:
		return fmt.Errorf("config: unknown movement.mode %q", c.Movement.Mode)
	}
	if c.Movement.Step <= 0 {
		return fmt.Errorf("config: movement.step must be > 0, got %g", c.Movement.Step)
	}
	if c.Movement.TurnStep < 0 {
		return fmt.Errorf("config: movement.turn_step must be >= 0, got %g", c.Movement.TurnStep)
	}
	if c.Movement.Deadzone < 0 || c.Movement.Deadzone >= 1 {
		return fmt.Errorf("config: movement.deadzone must be in [0, 1), got %g", c.Movement.Deadzone)
	}

	switch c.Follow.Mode {
	case FollowOffset:
	case FollowTrail:
		if c.Follow.MinDistance <= 0 {
			return fmt.Errorf("config: follow.min_distance must be > 0 in trail mode, got %g", c.Follow.MinDistance)
		}
	default:
		return fmt.Errorf("config: unknown follow.mode %q", c.Follow.Mode)
	}
	if c.Follow.MaxDistance != 0 && c.Follow.MaxDistance < c.Follow.MinDistance {
		return fmt.Errorf("config: follow.max_distance %g is below min_distance %g", c.Follow.MaxDistance, c.Follow.MinDistance)
	}

	switch c.Scene.PlayerModel {
	case PlayerCube, PlayerGizmo:
	default:
		return fmt.Errorf("config: unknown scene.player_model %q", c.Scene.PlayerModel)
	}
	if c.Scene.PlaneSize <= 0 {
		return fmt.Errorf("config: scene.plane_size must be > 0, got %g", c.Scene.PlaneSize)
	}

	cam := c.Scene.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		return fmt.Errorf("config: scene.camera.fov must be in (0, 180), got %g", cam.Fov)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return fmt.Errorf("config: scene.camera near %g / far %g out of order", cam.Near, cam.Far)
	}

	return nil
}
