package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
)

// MovementSettings is the singleton MovementSystem reads every frame.
type MovementSettings struct {
	// Local moves along the player's own axes instead of the world axes.
	Local    bool
	Step     float32
	TurnStep float32
	Gamepad  bool
	Deadzone float32
	Debug    bool
}

// FollowSettings is the singleton FollowSystem reads every frame.
type FollowSettings struct {
	Trail       bool
	Offset      mgl32.Vec3
	Height      float32
	MinDistance float32
	// MaxDistance of zero leaves the trailing distance unbounded.
	MaxDistance float32
}

func DefaultMovementSettings() MovementSettings {
	return MovementSettingsFrom(config.Default())
}

func DefaultFollowSettings() FollowSettings {
	return FollowSettingsFrom(config.Default())
}

func MovementSettingsFrom(cfg *config.Config) MovementSettings {
	return MovementSettings{
		Local:    cfg.Movement.Mode == config.MovementLocal,
		Step:     cfg.Movement.Step,
		TurnStep: cfg.Movement.TurnStep,
		Gamepad:  cfg.Movement.Gamepad,
		Deadzone: cfg.Movement.Deadzone,
		Debug:    cfg.Debug,
	}
}

func FollowSettingsFrom(cfg *config.Config) FollowSettings {
	return FollowSettings{
		Trail:       cfg.Follow.Mode == config.FollowTrail,
		Offset:      mgl32.Vec3(cfg.Follow.Offset),
		Height:      cfg.Follow.Height,
		MinDistance: cfg.Follow.MinDistance,
		MaxDistance: cfg.Follow.MaxDistance,
	}
}

// ApplyConfig stores the movement and follow settings of cfg. Running systems
// see the new values on their next frame, which is how hot reload is applied.
func ApplyConfig(storage *ecs.Storage, cfg *config.Config) {
	storage.AddSingleton(MovementSettingsFrom(cfg))
	storage.AddSingleton(FollowSettingsFrom(cfg))
}
