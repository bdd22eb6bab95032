package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
)

var (
	worldForward = mgl32.Vec3{0, 0, -1}
	worldRight   = mgl32.Vec3{1, 0, 0}
)

// MovementSystem moves every Player node by one step per held direction and
// turns it by one turn step per held J/K. Steps are per frame, not per second.
// It sends one PlayerMoved per Player node every frame, moved or not.
type MovementSystem struct {
	Players  ecs.Query[struct{ *Player; *Transform }]
	Input    ecs.Singleton[input.State]
	Settings ecs.Singleton[MovementSettings]
	Moved    ecs.EventWriter[PlayerMoved]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if state == nil {
		state = &input.State{}
	}

	settings := s.Settings.Get()
	if settings == nil {
		defaults := DefaultMovementSettings()
		settings = &defaults
	}

	if settings.Debug {
		if state.Jump {
			log.Printf("movement: frame %d: jump held", frame.Number)
		}
		if state.Crouch {
			log.Printf("movement: frame %d: crouch held", frame.Number)
		}
	}

	for id, player := range s.Players.Iter() {
		move(player.Transform, state, settings)
		s.Moved.Send(PlayerMoved{Player: id, Transform: *player.Transform})
	}
}

func move(t *Transform, state *input.State, settings *MovementSettings) {
	forward, right := worldForward, worldRight
	if settings.Local {
		forward, right = t.Forward(), t.Right()
	}

	var delta mgl32.Vec3
	var yaw float32

	if state.Forward {
		delta = delta.Add(forward.Mul(settings.Step))
	}
	if state.Back {
		delta = delta.Sub(forward.Mul(settings.Step))
	}
	if state.Left {
		delta = delta.Sub(right.Mul(settings.Step))
	}
	if state.Right {
		delta = delta.Add(right.Mul(settings.Step))
	}
	if state.TurnLeft {
		yaw += settings.TurnStep
	}
	if state.TurnRight {
		yaw -= settings.TurnStep
	}

	if settings.Gamepad && state.GamepadConnected {
		mx := applyDeadzone(state.MoveX, settings.Deadzone)
		my := applyDeadzone(state.MoveY, settings.Deadzone)
		tx := applyDeadzone(state.TurnX, settings.Deadzone)

		delta = delta.Add(right.Mul(mx * settings.Step))
		delta = delta.Add(forward.Mul(-my * settings.Step))
		yaw -= tx * settings.TurnStep
	}

	t.Translation = t.Translation.Add(delta)
	if yaw != 0 {
		t.RotateY(yaw)
	}
}

func applyDeadzone(v, deadzone float32) float32 {
	if v > -deadzone && v < deadzone {
		return 0
	}
	return v
}
