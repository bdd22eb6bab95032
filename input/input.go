// Package input turns devices and scripts into a per-frame State singleton.
package input

import (
	"log"

	"github.com/plus3/chasecam/ecs"
)

// State is what the player asked for this frame. Buttons are held flags;
// ToggleDebug is edge-triggered by the Source. Stick values are in [-1, 1]
// with +X right and +Y down, as gamepads report them.
type State struct {
	Forward   bool
	Back      bool
	Left      bool
	Right     bool
	TurnLeft  bool
	TurnRight bool
	Jump      bool
	Crouch    bool

	GamepadConnected bool
	MoveX            float32
	MoveY            float32
	TurnX            float32

	ToggleDebug bool
	Quit        bool
}

// Any reports whether any button is held or any stick is off center.
func (s *State) Any() bool {
	return s.Forward || s.Back || s.Left || s.Right || s.TurnLeft || s.TurnRight ||
		s.Jump || s.Crouch || s.MoveX != 0 || s.MoveY != 0 || s.TurnX != 0
}

// Source fills a freshly reset State once per frame.
type Source interface {
	Poll(state *State)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(state *State)

func (f SourceFunc) Poll(state *State) {
	f(state)
}

// InputSystem resets the State singleton and polls Source into it. It must run
// before every system that reads State.
type InputSystem struct {
	Source Source
	Debug  bool

	State ecs.Singleton[State]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}

	*state = State{}
	if s.Source != nil {
		s.Source.Poll(state)
	}

	if s.Debug && state.Any() {
		log.Printf("input: frame %d %+v", frame.Number, *state)
	}
}
