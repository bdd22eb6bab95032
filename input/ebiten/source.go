// Package ebiten reads the keyboard and the first standard gamepad through
// Ebitengine.
package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/chasecam/input"
)

// Source implements input.Source. Stick values are reported raw; the
// movement system applies its own deadzone.
type Source struct {
	// KeyboardCaptured, when set and returning true, suppresses keyboard
	// movement, e.g. while a debug UI text field has focus.
	KeyboardCaptured func() bool

	gamepads []ebiten.GamepadID
}

func NewSource() *Source {
	return &Source{}
}

func (s *Source) Poll(state *input.State) {
	state.Quit = ebiten.IsKeyPressed(ebiten.KeyEscape)

	if s.KeyboardCaptured == nil || !s.KeyboardCaptured() {
		state.Forward = ebiten.IsKeyPressed(ebiten.KeyW)
		state.Left = ebiten.IsKeyPressed(ebiten.KeyA)
		state.Back = ebiten.IsKeyPressed(ebiten.KeyS)
		state.Right = ebiten.IsKeyPressed(ebiten.KeyD)
		state.TurnLeft = ebiten.IsKeyPressed(ebiten.KeyJ)
		state.TurnRight = ebiten.IsKeyPressed(ebiten.KeyK)
		state.Jump = ebiten.IsKeyPressed(ebiten.KeySpace)
		state.Crouch = ebiten.IsKeyPressed(ebiten.KeyControl)
		state.ToggleDebug = inpututil.IsKeyJustPressed(ebiten.KeyF3)
	}

	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	if len(s.gamepads) == 0 {
		return
	}

	id := s.gamepads[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return
	}

	state.GamepadConnected = true
	state.MoveX = float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal))
	state.MoveY = float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical))
	state.TurnX = float32(ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal))

	state.Jump = state.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
	state.Crouch = state.Crouch || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightRight)
	state.ToggleDebug = state.ToggleDebug || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
}
