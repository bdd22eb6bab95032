package input

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is one scripted control.
type Action string

const (
	ActionForward   Action = "w"
	ActionLeft      Action = "a"
	ActionBack      Action = "s"
	ActionRight     Action = "d"
	ActionTurnLeft  Action = "j"
	ActionTurnRight Action = "k"
	ActionJump      Action = "space"
	ActionCrouch    Action = "ctrl"
	ActionDebug     Action = "f3"
	ActionQuit      Action = "esc"
	ActionIdle      Action = "idle"
)

func (a Action) apply(s *State) error {
	switch a {
	case ActionForward:
		s.Forward = true
	case ActionLeft:
		s.Left = true
	case ActionBack:
		s.Back = true
	case ActionRight:
		s.Right = true
	case ActionTurnLeft:
		s.TurnLeft = true
	case ActionTurnRight:
		s.TurnRight = true
	case ActionJump:
		s.Jump = true
	case ActionCrouch:
		s.Crouch = true
	case ActionDebug:
		s.ToggleDebug = true
	case ActionQuit:
		s.Quit = true
	case ActionIdle:
	default:
		return fmt.Errorf("unknown action %q", string(a))
	}
	return nil
}

// Step holds a set of actions for Frames consecutive frames.
type Step struct {
	Actions []Action
	Frames  int
}

// Script is a Source that replays steps frame by frame. After the last step
// it reports an idle State.
type Script struct {
	steps []Step
	step  int
	frame int
}

// ParseScript reads a comma-separated list of steps. Each step is one or more
// actions joined by '+', optionally followed by '*' and a frame count:
//
//	w*30,d+j*20,idle*5,esc
func ParseScript(src string) (*Script, error) {
	script := &Script{}

	for i, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		step := Step{Frames: 1}
		keys, count, hasCount := strings.Cut(part, "*")
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(count))
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("input: script step %d %q: bad frame count", i+1, part)
			}
			step.Frames = n
		}

		var scratch State
		for _, key := range strings.Split(keys, "+") {
			action := Action(strings.ToLower(strings.TrimSpace(key)))
			if err := action.apply(&scratch); err != nil {
				return nil, fmt.Errorf("input: script step %d: %w", i+1, err)
			}
			step.Actions = append(step.Actions, action)
		}

		script.steps = append(script.steps, step)
	}

	return script, nil
}

// NewScript builds a script from steps directly.
func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Frames returns the total number of scripted frames.
func (s *Script) Frames() int {
	total := 0
	for _, step := range s.steps {
		total += step.Frames
	}
	return total
}

// Done reports whether every step has been replayed.
func (s *Script) Done() bool {
	return s.step >= len(s.steps)
}

func (s *Script) Poll(state *State) {
	if s.Done() {
		return
	}

	step := s.steps[s.step]
	for _, action := range step.Actions {
		_ = action.apply(state)
	}

	s.frame++
	if s.frame >= step.Frames {
		s.step++
		s.frame = 0
	}
}
