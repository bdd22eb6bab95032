package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
)

const debugAxisLength = 3

// DebugToggleSystem spawns or removes the world-axis overlay when
// input.State.ToggleDebug is set.
type DebugToggleSystem struct {
	Debug bool

	Input ecs.Singleton[input.State]
	Lines ecs.Query[struct{ *DebugLines }]
}

func (s *DebugToggleSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if state == nil || !state.ToggleDebug {
		return
	}

	if s.Lines.Len() > 0 {
		for id := range s.Lines.Iter() {
			frame.Commands.Delete(id)
		}
		if s.Debug {
			log.Printf("scene: debug lines off")
		}
		return
	}

	frame.Commands.Spawn(debugLines()...)
	if s.Debug {
		log.Printf("scene: debug lines on")
	}
}

func debugLines() []any {
	return []any{
		DebugLines{},
		NewTransform(0, 0, 0),
		NewGlobalTransform(),
		AxisLines(debugAxisLength),
		Material{Color: mgl32.Vec4{1, 1, 1, 1}, Unlit: true},
	}
}

// ToggleDebugLines applies the toggle immediately and reports whether the
// overlay is now shown. It must not be called while systems iterate; systems
// go through DebugToggleSystem instead.
func ToggleDebugLines(storage *ecs.Storage) bool {
	view := ecs.NewView[struct{ *DebugLines }](storage)

	var existing []ecs.EntityId
	for id := range view.Iter() {
		existing = append(existing, id)
	}

	if len(existing) > 0 {
		for _, id := range existing {
			storage.Delete(id)
		}
		return false
	}

	storage.Spawn(debugLines()...)
	return true
}
