package scene

import (
	"testing"

	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/input"
)

// testWorld runs the scene systems against a controllable input State.
type testWorld struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	held      input.State
	handles   Handles
}

func newTestWorld(t *testing.T, mutate func(*config.Config)) *testWorld {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[input.State](storage)
	ApplyConfig(storage, cfg)

	w := &testWorld{storage: storage}
	w.handles = Setup(storage, cfg.Scene)

	w.scheduler = ecs.NewScheduler(storage)
	w.scheduler.Register(&input.InputSystem{
		Source: input.SourceFunc(func(s *input.State) { *s = w.held }),
	})
	w.scheduler.Register(&MovementSystem{})
	w.scheduler.Register(&FollowSystem{})
	w.scheduler.Register(&HierarchySystem{})
	w.scheduler.Register(&DebugToggleSystem{})
	return w
}

func (w *testWorld) step(held input.State) {
	w.held = held
	w.scheduler.Once(1.0 / 60)
}

func (w *testWorld) transform(id ecs.EntityId) *Transform {
	return ecs.ReadComponent[Transform](w.storage, id)
}

func (w *testWorld) player() *Transform {
	return w.transform(w.handles.Player)
}

func (w *testWorld) camera() *Transform {
	return w.transform(w.handles.Camera)
}
