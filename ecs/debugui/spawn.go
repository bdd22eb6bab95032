package debugui

import "github.com/plus3/chasecam/ecs"

// RegisterDebugUIComponents registers the component types this package spawns.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the built-in windows and the input-capture singleton.
func SpawnDebugUI(storage *ecs.Storage, scheduler *ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceStats(120)
	storage.Spawn(ImguiItem{
		Render: func() {
			perf.Render(storage, scheduler)
		},
	})
}
