package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
// Commands queued on it are applied after the last system has run.
type UpdateFrame struct {
	DeltaTime float64
	Number    uint64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, number uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Number:    number,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
