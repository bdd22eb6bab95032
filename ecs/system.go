package ecs

// System is one step of the frame. Exported fields of type Query, Singleton,
// EventWriter or EventReader are bound to the storage by the Scheduler on
// Register; any other fields are private state kept between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
