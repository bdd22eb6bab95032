package ecs_test

import "github.com/plus3/chasecam/ecs"

// Shared test components.
type Position struct {
	X, Y, Z float32
}

type Heading struct {
	Yaw float32
}

type Name struct {
	Value string
}

type Leader struct{}

type Follower struct{}

type Moved struct {
	X, Y, Z float32
}

type Score int32

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Heading](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Leader](registry)
	ecs.RegisterComponent[Follower](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[int](registry)
	ecs.RegisterComponent[string](registry)
	ecs.RegisterComponent[float64](registry)
	return registry
}
