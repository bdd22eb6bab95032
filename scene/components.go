// Package scene holds the chase-camera scene: its components, the systems
// that move the player and the camera, and the startup composition.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
)

// Player tags the node driven by input. Nothing enforces a single Player; with
// several, each moves and each emits PlayerMoved.
type Player struct{}

// FollowPlayer tags camera nodes that track PlayerMoved events.
type FollowPlayer struct{}

// DebugLines tags the world-axis overlay toggled with F3.
type DebugLines struct{}

// Parent attaches a node to another one. Ref survives the parent moving
// between archetypes and is invalidated when the parent is deleted.
type Parent struct {
	Ref *ecs.EntityRef
}

type Material struct {
	Color mgl32.Vec4
	// Unlit skips lighting. Line meshes are always unlit.
	Unlit bool
}

type PointLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

// Camera3D is a perspective camera. Fov is the vertical field of view in degrees.
type Camera3D struct {
	Fov  float32
	Near float32
	Far  float32
}

// PlayerMoved carries a copy of a Player's Transform after MovementSystem ran.
type PlayerMoved struct {
	Player    ecs.EntityId
	Transform Transform
}

// RegisterComponents registers every component type the scene spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[GlobalTransform](registry)
	ecs.RegisterComponent[Parent](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[FollowPlayer](registry)
	ecs.RegisterComponent[DebugLines](registry)
	ecs.RegisterComponent[Mesh](registry)
	ecs.RegisterComponent[Material](registry)
	ecs.RegisterComponent[PointLight](registry)
	ecs.RegisterComponent[Camera3D](registry)
}
