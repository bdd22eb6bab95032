package scene

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
)

var (
	planeColor  = mgl32.Vec4{0.3, 0.5, 0.3, 1}
	playerColor = mgl32.Vec4{0.8, 0.7, 0.6, 1}
)

// Handles names the entities Setup created.
type Handles struct {
	Player ecs.EntityId
	Camera ecs.EntityId
	Light  ecs.EntityId
	Plane  ecs.EntityId
	// Children of the gizmo player, empty for the cube model.
	PlayerParts []ecs.EntityId
}

// Setup spawns the ground, the player, a light and the follow camera.
func Setup(storage *ecs.Storage, cfg config.Scene) Handles {
	var h Handles

	h.Plane = storage.Spawn(
		NewTransform(0, 0, 0),
		NewGlobalTransform(),
		Plane(cfg.PlaneSize),
		Material{Color: planeColor},
	)

	switch cfg.PlayerModel {
	case config.PlayerGizmo:
		h.Player, h.PlayerParts = spawnGizmoPlayer(storage)
	default:
		h.Player = storage.Spawn(
			Player{},
			NewTransform(0, 0.5, 0),
			NewGlobalTransform(),
			Cube(1),
			Material{Color: playerColor},
		)
	}

	light := cfg.Light.Position
	h.Light = storage.Spawn(
		NewTransform(light[0], light[1], light[2]),
		NewGlobalTransform(),
		PointLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: cfg.Light.Intensity},
	)

	cam := cfg.Camera
	camera := NewTransform(cam.Position[0], cam.Position[1], cam.Position[2])
	camera.LookAt(mgl32.Vec3{}, axisY)
	h.Camera = storage.Spawn(
		FollowPlayer{},
		camera,
		NewGlobalTransform(),
		Camera3D{Fov: cam.Fov, Near: cam.Near, Far: cam.Far},
	)

	if cfg.DebugLines {
		storage.Spawn(debugLines()...)
	}

	return h
}

// spawnGizmoPlayer builds a parent node carrying Player and two children: a
// box body and an axis gizmo showing the player's orientation.
func spawnGizmoPlayer(storage *ecs.Storage) (ecs.EntityId, []ecs.EntityId) {
	parent := storage.Spawn(
		Player{},
		NewTransform(0, 0.5, 0),
		NewGlobalTransform(),
	)
	ref := storage.CreateEntityRef(parent)
	if ref == nil {
		log.Printf("scene: player %v has no archetype", parent)
		return parent, nil
	}

	body := storage.Spawn(
		Parent{Ref: ref},
		NewTransform(0, 0, 0),
		NewGlobalTransform(),
		Box(0.8, 1, 0.8),
		Material{Color: playerColor},
	)

	gizmo := storage.Spawn(
		Parent{Ref: ref},
		NewTransform(0, 0, 0),
		NewGlobalTransform(),
		AxisLines(1.5),
		Material{Color: mgl32.Vec4{1, 1, 1, 1}, Unlit: true},
	)

	return parent, []ecs.EntityId{body, gizmo}
}
