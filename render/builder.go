package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/scene"
)

var defaultMaterial = scene.Material{Color: mgl32.Vec4{1, 1, 1, 1}}

// Builder collects the camera, lights and meshes of a world into a DrawList.
type Builder struct {
	Meshes ecs.Query[struct {
		*scene.GlobalTransform
		*scene.Mesh
		Material *scene.Material `ecs:"optional"`
	}]
	Lights ecs.Query[struct {
		*scene.GlobalTransform
		*scene.PointLight
	}]
	Cameras ecs.Query[struct {
		*scene.GlobalTransform
		*scene.Camera3D
	}]

	lights []Light
	list   DrawList
}

func NewBuilder(storage *ecs.Storage) *Builder {
	b := &Builder{}
	b.Meshes.Init(storage)
	b.Lights.Init(storage)
	b.Cameras.Init(storage)
	return b
}

// Build projects the world for a width x height target. It returns nil when
// the world has no camera. The returned list is reused by the next call.
func (b *Builder) Build(width, height int) *DrawList {
	b.Meshes.Execute()
	b.Lights.Execute()
	b.Cameras.Execute()

	var cam *Camera
	for c := range b.Cameras.Values() {
		camera := NewCamera(c.GlobalTransform.Matrix, *c.Camera3D, width, height)
		cam = &camera
		break
	}
	if cam == nil {
		return nil
	}

	b.lights = b.lights[:0]
	for l := range b.Lights.Values() {
		b.lights = append(b.lights, Light{
			Position:  l.GlobalTransform.Translation(),
			Color:     l.PointLight.Color,
			Intensity: l.PointLight.Intensity,
		})
	}

	b.list.Reset()
	for m := range b.Meshes.Values() {
		mat := defaultMaterial
		if m.Material != nil {
			mat = *m.Material
		}
		b.list.Add(cam, b.lights, Item{World: m.GlobalTransform.Matrix, Mesh: m.Mesh, Material: mat})
	}
	b.list.Sort()

	return &b.list
}
