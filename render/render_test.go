package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLens = scene.Camera3D{Fov: 45, Near: 0.1, Far: 100}

func cameraAt(x, y, z float32) Camera {
	return NewCamera(mgl32.Translate3D(x, y, z), testLens, 800, 600)
}

func TestCameraProject(t *testing.T) {
	cam := cameraAt(0, 0, 0)

	screen, depth, ok := cam.Project(mgl32.Vec3{0, 0, -5})
	require.True(t, ok)
	assert.InDelta(t, 400, screen.X(), 1e-3)
	assert.InDelta(t, 300, screen.Y(), 1e-3)
	assert.InDelta(t, 5, depth, 1e-5)

	up, _, ok := cam.Project(mgl32.Vec3{0, 1, -5})
	require.True(t, ok)
	assert.Less(t, up.Y(), float32(300), "+Y is up on screen")

	right, _, ok := cam.Project(mgl32.Vec3{1, 0, -5})
	require.True(t, ok)
	assert.Greater(t, right.X(), float32(400))

	_, _, ok = cam.Project(mgl32.Vec3{0, 0, 1})
	assert.False(t, ok, "behind the camera")

	_, _, ok = cam.Project(mgl32.Vec3{0, 0, -0.05})
	assert.False(t, ok, "inside the near plane")
}

func TestDrawListCullsBackFaces(t *testing.T) {
	cam := cameraAt(0, 0, 5)
	cube := scene.Cube(1)

	var list DrawList
	list.Add(&cam, nil, Item{World: mgl32.Ident4(), Mesh: &cube, Material: scene.Material{Color: mgl32.Vec4{1, 1, 1, 1}, Unlit: true}})

	assert.Len(t, list.Triangles, 2, "only the +Z face looks at the camera")
	assert.Equal(t, 10, list.Culled)
	for _, tri := range list.Triangles {
		assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, tri.Color)
	}
}

func TestDrawListClipsNearPlane(t *testing.T) {
	cam := cameraAt(0, 0, 0)
	plane := scene.Plane(10)

	var list DrawList
	list.Add(&cam, nil, Item{World: mgl32.Translate3D(0, -1, 0), Mesh: &plane})

	assert.Empty(t, list.Triangles)
	assert.Equal(t, 2, list.Clipped)
}

func TestDrawListLines(t *testing.T) {
	cam := cameraAt(0, 0, 5)
	axes := scene.AxisLines(1)

	var list DrawList
	list.Add(&cam, nil, Item{World: mgl32.Ident4(), Mesh: &axes})

	require.Len(t, list.Lines, 3)
	assert.Equal(t, axes.Colors[0], list.Lines[0].Color)
	assert.Equal(t, axes.Colors[4], list.Lines[2].Color)
}

func TestDrawListSort(t *testing.T) {
	list := DrawList{
		Triangles: []Triangle{{Depth: 1}, {Depth: 9}, {Depth: 4}},
		Lines:     []Line{{Depth: 2}, {Depth: 3}},
	}
	list.Sort()

	assert.Equal(t, []float32{9, 4, 1}, []float32{list.Triangles[0].Depth, list.Triangles[1].Depth, list.Triangles[2].Depth})
	assert.Equal(t, float32(3), list.Lines[0].Depth)

	list.Reset()
	assert.Empty(t, list.Triangles)
	assert.Empty(t, list.Lines)
}

func TestShade(t *testing.T) {
	base := mgl32.Vec4{0.8, 0.7, 0.6, 1}
	lights := []Light{{Position: mgl32.Vec3{0, 4, 0}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 200}}
	up := mgl32.Vec3{0, 1, 0}

	facing := Shade(base, up, mgl32.Vec3{}, lights)
	away := Shade(base, up.Mul(-1), mgl32.Vec3{}, lights)
	dark := Shade(base, up, mgl32.Vec3{}, nil)

	assert.Greater(t, facing.X(), away.X())
	assert.Equal(t, dark, away, "faces turned from the light get ambient only")
	assert.InDelta(t, 0.8*Ambient, dark.X(), 1e-6)
	assert.Equal(t, float32(1), facing.W())

	bright := Shade(base, up, mgl32.Vec3{}, []Light{{Position: mgl32.Vec3{0, 0.1, 0}, Color: mgl32.Vec3{1, 1, 1}, Intensity: 1e6}})
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, bright, "clamped")
}

func TestBuilder(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	scene.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	builder := NewBuilder(storage)
	assert.Nil(t, builder.Build(800, 600), "no camera yet")

	cfg := config.Default()
	cfg.Scene.DebugLines = true
	scene.Setup(storage, cfg.Scene)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&scene.HierarchySystem{})
	scheduler.Once(0.016)

	list := builder.Build(800, 600)
	require.NotNil(t, list)
	assert.NotEmpty(t, list.Triangles)
	assert.Len(t, list.Lines, 3)

	for i := 1; i < len(list.Triangles); i++ {
		assert.GreaterOrEqual(t, list.Triangles[i-1].Depth, list.Triangles[i].Depth)
	}
}
