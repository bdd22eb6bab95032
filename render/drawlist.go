package render

import (
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/scene"
)

// Ambient is the light every lit face receives regardless of point lights.
const Ambient = 0.25

type Triangle struct {
	Points [3]mgl32.Vec2
	Color  mgl32.Vec4
	Depth  float32
}

type Line struct {
	From, To mgl32.Vec2
	Color    mgl32.Vec4
	Depth    float32
}

type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Item is one mesh placed in the world.
type Item struct {
	World    mgl32.Mat4
	Mesh     *scene.Mesh
	Material scene.Material
}

// DrawList holds screen-space primitives. Triangles are drawn in order after
// Sort, then lines on top.
type DrawList struct {
	Triangles []Triangle
	Lines     []Line

	// Culled counts back faces, Clipped primitives crossing the near plane.
	Culled  int
	Clipped int
}

func (d *DrawList) Reset() {
	d.Triangles = d.Triangles[:0]
	d.Lines = d.Lines[:0]
	d.Culled = 0
	d.Clipped = 0
}

// Add projects item into the list.
func (d *DrawList) Add(cam *Camera, lights []Light, item Item) {
	mesh := item.Mesh
	if mesh == nil {
		return
	}

	world := make([]mgl32.Vec3, len(mesh.Positions))
	for i, p := range mesh.Positions {
		world[i] = item.World.Mul4x1(p.Vec4(1)).Vec3()
	}

	if mesh.Mode == scene.Lines {
		d.addLines(cam, mesh, world, item.Material)
		return
	}
	d.addTriangles(cam, lights, mesh, world, item.Material)
}

func (d *DrawList) addTriangles(cam *Camera, lights []Light, mesh *scene.Mesh, world []mgl32.Vec3, mat scene.Material) {
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := world[mesh.Indices[i]], world[mesh.Indices[i+1]], world[mesh.Indices[i+2]]

		normal := b.Sub(a).Cross(c.Sub(a))
		if normal.Dot(cam.Eye.Sub(a)) <= 0 {
			d.Culled++
			continue
		}

		var tri Triangle
		var depth float32
		visible := true
		for k, p := range [3]mgl32.Vec3{a, b, c} {
			screen, z, ok := cam.Project(p)
			if !ok {
				visible = false
				break
			}
			tri.Points[k] = screen
			depth += z
		}
		if !visible {
			d.Clipped++
			continue
		}

		tri.Depth = depth / 3
		tri.Color = mat.Color
		if !mat.Unlit {
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			tri.Color = Shade(mat.Color, normal.Normalize(), centroid, lights)
		}
		d.Triangles = append(d.Triangles, tri)
	}
}

func (d *DrawList) addLines(cam *Camera, mesh *scene.Mesh, world []mgl32.Vec3, mat scene.Material) {
	for i := 0; i+1 < len(mesh.Indices); i += 2 {
		ia, ib := mesh.Indices[i], mesh.Indices[i+1]

		from, za, okA := cam.Project(world[ia])
		to, zb, okB := cam.Project(world[ib])
		if !okA || !okB {
			d.Clipped++
			continue
		}

		color := mat.Color
		if int(ia) < len(mesh.Colors) {
			color = mesh.Colors[ia]
		}
		d.Lines = append(d.Lines, Line{From: from, To: to, Color: color, Depth: (za + zb) / 2})
	}
}

// Sort orders primitives far to near.
func (d *DrawList) Sort() {
	slices.SortStableFunc(d.Triangles, func(a, b Triangle) int {
		return compareDepth(a.Depth, b.Depth)
	})
	slices.SortStableFunc(d.Lines, func(a, b Line) int {
		return compareDepth(a.Depth, b.Depth)
	})
}

func compareDepth(a, b float32) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

// Shade applies Lambert lighting with inverse-square falloff from every light
// plus Ambient. Alpha is kept.
func Shade(base mgl32.Vec4, normal, point mgl32.Vec3, lights []Light) mgl32.Vec4 {
	light := mgl32.Vec3{Ambient, Ambient, Ambient}

	for _, l := range lights {
		toLight := l.Position.Sub(point)
		dist2 := toLight.Dot(toLight)
		if dist2 == 0 {
			continue
		}
		ndotl := normal.Dot(toLight.Normalize())
		if ndotl <= 0 {
			continue
		}
		irradiance := l.Intensity * ndotl / (4 * math.Pi * dist2)
		light = light.Add(l.Color.Mul(irradiance))
	}

	return mgl32.Vec4{
		clamp01(base.X() * light.X()),
		clamp01(base.Y() * light.Y()),
		clamp01(base.Z() * light.Z()),
		base.W(),
	}
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
