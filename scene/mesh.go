package scene

import "github.com/go-gl/mathgl/mgl32"

type MeshMode uint8

const (
	// Triangles reads Indices three at a time, counter-clockwise seen from outside.
	Triangles MeshMode = iota
	// Lines reads Indices two at a time.
	Lines
)

// Mesh is geometry in the node's local space. Colors is optional and holds
// one color per position; when empty the node's Material color is used.
type Mesh struct {
	Mode      MeshMode
	Positions []mgl32.Vec3
	Indices   []uint16
	Colors    []mgl32.Vec4
}

// Primitives returns the number of triangles or line segments.
func (m *Mesh) Primitives() int {
	if m.Mode == Lines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}

func (m *Mesh) addQuad(a, b, c, d mgl32.Vec3) {
	base := uint16(len(m.Positions))
	m.Positions = append(m.Positions, a, b, c, d)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// Plane is a size x size square on the XZ plane facing +Y.
func Plane(size float32) Mesh {
	h := size / 2
	var m Mesh
	m.addQuad(
		mgl32.Vec3{-h, 0, h},
		mgl32.Vec3{h, 0, h},
		mgl32.Vec3{h, 0, -h},
		mgl32.Vec3{-h, 0, -h},
	)
	return m
}

func Cube(size float32) Mesh {
	return Box(size, size, size)
}

// Box is centered on the origin.
func Box(width, height, depth float32) Mesh {
	x, y, z := width/2, height/2, depth/2
	var m Mesh

	m.addQuad(mgl32.Vec3{-x, -y, z}, mgl32.Vec3{x, -y, z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{-x, y, z})
	m.addQuad(mgl32.Vec3{x, -y, -z}, mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{-x, y, -z}, mgl32.Vec3{x, y, -z})
	m.addQuad(mgl32.Vec3{x, -y, z}, mgl32.Vec3{x, -y, -z}, mgl32.Vec3{x, y, -z}, mgl32.Vec3{x, y, z})
	m.addQuad(mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{-x, -y, z}, mgl32.Vec3{-x, y, z}, mgl32.Vec3{-x, y, -z})
	m.addQuad(mgl32.Vec3{-x, y, z}, mgl32.Vec3{x, y, z}, mgl32.Vec3{x, y, -z}, mgl32.Vec3{-x, y, -z})
	m.addQuad(mgl32.Vec3{-x, -y, -z}, mgl32.Vec3{x, -y, -z}, mgl32.Vec3{x, -y, z}, mgl32.Vec3{-x, -y, z})

	return m
}

// AxisLines draws +X red, +Y green and -Z (forward) blue, each length long.
func AxisLines(length float32) Mesh {
	red := mgl32.Vec4{1, 0, 0, 1}
	green := mgl32.Vec4{0, 1, 0, 1}
	blue := mgl32.Vec4{0, 0, 1, 1}

	return Mesh{
		Mode: Lines,
		Positions: []mgl32.Vec3{
			{}, {length, 0, 0},
			{}, {0, length, 0},
			{}, {0, 0, -length},
		},
		Indices: []uint16{0, 1, 2, 3, 4, 5},
		Colors:  []mgl32.Vec4{red, red, green, green, blue, blue},
	}
}
