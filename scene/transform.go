package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// lookAtEpsilon bounds the degenerate look-at cases: target on the eye, or
// direction parallel to up.
const lookAtEpsilon = 1e-6

// Transform is a node's placement relative to its parent, or to the world for
// roots. The zero value has a zero rotation and scale; build one with
// NewTransform.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

func NewTransform(x, y, z float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{x, y, z},
		Rotation:    mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// Forward is the node's -Z axis in parent space.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(axisZ.Mul(-1))
}

func (t *Transform) Back() mgl32.Vec3 {
	return t.Rotation.Rotate(axisZ)
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(axisX)
}

func (t *Transform) Left() mgl32.Vec3 {
	return t.Rotation.Rotate(axisX.Mul(-1))
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(axisY)
}

// RotateY turns the node by angle radians about the parent's +Y axis.
func (t *Transform) RotateY(angle float32) {
	t.Rotation = mgl32.QuatRotate(angle, axisY).Mul(t.Rotation).Normalize()
}

// LookAt turns the node so Forward points at target with Up as close to up as
// possible. The rotation is left unchanged when target is on the node or the
// direction is parallel to up.
func (t *Transform) LookAt(target, up mgl32.Vec3) {
	dir := target.Sub(t.Translation)
	if dir.Len() < lookAtEpsilon {
		return
	}
	forward := dir.Normalize()

	right := forward.Cross(up)
	if right.Len() < lookAtEpsilon {
		return
	}
	right = right.Normalize()
	realUp := right.Cross(forward)

	basis := mgl32.Mat3FromCols(right, realUp, forward.Mul(-1))
	t.Rotation = mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}

// Matrix returns translation * rotation * scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// GlobalTransform is the node's world matrix, written by HierarchySystem.
type GlobalTransform struct {
	Matrix mgl32.Mat4
}

func NewGlobalTransform() GlobalTransform {
	return GlobalTransform{Matrix: mgl32.Ident4()}
}

// Translation returns the world position.
func (g *GlobalTransform) Translation() mgl32.Vec3 {
	return g.Matrix.Col(3).Vec3()
}
