// Package render projects the scene into a screen-space draw list. It has no
// graphics dependency; render/ebiten turns the list into pixels.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/chasecam/scene"
)

// Camera projects world positions to screen pixels.
type Camera struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Eye        mgl32.Vec3
	Near       float32
	Width      float32
	Height     float32
}

// NewCamera builds a camera from the camera node's world matrix.
func NewCamera(global mgl32.Mat4, cam scene.Camera3D, width, height int) Camera {
	aspect := float32(width) / float32(height)
	return Camera{
		View:       global.Inv(),
		Projection: mgl32.Perspective(mgl32.DegToRad(cam.Fov), aspect, cam.Near, cam.Far),
		Eye:        global.Col(3).Vec3(),
		Near:       cam.Near,
		Width:      float32(width),
		Height:     float32(height),
	}
}

// Project returns the screen position of p and its distance in front of the
// camera. ok is false when p is closer than the near plane.
func (c *Camera) Project(p mgl32.Vec3) (screen mgl32.Vec2, depth float32, ok bool) {
	view := c.View.Mul4x1(p.Vec4(1))
	depth = -view.Z()
	if depth < c.Near {
		return mgl32.Vec2{}, depth, false
	}

	clip := c.Projection.Mul4x1(view)
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()

	screen = mgl32.Vec2{
		(ndcX + 1) / 2 * c.Width,
		(1 - ndcY) / 2 * c.Height,
	}
	return screen, depth, true
}
