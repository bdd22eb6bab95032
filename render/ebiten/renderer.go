// Package ebiten draws a render.DrawList and a text HUD with Ebitengine.
package ebiten

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/chasecam/config"
	"github.com/plus3/chasecam/ecs"
	"github.com/plus3/chasecam/render"
	"github.com/plus3/chasecam/scene"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
)

const lineWidth = 2

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer draws the world seen by its first Camera3D. It is called from
// ebiten.Game.Draw, outside of the Scheduler.
type Renderer struct {
	ClearColor color.Color
	ShowHUD    bool

	builder *render.Builder
	players ecs.Query[struct {
		*scene.Player
		*scene.Transform
	}]
	cameras ecs.Query[struct {
		*scene.FollowPlayer
		*scene.Transform
	}]

	face     text.Face
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer takes its clear color and HUD visibility from the window config.
func NewRenderer(storage *ecs.Storage, window config.Window) *Renderer {
	clear := window.ClearColor
	r := &Renderer{
		ClearColor: color.RGBA{
			R: uint8(clear[0] * 255),
			G: uint8(clear[1] * 255),
			B: uint8(clear[2] * 255),
			A: 255,
		},
		ShowHUD: window.HUD,
		builder: render.NewBuilder(storage),
	}
	r.players.Init(storage)
	r.cameras.Init(storage)

	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("render: load HUD font: %v", err)
	} else {
		r.face = &text.GoTextFace{Source: src, Size: 14}
	}

	return r
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.ClearColor)

	bounds := screen.Bounds()
	list := r.builder.Build(bounds.Dx(), bounds.Dy())
	if list != nil {
		r.drawTriangles(screen, list.Triangles)
		for _, l := range list.Lines {
			vector.StrokeLine(screen, l.From.X(), l.From.Y(), l.To.X(), l.To.Y(), lineWidth, toColor(l.Color), true)
		}
	}

	if r.ShowHUD {
		r.drawHUD(screen, list)
	}
}

// drawTriangles submits sorted triangles in batches that fit uint16 indices.
func (r *Renderer) drawTriangles(screen *ebiten.Image, tris []render.Triangle) {
	const maxBatch = 65535 / 3

	for start := 0; start < len(tris); start += maxBatch {
		end := min(start+maxBatch, len(tris))

		r.vertices = r.vertices[:0]
		r.indices = r.indices[:0]
		for _, tri := range tris[start:end] {
			base := uint16(len(r.vertices))
			for _, p := range tri.Points {
				r.vertices = append(r.vertices, ebiten.Vertex{
					DstX:   p.X(),
					DstY:   p.Y(),
					SrcX:   1,
					SrcY:   1,
					ColorR: tri.Color.X(),
					ColorG: tri.Color.Y(),
					ColorB: tri.Color.Z(),
					ColorA: tri.Color.W(),
				})
			}
			r.indices = append(r.indices, base, base+1, base+2)
		}

		op := &ebiten.DrawTrianglesOptions{}
		op.AntiAlias = true
		screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image, list *render.DrawList) {
	if r.face == nil {
		return
	}

	r.players.Execute()
	r.cameras.Execute()

	lines := []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()),
		"WASD move  J/K turn  F3 debug lines  Esc quit",
	}

	for p := range r.players.Values() {
		pos := p.Transform.Translation
		lines = append(lines, fmt.Sprintf("player (%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()))
		for c := range r.cameras.Values() {
			gap := scene.HorizontalDistance(c.Transform.Translation, pos)
			lines = append(lines, fmt.Sprintf("camera gap %.2f  height %+.2f", gap, c.Transform.Translation.Y()-pos.Y()))
		}
	}
	if n := r.players.Len(); n > 1 {
		lines = append(lines, fmt.Sprintf("warning: %d Player nodes", n))
	}
	if list != nil {
		lines = append(lines, fmt.Sprintf("tris %d  lines %d  culled %d  clipped %d",
			len(list.Triangles), len(list.Lines), list.Culled, list.Clipped))
	}

	bounds := screen.Bounds()
	y := float64(bounds.Dy()) - float64(len(lines))*18 - 8
	for _, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, y)
		op.ColorScale.ScaleWithColor(colornames.White)
		text.Draw(screen, line, r.face, op)
		y += 18
	}
}

func toColor(c mgl32.Vec4) color.Color {
	return color.RGBA{
		R: uint8(c.X() * c.W() * 255),
		G: uint8(c.Y() * c.W() * 255),
		B: uint8(c.Z() * c.W() * 255),
		A: uint8(c.W() * 255),
	}
}
