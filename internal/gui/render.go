package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/field"
)

// Surface draws onto the current raylib frame. Calls are only valid
// between rl.BeginDrawing and rl.EndDrawing.
type Surface struct {
	Background    rl.Color
	width, height float64
}

func (s *Surface) Resize(width, height float64) {
	s.width, s.height = width, height
}

func (s *Surface) Clear() {
	rl.ClearBackground(s.Background)
}

func (s *Surface) FillCircle(center r2.Vec, radius float64, c field.Color) {
	rl.DrawCircleV(vec(center), float32(radius), toColor(c))
}

func (s *Surface) StrokeLine(a, b r2.Vec, width float64, c field.Color) {
	rl.DrawLineEx(vec(a), vec(b), float32(width), toColor(c))
}

func vec(v r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

func toColor(c field.Color) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
