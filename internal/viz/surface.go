package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/field"
)

// BrailleSurface draws a field onto a braille canvas. One braille dot covers
// Scale logical units on each axis.
type BrailleSurface struct {
	Canvas *Canvas
	Scale  float64
}

func NewBrailleSurface(scale float64) *BrailleSurface {
	if scale <= 0 {
		scale = 1
	}
	return &BrailleSurface{Canvas: NewCanvas(0, 0), Scale: scale}
}

// Resize fits the canvas to a logical size, rounding up to whole cells.
func (s *BrailleSurface) Resize(width, height float64) {
	cols := int(math.Ceil(width / s.Scale / 2))
	rows := int(math.Ceil(height / s.Scale / 4))
	s.Canvas.Resize(cols, rows)
}

func (s *BrailleSurface) Clear() { s.Canvas.Clear() }

func (s *BrailleSurface) dot(v r2.Vec) (int, int) {
	return int(math.Floor(v.X / s.Scale)), int(math.Floor(v.Y / s.Scale))
}

func (s *BrailleSurface) FillCircle(center r2.Vec, radius float64, c field.Color) {
	x, y := s.dot(center)
	r := int(radius / s.Scale)
	if r < 1 {
		s.Canvas.Plot(x, y, c)
		return
	}
	s.Canvas.FillDisk(x, y, r, c)
}

// StrokeLine draws a one-dot line; width is below dot resolution.
func (s *BrailleSurface) StrokeLine(a, b r2.Vec, _ float64, c field.Color) {
	x0, y0 := s.dot(a)
	x1, y1 := s.dot(b)
	s.Canvas.DrawLine(x0, y0, x1, y1, c)
}

// Logical converts a terminal cell to the logical coordinate of its center.
func (s *BrailleSurface) Logical(col, row int) (float64, float64) {
	return (float64(col)*2 + 1) * s.Scale, (float64(row)*4 + 2) * s.Scale
}

// Viewport returns the logical size of a cols x rows cell area.
func (s *BrailleSurface) Viewport(cols, rows int) (float64, float64) {
	return float64(cols) * 2 * s.Scale, float64(rows) * 4 * s.Scale
}
