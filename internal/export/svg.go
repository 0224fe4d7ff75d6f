package export

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/field"
)

// SVGSurface is a field.Surface that records one frame as SVG elements.
// Clear discards the previous frame.
type SVGSurface struct {
	width, height float64
	background    field.Color
	body          strings.Builder
	elements      int
}

// NewSVGSurface returns an empty surface filled with background.
func NewSVGSurface(background field.Color) *SVGSurface {
	return &SVGSurface{background: background}
}

func (s *SVGSurface) Resize(width, height float64) {
	s.width, s.height = width, height
}

func (s *SVGSurface) Clear() {
	s.body.Reset()
	s.elements = 0
}

// SetBackground changes the fill used behind the next rendered document.
func (s *SVGSurface) SetBackground(c field.Color) {
	s.background = c
}

func (s *SVGSurface) FillCircle(center r2.Vec, radius float64, c field.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		center.X, center.Y, radius, c)
	s.elements++
}

func (s *SVGSurface) StrokeLine(a, b r2.Vec, width float64, c field.Color) {
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		a.X, a.Y, b.X, b.Y, c, width)
	s.elements++
}

// Elements returns the number of circles and lines in the current frame.
func (s *SVGSurface) Elements() int { return s.elements }

func (s *SVGSurface) Size() (float64, float64) { return s.width, s.height }

// String renders the current frame as a standalone SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.width, s.height, s.width, s.height, s.background.Hex())
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteTo writes the SVG document to w.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
