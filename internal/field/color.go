package field

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an RGB color with a fractional alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts to a non-premultiplied 8-bit color, clamping alpha.
func (c Color) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}

// Hex returns the opaque #rrggbb form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c over bg using c's alpha scaled by gain.
func (c Color) Blend(bg Color, gain float64) Color {
	a := math.Max(0, math.Min(1, c.A*gain))
	mix := func(fg, back uint8) uint8 {
		return uint8(math.Round(float64(back)*(1-a) + float64(fg)*a))
	}
	return Color{R: mix(c.R, bg.R), G: mix(c.G, bg.G), B: mix(c.B, bg.B), A: 1}
}

// String returns the CSS rgba() form.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, formatAlpha(c.A))
}

func formatAlpha(a float64) string {
	s := strconv.FormatFloat(a, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
