package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/driftnet/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = rune(0x2800)

// Canvas is a grid of braille cells. Each cell keeps the color of the most
// opaque dot drawn into it during the current frame.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]field.Color
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid to w x h cells and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Colors = make([][]field.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]field.Color, w)
	}
	c.Clear()
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.Plot(x, y, field.Color{})
}

// Plot sets a dot and records col for its cell when col is at least as
// opaque as what the cell already holds.
func (c *Canvas) Plot(x, y int, col field.Color) {
	if x < 0 || y < 0 {
		return
	}

	cx := x / 2
	row := y / 4
	if cx >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][cx] |= rune(pixelMap[y%4][x%2])
	if col.A >= c.Colors[row][cx].A {
		c.Colors[row][cx] = col
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = field.Color{}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col field.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillDisk sets every dot within r of (cx, cy).
func (c *Canvas) FillDisk(cx, cy, r int, col field.Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Plot(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each cell colored by blending its color
// over bg. Runs of equal color share one style.
func (c *Canvas) Render(bg field.Color, intensity float64) string {
	base := lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex()))
	var b strings.Builder
	for i, row := range c.Grid {
		var run strings.Builder
		runHex := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := base
			if runHex != "" {
				style = style.Foreground(lipgloss.Color(runHex))
			}
			b.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for j, r := range row {
			hex := ""
			if r != blank {
				hex = c.Colors[i][j].Blend(bg, intensity).Hex()
			}
			if hex != runHex {
				flush()
				runHex = hex
			}
			run.WriteRune(r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
