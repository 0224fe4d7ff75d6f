package field

import "gonum.org/v1/gonum/spatial/r2"

// Offscreen is the pointer position used when the cursor is outside the
// tracked area. It lies farther than any repulsion radius from the surface.
var Offscreen = r2.Vec{X: -1000, Y: -1000}

// Pointer is the last known cursor position. Last write wins.
type Pointer struct {
	pos    r2.Vec
	inside bool
}

// NewPointer returns a pointer parked at Offscreen.
func NewPointer() *Pointer {
	return &Pointer{pos: Offscreen}
}

func (p *Pointer) Move(x, y float64) {
	p.pos = r2.Vec{X: x, Y: y}
	p.inside = true
}

// Leave parks the pointer at Offscreen.
func (p *Pointer) Leave() {
	p.pos = Offscreen
	p.inside = false
}

func (p *Pointer) Pos() r2.Vec { return p.pos }

// Inside reports whether the pointer has moved since the last Leave.
func (p *Pointer) Inside() bool { return p.inside }
