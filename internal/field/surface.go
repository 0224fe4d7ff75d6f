package field

import "gonum.org/v1/gonum/spatial/r2"

// Surface is the drawing target of a field. Coordinates are logical units
// with the origin at the top-left corner.
type Surface interface {
	// Resize sets the logical size of the surface.
	Resize(width, height float64)
	// Clear erases the whole surface.
	Clear()
	FillCircle(center r2.Vec, radius float64, c Color)
	StrokeLine(a, b r2.Vec, width float64, c Color)
}
