package frame

import (
	"errors"

	"github.com/san-kum/driftnet/internal/field"
)

// ErrNoSurface is returned by a host whose drawing surface is unavailable.
var ErrNoSurface = errors.New("frame: drawing surface unavailable")

// ID identifies a scheduled frame request. Zero is never issued.
type ID uint64

// Scheduler issues one-shot frame callbacks synchronized to the host's
// refresh cycle.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

// Events delivers ambient input signals. Each On* call returns a func that
// removes the listener.
type Events interface {
	OnResize(fn func(width, height float64)) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
	OnPointerLeave(fn func()) (remove func())
}

// Host is the environment a Renderer mounts into.
type Host interface {
	Scheduler
	Events
	// Viewport returns the current logical size.
	Viewport() (width, height float64)
	// Surface returns the drawing target, or an error when none is available.
	Surface() (field.Surface, error)
}
