package frame

import "github.com/san-kum/driftnet/internal/field"

// Headless is an in-memory Host. Frames run only when Advance is called, and
// input events are injected with Resize, MovePointer and LeavePointer.
//
// Headless is not safe for concurrent use; callers that tick it from a
// goroutine must serialize access themselves.
type Headless struct {
	Queue

	width, height float64
	surface       field.Surface

	resize Listeners[func(width, height float64)]
	move   Listeners[func(x, y float64)]
	leave  Listeners[func()]
}

// NewHeadless returns a host of the given size drawing onto surface. A nil
// surface makes Surface report ErrNoSurface.
func NewHeadless(width, height float64, surface field.Surface) *Headless {
	return &Headless{width: width, height: height, surface: surface}
}

func (h *Headless) Viewport() (float64, float64) { return h.width, h.height }

func (h *Headless) Surface() (field.Surface, error) {
	if h.surface == nil {
		return nil, ErrNoSurface
	}
	return h.surface, nil
}

func (h *Headless) OnResize(fn func(width, height float64)) func() { return h.resize.Add(fn) }

func (h *Headless) OnPointerMove(fn func(x, y float64)) func() { return h.move.Add(fn) }

func (h *Headless) OnPointerLeave(fn func()) func() { return h.leave.Add(fn) }

// Advance runs one refresh and reports how many callbacks fired.
func (h *Headless) Advance() int { return h.Flush() }

// Resize changes the viewport and notifies listeners.
func (h *Headless) Resize(width, height float64) {
	h.width, h.height = width, height
	h.resize.Each(func(fn func(width, height float64)) { fn(width, height) })
}

func (h *Headless) MovePointer(x, y float64) {
	h.move.Each(func(fn func(x, y float64)) { fn(x, y) })
}

func (h *Headless) LeavePointer() {
	h.leave.Each(func(fn func()) { fn() })
}

// ListenerCount returns the number of registered listeners of all kinds.
func (h *Headless) ListenerCount() int {
	return h.resize.Len() + h.move.Len() + h.leave.Len()
}
