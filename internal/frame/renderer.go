package frame

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/san-kum/driftnet/internal/field"
)

// Options configures a Renderer. The zero value uses default params, a
// time-seeded source, light mode and slog.Default.
type Options struct {
	Params field.Params
	Rand   *rand.Rand
	// Dark is read on every draw.
	Dark func() bool
	// OnFrame, if set, observes each drawn frame.
	OnFrame func(field.Stats)
	Logger  *slog.Logger
}

// Renderer drives a particle field on a host: it resizes with the viewport,
// tracks the pointer, and redraws once per frame until Unmount.
type Renderer struct {
	host    Host
	surface field.Surface
	field   *field.Field
	pointer *field.Pointer
	dark    func() bool
	onFrame func(field.Stats)
	log     *slog.Logger

	active   bool
	frameID  ID
	removers []func()
	frames   uint64
	last     field.Stats
}

// Mount attaches a renderer to h and schedules the first frame. If the host
// has no surface the returned renderer is inert: nothing is registered,
// scheduled or reported.
func Mount(h Host, opts Options) *Renderer {
	surface, err := h.Surface()
	if err != nil || surface == nil {
		return &Renderer{}
	}

	params := opts.Params
	if params == (field.Params{}) {
		params = field.DefaultParams()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	dark := opts.Dark
	if dark == nil {
		dark = func() bool { return false }
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Renderer{
		host:    h,
		surface: surface,
		field:   field.New(params, rng),
		pointer: field.NewPointer(),
		dark:    dark,
		onFrame: opts.OnFrame,
		log:     logger,
		active:  true,
	}

	r.resize(h.Viewport())
	r.removers = append(r.removers,
		h.OnResize(r.resize),
		h.OnPointerMove(r.pointer.Move),
		h.OnPointerLeave(r.pointer.Leave),
	)
	r.frameID = h.RequestFrame(r.tick)
	return r
}

func (r *Renderer) resize(width, height float64) {
	r.surface.Resize(width, height)
	r.field.Resize(width, height)
	r.log.Debug("field_resized", "width", width, "height", height, "particles", r.field.Len())
}

func (r *Renderer) tick() {
	if !r.active {
		return
	}
	r.frameID = 0
	r.field.Step(r.pointer.Pos())
	r.last = r.field.Draw(r.surface, r.dark())
	r.frames++
	if r.onFrame != nil {
		r.onFrame(r.last)
	}
	if r.active {
		r.frameID = r.host.RequestFrame(r.tick)
	}
}

// Unmount removes every listener and cancels the pending frame. It is safe
// to call more than once and from inside OnFrame.
func (r *Renderer) Unmount() {
	if !r.active {
		return
	}
	r.active = false
	for _, remove := range r.removers {
		remove()
	}
	r.removers = nil
	if r.frameID != 0 {
		r.host.CancelFrame(r.frameID)
		r.frameID = 0
	}
	r.log.Debug("renderer_unmounted", "frames", r.frames)
}

// Active reports whether the renderer is mounted and animating.
func (r *Renderer) Active() bool { return r.active }

// Frames returns the number of frames drawn so far.
func (r *Renderer) Frames() uint64 { return r.frames }

// Stats returns the counts of the last drawn frame.
func (r *Renderer) Stats() field.Stats { return r.last }

// Field exposes the simulated particle set, or nil for an inert renderer.
func (r *Renderer) Field() *field.Field { return r.field }

// Pointer exposes the tracked pointer, or nil for an inert renderer.
func (r *Renderer) Pointer() *field.Pointer { return r.pointer }
