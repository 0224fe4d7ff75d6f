package server

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/driftnet/internal/export"
	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/frame"
	"github.com/san-kum/driftnet/internal/metrics"
)

const maxViewport = 8192

// SceneOptions configures a Scene.
type SceneOptions struct {
	Width, Height float64
	Params        field.Params
	Seed          int64
	Mode          field.Mode
	Logger        *slog.Logger
}

// Scene is a headless particle field rendered to SVG. All methods are safe
// for concurrent use.
type Scene struct {
	mu       sync.Mutex
	host     *frame.Headless
	svg      *export.SVGSurface
	renderer *frame.Renderer
	recorder *metrics.Recorder
	dark     atomic.Bool
}

// StatsResponse is the JSON body of /api/stats.
type StatsResponse struct {
	Frames      uint64  `json:"frames"`
	Particles   int     `json:"particles"`
	Links       int     `json:"links"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Mode        string  `json:"mode"`
	MeanFrameUS int64   `json:"mean_frame_us"`
	MeanLinks   float64 `json:"mean_links"`
}

func NewScene(opts SceneOptions) *Scene {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	s := &Scene{
		svg:      export.NewSVGSurface(field.PaletteFor(opts.Mode.IsDark()).Background),
		recorder: metrics.NewRecorder(0),
	}
	s.dark.Store(opts.Mode.IsDark())
	s.host = frame.NewHeadless(opts.Width, opts.Height, s.svg)
	s.renderer = frame.Mount(s.host, frame.Options{
		Params:  opts.Params,
		Rand:    rand.New(rand.NewSource(opts.Seed)),
		Dark:    s.dark.Load,
		OnFrame: s.recorder.Observe,
		Logger:  opts.Logger,
	})
	return s
}

// Tick advances the scene by one frame.
func (s *Scene) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.svg.SetBackground(field.PaletteFor(s.dark.Load()).Background)
	s.recorder.Start()
	s.host.Advance()
}

// Run ticks the scene fps times a second until ctx is done.
func (s *Scene) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// SVG returns the last drawn frame.
func (s *Scene) SVG() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.svg.String()
}

func (s *Scene) Stats() StatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.renderer.Stats()
	w, h := s.host.Viewport()
	return StatsResponse{
		Frames:      s.renderer.Frames(),
		Particles:   stats.Particles,
		Links:       stats.Links,
		Width:       w,
		Height:      h,
		Mode:        s.Mode().String(),
		MeanFrameUS: s.recorder.MeanDuration().Microseconds(),
		MeanLinks:   s.recorder.MeanLinks(),
	}
}

func (s *Scene) Mode() field.Mode {
	if s.dark.Load() {
		return field.Dark
	}
	return field.Light
}

// SetMode takes effect on the next frame.
func (s *Scene) SetMode(m field.Mode) {
	s.dark.Store(m.IsDark())
}

// Resize changes the viewport. Both sides must be positive and at most
// 8192 units.
func (s *Scene) Resize(width, height float64) error {
	if width <= 0 || height <= 0 || width > maxViewport || height > maxViewport {
		return fmt.Errorf("viewport %vx%v out of range", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host.Resize(width, height)
	return nil
}

func (s *Scene) MovePointer(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host.MovePointer(x, y)
}

func (s *Scene) LeavePointer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host.LeavePointer()
}

// Close unmounts the renderer. Later ticks draw nothing.
func (s *Scene) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer.Unmount()
}
