package frame_test

import (
	"io"
	"log/slog"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/frame"
)

type countingSurface struct {
	width, height float64
	clears        int
	circles       []field.Color
	lines         []field.Color
}

func (s *countingSurface) Resize(w, h float64) { s.width, s.height = w, h }

func (s *countingSurface) Clear() {
	s.clears++
	s.circles = s.circles[:0]
	s.lines = s.lines[:0]
}

func (s *countingSurface) FillCircle(_ r2.Vec, _ float64, c field.Color) {
	s.circles = append(s.circles, c)
}

func (s *countingSurface) StrokeLine(_, _ r2.Vec, _ float64, c field.Color) {
	s.lines = append(s.lines, c)
}

// capturingHost records the last frame callback so tests can invoke it after
// the renderer has cancelled it.
type capturingHost struct {
	*frame.Headless
	last func()
}

func (h *capturingHost) RequestFrame(fn func()) frame.ID {
	h.last = fn
	return h.Headless.RequestFrame(fn)
}

var _ = Describe("Renderer", func() {
	var (
		surface *countingSurface
		host    *frame.Headless
		dark    bool
		opts    frame.Options
	)

	BeforeEach(func() {
		surface = &countingSurface{}
		host = frame.NewHeadless(800, 600, surface)
		dark = false
		opts = frame.Options{
			Rand:   rand.New(rand.NewSource(42)),
			Dark:   func() bool { return dark },
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}
	})

	Describe("Mount", func() {
		It("sizes the surface and populates the field from the viewport", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			Expect(r.Active()).To(BeTrue())
			Expect(surface.width).To(Equal(800.0))
			Expect(surface.height).To(Equal(600.0))
			Expect(r.Field().Len()).To(Equal(26))
		})

		It("schedules exactly one frame and listens for input", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			Expect(host.Pending()).To(Equal(1))
			Expect(host.ListenerCount()).To(Equal(3))
		})

		It("draws on each advance and keeps the loop going", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			for i := 0; i < 5; i++ {
				Expect(host.Advance()).To(Equal(1))
			}
			Expect(r.Frames()).To(Equal(uint64(5)))
			Expect(surface.clears).To(Equal(5))
			Expect(surface.circles).To(HaveLen(26))
			Expect(host.Pending()).To(Equal(1))
		})

		It("reports frame stats to OnFrame", func() {
			var seen []field.Stats
			opts.OnFrame = func(s field.Stats) { seen = append(seen, s) }
			r := frame.Mount(host, opts)
			defer r.Unmount()

			host.Advance()
			host.Advance()
			Expect(seen).To(HaveLen(2))
			Expect(seen[1].Particles).To(Equal(26))
			Expect(r.Stats()).To(Equal(seen[1]))
		})
	})

	Describe("surface failure", func() {
		It("stays inert without errors", func() {
			host = frame.NewHeadless(800, 600, nil)
			r := frame.Mount(host, opts)

			Expect(r.Active()).To(BeFalse())
			Expect(r.Field()).To(BeNil())
			Expect(host.Pending()).To(BeZero())
			Expect(host.ListenerCount()).To(BeZero())
			Expect(host.Advance()).To(BeZero())
			Expect(r.Unmount).NotTo(Panic())
		})
	})

	Describe("resize", func() {
		It("replaces the particle set instead of appending", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()
			Expect(r.Field().Len()).To(Equal(26))

			host.Resize(400, 300)
			Expect(r.Field().Len()).To(Equal(6))
			Expect(surface.width).To(Equal(400.0))

			w, h := r.Field().Size()
			Expect(w).To(Equal(400.0))
			Expect(h).To(Equal(300.0))
		})

		It("matches floor(area/18000) for arbitrary sizes", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			for _, sz := range [][2]float64{{1024, 768}, {375, 812}, {2560, 1440}} {
				host.Resize(sz[0], sz[1])
				Expect(r.Field().Len()).To(Equal(field.ParticleCount(sz[0], sz[1], 18000)))
			}
		})
	})

	Describe("pointer tracking", func() {
		It("follows moves and returns to the sentinel on leave", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			host.MovePointer(120, 80)
			Expect(r.Pointer().Pos()).To(Equal(r2.Vec{X: 120, Y: 80}))

			host.LeavePointer()
			Expect(r.Pointer().Pos()).To(Equal(field.Offscreen))
		})

		It("pushes nearby particles away", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			p := &r.Field().Particles()[0]
			p.Pos = r2.Vec{X: 400, Y: 300}
			p.Vel = r2.Vec{}
			host.MovePointer(350, 300)
			host.Advance()

			Expect(p.Pos.X).To(BeNumerically(">", 400))
		})
	})

	Describe("dark mode", func() {
		It("is read at draw time and only changes colors", func() {
			r := frame.Mount(host, opts)
			defer r.Unmount()

			twinSurface := &countingSurface{}
			twinHost := frame.NewHeadless(800, 600, twinSurface)
			twinOpts := opts
			twinOpts.Rand = rand.New(rand.NewSource(42))
			twinOpts.Dark = func() bool { return false }
			twin := frame.Mount(twinHost, twinOpts)
			defer twin.Unmount()

			host.Advance()
			twinHost.Advance()
			Expect(surface.circles[0]).To(Equal(field.LightPalette.Dot))

			dark = true
			host.Advance()
			twinHost.Advance()

			Expect(surface.circles[0]).To(Equal(field.DarkPalette.Dot))
			Expect(twinSurface.circles[0]).To(Equal(field.LightPalette.Dot))
			Expect(r.Field().Particles()).To(Equal(twin.Field().Particles()))
		})
	})

	Describe("Unmount", func() {
		It("removes listeners and cancels the pending frame", func() {
			r := frame.Mount(host, opts)
			host.Advance()
			r.Unmount()

			Expect(r.Active()).To(BeFalse())
			Expect(host.Pending()).To(BeZero())
			Expect(host.ListenerCount()).To(BeZero())
			Expect(host.Advance()).To(BeZero())
		})

		It("ignores events after teardown", func() {
			r := frame.Mount(host, opts)
			r.Unmount()

			host.Resize(400, 300)
			host.MovePointer(10, 10)
			Expect(r.Field().Len()).To(Equal(26))
			Expect(r.Pointer().Pos()).To(Equal(field.Offscreen))
		})

		It("turns a captured frame callback into a no-op", func() {
			ch := &capturingHost{Headless: host}
			r := frame.Mount(ch, opts)
			r.Unmount()

			Expect(ch.last).NotTo(BeNil())
			Expect(ch.last).NotTo(Panic())
			Expect(surface.clears).To(BeZero())
			Expect(r.Frames()).To(BeZero())
			Expect(host.Pending()).To(BeZero())
		})

		It("can run from inside a frame", func() {
			var r *frame.Renderer
			opts.OnFrame = func(field.Stats) { r.Unmount() }
			r = frame.Mount(host, opts)

			Expect(host.Advance()).To(Equal(1))
			Expect(r.Active()).To(BeFalse())
			Expect(host.Pending()).To(BeZero())
			Expect(host.Advance()).To(BeZero())
			Expect(r.Frames()).To(Equal(uint64(1)))
		})

		It("is idempotent", func() {
			r := frame.Mount(host, opts)
			r.Unmount()
			Expect(r.Unmount).NotTo(Panic())
		})
	})
})

var _ = Describe("Listeners", func() {
	It("calls in registration order and supports removal", func() {
		var l frame.Listeners[func(int)]
		var got []int
		l.Add(func(v int) { got = append(got, v) })
		remove := l.Add(func(v int) { got = append(got, v*10) })
		l.Add(func(v int) { got = append(got, v*100) })

		l.Each(func(fn func(int)) { fn(1) })
		Expect(got).To(Equal([]int{1, 10, 100}))

		remove()
		remove()
		got = nil
		l.Each(func(fn func(int)) { fn(2) })
		Expect(got).To(Equal([]int{2, 200}))
		Expect(l.Len()).To(Equal(2))
	})
})

var _ = Describe("Queue", func() {
	It("defers requests made during a flush", func() {
		var q frame.Queue
		runs := 0
		var loop func()
		loop = func() {
			runs++
			q.RequestFrame(loop)
		}
		q.RequestFrame(loop)

		Expect(q.Flush()).To(Equal(1))
		Expect(q.Flush()).To(Equal(1))
		Expect(runs).To(Equal(2))
		Expect(q.Pending()).To(Equal(1))
	})

	It("skips cancelled requests", func() {
		var q frame.Queue
		ran := false
		id := q.RequestFrame(func() { ran = true })
		q.CancelFrame(id)

		Expect(q.Flush()).To(BeZero())
		Expect(ran).To(BeFalse())
	})
})
