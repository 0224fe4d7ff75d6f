package metrics

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/driftnet/internal/field"
)

// Sample is one drawn frame.
type Sample struct {
	Frame      uint64 `csv:"frame"`
	Particles  int    `csv:"particles"`
	Links      int    `csv:"links"`
	DurationUS int64  `csv:"duration_us"`
}

// Recorder keeps the most recent frames in a ring buffer.
type Recorder struct {
	window     int
	samples    []Sample
	writeIndex int
	count      int
	frame      uint64

	frameStart time.Time
}

// NewRecorder creates a recorder holding up to window samples.
func NewRecorder(window int) *Recorder {
	if window < 1 {
		window = 600
	}
	return &Recorder{
		window:  window,
		samples: make([]Sample, window),
	}
}

// Start marks the beginning of a frame for Observe's duration.
func (r *Recorder) Start() {
	r.frameStart = time.Now()
}

// Observe records stats for the frame begun by the last Start. Without a
// Start the duration is zero.
func (r *Recorder) Observe(stats field.Stats) {
	var d time.Duration
	if !r.frameStart.IsZero() {
		d = time.Since(r.frameStart)
		r.frameStart = time.Time{}
	}
	r.frame++
	r.samples[r.writeIndex] = Sample{
		Frame:      r.frame,
		Particles:  stats.Particles,
		Links:      stats.Links,
		DurationUS: d.Microseconds(),
	}
	r.writeIndex = (r.writeIndex + 1) % r.window
	if r.count < r.window {
		r.count++
	}
}

// Samples returns the buffered samples, oldest first.
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, 0, r.count)
	start := 0
	if r.count == r.window {
		start = r.writeIndex
	}
	for i := 0; i < r.count; i++ {
		out = append(out, r.samples[(start+i)%r.window])
	}
	return out
}

func (r *Recorder) Len() int { return r.count }

// Last returns the newest sample.
func (r *Recorder) Last() (Sample, bool) {
	if r.count == 0 {
		return Sample{}, false
	}
	return r.samples[(r.writeIndex-1+r.window)%r.window], true
}

// MeanDuration averages frame time over the buffer.
func (r *Recorder) MeanDuration() time.Duration {
	if r.count == 0 {
		return 0
	}
	var total int64
	for _, s := range r.Samples() {
		total += s.DurationUS
	}
	return time.Duration(total/int64(r.count)) * time.Microsecond
}

// MeanLinks averages the link count over the buffer.
func (r *Recorder) MeanLinks() float64 {
	if r.count == 0 {
		return 0
	}
	total := 0
	for _, s := range r.Samples() {
		total += s.Links
	}
	return float64(total) / float64(r.count)
}

// Summary aggregates the buffered samples.
type Summary struct {
	Frames        int
	MeanDuration  time.Duration
	MaxDuration   time.Duration
	MeanLinks     float64
	MeanParticles float64
}

func (r *Recorder) Summary() Summary {
	sum := Summary{Frames: r.count, MeanDuration: r.MeanDuration(), MeanLinks: r.MeanLinks()}
	if r.count == 0 {
		return sum
	}
	particles := 0
	for _, s := range r.Samples() {
		particles += s.Particles
		if d := time.Duration(s.DurationUS) * time.Microsecond; d > sum.MaxDuration {
			sum.MaxDuration = d
		}
	}
	sum.MeanParticles = float64(particles) / float64(r.count)
	return sum
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Frames),
		slog.Int64("avg_frame_us", s.MeanDuration.Microseconds()),
		slog.Int64("max_frame_us", s.MaxDuration.Microseconds()),
		slog.Float64("avg_links", s.MeanLinks),
		slog.Float64("avg_particles", s.MeanParticles),
	)
}

// WriteCSV writes the buffered samples with a header row.
func (r *Recorder) WriteCSV(w io.Writer) error {
	samples := r.Samples()
	if err := gocsv.Marshal(&samples, w); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// Plot renders link counts and frame times as terminal charts.
func (r *Recorder) Plot(width, height int) string {
	samples := r.Samples()
	if len(samples) < 2 {
		return ""
	}
	links := make([]float64, len(samples))
	durations := make([]float64, len(samples))
	for i, s := range samples {
		links[i] = float64(s.Links)
		durations[i] = float64(s.DurationUS)
	}
	return asciigraph.Plot(links, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("links per frame")) +
		"\n\n" +
		asciigraph.Plot(durations, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption("frame time (us)"))
}
