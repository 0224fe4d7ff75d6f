package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/driftnet/internal/export"
	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/frame"
	"github.com/san-kum/driftnet/internal/metrics"
)

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 || frames < 1 {
		return fmt.Errorf("snapshot needs a positive size and at least one frame")
	}
	mode := cfg.Mode()
	if theme != "" {
		if mode, err = field.ParseMode(theme); err != nil {
			return err
		}
	}

	svg := export.NewSVGSurface(field.PaletteFor(mode.IsDark()).Background)
	host := frame.NewHeadless(width, height, svg)
	r := frame.Mount(host, frame.Options{
		Params: cfg.FieldParams(),
		Rand:   rand.New(rand.NewSource(seedOrClock(cfg.Seed))),
		Dark:   mode.IsDark,
	})
	defer r.Unmount()
	for i := 0; i < frames; i++ {
		host.Advance()
	}

	if outPath == "-" {
		_, err = svg.WriteTo(os.Stdout)
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := svg.WriteTo(f); err != nil {
		return err
	}
	stats := r.Stats()
	fmt.Printf("wrote %s (%d particles, %d links)\n", outPath, stats.Particles, stats.Links)
	return nil
}

// discard is a Surface that draws nothing, so bench measures the field alone.
type discard struct{}

func (discard) Resize(width, height float64)                            {}
func (discard) Clear()                                                  {}
func (discard) FillCircle(center r2.Vec, radius float64, c field.Color) {}
func (discard) StrokeLine(a, b r2.Vec, width float64, c field.Color)    {}

func runBench(cmd *cobra.Command, args []string) error {
	s, err := start(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()
	if width <= 0 || height <= 0 || frames < 1 {
		return fmt.Errorf("bench needs a positive size and at least one frame")
	}

	rec := metrics.NewRecorder(frames)
	host := frame.NewHeadless(width, height, discard{})
	r := frame.Mount(host, frame.Options{
		Params:  s.cfg.FieldParams(),
		Rand:    rand.New(rand.NewSource(seedOrClock(s.cfg.Seed))),
		Dark:    s.mode.IsDark,
		OnFrame: rec.Observe,
		Logger:  s.log,
	})
	defer r.Unmount()

	for i := 0; i < frames; i++ {
		if sweep {
			// Lissajous path so the pointer crosses the whole viewport.
			t := float64(i) / float64(frames) * 2 * math.Pi
			host.MovePointer(width/2+width/2*math.Sin(3*t), height/2+height/2*math.Sin(2*t))
		}
		rec.Start()
		host.Advance()
	}

	sum := rec.Summary()
	s.log.Info("bench", "summary", sum)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEWPORT\tFRAMES\tPARTICLES\tAVG LINKS\tAVG FRAME\tMAX FRAME\tFRAMES/SEC")
	fps := 0.0
	if sum.MeanDuration > 0 {
		fps = 1 / sum.MeanDuration.Seconds()
	}
	fmt.Fprintf(w, "%.0fx%.0f\t%d\t%.0f\t%.1f\t%v\t%v\t%.0f\n",
		width, height, sum.Frames, sum.MeanParticles, sum.MeanLinks, sum.MeanDuration, sum.MaxDuration, fps)
	if err := w.Flush(); err != nil {
		return err
	}

	if plotRows > 0 {
		if plot := rec.Plot(72, plotRows); plot != "" {
			fmt.Printf("\n%s\n", plot)
		}
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := rec.WriteCSV(f); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", csvPath)
	}
	return nil
}
