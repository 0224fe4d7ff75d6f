package viz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/frame"
	"github.com/san-kum/driftnet/internal/metrics"
)

const (
	defaultCols = 80
	defaultRows = 24
)

// ThemeStore persists the light/dark choice.
type ThemeStore interface {
	SetTheme(ctx context.Context, mode field.Mode) error
}

type Options struct {
	FPS       int
	Scale     float64
	Intensity float64
	Params    field.Params
	Seed      int64
	Mode      field.Mode
	Store     ThemeStore
	Logger    *slog.Logger
}

type frameMsg time.Time

// App is the terminal host of the particle field. It implements tea.Model
// for Bubble Tea and frame.Host for the renderer, translating window, mouse
// and focus messages into field events.
type App struct {
	opts     Options
	log      *slog.Logger
	surface  *BrailleSurface
	queue    frame.Queue
	resize   frame.Listeners[func(width, height float64)]
	move     frame.Listeners[func(x, y float64)]
	leave    frame.Listeners[func()]
	renderer *frame.Renderer
	recorder *metrics.Recorder

	cols, rows int
	mode       field.Mode
	showHelp   bool
	quitting   bool
}

func NewApp(opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Intensity <= 0 {
		opts.Intensity = 1
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		opts:     opts,
		log:      logger,
		surface:  NewBrailleSurface(opts.Scale),
		recorder: metrics.NewRecorder(opts.FPS * 2),
		cols:     defaultCols,
		rows:     defaultRows - 1,
		mode:     opts.Mode,
	}
	a.renderer = frame.Mount(a, frame.Options{
		Params:  opts.Params,
		Rand:    rand.New(rand.NewSource(opts.Seed)),
		Dark:    func() bool { return a.mode.IsDark() },
		OnFrame: a.recorder.Observe,
		Logger:  logger,
	})
	return a
}

// Run starts the terminal program and blocks until the user quits.
func Run(opts Options) error {
	app := NewApp(opts)
	defer app.Close()

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

// Close unmounts the renderer.
func (a *App) Close() {
	a.renderer.Unmount()
}

func (a *App) RequestFrame(fn func()) frame.ID { return a.queue.RequestFrame(fn) }

func (a *App) CancelFrame(id frame.ID) { a.queue.CancelFrame(id) }

func (a *App) OnResize(fn func(width, height float64)) func() { return a.resize.Add(fn) }

func (a *App) OnPointerMove(fn func(x, y float64)) func() { return a.move.Add(fn) }

func (a *App) OnPointerLeave(fn func()) func() { return a.leave.Add(fn) }

func (a *App) Viewport() (float64, float64) { return a.surface.Viewport(a.cols, a.rows) }

func (a *App) Surface() (field.Surface, error) { return a.surface, nil }

// Mode returns the current light/dark mode.
func (a *App) Mode() field.Mode { return a.mode }

// Renderer exposes the mounted renderer.
func (a *App) Renderer() *frame.Renderer { return a.renderer }

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.opts.FPS), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a *App) Init() tea.Cmd {
	return a.tick()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.cols = msg.Width
		a.rows = msg.Height - 1
		if a.rows < 1 {
			a.rows = 1
		}
		w, h := a.Viewport()
		a.resize.Each(func(fn func(width, height float64)) { fn(w, h) })
	case tea.MouseMsg:
		if msg.Y >= a.rows || msg.X >= a.cols {
			a.leave.Each(func(fn func()) { fn() })
			break
		}
		x, y := a.surface.Logical(msg.X, msg.Y)
		a.move.Each(func(fn func(x, y float64)) { fn(x, y) })
	case tea.BlurMsg:
		a.leave.Each(func(fn func()) { fn() })
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			a.quitting = true
			a.renderer.Unmount()
			return a, tea.Quit
		case "t":
			a.toggleTheme()
		case "?":
			a.showHelp = !a.showHelp
		}
	case frameMsg:
		a.recorder.Start()
		a.queue.Flush()
		return a, a.tick()
	}
	return a, nil
}

func (a *App) toggleTheme() {
	a.mode = a.mode.Toggle()
	a.log.Info("theme_changed", "mode", a.mode.String())
	if a.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := a.opts.Store.SetTheme(ctx, a.mode); err != nil {
		a.log.Warn("theme_save_failed", "error", err)
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	theme := ThemeFor(a.mode)
	pal := field.PaletteFor(a.mode.IsDark())

	var b strings.Builder
	b.WriteString(a.surface.Canvas.Render(pal.Background, a.opts.Intensity))
	b.WriteByte('\n')
	b.WriteString(a.statusLine(theme))
	return b.String()
}

func (a *App) statusLine(theme Theme) string {
	if a.showHelp {
		line := theme.key().Render(" q ") + theme.hint().Render("quit ") +
			theme.key().Render(" t ") + theme.hint().Render("theme ") +
			theme.key().Render(" ? ") + theme.hint().Render("close help")
		return padLine(line, a.cols, theme)
	}

	stats := a.renderer.Stats()
	text := fmt.Sprintf(" %d particles  %d links  %s", stats.Particles, stats.Links, a.mode)
	if mean := a.recorder.MeanDuration(); mean > 0 {
		text += fmt.Sprintf("  %s/frame", mean.Round(time.Microsecond))
	}
	line := theme.status().Render(text) + theme.hint().Render("  ? help")
	return padLine(line, a.cols, theme)
}

func padLine(line string, width int, theme Theme) string {
	return theme.status().Width(width).Render(line)
}
