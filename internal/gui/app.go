package gui

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/frame"
)

// ThemeStore persists the light/dark choice.
type ThemeStore interface {
	SetTheme(ctx context.Context, mode field.Mode) error
}

type Options struct {
	Width, Height int
	FPS           int
	Params        field.Params
	Seed          int64
	Mode          field.Mode
	Store         ThemeStore
	Logger        *slog.Logger
}

// App hosts the particle field in a resizable raylib window.
type App struct {
	opts     Options
	log      *slog.Logger
	surface  *Surface
	queue    frame.Queue
	resize   frame.Listeners[func(width, height float64)]
	move     frame.Listeners[func(x, y float64)]
	leave    frame.Listeners[func()]
	renderer *frame.Renderer

	mode    field.Mode
	inside  bool
	cursor  rl.Vector2
	showHUD bool
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(width, height, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(width), int32(height), "driftnet")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	a := &App{
		opts:    opts,
		log:     opts.Logger,
		surface: &Surface{},
		mode:    opts.Mode,
		showHUD: true,
	}
	a.applyPalette()
	a.renderer = frame.Mount(a, frame.Options{
		Params: opts.Params,
		Rand:   rand.New(rand.NewSource(opts.Seed)),
		Dark:   func() bool { return a.mode.IsDark() },
		Logger: opts.Logger,
	})
	defer a.renderer.Unmount()

	a.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) RequestFrame(fn func()) frame.ID { return a.queue.RequestFrame(fn) }

func (a *App) CancelFrame(id frame.ID) { a.queue.CancelFrame(id) }

func (a *App) OnResize(fn func(width, height float64)) func() { return a.resize.Add(fn) }

func (a *App) OnPointerMove(fn func(x, y float64)) func() { return a.move.Add(fn) }

func (a *App) OnPointerLeave(fn func()) func() { return a.leave.Add(fn) }

func (a *App) Viewport() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

func (a *App) Surface() (field.Surface, error) { return a.surface, nil }

// Update polls window and input state. It returns false when the user
// asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.toggleTheme()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
	}

	if rl.IsWindowResized() {
		w, h := a.Viewport()
		a.resize.Each(func(fn func(width, height float64)) { fn(w, h) })
	}

	if rl.IsCursorOnScreen() && rl.IsWindowFocused() {
		pos := rl.GetMousePosition()
		if !a.inside || pos != a.cursor {
			a.inside, a.cursor = true, pos
			a.move.Each(func(fn func(x, y float64)) { fn(float64(pos.X), float64(pos.Y)) })
		}
	} else if a.inside {
		a.inside = false
		a.leave.Each(func(fn func()) { fn() })
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if a.queue.Flush() == 0 {
		rl.ClearBackground(a.surface.Background)
	}
	if a.showHUD {
		a.drawHUD()
	}
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	pal := field.PaletteFor(a.mode.IsDark())
	col := toColor(pal.Dot.WithAlpha(0.9))
	stats := a.renderer.Stats()
	line := fmt.Sprintf("%d particles  %d links  %s  %d fps", stats.Particles, stats.Links, a.mode, rl.GetFPS())
	rl.DrawText(line, 12, 12, 16, col)
	rl.DrawText("[T] theme  [H] hud  [Q] quit", 12, int32(rl.GetScreenHeight())-26, 14, toColor(pal.Dot.WithAlpha(0.6)))
}

func (a *App) applyPalette() {
	a.surface.Background = toColor(field.PaletteFor(a.mode.IsDark()).Background)
}

func (a *App) toggleTheme() {
	a.mode = a.mode.Toggle()
	a.applyPalette()
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
