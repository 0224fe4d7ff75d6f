package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/san-kum/driftnet/internal/config"
	"github.com/san-kum/driftnet/internal/field"
	"github.com/san-kum/driftnet/internal/gui"
	"github.com/san-kum/driftnet/internal/server"
	"github.com/san-kum/driftnet/internal/storage"
	"github.com/san-kum/driftnet/internal/viz"
)

var (
	configFile string
	preset     string
	logLevel   string
	logFile    string
	dbPath     string
	seed       int64
	frameRate  int
	// serve
	addr string
	// snapshot and bench
	width    float64
	height   float64
	frames   int
	outPath  string
	csvPath  string
	theme    string
	sweep    bool
	plotRows int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "driftnet",
		Short:         "drifting particle network background",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to file")
	pf.StringVar(&dbPath, "db", "", "preferences database path")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a desktop window",
		RunE:  runGUI,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the field over http",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, DRIFTNET_ADDR or PORT)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames headlessly and write the last one as svg",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	snapshotCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "viewport height")
	snapshotCmd.Flags().IntVar(&frames, "frames", 60, "frames to advance")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "frame.svg", "output file (- for stdout)")
	snapshotCmd.Flags().StringVar(&theme, "theme", "", "light or dark (default from config)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame time headlessly",
		RunE:  runBench,
	}
	benchCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "viewport width")
	benchCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "viewport height")
	benchCmd.Flags().IntVar(&frames, "frames", 600, "frames to render")
	benchCmd.Flags().StringVar(&csvPath, "csv", "", "write per-frame samples to csv")
	benchCmd.Flags().BoolVar(&sweep, "sweep", true, "sweep the pointer across the viewport")
	benchCmd.Flags().IntVar(&plotRows, "plot-height", 8, "plot height in rows (0 disables)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDENSITY\tLINK\tREPULSION\tDRIFT")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.2f\n",
					name, p.Density, p.LinkDistance, p.RepulsionRadius, p.MaxDrift)
			}
			w.Flush()
		},
	}

	themeCmd := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "show or set the saved theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark"},
		RunE:      runTheme,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, serveCmd, snapshotCmd, benchCmd, presetsCmd, themeCmd, initConfigCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads --config, applies --preset and the persistent flag
// overrides, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = dbPath
	} else if env := os.Getenv("DRIFTNET_DB"); env != "" {
		cfg.Storage.Path = env
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger installs a JSON slog logger. Terminal mode passes quiet so
// log lines never land on the alt screen; they go to --log-file or nowhere.
func setupLogger(quiet bool) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q", logLevel)
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}

// openStore opens the preferences database and resolves the starting mode.
// A database that cannot be opened is logged and the configured theme is
// used without persistence.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage.Store, field.Mode) {
	st, err := storage.Open(ctx, cfg.Storage.Path, cfg.Mode())
	if err != nil {
		log.Warn("storage_unavailable", "path", cfg.Storage.Path, "error", err)
		return nil, cfg.Mode()
	}
	mode, err := st.Theme(ctx)
	if err != nil {
		log.Warn("theme_load_failed", "error", err)
		mode = cfg.Mode()
	}
	return st, mode
}

type session struct {
	cfg   *config.Config
	log   *slog.Logger
	store *storage.Store
	mode  field.Mode
	close func()
}

func start(cmd *cobra.Command, quiet bool) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, closeLog, err := setupLogger(quiet)
	if err != nil {
		return nil, err
	}
	st, mode := openStore(cmd.Context(), cfg, log)
	s := &session{cfg: cfg, log: log, store: st, mode: mode}
	s.close = func() {
		if st != nil {
			st.Close()
		}
		closeLog()
	}
	return s, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := start(cmd, true)
	if err != nil {
		return err
	}
	defer s.close()

	opts := viz.Options{
		FPS:       s.cfg.FPS,
		Scale:     s.cfg.TUI.Scale,
		Intensity: s.cfg.TUI.Intensity,
		Params:    s.cfg.FieldParams(),
		Seed:      s.cfg.Seed,
		Mode:      s.mode,
		Logger:    s.log,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return viz.Run(opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	s, err := start(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	opts := gui.Options{
		Width:  s.cfg.GUI.Width,
		Height: s.cfg.GUI.Height,
		FPS:    s.cfg.FPS,
		Params: s.cfg.FieldParams(),
		Seed:   s.cfg.Seed,
		Mode:   s.mode,
		Logger: s.log,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return gui.Run(opts)
}

// listenAddr picks --addr, then DRIFTNET_ADDR, then PORT, then the config.
func listenAddr(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("addr") {
		return addr
	}
	if env := os.Getenv("DRIFTNET_ADDR"); env != "" {
		return env
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + strings.TrimPrefix(port, ":")
	}
	return cfg.Server.Addr
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := start(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scene := server.NewScene(server.SceneOptions{
		Width:  float64(s.cfg.Server.Width),
		Height: float64(s.cfg.Server.Height),
		Params: s.cfg.FieldParams(),
		Seed:   s.cfg.Seed,
		Mode:   s.mode,
		Logger: s.log,
	})
	opts := server.Options{
		Addr:   listenAddr(cmd, s.cfg),
		FPS:    s.cfg.FPS,
		Logger: s.log,
	}
	if s.store != nil {
		opts.Store = s.store
	}
	return server.New(scene, opts).Run(ctx)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := storage.Open(ctx, cfg.Storage.Path, cfg.Mode())
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer st.Close()

	if len(args) == 0 {
		mode, err := st.Theme(ctx)
		if err != nil {
			return err
		}
		fmt.Println(mode)
		return nil
	}

	mode, err := field.ParseMode(args[0])
	if err != nil {
		return err
	}
	if err := st.SetTheme(ctx, mode); err != nil {
		return err
	}
	fmt.Printf("theme set to %s\n", mode)
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "driftnet.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func seedOrClock(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
