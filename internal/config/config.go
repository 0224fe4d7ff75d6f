package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftnet/internal/field"
)

const (
	DefaultFPS       = 60
	DefaultTheme     = "dark"
	DefaultScale     = 8.0
	DefaultIntensity = 2.5
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultAddr      = ":8080"
	DefaultDBPath    = ".driftnet/prefs.db"
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Preset  string        `yaml:"preset,omitempty"`
	Theme   string        `yaml:"theme"`
	FPS     int           `yaml:"fps"`
	Seed    int64         `yaml:"seed"`
	Field   FieldConfig   `yaml:"field"`
	TUI     TUIConfig     `yaml:"tui"`
	GUI     GUIConfig     `yaml:"gui"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

type FieldConfig struct {
	Density           float64 `yaml:"density"`
	RepulsionRadius   float64 `yaml:"repulsion_radius"`
	RepulsionStrength float64 `yaml:"repulsion_strength"`
	LinkDistance      float64 `yaml:"link_distance"`
	LinkWidth         float64 `yaml:"link_width"`
	LinkAlphaBase     float64 `yaml:"link_alpha_base"`
	LinkAlphaFalloff  float64 `yaml:"link_alpha_falloff"`
	MaxDrift          float64 `yaml:"max_drift"`
	MinRadius         float64 `yaml:"min_radius"`
	MaxRadius         float64 `yaml:"max_radius"`
}

type TUIConfig struct {
	// Scale is the number of logical units per braille dot.
	Scale float64 `yaml:"scale"`
	// Intensity multiplies draw alpha before blending into the background.
	Intensity float64 `yaml:"intensity"`
}

type GUIConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ServerConfig struct {
	Addr   string `yaml:"addr"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

func defaultFieldConfig() FieldConfig {
	p := field.DefaultParams()
	return FieldConfig{
		Density:           p.Density,
		RepulsionRadius:   p.RepulsionRadius,
		RepulsionStrength: p.RepulsionStrength,
		LinkDistance:      p.LinkDistance,
		LinkWidth:         p.LinkWidth,
		LinkAlphaBase:     p.LinkAlphaBase,
		LinkAlphaFalloff:  p.LinkAlphaFalloff,
		MaxDrift:          p.MaxDrift,
		MinRadius:         p.MinRadius,
		MaxRadius:         p.MaxRadius,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Theme: DefaultTheme,
		FPS:   DefaultFPS,
		Field: defaultFieldConfig(),
		TUI: TUIConfig{
			Scale:     DefaultScale,
			Intensity: DefaultIntensity,
		},
		GUI: GUIConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Server: ServerConfig{
			Addr:   DefaultAddr,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Storage: StorageConfig{
			Path: DefaultDBPath,
		},
	}
}

// Load reads a yaml file over the defaults. A named preset in the file is
// applied first, then the file's own field values on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var probe struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if probe.Preset != "" {
		if err := cfg.ApplyPreset(probe.Preset); err != nil {
			return nil, err
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: fps must be in (0,240], got %d", ErrInvalidConfig, c.FPS)
	}
	if _, err := field.ParseMode(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TUI.Scale <= 0 {
		return fmt.Errorf("%w: tui.scale must be positive", ErrInvalidConfig)
	}
	if c.TUI.Intensity <= 0 {
		return fmt.Errorf("%w: tui.intensity must be positive", ErrInvalidConfig)
	}
	if c.GUI.Width <= 0 || c.GUI.Height <= 0 {
		return fmt.Errorf("%w: gui size must be positive", ErrInvalidConfig)
	}
	if c.Server.Width <= 0 || c.Server.Height <= 0 {
		return fmt.Errorf("%w: server size must be positive", ErrInvalidConfig)
	}
	if err := c.FieldParams().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FieldParams converts the field section to simulation params.
func (c *Config) FieldParams() field.Params {
	f := c.Field
	return field.Params{
		Density:           f.Density,
		RepulsionRadius:   f.RepulsionRadius,
		RepulsionStrength: f.RepulsionStrength,
		LinkDistance:      f.LinkDistance,
		LinkWidth:         f.LinkWidth,
		LinkAlphaBase:     f.LinkAlphaBase,
		LinkAlphaFalloff:  f.LinkAlphaFalloff,
		MaxDrift:          f.MaxDrift,
		MinRadius:         f.MinRadius,
		MaxRadius:         f.MaxRadius,
	}
}

// Mode returns the configured default theme, falling back to dark.
func (c *Config) Mode() field.Mode {
	m, err := field.ParseMode(c.Theme)
	if err != nil {
		return field.Dark
	}
	return m
}
