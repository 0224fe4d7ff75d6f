package config

import (
	"fmt"
	"sort"
)

// Presets tweak the field section only; zero values keep the current value.
var Presets = map[string]FieldConfig{
	"default": {},
	"sparse": {
		Density: 36000,
	},
	"dense": {
		Density:      9000,
		LinkDistance: 100,
	},
	"calm": {
		MaxDrift:          0.05,
		RepulsionStrength: 1.5,
		RepulsionRadius:   140,
	},
	"wide": {
		Density:          24000,
		LinkDistance:     180,
		LinkAlphaBase:    0.2,
		LinkAlphaFalloff: 1000,
	},
}

// GetPreset returns a default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	if _, ok := Presets[name]; !ok {
		return nil
	}
	cfg := DefaultConfig()
	_ = cfg.ApplyPreset(name)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overlays the named preset's non-zero field values.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	overlay := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	overlay(&c.Field.Density, p.Density)
	overlay(&c.Field.RepulsionRadius, p.RepulsionRadius)
	overlay(&c.Field.RepulsionStrength, p.RepulsionStrength)
	overlay(&c.Field.LinkDistance, p.LinkDistance)
	overlay(&c.Field.LinkWidth, p.LinkWidth)
	overlay(&c.Field.LinkAlphaBase, p.LinkAlphaBase)
	overlay(&c.Field.LinkAlphaFalloff, p.LinkAlphaFalloff)
	overlay(&c.Field.MaxDrift, p.MaxDrift)
	overlay(&c.Field.MinRadius, p.MinRadius)
	overlay(&c.Field.MaxRadius, p.MaxRadius)
	c.Preset = name
	return nil
}
