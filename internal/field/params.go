package field

import "fmt"

const (
	DefaultDensity           = 18000.0
	DefaultRepulsionRadius   = 200.0
	DefaultRepulsionStrength = 3.0
	DefaultLinkDistance      = 120.0
	DefaultLinkWidth         = 0.8
	DefaultLinkAlphaBase     = 0.15
	DefaultLinkAlphaFalloff  = 1000.0
	DefaultMaxDrift          = 0.15
	DefaultMinRadius         = 1.0
	DefaultMaxRadius         = 3.0
)

// Params holds the tuning constants of a field.
type Params struct {
	// Density is the area covered by one particle, in square units.
	Density float64
	// RepulsionRadius is the distance within which the pointer pushes particles.
	RepulsionRadius float64
	// RepulsionStrength is the push applied at zero distance.
	RepulsionStrength float64
	// LinkDistance is the exclusive upper bound for drawing a link.
	LinkDistance float64
	LinkWidth    float64
	// LinkAlphaBase - d/LinkAlphaFalloff is the stroke alpha of a link of length d.
	LinkAlphaBase    float64
	LinkAlphaFalloff float64
	// MaxDrift bounds each velocity component at creation.
	MaxDrift  float64
	MinRadius float64
	MaxRadius float64
}

func DefaultParams() Params {
	return Params{
		Density:           DefaultDensity,
		RepulsionRadius:   DefaultRepulsionRadius,
		RepulsionStrength: DefaultRepulsionStrength,
		LinkDistance:      DefaultLinkDistance,
		LinkWidth:         DefaultLinkWidth,
		LinkAlphaBase:     DefaultLinkAlphaBase,
		LinkAlphaFalloff:  DefaultLinkAlphaFalloff,
		MaxDrift:          DefaultMaxDrift,
		MinRadius:         DefaultMinRadius,
		MaxRadius:         DefaultMaxRadius,
	}
}

// Validate reports the first out-of-range value.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"density", p.Density},
		{"repulsion_radius", p.RepulsionRadius},
		{"link_distance", p.LinkDistance},
		{"link_width", p.LinkWidth},
		{"link_alpha_falloff", p.LinkAlphaFalloff},
		{"min_radius", p.MinRadius},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.RepulsionStrength < 0 {
		return fmt.Errorf("%w: repulsion_strength must not be negative, got %g", ErrInvalidParams, p.RepulsionStrength)
	}
	if p.MaxDrift < 0 {
		return fmt.Errorf("%w: max_drift must not be negative, got %g", ErrInvalidParams, p.MaxDrift)
	}
	if p.LinkAlphaBase < 0 || p.LinkAlphaBase > 1 {
		return fmt.Errorf("%w: link_alpha_base must be in [0,1], got %g", ErrInvalidParams, p.LinkAlphaBase)
	}
	if p.MaxRadius < p.MinRadius {
		return fmt.Errorf("%w: max_radius %g below min_radius %g", ErrInvalidParams, p.MaxRadius, p.MinRadius)
	}
	return nil
}
