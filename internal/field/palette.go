package field

import (
	"fmt"
	"strings"
)

// Mode is the light/dark presentation flag.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// IsDark reports whether m is Dark.
func (m Mode) IsDark() bool { return m == Dark }

// Toggle returns the opposite mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode accepts "light" or "dark", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Light, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Palette holds the colors of one mode. Link alpha is computed per line from
// its length; Background is the page color hosts clear to.
type Palette struct {
	Dot        Color
	Link       Color
	Background Color
}

var (
	LightPalette = Palette{
		Dot:        RGBA(37, 99, 235, 0.3),
		Link:       RGBA(37, 99, 235, 1),
		Background: RGBA(248, 250, 252, 1),
	}
	DarkPalette = Palette{
		Dot:        RGBA(96, 165, 250, 0.4),
		Link:       RGBA(59, 130, 246, 1),
		Background: RGBA(11, 17, 32, 1),
	}
)

func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}
