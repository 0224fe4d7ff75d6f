package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/driftnet/internal/field"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Mode       field.Mode
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

// Available themes
var (
	ThemeLight = Theme{
		Name:       "light",
		Mode:       field.Light,
		Background: lipgloss.Color(field.LightPalette.Background.Hex()),
		Text:       lipgloss.Color("#475569"), // slate-600
		Muted:      lipgloss.Color("#94a3b8"), // slate-400
		Accent:     lipgloss.Color("#2563eb"), // blue-600
	}

	ThemeDark = Theme{
		Name:       "dark",
		Mode:       field.Dark,
		Background: lipgloss.Color(field.DarkPalette.Background.Hex()),
		Text:       lipgloss.Color("#94a3b8"), // slate-400
		Muted:      lipgloss.Color("#475569"), // slate-600
		Accent:     lipgloss.Color("#60a5fa"), // blue-400
	}
)

// ThemeFor returns the theme of a mode.
func ThemeFor(m field.Mode) Theme {
	if m.IsDark() {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) status() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Text)
}

func (t Theme) key() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Accent).Bold(true)
}

func (t Theme) hint() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background).Foreground(t.Muted).Italic(true)
}
