package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pcranleigh/lintview/pkg/model"
)

// Theme carries the colors and prebuilt styles for one renderer. All
// styles are derived once so row rendering never reallocates them.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Selected      lipgloss.Style
	Header        lipgloss.Style
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	StatusBar     lipgloss.Style
}

// DefaultTheme builds the standard theme for a renderer. A nil renderer
// uses the lipgloss default (stdout).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#1F7A5C", Dark: "#50FA7B"},
		Muted:     lipgloss.AdaptiveColor{Light: "#909090", Dark: "#6272A4"},
		Error:     lipgloss.AdaptiveColor{Light: "#C03030", Dark: "#FF5555"},
		Warning:   lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Info:      lipgloss.AdaptiveColor{Light: "#2060C0", Dark: "#8BE9FD"},
	}
	t.Selected = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Background(t.Primary).
		Bold(true)
	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.StatusBar = r.NewStyle().Foreground(t.Muted)
	return t
}

// SeverityColor maps a problem severity to its display color.
func (t Theme) SeverityColor(s model.Severity) lipgloss.AdaptiveColor {
	switch s {
	case model.SeverityError:
		return t.Error
	case model.SeverityWarning:
		return t.Warning
	case model.SeverityInfo:
		return t.Info
	default:
		return t.Muted
	}
}

// SeverityIcon maps a severity to a single-cell marker.
func SeverityIcon(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "✗"
	case model.SeverityWarning:
		return "!"
	case model.SeverityInfo:
		return "i"
	default:
		return "•"
	}
}
