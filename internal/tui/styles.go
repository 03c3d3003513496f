// Package tui provides the terminal user interface for the patty planner.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pattyplanner/pattyplanner/internal/config"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	MutedColor     lipgloss.Color

	// Base styles
	Base lipgloss.Style

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertCrit lipgloss.Style

	// Status bar
	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return buildTheme(palette{
			primary:   "#FFAA00",
			secondary: "#AA7700",
			accent:    "#FFCC66",
			muted:     "#664400",
			warning:   "#FFFF00",
			success:   "#FFAA00",
		})
	case config.ColorSchemeWhite:
		return buildTheme(palette{
			primary:   "#FFFFFF",
			secondary: "#AAAAAA",
			accent:    "#FFFFFF",
			muted:     "#666666",
			warning:   "#FFAA00",
			success:   "#00FF00",
		})
	default:
		return buildTheme(palette{
			primary:   "#00FF00",
			secondary: "#00AA00",
			accent:    "#66FF66",
			muted:     "#006600",
			warning:   "#FFAA00",
			success:   "#00FF00",
		})
	}
}

type palette struct {
	primary, secondary, accent, muted, warning, success lipgloss.Color
}

const errorColor = lipgloss.Color("#FF4444")

func buildTheme(p palette) *Theme {
	t := &Theme{
		PrimaryColor:   p.primary,
		SecondaryColor: p.secondary,
		AccentColor:    p.accent,
		MutedColor:     p.muted,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.primary)

	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Secondary = lipgloss.NewStyle().Foreground(p.secondary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Error = lipgloss.NewStyle().Foreground(errorColor)
	t.Warning = lipgloss.NewStyle().Foreground(p.warning)
	t.Success = lipgloss.NewStyle().Foreground(p.success)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)

	// Header - top bar with branch info
	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	// Footer - bottom status bar
	t.Footer = lipgloss.NewStyle().
		Foreground(p.secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.secondary).
		Padding(0, 1)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.warning).
		Bold(true)

	t.AlertCrit = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat("─", max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat("═", max(width, 0)))
}
