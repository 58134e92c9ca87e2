// Package tuistyles holds the shared TUI palette so scenes and components can
// use it without importing the tui package.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary    = lipgloss.Color("#7D56F4")
	ColorSecondary  = lipgloss.Color("#5A9BD5")
	ColorSuccess    = lipgloss.Color("#04B575")
	ColorDanger     = lipgloss.Color("#FF5F87")
	ColorWarning    = lipgloss.Color("#FFB86C")
	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#8A8A8A")
	ColorBorder     = lipgloss.Color("#3C3C3C")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SelectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	EligibleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	IneligibleStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)
)

// TrendIndicator returns the arrow for a positive or negative change
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "↑"
	}
	return "↓"
}

// MetricTrendStyle colors a trend by direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// EligibilityBadge renders a short eligibility marker
func EligibilityBadge(eligible bool) string {
	if eligible {
		return EligibleStyle.Render("✓ eligible")
	}
	return IneligibleStyle.Render("✗ not eligible")
}
