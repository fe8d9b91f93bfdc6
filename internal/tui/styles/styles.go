// Package styles defines shared lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sardesh/srebuddy/internal/plan"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	warningColor   = lipgloss.Color("#D7AF5F") // Amber for medium risk
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for the active choice
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// InputBoxStyle frames the request input
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// TrackStyle for the scrollbar track
	TrackStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// ThumbStyle for the scrollbar thumb
	ThumbStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)

// RiskStyle colors a risk label.
func RiskStyle(level plan.RiskLevel) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch level {
	case plan.RiskHigh:
		return base.Foreground(errorColor)
	case plan.RiskMedium:
		return base.Foreground(warningColor)
	default:
		return base.Foreground(successColor)
	}
}
