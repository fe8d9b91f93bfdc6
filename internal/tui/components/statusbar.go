package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sardesh/srebuddy/internal/tui/styles"
)

const statusSeparator = " • "

// StatusBar renders a bottom bar with key hints on the left and an optional
// info section on the right.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width and items.
// Items are joined with " • " separator and padded to fill the width.
func (s StatusBar) Render(width int, items []string) string {
	return s.RenderWithInfo(width, items, "")
}

// RenderWithInfo renders items on the left and info right-aligned. Info is
// dropped when both do not fit.
func (s StatusBar) RenderWithInfo(width int, items []string, info string) string {
	left := strings.Join(items, statusSeparator)
	if info == "" {
		return styles.StatusBarStyle.Width(width).Render(left)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(info)
	if gap < 1 {
		return styles.StatusBarStyle.Width(width).Render(left)
	}

	return styles.StatusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + info)
}
