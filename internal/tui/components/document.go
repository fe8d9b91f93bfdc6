package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DocumentViewport shows a rendered document in a scrollable viewport with
// a scrollbar on the right.
type DocumentViewport struct {
	viewport viewport.Model
	lines    int
	width    int // total width including scrollbar
	height   int
}

// NewDocumentViewport creates a viewport of the given size. The width
// includes 1 column for the scrollbar.
func NewDocumentViewport(width, height int) DocumentViewport {
	vp := viewport.New(max(width-1, 0), height)
	return DocumentViewport{viewport: vp, width: width, height: height}
}

// SetContent replaces the document and scrolls back to the top.
func (d *DocumentViewport) SetContent(content string) {
	content = strings.TrimRight(content, "\n")
	d.lines = strings.Count(content, "\n") + 1
	d.viewport.SetContent(content)
	d.viewport.GotoTop()
}

// SetSize updates the dimensions, keeping the scroll position when possible.
func (d *DocumentViewport) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = max(width-1, 0)
	d.viewport.Height = height
	d.viewport.SetYOffset(d.viewport.YOffset)
}

// Update handles scrolling keys and mouse wheel events.
func (d DocumentViewport) Update(msg tea.Msg) (DocumentViewport, tea.Cmd) {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

// View renders the visible lines with the scrollbar.
func (d DocumentViewport) View() string {
	if d.height <= 0 {
		return ""
	}

	content := strings.Split(d.viewport.View(), "\n")
	bar := strings.Split(RenderScrollbar(d.height, d.lines, d.viewport.YOffset), "\n")
	contentWidth := max(d.width-1, 0)

	var b strings.Builder
	for i := 0; i < d.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(content) {
			line = content[i]
		}
		b.WriteString(line)
		// ANSI-aware padding keeps the scrollbar aligned with styled text.
		if pad := contentWidth - lipgloss.Width(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		if i < len(bar) {
			b.WriteString(bar[i])
		}
	}
	return b.String()
}

// YOffset returns the index of the first visible line.
func (d DocumentViewport) YOffset() int {
	return d.viewport.YOffset
}

// ScrollPercent returns how far the document is scrolled, from 0 to 1.
func (d DocumentViewport) ScrollPercent() float64 {
	return d.viewport.ScrollPercent()
}
