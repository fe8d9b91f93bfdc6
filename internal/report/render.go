package report

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Renderer renders Markdown for the terminal.
type Renderer struct {
	renderer *glamour.TermRenderer
}

// NewRenderer creates a renderer for a glamour style name ("auto" detects
// the terminal background) wrapping at width.
func NewRenderer(style string, width int) (*Renderer, error) {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &Renderer{renderer: r}, nil
}

// Render returns the styled form of markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
