package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusBar_Render_SingleItem(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, []string{"esc Quit"})

	if !strings.Contains(result, "esc Quit") {
		t.Errorf("expected result to contain 'esc Quit', got: %s", result)
	}
}

func TestStatusBar_Render_MultipleItems(t *testing.T) {
	sb := NewStatusBar()
	items := []string{"Enter Run", "Tab Command", "esc Quit"}
	result := sb.Render(60, items)

	for _, item := range items {
		if !strings.Contains(result, item) {
			t.Errorf("expected result to contain %q, got: %s", item, result)
		}
	}
	if !strings.Contains(result, "•") {
		t.Errorf("expected result to contain '•' separator, got: %s", result)
	}
}

func TestStatusBar_Render_EmptyItems(t *testing.T) {
	sb := NewStatusBar()
	result := sb.Render(50, nil)

	if strings.TrimSpace(result) != "" {
		t.Errorf("expected blank status bar, got: %q", result)
	}
}

func TestStatusBar_RenderWithInfo(t *testing.T) {
	sb := NewStatusBar()

	t.Run("info is right-aligned", func(t *testing.T) {
		result := sb.RenderWithInfo(60, []string{"esc Quit"}, "7 templates")

		if !strings.HasSuffix(strings.TrimRight(result, " "), "7 templates") {
			t.Errorf("expected info at the right edge, got: %q", result)
		}
		if lipgloss.Width(result) != 60 {
			t.Errorf("expected width 60, got %d", lipgloss.Width(result))
		}
	})

	t.Run("info is dropped when too narrow", func(t *testing.T) {
		result := sb.RenderWithInfo(12, []string{"esc Quit"}, "7 templates")

		if strings.Contains(result, "templates") {
			t.Errorf("expected info to be dropped, got: %q", result)
		}
	})
}
