package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/tui/msgs"
)

const testCorpus = `## SRE Implement Prompts

### Examples
- implement dynatrace in production

### Prompt
Roll out {target}.

## SRE Deploy Prompts

### Examples
- deploy payments

### Prompt
Ship {target}.
`

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.md")
	if err := os.WriteFile(path, []byte(testCorpus), 0644); err != nil {
		t.Fatal(err)
	}

	source := corpus.NewSource(dir, []string{"prompts.md"}, true, nil)
	m := NewModel(context.Background(), Options{Engine: pipeline.New(source)})
	return m, path
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{
			name:        "exactly minimum size",
			width:       MinTerminalWidth,
			height:      MinTerminalHeight,
			expectSmall: false,
		},
		{
			name:        "width too small",
			width:       MinTerminalWidth - 1,
			height:      MinTerminalHeight,
			expectSmall: true,
		},
		{
			name:        "height too small",
			width:       MinTerminalWidth,
			height:      MinTerminalHeight - 1,
			expectSmall: true,
		},
		{
			name:        "larger than minimum",
			width:       100,
			height:      50,
			expectSmall: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m, _ = update(t, m, tea.WindowSizeMsg{Width: tt.width, Height: tt.height})

			view := m.View()

			if tt.expectSmall {
				for _, want := range []string{"Terminal too small", "Minimum:", "Current:"} {
					if !strings.Contains(view, want) {
						t.Errorf("expected view to contain %q", want)
					}
				}
			} else if strings.Contains(view, "Terminal too small") {
				t.Error("did not expect view to contain 'Terminal too small'")
			}
		})
	}
}

func TestModel_renderTerminalTooSmall_ShowsDimensions(t *testing.T) {
	m, _ := newTestModel(t)
	m.width = 50
	m.height = 10

	view := m.renderTerminalTooSmall()

	if !strings.Contains(view, "60x15") {
		t.Error("expected minimum dimensions 60x15 to be shown")
	}
	if !strings.Contains(view, "50x10") {
		t.Error("expected current dimensions 50x10 to be shown")
	}
}

func TestModel_LoadTemplates(t *testing.T) {
	m, path := newTestModel(t)

	msg, ok := m.loadTemplates()().(msgs.CorpusChangedMsg)
	if !ok {
		t.Fatal("expected CorpusChangedMsg")
	}
	if msg.Templates != 2 {
		t.Errorf("expected 2 templates, got %d", msg.Templates)
	}
	if len(msg.Files) != 1 || msg.Files[0] != path {
		t.Errorf("expected files [%s], got %v", path, msg.Files)
	}
}

func TestModel_RequestFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, cmd := update(t, m, msgs.SubmitRequestMsg{Input: "deploy payments", Command: "deploy"})
	if cmd == nil {
		t.Fatal("expected a run command")
	}

	result, ok := cmd().(msgs.ResultMsg)
	if !ok {
		t.Fatal("expected ResultMsg")
	}
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if !strings.HasPrefix(result.Result.Prompt, "Ship payments") {
		t.Errorf("expected the deploy template prompt, got %q", result.Result.Prompt)
	}

	m, _ = update(t, m, result)
	if m.currentView != ViewResults {
		t.Fatalf("expected results view, got %v", m.currentView)
	}
	if !strings.Contains(m.View(), "[Plan]") {
		t.Error("expected the results view to be shown")
	}

	m, _ = update(t, m, msgs.GoToHomeMsg{})
	if m.currentView != ViewHome {
		t.Errorf("expected home view, got %v", m.currentView)
	}
}

func TestModel_ResultError(t *testing.T) {
	m, _ := newTestModel(t)
	m.home.SetBusy(true)

	m, _ = update(t, m, msgs.ResultMsg{Err: errors.New("docs unreachable")})

	if m.currentView != ViewHome {
		t.Errorf("expected to stay on home, got %v", m.currentView)
	}
	if m.home.Busy() {
		t.Error("expected busy cleared")
	}
	if m.home.Error() != "docs unreachable" {
		t.Errorf("expected error shown, got %q", m.home.Error())
	}
}

func TestModel_WaitForCorpusChange(t *testing.T) {
	m, _ := newTestModel(t)

	if m.waitForCorpusChange() != nil {
		t.Fatal("expected no wait command without a watcher")
	}

	events := make(chan corpus.Event, 1)
	m.events = events
	events <- corpus.Event{Paths: []string{"prompts.md"}}

	done := make(chan tea.Msg, 1)
	go func() { done <- m.waitForCorpusChange()() }()

	select {
	case msg := <-done:
		changed, ok := msg.(msgs.CorpusChangedMsg)
		if !ok {
			t.Fatalf("expected CorpusChangedMsg, got %T", msg)
		}
		if changed.Templates != 2 {
			t.Errorf("expected 2 templates, got %d", changed.Templates)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for corpus change")
	}

	close(events)
	if msg := m.waitForCorpusChange()(); msg != nil {
		t.Errorf("expected nil after the watcher stops, got %T", msg)
	}

	_, cmd := update(t, m, msgs.CorpusChangedMsg{Templates: 3})
	if cmd == nil {
		t.Error("expected the model to keep waiting for changes")
	}
}
