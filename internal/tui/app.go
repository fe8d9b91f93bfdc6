// Package tui is the interactive interface: type a request, then browse the
// generated plan and prompt.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/sardesh/srebuddy/internal/corpus"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/tui/msgs"
	"github.com/sardesh/srebuddy/internal/tui/styles"
	"github.com/sardesh/srebuddy/internal/tui/views"
)

// Minimum terminal dimensions
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewResults
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	home    views.HomeModel
	results views.ResultsModel

	// Shared state
	ctx    context.Context
	engine *pipeline.Engine
	logger *zap.Logger
	events <-chan corpus.Event
}

// Run starts the TUI application.
func Run(opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewModel(ctx, opts)

	if opts.Source != nil {
		w, err := corpus.NewWatcher(opts.Source, corpus.DefaultDebounce, m.logger.Named("watcher"))
		if err != nil {
			m.logger.Warn("Corpus watching disabled", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			m.logger.Warn("Corpus watching disabled", zap.Error(err))
		} else {
			defer w.Stop()
			m.events = w.Events()
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// NewModel creates the root model.
func NewModel(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var renderer views.MarkdownRenderer
	if opts.Renderer != nil {
		renderer = opts.Renderer
	}

	return Model{
		currentView: ViewHome,
		home:        views.NewHomeModel(opts.Command),
		results:     views.NewResultsModel(renderer),
		ctx:         ctx,
		engine:      opts.Engine,
		logger:      logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.home.Init(),
		m.loadTemplates(),
		m.waitForCorpusChange(),
	)
}

// loadTemplates parses the current corpus and reports its size.
func (m Model) loadTemplates() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	engine := m.engine
	return func() tea.Msg {
		templates, c := engine.Templates()
		return msgs.CorpusChangedMsg{Templates: len(templates), Files: c.Files}
	}
}

// waitForCorpusChange blocks until the watcher reports a change, then
// reloads the templates. It returns nil once the watcher stops.
func (m Model) waitForCorpusChange() tea.Cmd {
	if m.events == nil || m.engine == nil {
		return nil
	}
	events := m.events
	engine := m.engine
	logger := m.logger
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		logger.Debug("Corpus changed", zap.Strings("paths", ev.Paths))
		templates, c := engine.Templates()
		return msgs.CorpusChangedMsg{Templates: len(templates), Files: c.Files}
	}
}

// runRequest runs the pipeline off the UI goroutine.
func (m Model) runRequest(req msgs.SubmitRequestMsg) tea.Cmd {
	if m.engine == nil {
		return func() tea.Msg {
			return msgs.ResultMsg{Err: fmt.Errorf("no engine configured")}
		}
	}
	ctx := m.ctx
	engine := m.engine
	return func() tea.Msg {
		result, err := engine.Run(ctx, pipeline.Request{Input: req.Input, Command: req.Command})
		return msgs.ResultMsg{Result: result, Err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.home.SetSize(msg.Width, msg.Height)
		m.results.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.CorpusChangedMsg:
		m.home, _ = m.home.Update(msg)
		if m.events != nil {
			return m, m.waitForCorpusChange()
		}
		return m, nil

	case msgs.SubmitRequestMsg:
		m.logger.Debug("Running request", zap.String("command", msg.Command))
		return m, m.runRequest(msg)

	case msgs.ResultMsg:
		m.home.SetBusy(false)
		if msg.Err != nil {
			m.logger.Warn("Request failed", zap.Error(msg.Err))
			m.home.SetError(msg.Err.Error())
			return m, nil
		}
		m.results.SetResult(msg.Result)
		m.currentView = ViewResults
		return m, nil

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		return m, m.home.Focus()
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewResults:
		m.results, cmd = m.results.Update(msg)
	default:
		m.home, cmd = m.home.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewResults:
		return m.results.View()
	default:
		return m.home.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	msg := fmt.Sprintf("%s\n\n%s\n%s",
		styles.ErrorStyle.Render("Terminal too small"),
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
