package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sardesh/srebuddy/internal/handoff"
	"github.com/sardesh/srebuddy/internal/pipeline"
	"github.com/sardesh/srebuddy/internal/report"
	"github.com/sardesh/srebuddy/internal/tui/components"
	"github.com/sardesh/srebuddy/internal/tui/msgs"
	"github.com/sardesh/srebuddy/internal/tui/styles"
)

// ResultsPane selects which document the results view shows.
type ResultsPane int

const (
	PanePlan ResultsPane = iota
	PanePrompt
)

// MarkdownRenderer styles Markdown for the terminal.
type MarkdownRenderer interface {
	Render(markdown string) (string, error)
}

// copyToClipboard is replaced in tests.
var copyToClipboard = handoff.ToClipboard

// ResultsModel shows the plan and the composed prompt for one request.
type ResultsModel struct {
	renderer MarkdownRenderer
	result   *pipeline.Result
	pane     ResultsPane
	docs     [2]string
	document components.DocumentViewport

	notice   string
	noticeOK bool
	width    int
	height   int
}

// NewResultsModel creates a ResultsModel. A nil renderer shows plain
// Markdown.
func NewResultsModel(renderer MarkdownRenderer) ResultsModel {
	return ResultsModel{
		renderer: renderer,
		document: components.NewDocumentViewport(0, 0),
	}
}

// SetResult replaces the shown result and switches to the plan.
func (m *ResultsModel) SetResult(result *pipeline.Result) {
	m.result = result
	m.pane = PanePlan
	m.notice = ""

	m.docs[PanePlan] = m.render(report.PlanDocument(result.Descriptor, result.Plan))
	m.docs[PanePrompt] = m.render(report.PromptDocument(report.PromptInfo{
		Command: result.Command,
		Source:  result.Source,
		Score:   result.Score.Total,
		Prompt:  result.Prompt,
	}))
	m.document.SetContent(m.docs[m.pane])
}

func (m ResultsModel) render(markdown string) string {
	if m.renderer == nil {
		return markdown
	}
	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// Init implements tea.Model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.CopiedMsg:
		if msg.Err != nil {
			m.notice, m.noticeOK = msg.Err.Error(), false
		} else {
			m.notice, m.noticeOK = "Copied prompt to clipboard", true
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "p", "tab":
			m.togglePane()
			return m, nil
		case "y":
			if m.result == nil {
				return m, nil
			}
			text := m.result.Prompt
			return m, func() tea.Msg { return msgs.CopiedMsg{Err: copyToClipboard(text)} }
		}
	}

	var cmd tea.Cmd
	m.document, cmd = m.document.Update(msg)
	return m, cmd
}

func (m *ResultsModel) togglePane() {
	if m.pane == PanePlan {
		m.pane = PanePrompt
	} else {
		m.pane = PanePlan
	}
	m.notice = ""
	m.document.SetContent(m.docs[m.pane])
}

// View implements tea.Model.
func (m ResultsModel) View() string {
	if m.width == 0 || m.height == 0 || m.result == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.document.View())
	b.WriteString("\n")

	statusItems := []string{"p Plan/Prompt", "y Copy prompt", "↑↓ Scroll", "Esc Back", "q Quit"}
	b.WriteString(components.NewStatusBar().RenderWithInfo(m.width, statusItems, m.statusInfo()))
	return b.String()
}

func (m ResultsModel) renderHeader() string {
	d := m.result.Descriptor
	tabs := []string{"Plan", "Prompt"}
	for i, tab := range tabs {
		if ResultsPane(i) == m.pane {
			tabs[i] = styles.SelectedStyle.Render("[" + tab + "]")
		} else {
			tabs[i] = styles.SubtleStyle.Render(tab)
		}
	}

	risk := styles.RiskStyle(m.result.Plan.RiskLevel).Render(report.RiskBadge(m.result.Plan.RiskLevel))
	summary := fmt.Sprintf("%s %s · %s · risk %s", d.Type, d.Target, m.result.Command, risk)
	return strings.Join(tabs, " ") + "  " + styles.SubtleStyle.Render(summary)
}

func (m ResultsModel) statusInfo() string {
	if m.notice == "" {
		return fmt.Sprintf("%3.f%%", m.document.ScrollPercent()*100)
	}
	if m.noticeOK {
		return styles.SuccessStyle.Render(m.notice)
	}
	return styles.ErrorStyle.Render(m.notice)
}

// SetSize updates the model dimensions. The header and status bar take one
// line each.
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.document.SetSize(width, max(height-2, 1))
}

// Pane returns the document being shown.
func (m ResultsModel) Pane() ResultsPane {
	return m.pane
}

// Result returns the shown result.
func (m ResultsModel) Result() *pipeline.Result {
	return m.result
}
