package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sardesh/srebuddy/internal/task"
	"github.com/sardesh/srebuddy/internal/tui/components"
	"github.com/sardesh/srebuddy/internal/tui/msgs"
	"github.com/sardesh/srebuddy/internal/tui/styles"
)

// autoCommand is the label for deriving the command from the request.
const autoCommand = "auto"

// HomeModel is the model for the home view: a request input with a
// selectable template command.
type HomeModel struct {
	input      textinput.Model
	commands   []string
	commandIdx int

	templates   int
	corpusFiles []string

	busy     bool
	width    int
	height   int
	errorMsg string // Temporary error message to display
}

// NewHomeModel creates a HomeModel. A non-empty command preselects that
// template command.
func NewHomeModel(command string) HomeModel {
	ti := textinput.New()
	ti.Placeholder = "implement dynatrace in production kubernetes"
	ti.Prompt = "› "
	ti.CharLimit = 500
	ti.Focus()

	commands := []string{autoCommand}
	for _, t := range task.Types() {
		commands = append(commands, string(t))
	}

	m := HomeModel{
		input:    ti,
		commands: commands,
	}

	command = strings.ToLower(strings.TrimSpace(command))
	for i, c := range commands {
		if c == command {
			m.commandIdx = i
		}
	}
	if command != "" && m.commandIdx == 0 && command != autoCommand {
		// Commands without a task type still have corpus templates.
		m.commands = append(m.commands, command)
		m.commandIdx = len(m.commands) - 1
	}

	return m
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case msgs.CorpusChangedMsg:
		m.templates = msg.Templates
		m.corpusFiles = msg.Files
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.commandIdx = (m.commandIdx + 1) % len(m.commands)
			return m, nil
		case "shift+tab":
			m.commandIdx = (m.commandIdx - 1 + len(m.commands)) % len(m.commands)
			return m, nil
		case "enter":
			return m.submit()
		}
		if m.busy {
			return m, nil
		}
		m.errorMsg = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m HomeModel) submit() (HomeModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		m.errorMsg = "Describe a request first."
		return m, nil
	}

	m.busy = true
	m.errorMsg = ""
	command := m.Command()
	return m, func() tea.Msg {
		return msgs.SubmitRequestMsg{Input: input, Command: command}
	}
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	title := styles.TitleStyle.Render("S R E B U D D Y")
	tagline := styles.SubtleStyle.Render("Plans and prompts for operational requests")

	boxWidth := min(m.width-4, 80)
	m.input.Width = max(boxWidth-6, 10)
	inputBox := styles.InputBoxStyle.Width(boxWidth).Render(m.input.View())

	lines := []string{
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, inputBox),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderCommands()),
	}

	switch {
	case m.busy:
		lines = append(lines, "", lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
			styles.SubtleStyle.Render("Composing...")))
	case m.errorMsg != "":
		lines = append(lines, "", lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
			styles.ErrorStyle.Render(m.errorMsg)))
	}

	content := strings.Join(lines, "\n")
	contentHeight := lipgloss.Height(content)

	// Status bar takes 1 line at bottom
	availableHeight := m.height - 1
	topPadding := max((availableHeight-contentHeight)/2, 0)
	bottomPadding := max(availableHeight-topPadding-contentHeight, 0)

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(content)
	b.WriteString(strings.Repeat("\n", bottomPadding))
	b.WriteString("\n")

	statusItems := []string{"Enter Run", "Tab Command", "Esc Quit"}
	b.WriteString(components.NewStatusBar().RenderWithInfo(m.width, statusItems, m.corpusInfo()))

	return b.String()
}

func (m HomeModel) renderCommands() string {
	parts := make([]string, len(m.commands))
	for i, c := range m.commands {
		if i == m.commandIdx {
			parts[i] = styles.SelectedStyle.Render("[" + c + "]")
		} else {
			parts[i] = styles.SubtleStyle.Render(c)
		}
	}
	return strings.Join(parts, " ")
}

func (m HomeModel) corpusInfo() string {
	switch {
	case len(m.corpusFiles) == 0:
		return fmt.Sprintf("%d templates", m.templates)
	case len(m.corpusFiles) == 1:
		return fmt.Sprintf("%d templates in %s", m.templates, shortPath(m.corpusFiles[0]))
	default:
		return fmt.Sprintf("%d templates in %d files", m.templates, len(m.corpusFiles))
	}
}

func shortPath(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// SetSize updates the model dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Command returns the selected template command, or "" for auto.
func (m HomeModel) Command() string {
	if c := m.commands[m.commandIdx]; c != autoCommand {
		return c
	}
	return ""
}

// Templates returns the number of templates in the current corpus.
func (m HomeModel) Templates() int {
	return m.templates
}

// Busy reports whether a request is running.
func (m HomeModel) Busy() bool {
	return m.busy
}

// SetBusy marks whether a request is running.
func (m *HomeModel) SetBusy(busy bool) {
	m.busy = busy
}

// SetError sets an error message to display temporarily.
func (m *HomeModel) SetError(msg string) {
	m.errorMsg = msg
}

// Error returns the current error message.
func (m HomeModel) Error() string {
	return m.errorMsg
}

// Focus returns the command that restarts the cursor blink.
func (m *HomeModel) Focus() tea.Cmd {
	return m.input.Focus()
}
