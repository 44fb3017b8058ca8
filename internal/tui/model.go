package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addressbook/internal/assistant"
)

// inputHeight is the number of lines used by the command line.
const inputHeight = 1

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// exchange is one command and the reply it produced.
type exchange struct {
	command string
	text    string
	failed  bool
}

// Model is the Bubble Tea model for the interactive assistant: a scrollback
// of past exchanges above a single command line.
type Model struct {
	d        Dispatcher
	prompt   string
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	log      []exchange
	history  []string
	histIdx  int // len(history) when not browsing history.
	width    int
	height   int
	quitting bool
}

// ModelOption configures optional Model behavior.
type ModelOption func(*Model)

// WithPrompt sets the text shown before the command line and each past command.
func WithPrompt(prompt string) ModelOption {
	return func(m *Model) {
		m.prompt = prompt
	}
}

// NewModel creates a Model that sends submitted lines to d.
func NewModel(d Dispatcher, opts ...ModelOption) Model {
	m := Model{
		d:        d,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     KeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	ti := textinput.New()
	ti.Prompt = m.prompt
	ti.PromptStyle = promptStyle
	ti.Placeholder = "type help for commands"
	ti.ShowSuggestions = true
	ti.SetSuggestions(assistant.Keywords())
	ti.Focus()
	m.input = ti
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-lipgloss.Width(m.prompt)-1, 0)
		m.viewport.Width = msg.Width
		m.viewport.Height = m.scrollHeight()
		m.refreshScroll()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey routes key presses: global bindings first, then the command line.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Prev):
		if m.histIdx > 0 {
			m.histIdx--
			m.input.SetValue(m.history[m.histIdx])
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.histIdx < len(m.history)-1 {
			m.histIdx++
			m.input.SetValue(m.history[m.histIdx])
			m.input.CursorEnd()
		} else {
			m.histIdx = len(m.history)
			m.input.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the command line and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	if isBlank(line) {
		return m, nil
	}

	reply := m.d.Dispatch(line)
	m.log = append(m.log, exchange{command: line, text: reply.Text, failed: reply.Failed})
	m.history = append(m.history, line)
	m.histIdx = len(m.history)
	m.refreshScroll()

	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// scrollHeight returns the lines left for the scrollback after the command
// line and help bar.
func (m Model) scrollHeight() int {
	h := m.height - inputHeight - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

func (m *Model) refreshScroll() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

// transcript renders every exchange so far.
func (m Model) transcript() string {
	var b strings.Builder
	for i, ex := range m.log {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(promptStyle.Render(m.prompt))
		b.WriteString(ex.command)
		b.WriteString("\n")
		style := replyStyle
		if ex.failed {
			style = failedStyle
		}
		b.WriteString(style.Render(ex.text))
	}
	return b.String()
}

// View renders the scrollback, command line and help bar.
func (m Model) View() string {
	if m.quitting {
		// Leave the conversation on screen after the program exits.
		return m.transcript() + "\n"
	}

	inputView := m.input.View()
	helpView := m.help.View(m.keys)

	if m.width == 0 || m.height == 0 {
		if len(m.log) == 0 {
			return lipgloss.JoinVertical(lipgloss.Left, inputView, helpView)
		}
		return lipgloss.JoinVertical(lipgloss.Left, m.transcript(), inputView, helpView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), inputView, helpView)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
