package view

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/querydeck/querydeck/internal/conversation"
)

type resolvedMsg struct {
	entry *conversation.Entry
}

// Model is the chat screen: the transcript viewport on top, the input
// line below, a spinner while a question is in flight.
type Model struct {
	conv     *conversation.Conversation
	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model
	loading  bool
	ready    bool
	width    int
	height   int
}

func NewModel(conv *conversation.Conversation) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your data..."
	input.Focus()
	input.CharLimit = 500

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#58a6ff"))

	return Model{
		conv:  conv,
		input: input,
		spin:  spin,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight - 2
		}
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+r":
			if last := m.conv.LastResult(); last != nil {
				last.ToggleRaw()
				m.refreshTranscript()
			}
			return m, nil
		case "ctrl+t":
			if last := m.conv.LastResult(); last != nil {
				last.CycleChart()
				m.refreshTranscript()
			}
			return m, nil
		}

	case resolvedMsg:
		m.conv.Finish(msg.entry)
		m.loading = false
		m.input.Reset()
		m.refreshTranscript()
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	question := m.input.Value()
	if err := m.conv.Begin(question); err != nil {
		return m, nil
	}
	m.loading = true
	m.refreshTranscript()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.spin.Tick, m.resolveCmd(question))
}

// resolveCmd runs the network pipeline off the event loop. The
// transcript itself is only mutated in Update, via resolvedMsg.
func (m Model) resolveCmd(question string) tea.Cmd {
	conv := m.conv
	return func() tea.Msg {
		return resolvedMsg{entry: conv.Resolve(context.Background(), question)}
	}
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
}

func (m Model) transcript() string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	for _, entry := range m.conv.Entries() {
		switch {
		case entry.Role == conversation.RoleUser:
			b.WriteString(userStyle.Render("You: ") + entry.Text)
		case entry.Err != "":
			b.WriteString(errorStyle.Render("Error: " + entry.Err))
		case entry.Result != nil:
			b.WriteString(RenderResult(entry.Result, width))
		}
		b.WriteString("\n\n")
	}
	if m.loading {
		b.WriteString(m.spin.View() + mutedStyle.Render(" Thinking..."))
	}
	return b.String()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	help := helpStyle.Render("enter: ask · ctrl+r: raw · ctrl+t: chart type · esc: quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		borderStyle.Width(m.width-2).Render(m.input.View()),
		help,
	)
}
