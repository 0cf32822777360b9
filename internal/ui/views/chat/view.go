package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chatdto "taskdeck/internal/modules/chat/dto"
	"taskdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChatPort interface {
	SendMessage(ctx context.Context, content string) chatdto.ConversationOutput
	Current(ctx context.Context) chatdto.ConversationOutput
	ClearConversation(ctx context.Context) chatdto.ConversationOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// StateMsg carries the conversation snapshot after any operation.
type StateMsg struct {
	Out chatdto.ConversationOutput
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       ChatPort
	transcript viewport.Model
	input      textinput.Model
	spinner    spinner.Model
	state      chatdto.ConversationOutput
	sending    bool
	width      int
	height     int
}

func New(port ChatPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	ti := textinput.New()
	ti.Placeholder = "ask the assistant…"
	ti.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:       port,
		transcript: vp,
		input:      ti,
		spinner:    sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.currentCmd(), m.input.Focus())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.transcript.Width = m.width - 2
		m.transcript.Height = m.height - 3
		m.transcript.SetContent(m.renderTranscript())

	case StateMsg:
		m.sending = false
		m.state = msg.Out
		m.transcript.SetContent(m.renderTranscript())
		m.transcript.GotoBottom()

	case spinner.TickMsg:
		if m.sending {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			content := strings.TrimSpace(m.input.Value())
			if content == "" || m.sending {
				return m, nil
			}
			m.input.SetValue("")
			m.sending = true
			return m, tea.Batch(m.sendCmd(content), m.spinner.Tick)
		case "ctrl+l":
			return m, m.clearCmd()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.transcript, cmd = m.transcript.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	var prompt string
	switch {
	case m.sending:
		prompt = m.spinner.View() + " waiting for reply…"
	case m.state.Error != "":
		prompt = theme.Err.Render(m.state.Error) + "  " + m.input.View()
	default:
		prompt = theme.Title.Render("> ") + m.input.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.transcript.View(), "", prompt)
}

// Editing reports whether the input should capture keystrokes. The chat input
// is always live while the tab is visible.
func (m Model) Editing() bool {
	return true
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderTranscript() string {
	if len(m.state.Messages) == 0 {
		return theme.Muted.Render("No messages yet. Type below to start a conversation.")
	}
	var sb strings.Builder
	for _, msg := range m.state.Messages {
		label := theme.Title.Render("you")
		if msg.Role == "assistant" {
			label = theme.Hot.Render("assistant")
		}
		sb.WriteString(label + "\n" + msg.Content + "\n")
		for _, call := range msg.ToolCalls {
			marker := theme.Done.Render("✓")
			if !call.Success {
				marker = theme.Err.Render("✗")
			}
			sb.WriteString(theme.Muted.Render("  tool "+call.Tool+" ") + marker + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) sendCmd(content string) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.SendMessage(context.Background(), content)}
	}
}

func (m Model) currentCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.Current(context.Background())}
	}
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.ClearConversation(context.Background())}
	}
}
