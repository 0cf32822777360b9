package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "taskdeck/internal/modules/auth/dto"
	chatdto "taskdeck/internal/modules/chat/dto"
	tasksdto "taskdeck/internal/modules/tasks/dto"
	"taskdeck/internal/ui/theme"
	chatview "taskdeck/internal/ui/views/chat"
	tasksview "taskdeck/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type authPort interface {
	Login(ctx context.Context, input authdto.LoginInput) authdto.SessionOutput
	Register(ctx context.Context, input authdto.RegisterInput) authdto.SessionOutput
	Logout(ctx context.Context) authdto.SessionOutput
	Current(ctx context.Context) authdto.SessionOutput
}

type tasksPort interface {
	FetchAll(ctx context.Context) tasksdto.StateOutput
	Add(ctx context.Context, input tasksdto.AddInput) tasksdto.StateOutput
	ToggleComplete(ctx context.Context, id string) tasksdto.StateOutput
	Delete(ctx context.Context, id string) tasksdto.StateOutput
	SetFilter(ctx context.Context, filter string) tasksdto.StateOutput
	OpenModal(ctx context.Context, mode, taskID string) tasksdto.StateOutput
	CloseModal(ctx context.Context) tasksdto.StateOutput
}

type chatPort interface {
	SendMessage(ctx context.Context, content string) chatdto.ConversationOutput
	Current(ctx context.Context) chatdto.ConversationOutput
	ClearConversation(ctx context.Context) chatdto.ConversationOutput
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTasks tabID = iota
	tabChat
	tabCount
)

var tabLabels = [tabCount]string{"Tasks", "Chat"}

// ─── async messages ───────────────────────────────────────────────────────────

type sessionChangedMsg struct {
	session authdto.SessionOutput
}

// ─── login form ───────────────────────────────────────────────────────────────

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
)

type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    loginField
	register bool
	err      string
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 200
	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 200
	password.EchoMode = textinput.EchoPassword
	return loginForm{email: email, password: password}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing and the login gate;
// all business logic is delegated to port interfaces, all content rendering
// to sub-views.
type Model struct {
	auth authPort

	session authdto.SessionOutput
	form    loginForm

	tasksView tasksview.Model
	chatView  chatview.Model

	activeTab tabID
	status    string
	width     int
	height    int
}

func NewModel(auth authPort, tasks tasksPort, chat chatPort) Model {
	m := Model{
		auth:      auth,
		form:      newLoginForm(),
		tasksView: tasksview.New(tasks),
		chatView:  chatview.New(chat),
		activeTab: tabTasks,
		status:    "ready",
	}
	// A session restored before the program started skips the login gate.
	m.session = auth.Current(context.Background())
	if m.session.Authenticated {
		m.status = "logged in as " + m.session.Email
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.session.Authenticated {
		return tea.Batch(m.tasksView.Init(), m.chatView.Init())
	}
	return m.form.email.Focus()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.propagateSize()
		return m, nil

	case sessionChangedMsg:
		m.session = msg.session
		if m.session.Error != "" {
			m.form.err = m.session.Error
			return m, nil
		}
		if m.session.Authenticated {
			m.form.err = ""
			m.status = "logged in as " + m.session.Email
			return m, tea.Batch(m.tasksView.Init(), m.chatView.Init())
		}
		m.form = newLoginForm()
		m.status = "logged out"
		return m, m.form.email.Focus()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.session.Authenticated {
			return m.updateLogin(msg)
		}
		if msg.String() == "ctrl+o" {
			return m, m.logoutCmd()
		}
		if msg.String() == "q" && !m.subViewEditing() {
			return m, tea.Quit
		}
		if msg.String() == "tab" && !m.subViewFiltering() && m.activeTab != tabChat {
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		}
		if msg.String() == "shift+tab" {
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		}
	}

	if !m.session.Authenticated {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabTasks:
		m.tasksView, cmd = m.tasksView.Update(msg)
	case tabChat:
		m.chatView, cmd = m.chatView.Update(msg)
	}
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down", "up":
		if m.form.focus == fieldEmail {
			m.form.focus = fieldPassword
			m.form.email.Blur()
			return m, m.form.password.Focus()
		}
		m.form.focus = fieldEmail
		m.form.password.Blur()
		return m, m.form.email.Focus()
	case "ctrl+r":
		m.form.register = !m.form.register
		return m, nil
	case "enter":
		email := strings.TrimSpace(m.form.email.Value())
		password := m.form.password.Value()
		return m, m.authCmd(email, password, m.form.register)
	}

	var cmd tea.Cmd
	if m.form.focus == fieldEmail {
		m.form.email, cmd = m.form.email.Update(msg)
	} else {
		m.form.password, cmd = m.form.password.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if !m.session.Authenticated {
		return m.renderLogin()
	}

	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch m.activeTab {
	case tabTasks:
		content = m.tasksView.View()
	case tabChat:
		content = m.chatView.View()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderLogin() string {
	mode := "Log in"
	if m.form.register {
		mode = "Register"
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(mode) + "\n\n")
	sb.WriteString(theme.Muted.Render("email:    ") + m.form.email.View() + "\n")
	sb.WriteString(theme.Muted.Render("password: ") + m.form.password.View() + "\n\n")
	if m.form.err != "" {
		sb.WriteString(theme.Err.Render(m.form.err) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("enter:submit  tab:next field  ctrl+r:toggle register  ctrl+c:quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		theme.Pane.Render(sb.String()))
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "taskdeck  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("tab:switch  ctrl+o:logout  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	if m.activeTab == tabTasks {
		return m.tasksView.Filtering()
	}
	return false
}

// subViewEditing reports whether the active tab owns free typing right now,
// in which case global single-key bindings must yield.
func (m Model) subViewEditing() bool {
	switch m.activeTab {
	case tabTasks:
		return m.tasksView.Editing() || m.tasksView.Filtering()
	case tabChat:
		return m.chatView.Editing()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.tasksView, _ = m.tasksView.Update(sz)
	m.chatView, _ = m.chatView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) authCmd(email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		var out authdto.SessionOutput
		if register {
			out = m.auth.Register(context.Background(), authdto.RegisterInput{Email: email, Password: password})
		} else {
			out = m.auth.Login(context.Background(), authdto.LoginInput{Email: email, Password: password})
		}
		return sessionChangedMsg{session: out}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return sessionChangedMsg{session: m.auth.Logout(context.Background())}
	}
}
