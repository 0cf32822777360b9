package tasks

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tasksdto "taskdeck/internal/modules/tasks/dto"
	"taskdeck/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TasksPort interface {
	FetchAll(ctx context.Context) tasksdto.StateOutput
	Add(ctx context.Context, input tasksdto.AddInput) tasksdto.StateOutput
	ToggleComplete(ctx context.Context, id string) tasksdto.StateOutput
	Delete(ctx context.Context, id string) tasksdto.StateOutput
	SetFilter(ctx context.Context, filter string) tasksdto.StateOutput
	OpenModal(ctx context.Context, mode, taskID string) tasksdto.StateOutput
	CloseModal(ctx context.Context) tasksdto.StateOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// StateMsg carries the engine snapshot after any operation.
type StateMsg struct {
	Out tasksdto.StateOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task tasksdto.TaskOutput
}

func (i taskItem) Title() string {
	if i.task.Completed {
		return theme.Done.Render("✓ " + i.task.Title)
	}
	return "○ " + i.task.Title
}

func (i taskItem) Description() string { return i.task.Description }
func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

var filterCycle = []string{"all", "active", "completed"}

type Model struct {
	port    TasksPort
	list    list.Model
	input   textinput.Model
	spinner spinner.Model
	state   tasksdto.StateOutput
	adding  bool
	loading bool
	width   int
	height  int
}

func New(port TasksPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	ti := textinput.New()
	ti.Placeholder = "task title"
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		input:   ti,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case StateMsg:
		m.loading = false
		m.state = msg.Out
		items := make([]list.Item, len(msg.Out.Tasks))
		for i, t := range msg.Out.Tasks {
			items[i] = taskItem{task: t}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Title = m.listTitle()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.adding {
			switch msg.String() {
			case "enter":
				title := strings.TrimSpace(m.input.Value())
				m.adding = false
				m.input.Blur()
				m.input.SetValue("")
				if title != "" {
					return m, m.addCmd(title)
				}
				return m, m.closeModalCmd()
			case "esc":
				m.adding = false
				m.input.Blur()
				m.input.SetValue("")
				return m, m.closeModalCmd()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "a":
			m.adding = true
			return m, tea.Batch(m.openModalCmd(), m.input.Focus())
		case "r":
			m.loading = true
			return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
		case "f":
			return m, m.cycleFilterCmd()
		case " ", "enter":
			if id, ok := m.selectedID(); ok {
				return m, m.toggleCmd(id)
			}
		case "d":
			if id, ok := m.selectedID(); ok {
				return m, m.deleteCmd(id)
			}
		}
	}

	if !m.loading {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}

	var footer string
	switch {
	case m.adding:
		footer = theme.Title.Render("new task: ") + m.input.View()
	case m.state.Error != "":
		footer = theme.Err.Render(m.state.Error)
	default:
		footer = theme.Muted.Render("a:add  space:toggle  d:delete  f:filter  r:reload")
	}

	listView := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 2).
		Render(m.list.View())
	return lipgloss.JoinVertical(lipgloss.Left, listView, "", footer)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Editing reports whether the add prompt is open and should capture input.
func (m Model) Editing() bool {
	return m.adding
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) listTitle() string {
	return "Tasks (" + m.state.ActiveFilter + ")"
}

func (m Model) selectedID() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

func (m Model) fetchCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.FetchAll(context.Background())}
	}
}

func (m Model) addCmd(title string) tea.Cmd {
	return func() tea.Msg {
		m.port.CloseModal(context.Background())
		return StateMsg{Out: m.port.Add(context.Background(), tasksdto.AddInput{Title: title})}
	}
}

func (m Model) openModalCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.OpenModal(context.Background(), "add", "")}
	}
}

func (m Model) closeModalCmd() tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.CloseModal(context.Background())}
	}
}

func (m Model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.ToggleComplete(context.Background(), id)}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Out: m.port.Delete(context.Background(), id)}
	}
}

func (m Model) cycleFilterCmd() tea.Cmd {
	current := m.state.ActiveFilter
	next := filterCycle[0]
	for idx, f := range filterCycle {
		if f == current {
			next = filterCycle[(idx+1)%len(filterCycle)]
			break
		}
	}
	return func() tea.Msg {
		return StateMsg{Out: m.port.SetFilter(context.Background(), next)}
	}
}
