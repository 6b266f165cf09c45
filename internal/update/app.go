package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cowritehq/sprinter/internal/model"
	"github.com/cowritehq/sprinter/internal/stats"
	"github.com/cowritehq/sprinter/internal/store"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, m.loadCmd(""), countdownTickCmd()}
	if m.autoRefresh > 0 {
		cmds = append(cmds, autoRefreshCmd(m.autoRefresh))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case StateLoadedMsg:
		m.state = typed.State
		m.loaded = true
		m.refreshing = false
		m.fatal = nil
		m.clampSelection()
		text := typed.Note
		if text == "" {
			text = fmt.Sprintf("loaded %d tasks", typed.State.Summary.Total)
		}
		m.status = StatusBar{Text: text}
		return m, nil

	case LoadFailedMsg:
		m.refreshing = false
		if errors.Is(typed.Err, store.ErrConnect) || errors.Is(typed.Err, store.ErrSchema) {
			// No task data is available: render the blocking error page
			// instead of stale state.
			m.fatal = typed.Err
			return m, nil
		}
		m.status = StatusBar{Text: typed.Err.Error(), IsError: true}
		return m, nil

	case CountdownTickMsg:
		m.now = typed.Now
		return m, countdownTickCmd()

	case AutoRefreshMsg:
		if m.fatal != nil {
			// Keep the tick chain alive; the error page still needs a
			// restart, but a dead timer would be a surprise if that ever
			// changes.
			return m, autoRefreshCmd(m.autoRefresh)
		}
		if m.adding {
			// Never reload under an open form; reschedule instead.
			return m, autoRefreshCmd(m.autoRefresh)
		}
		m.refreshing = true
		return m, tea.Batch(
			m.spin.Tick,
			m.loadCmd("auto-refreshed"),
			autoRefreshCmd(m.autoRefresh),
		)

	case spinner.TickMsg:
		if !m.refreshing && m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.fatal != nil {
		if key == m.keys.Quit {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.adding {
		return m.handleFormKey(msg)
	}
	if m.helpVisible && key != m.keys.Help && key != m.keys.Quit {
		return m, nil
	}

	switch key {
	case m.keys.Quit:
		return m, tea.Quit
	case m.keys.Help:
		m.helpVisible = !m.helpVisible
		return m, nil
	case m.keys.PrevTab, "left", "shift+tab":
		if n := len(m.state.Categories); n > 0 {
			m.activeTab = (m.activeTab - 1 + n) % n
		}
		return m, nil
	case m.keys.NextTab, "right", "tab":
		if n := len(m.state.Categories); n > 0 {
			m.activeTab = (m.activeTab + 1) % n
		}
		return m, nil
	case m.keys.Down, "down":
		if n := len(m.tabTasks()); n > 0 {
			m.setCursor((m.cursor() + 1) % n)
		}
		return m, nil
	case m.keys.Up, "up":
		if n := len(m.tabTasks()); n > 0 {
			m.setCursor((m.cursor() - 1 + n) % n)
		}
		return m, nil
	case m.keys.Toggle:
		if task, ok := m.selectedTask(); ok {
			m.refreshing = true
			return m, tea.Batch(m.spin.Tick, m.toggleCmd(task))
		}
		return m, nil
	case m.keys.Add:
		m.openForm()
		return m, m.categoryInput.Focus()
	case m.keys.Delete:
		if task, ok := m.selectedTask(); ok {
			m.refreshing = true
			return m, tea.Batch(m.spin.Tick, m.deleteCmd(task))
		}
		return m, nil
	case m.keys.ClearDone:
		if category := m.currentCategory(); category != "" {
			m.refreshing = true
			return m, tea.Batch(m.spin.Tick, m.clearDoneCmd(category))
		}
		return m, nil
	case m.keys.Refresh:
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.loadCmd("refreshed"))
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % focusFieldCount
		return m, m.focusFormField()
	case "shift+tab", "up":
		m.formFocus = (m.formFocus - 1 + focusFieldCount) % focusFieldCount
		return m, m.focusFormField()
	case "enter":
		category := strings.TrimSpace(m.categoryInput.Value())
		title := strings.TrimSpace(m.titleInput.Value())
		if category == "" || title == "" {
			m.status = StatusBar{Text: "song and task are required", IsError: true}
			return m, nil
		}
		m.adding = false
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.addCmd(
			category,
			title,
			strings.TrimSpace(m.assigneeInput.Value()),
			strings.TrimSpace(m.dueInput.Value()),
		))
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case focusCategory:
		m.categoryInput, cmd = m.categoryInput.Update(msg)
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusAssignee:
		m.assigneeInput, cmd = m.assigneeInput.Update(msg)
	case focusDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) openForm() {
	m.adding = true
	m.formFocus = focusCategory
	m.categoryInput.SetValue(m.currentCategory())
	m.titleInput.SetValue("")
	m.assigneeInput.SetValue("")
	m.dueInput.SetValue("")
	m.blurFormFields()
}

func (m *Model) blurFormFields() {
	m.categoryInput.Blur()
	m.titleInput.Blur()
	m.assigneeInput.Blur()
	m.dueInput.Blur()
}

func (m *Model) focusFormField() tea.Cmd {
	m.blurFormFields()
	switch m.formFocus {
	case focusTitle:
		return m.titleInput.Focus()
	case focusAssignee:
		return m.assigneeInput.Focus()
	case focusDue:
		return m.dueInput.Focus()
	default:
		return m.categoryInput.Focus()
	}
}

// tabTasks are the tasks of the active tab, in store order.
func (m Model) tabTasks() []model.Task {
	category := m.currentCategory()
	if category == "" {
		return nil
	}
	return stats.Filter(m.state.Tasks, category)
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.tabTasks()
	c := m.cursor()
	if c < 0 || c >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[c], true
}

// Board commands. Each one runs a full read-modify-write cycle and comes
// back as a StateLoadedMsg or LoadFailedMsg.

func (m Model) loadCmd(note string) tea.Cmd {
	b := m.board
	return func() tea.Msg {
		st, err := b.Load(context.Background())
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return StateLoadedMsg{State: st, Note: note}
	}
}

func (m Model) addCmd(category, title, assignee, due string) tea.Cmd {
	b := m.board
	return func() tea.Msg {
		st, err := b.AddTask(context.Background(), category, title, assignee, due)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return StateLoadedMsg{State: st, Note: fmt.Sprintf("added %q", title)}
	}
}

func (m Model) toggleCmd(task model.Task) tea.Cmd {
	b := m.board
	return func() tea.Msg {
		st, err := b.ToggleTask(context.Background(), task.ID)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		note := fmt.Sprintf("completed %q", task.Title)
		if task.Done {
			note = fmt.Sprintf("reopened %q", task.Title)
		}
		return StateLoadedMsg{State: st, Note: note}
	}
}

func (m Model) deleteCmd(task model.Task) tea.Cmd {
	b := m.board
	return func() tea.Msg {
		st, err := b.DeleteTasks(context.Background(), []string{task.ID})
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return StateLoadedMsg{State: st, Note: fmt.Sprintf("deleted %q", task.Title)}
	}
}

func (m Model) clearDoneCmd(category string) tea.Cmd {
	b := m.board
	return func() tea.Msg {
		st, err := b.DeleteDone(context.Background(), category)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return StateLoadedMsg{State: st, Note: "cleared completed tasks"}
	}
}

func countdownTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return CountdownTickMsg{Now: t} })
}

func autoRefreshCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return AutoRefreshMsg{} })
}
