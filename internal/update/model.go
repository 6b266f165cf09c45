package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/cowritehq/sprinter/internal/board"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	PrevTab   string
	NextTab   string
	Up        string
	Down      string
	Toggle    string
	Add       string
	Delete    string
	ClearDone string
	Refresh   string
	Help      string
	Quit      string
}

// form field focus order
const (
	focusCategory = iota
	focusTitle
	focusAssignee
	focusDue
	focusFieldCount
)

type Model struct {
	board  *board.Board
	state  board.State
	loaded bool
	// fatal holds a store connection or schema error; once set, only the
	// full-page error view renders (no stale or partial data).
	fatal error

	activeTab int
	cursors   map[string]int

	adding        bool
	formFocus     int
	categoryInput textinput.Model
	titleInput    textinput.Model
	assigneeInput textinput.Model
	dueInput      textinput.Model

	bar        progress.Model
	spin       spinner.Model
	refreshing bool

	helpVisible bool
	helpModel   help.Model
	status      StatusBar
	now         time.Time

	window      time.Duration
	autoRefresh time.Duration
	keys        GlobalKeyMap
}

// Options carries the display-relevant configuration into the model.
type Options struct {
	SprintWindow time.Duration
	AutoRefresh  time.Duration
}

// Messages. Board operations run as commands and come back as one of
// these; the countdown and auto-refresh run on ticks.
type (
	StateLoadedMsg struct {
		State board.State
		Note  string
	}
	LoadFailedMsg struct {
		Err error
	}
	CountdownTickMsg struct {
		Now time.Time
	}
	AutoRefreshMsg struct{}
)

func NewModel(b *board.Board, opts Options) Model {
	category := textinput.New()
	category.Placeholder = "song"
	category.CharLimit = 120
	title := textinput.New()
	title.Placeholder = "task"
	title.CharLimit = 200
	assignee := textinput.New()
	assignee.Placeholder = "assignee (optional)"
	assignee.CharLimit = 80
	due := textinput.New()
	due.Placeholder = "due, e.g. 1/20 15:00 (optional)"
	due.CharLimit = 40

	window := opts.SprintWindow
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}

	return Model{
		board:         b,
		cursors:       make(map[string]int),
		categoryInput: category,
		titleInput:    title,
		assigneeInput: assignee,
		dueInput:      due,
		bar:           progress.New(progress.WithDefaultGradient()),
		spin:          spinner.New(spinner.WithSpinner(spinner.Dot)),
		helpModel:     help.New(),
		now:           time.Now(),
		window:        window,
		autoRefresh:   opts.AutoRefresh,
		keys: GlobalKeyMap{
			PrevTab:   "h",
			NextTab:   "l",
			Up:        "k",
			Down:      "j",
			Toggle:    " ",
			Add:       "a",
			Delete:    "d",
			ClearDone: "D",
			Refresh:   "r",
			Help:      "?",
			Quit:      "q",
		},
	}
}

// currentCategory is the formal name of the active tab, or "" when the
// board has no tasks yet.
func (m Model) currentCategory() string {
	if len(m.state.Categories) == 0 {
		return ""
	}
	if m.activeTab >= len(m.state.Categories) {
		return m.state.Categories[len(m.state.Categories)-1].Category
	}
	return m.state.Categories[m.activeTab].Category
}

func (m Model) cursor() int {
	return m.cursors[m.currentCategory()]
}

func (m *Model) setCursor(v int) {
	m.cursors[m.currentCategory()] = v
}

func (m *Model) clampSelection() {
	if len(m.state.Categories) == 0 {
		m.activeTab = 0
		return
	}
	if m.activeTab >= len(m.state.Categories) {
		m.activeTab = len(m.state.Categories) - 1
	}
	n := len(m.tabTasks())
	if c := m.cursor(); c >= n && n > 0 {
		m.setCursor(n - 1)
	} else if n == 0 {
		m.setCursor(0)
	}
}
