// internal/tui/app.go
//
// This is the terminal UI for taskboard. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> Board mutation -> View -> Screen
//
// The App never filters or sorts on its own: every render reads
// board.Visible(), which re-derives the list from the current store
// snapshot and projection settings.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/taskboard/internal/board"
	"github.com/kingrea/taskboard/internal/config"
	"github.com/kingrea/taskboard/internal/logbook"
	"github.com/kingrea/taskboard/internal/task"
	"github.com/kingrea/taskboard/internal/view"
)

// appState represents which input the keyboard is currently driving
type appState int

const (
	stateList   appState = iota // Browsing the task list
	stateAdd                    // Typing the title of a new task
	stateEdit                   // Renaming the selected task
	stateSearch                 // Typing the search keyword
)

const titleCharLimit = 256

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithBoard replaces the board built from config.
func WithBoard(b *board.Board) AppOption {
	return func(a *App) {
		if b != nil {
			a.board = b
		}
	}
}

// WithLogbook attaches a session journal.
func WithLogbook(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		a.logbook = lb
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	board   *board.Board
	logbook *logbook.Logbook

	unsubscribe func()

	// UI components
	keys      keyMap
	inputKeys inputKeys
	help      help.Model
	input     textinput.Model
	statusMsg string
	logLines  int

	// List state. visible is refreshed from the board after every change.
	visible []task.Task
	cursor  int

	// Input state
	newPriority  task.Priority
	editing      task.ID
	searchBefore string

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// NewApp creates a new App instance
func NewApp(cfg *config.Config, opts ...AppOption) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tui: config is required")
	}
	input := textinput.New()
	input.CharLimit = titleCharLimit
	input.Width = 48

	app := &App{
		state:       stateList,
		config:      cfg,
		keys:        defaultKeyMap(),
		inputKeys:   defaultInputKeys(),
		help:        help.New(),
		input:       input,
		logLines:    cfg.LogLines(),
		newPriority: cfg.DefaultPriority(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.board == nil {
		app.board = board.New(task.NewStore(),
			board.WithProjector(view.New(cfg.Locale())),
			board.WithParams(cfg.ViewParams()),
		)
	}
	app.unsubscribe = app.board.Store().Subscribe(app.handleTaskEvent)
	app.refresh()
	app.logInfo("Session opened · locale %s · order %s", cfg.Locale(), app.board.Params().Order)
	app.statusMsg = "Press a to add your first task."
	return app, nil
}

// Close detaches the App from the board's store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	a.logInfo("Session closed · %d task(s) discarded", a.board.Store().Len())
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

// handleTaskEvent runs synchronously after every applied store mutation.
func (a *App) handleTaskEvent(evt task.Event) {
	if a.logbook != nil {
		a.logbook.Record(evt)
	}
	a.refresh()
}

// refresh re-derives the visible list and keeps the cursor on the same task
// when it is still shown.
func (a *App) refresh() {
	var selected task.ID
	if t, ok := a.selectedTask(); ok {
		selected = t.ID
	}
	a.visible = a.board.Visible()
	if selected != 0 {
		for i, t := range a.visible {
			if t.ID == selected {
				a.cursor = i
				return
			}
		}
	}
	a.clampCursor()
}

func (a *App) clampCursor() {
	if len(a.visible) == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= len(a.visible) {
		a.cursor = len(a.visible) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) selectedTask() (task.Task, bool) {
	if a.cursor < 0 || a.cursor >= len(a.visible) {
		return task.Task{}, false
	}
	return a.visible[a.cursor], true
}

func (a *App) selectID(id task.ID) {
	for i, t := range a.visible {
		if t.ID == id {
			a.cursor = i
			return
		}
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.input.Width = max(20, msg.Width-20)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		switch a.state {
		case stateAdd, stateEdit:
			return a.updateTitleInput(msg)
		case stateSearch:
			return a.updateSearchInput(msg)
		default:
			return a.updateList(msg)
		}
	}

	if a.state != stateList {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Add):
		a.newPriority = a.config.DefaultPriority()
		a.statusMsg = "New task · enter to save, tab to change priority, esc to cancel"
		return a, a.beginInput(stateAdd, "New task", "")

	case key.Matches(msg, a.keys.Edit):
		t, ok := a.selectedTask()
		if !ok {
			a.statusMsg = "No task selected"
			return a, nil
		}
		a.editing = t.ID
		a.statusMsg = fmt.Sprintf("Editing #%d · enter to save, esc to cancel", t.ID)
		return a, a.beginInput(stateEdit, "Title", t.Title)

	case key.Matches(msg, a.keys.Priority):
		t, ok := a.selectedTask()
		if !ok {
			a.statusMsg = "No task selected"
			return a, nil
		}
		next, _ := a.board.CyclePriority(t.ID)
		a.statusMsg = fmt.Sprintf("#%d priority → %s", t.ID, next)
		a.reportHidden(t.ID)

	case key.Matches(msg, a.keys.Delete):
		t, ok := a.selectedTask()
		if !ok {
			a.statusMsg = "No task selected"
			return a, nil
		}
		a.board.Delete(t.ID)
		a.statusMsg = fmt.Sprintf("Deleted #%d", t.ID)

	case key.Matches(msg, a.keys.Search):
		a.searchBefore = a.board.Params().Search
		a.statusMsg = "Search · enter to keep, esc to restore"
		return a, a.beginInput(stateSearch, "Search", a.searchBefore)

	case key.Matches(msg, a.keys.Filter):
		f := a.board.CycleFilter()
		a.refresh()
		a.statusMsg = fmt.Sprintf("Filter: %s", f)
		a.logInfo("View · filter %s", f)

	case key.Matches(msg, a.keys.Sort):
		o := a.board.ToggleOrder()
		a.refresh()
		a.statusMsg = fmt.Sprintf("Order: %s", o)
		a.logInfo("View · order %s", o)

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) updateTitleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.inputKeys.Cancel):
		a.endInput()
		a.statusMsg = "Cancelled"
		return a, nil

	case key.Matches(msg, a.inputKeys.Priority) && a.state == stateAdd:
		a.newPriority = a.newPriority.Next()
		return a, nil

	case key.Matches(msg, a.inputKeys.Confirm):
		title := a.input.Value()
		if a.state == stateAdd {
			id := a.board.Create(title, a.newPriority)
			a.selectID(id)
			if strings.TrimSpace(title) == "" {
				a.statusMsg = fmt.Sprintf("Added #%d (untitled)", id)
			} else {
				a.statusMsg = fmt.Sprintf("Added #%d", id)
			}
			a.reportHidden(id)
		} else {
			a.board.Rename(a.editing, title)
			a.statusMsg = fmt.Sprintf("Renamed #%d", a.editing)
			a.reportHidden(a.editing)
		}
		a.endInput()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.inputKeys.Cancel):
		a.board.SetSearch(a.searchBefore)
		a.refresh()
		a.endInput()
		a.statusMsg = "Search restored"
		return a, nil

	case key.Matches(msg, a.inputKeys.Confirm):
		keyword := a.board.Params().Search
		a.endInput()
		if keyword == "" {
			a.statusMsg = "Search cleared"
		} else {
			a.statusMsg = fmt.Sprintf("Search: %q · %d match(es)", keyword, len(a.visible))
		}
		a.logInfo("View · search %q", keyword)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if value := a.input.Value(); value != a.board.Params().Search {
		a.board.SetSearch(value)
		a.refresh()
	}
	return a, cmd
}

func (a *App) beginInput(state appState, prompt, value string) tea.Cmd {
	a.state = state
	a.input.Prompt = prompt + ": "
	a.input.SetValue(value)
	a.input.CursorEnd()
	return a.input.Focus()
}

func (a *App) endInput() {
	a.state = stateList
	a.editing = 0
	a.input.Blur()
	a.input.SetValue("")
}

// reportHidden appends a note when the projection hides a task the user
// just touched.
func (a *App) reportHidden(id task.ID) {
	t, ok := a.board.Store().Get(id)
	if !ok || view.Matches(t, a.board.Params()) {
		return
	}
	a.statusMsg += " · hidden by current search/filter"
}

func (a *App) quit() (tea.Model, tea.Cmd) {
	a.Close()
	return a, tea.Quit
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 80
	}
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ TASKBOARD")

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.renderParams(),
		"",
		a.renderTaskList(width-4),
		a.renderInput(),
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Width(max(20, width-2)).
		Render(body)

	sections := []string{header, box}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer, a.renderHelp())
	return strings.Join(sections, "\n")
}

func (a *App) renderParams() string {
	params := a.board.Params()
	search := "—"
	if params.Search != "" {
		search = fmt.Sprintf("%q", params.Search)
	}
	line := fmt.Sprintf("Search: %s · Filter: %s · Order: %s · %d/%d shown",
		search, params.Filter, params.Order, len(a.visible), a.board.Store().Len())
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Render(line)
}

func (a *App) renderTaskList(width int) string {
	if len(a.visible) == 0 {
		note := "No tasks yet."
		if a.board.Store().Len() > 0 {
			note = "No tasks match the current search and filter."
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(note)
	}
	rows := make([]string, 0, len(a.visible))
	for i, t := range a.visible {
		rows = append(rows, a.renderTaskItem(t, i == a.cursor && a.state == stateList, width))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderTaskItem(t task.Task, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "› "
	}
	title := t.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s#%-3d %s %s", cursor, t.ID, priorityBadge(t.Priority), title)
	style := lipgloss.NewStyle().Width(max(20, width))
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	}
	return style.Render(line)
}

func (a *App) renderInput() string {
	if a.state == stateList {
		return ""
	}
	line := a.input.View()
	if a.state == stateAdd {
		line += "  " + priorityBadge(a.newPriority)
	}
	return lipgloss.NewStyle().MarginTop(1).Render(line)
}

func (a *App) renderHelp() string {
	if a.state == stateList {
		return a.help.View(a.keys)
	}
	return a.help.View(a.inputKeys)
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil || a.logLines <= 0 {
		return ""
	}
	lines, total := a.logbook.Tail(a.logLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}

var priorityColors = map[task.Priority]lipgloss.Color{
	task.PriorityLow:    lipgloss.Color("#6BCB77"),
	task.PriorityMedium: lipgloss.Color("#FFD93D"),
	task.PriorityHigh:   lipgloss.Color("#FF6B6B"),
}

func priorityBadge(p task.Priority) string {
	color, ok := priorityColors[p]
	if !ok {
		color = lipgloss.Color("#AAAAAA")
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Width(8).
		Render("[" + p.String() + "]")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
