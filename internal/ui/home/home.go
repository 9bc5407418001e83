// Package home is the interactive Home screen: greeting, quote card, task
// statistics and the task list with keyboard actions.
package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"planify/internal/i18n"
	"planify/internal/logging"
	"planify/internal/notify"
	"planify/internal/output"
	"planify/internal/service"
	"planify/internal/tasklist"
	"planify/internal/theme"
)

// Deps are the stores and services the screen works with.
type Deps struct {
	Tasks  *tasklist.Controller
	Quotes service.QuoteSource
	Theme  *theme.Store
	Locale *i18n.Store

	// Notifier and Reminder are optional; without them the remind key
	// reports that notifications are unavailable.
	Notifier *notify.Scheduler
	Reminder func() notify.Reminder

	UserName string
	Logger   *slog.Logger

	// Describe turns an error into a status line. Defaults to err.Error().
	Describe func(error) string

	// Now defaults to time.Now.
	Now func() time.Time
}

type loadedMsg struct{ err error }

type quoteMsg struct {
	q   service.Quote
	err error
}

// doneMsg is the store's answer to a local mutation.
type doneMsg struct {
	key string
	err error
}

// NotifiedMsg reports a delivered reminder.
type NotifiedMsg struct {
	notify.Notification
}

// Model is the bubbletea model of the Home screen.
type Model struct {
	ctx    context.Context
	deps   Deps
	logger *slog.Logger

	cursor   int
	adding   bool
	removing string // id of the task awaiting delete confirmation
	input   textinput.Model
	spinner spinner.Model

	quote        *service.Quote
	quoteLoading bool

	status    string
	statusErr bool
}

// New creates the screen. ctx bounds every backend call it makes.
func New(ctx context.Context, deps Deps) Model {
	if deps.Describe == nil {
		deps.Describe = func(err error) string { return err.Error() }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	in := textinput.New()
	in.Placeholder = deps.Locale.T(i18n.NewTaskTitle)
	in.CharLimit = 200

	return Model{
		ctx:          ctx,
		deps:         deps,
		logger:       logging.OrDiscard(deps.Logger),
		input:        in,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		quoteLoading: deps.Quotes != nil,
	}
}

// Init starts the first load and the quote fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.load()}
	if m.deps.Quotes != nil {
		cmds = append(cmds, m.fetchQuote(false))
	}
	return tea.Batch(cmds...)
}

// Update handles keys and backend results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case m.adding:
			return m.updateAdding(msg)
		case m.removing != "":
			return m.updateRemoving(msg)
		}
		return m.updateList(msg)

	case loadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		m.clampCursor()
		return m, nil

	case quoteMsg:
		m.quoteLoading = false
		if msg.err != nil {
			m.logger.Debug("quote unavailable", "err", msg.err)
			m.quote = nil
			return m, nil
		}
		q := msg.q
		m.quote = &q
		return m, nil

	case doneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(m.t(msg.key))
		}
		m.clampCursor()
		return m, nil

	case NotifiedMsg:
		m.setStatus(msg.Title + ": " + msg.Body)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.deps.Tasks.Tasks()

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}

	case " ", "enter", "x":
		if len(tasks) == 0 {
			return m, nil
		}
		errc, err := m.deps.Tasks.Toggle(m.ctx, tasks[m.cursor].ID)
		return m.await(i18n.TaskToggled, errc, err)

	case "d", "delete":
		if len(tasks) == 0 {
			return m, nil
		}
		m.removing = tasks[m.cursor].ID
		m.status = ""
		return m, nil

	case "a":
		m.adding = true
		m.input.Reset()
		m.status = ""
		return m, m.input.Focus()

	case "t":
		m.deps.Theme.Toggle()

	case "r":
		m.status = ""
		cmds := []tea.Cmd{m.load()}
		if m.deps.Quotes != nil {
			m.quoteLoading = true
			cmds = append(cmds, m.fetchQuote(true))
		}
		return m, tea.Batch(cmds...)

	case "n":
		m.remind()
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		title := m.input.Value()
		m.adding = false
		m.input.Blur()
		ctx, tasks := m.ctx, m.deps.Tasks
		return m, func() tea.Msg {
			_, err := tasks.Add(ctx, title, nil)
			return doneMsg{key: i18n.TaskAdded, err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateRemoving answers the delete confirmation. y (s in Portuguese) or
// enter deletes; any other key keeps the task.
func (m Model) updateRemoving(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.removing
	m.removing = ""

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y", "s", "S", "enter":
		errc, err := m.deps.Tasks.Remove(m.ctx, id)
		m.clampCursor()
		return m.await(i18n.TaskDeleted, errc, err)
	}
	m.setStatus(m.t(i18n.Cancelled))
	return m, nil
}

// await turns the result channel of an optimistic mutation into a message.
func (m Model) await(key string, errc <-chan error, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.setError(err)
		return m, nil
	}
	return m, func() tea.Msg {
		return doneMsg{key: key, err: <-errc}
	}
}

func (m *Model) remind() {
	if m.deps.Tasks.Stats().Total == 0 {
		m.setStatus(m.t(i18n.ReminderNoTasks))
		return
	}
	if m.deps.Notifier == nil || m.deps.Reminder == nil {
		m.setStatus(m.t(i18n.ReminderDisabled))
		return
	}

	r := m.deps.Reminder()
	id, err := m.deps.Notifier.ScheduleReminder(m.ctx, r.Title, r.Body, r.Delay, r.Repeat)
	switch {
	case err != nil:
		m.logger.Warn("scheduling reminder", "err", err)
		m.setStatus(m.t(i18n.ReminderDisabled))
	case id == "":
		m.setStatus(m.t(i18n.ReminderDisabled))
	default:
		m.setStatus(m.t(i18n.ReminderScheduled))
	}
}

func (m Model) load() tea.Cmd {
	ctx, tasks := m.ctx, m.deps.Tasks
	return func() tea.Msg {
		return loadedMsg{err: tasks.Load(ctx)}
	}
}

func (m Model) fetchQuote(refresh bool) tea.Cmd {
	ctx, src := m.ctx, m.deps.Quotes
	return func() tea.Msg {
		fetch := src.Fetch
		if r, ok := src.(interface {
			Refresh(context.Context) (service.Quote, error)
		}); ok && refresh {
			fetch = r.Refresh
		}
		q, err := fetch(ctx)
		return quoteMsg{q: q, err: err}
	}
}

func (m *Model) clampCursor() {
	n := len(m.deps.Tasks.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = m.deps.Describe(err), true
}

func (m Model) t(key string, args ...any) string {
	return m.deps.Locale.T(key, args...)
}

// View renders the screen.
func (m Model) View() string {
	st := m.deps.Theme.Styles()
	snap := m.deps.Tasks.Snapshot()
	var b strings.Builder

	b.WriteString(st.Header.Render(m.deps.Locale.Greeting(m.deps.Now(), m.deps.UserName)))
	b.WriteString("\n\n")

	if m.deps.Quotes != nil {
		var card string
		switch {
		case m.quoteLoading:
			card = m.spinner.View() + " " + st.Subtle.Render(m.t(i18n.QuoteLoading))
		case m.quote == nil:
			card = st.Subtle.Render(m.t(i18n.QuoteUnavailable))
		default:
			var q strings.Builder
			output.FormatQuote(&q, *m.quote)
			lines := strings.SplitN(strings.TrimRight(q.String(), "\n"), "\n", 2)
			card = st.Quote.Render(lines[0])
			if len(lines) > 1 {
				card += "\n" + st.Author.Render(lines[1])
			}
		}
		b.WriteString(st.Card.Render(card))
		b.WriteString("\n")
	}

	stats := snap.Stats()
	b.WriteString(st.Subtle.Render(m.t(i18n.StatsLine, stats.Total, stats.Completed, stats.Pending)))
	b.WriteString("\n\n")

	switch {
	case snap.Loading && len(snap.Tasks) == 0:
		b.WriteString(m.spinner.View() + " " + m.t(i18n.LoadingTasks) + "\n")
	case len(snap.Tasks) == 0:
		b.WriteString(st.Subtle.Render(m.t(i18n.NoTasks)) + "\n")
	}
	for i, task := range snap.Tasks {
		b.WriteString(m.renderTask(st, i, task))
		b.WriteString("\n")
	}
	if n := len(snap.Skipped); n > 0 {
		b.WriteString(st.Warning.Render(m.t(i18n.SkippedTasks, n)) + "\n")
	}

	if m.adding {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.removing != "" {
		b.WriteString("\n" + st.Warning.Render(m.t(i18n.ConfirmRemove)+" (y/n)") + "\n")
	}
	if m.status != "" {
		style := st.Success
		if m.statusErr {
			style = st.Error
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + st.Help.Render(m.t(i18n.HomeHelp)) + "\n")
	return b.String()
}

func (m Model) renderTask(st theme.Styles, i int, task service.Task) string {
	mark := "[ ]"
	if task.IsChecked {
		mark = "[x]"
	}
	title := task.Title
	if task.IsChecked {
		title = st.Checked.Render(title)
	}
	line := fmt.Sprintf("%s %s", mark, title)
	if due := output.FormatDue(task); due != "" {
		line += "  " + st.Due.Render(m.t(i18n.TaskDue, due))
	}
	if i == m.cursor {
		return st.Selected.Render(line)
	}
	return st.Item.Render(line)
}
