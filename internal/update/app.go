package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/scheduler"
	"github.com/sandeepkv93/taskwall/internal/storage"
	"github.com/sandeepkv93/taskwall/internal/views"
)

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView: ViewBoard,
		Prefs:       storage.DefaultPreferences(),
		Keys: GlobalKeyMap{
			Board:    "1",
			Add:      "2",
			Bin:      "3",
			Settings: "4",
			Bell:     "5",
			Help:     "?",
			Quit:     "q",
		},
		ctx:          context.Background(),
		tasks:        deps.Tasks,
		prefStore:    deps.Prefs,
		engine:       deps.Engine,
		notifier:     deps.Notifier,
		notifierName: deps.NotifierName,
		window:       deps.Window,
		now:          deps.Clock,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.window <= 0 {
		m.window = notify.DefaultUpcomingWindow
	}
	if m.notifier == nil {
		m.notifier = notify.NoopNotifier{}
	}
	if m.notifierName == "" {
		m.notifierName = "none"
	}
	m.initBubbleComponents()
	m.reload()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	boardCols := []table.Column{
		{Title: "", Width: 1},
		{Title: "Task", Width: 26},
		{Title: "Category", Width: 10},
		{Title: "Deadline", Width: 20},
		{Title: "Status", Width: 7},
	}
	m.boardTable = table.New(table.WithColumns(boardCols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(12))

	binCols := []table.Column{
		{Title: "Task", Width: 30},
		{Title: "Category", Width: 12},
		{Title: "Deadline", Width: 20},
	}
	m.binTable = table.New(table.WithColumns(binCols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	placeholders := [fieldCount]string{"what needs doing", model.DateLayout, "h:mm", "AM or PM", model.DefaultCategory, model.DefaultColor}
	m.formInputs = make([]textinput.Model, fieldCount)
	for i := range m.formInputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = 64
		in.Width = 40
		m.formInputs[i] = in
	}
	m.formInputs[fieldText].CharLimit = 256

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
	m.guideView = viewport.New(42, 14)
	m.guideView.SetContent(views.RenderMarkdown(guideMarkdown, 40))
}

func (m *Model) syncBubbleData() {
	now := m.now()
	rows := make([]table.Row, 0, len(m.Board))
	for _, t := range m.Board {
		mark := " "
		if t.Done {
			mark = "x"
		}
		rows = append(rows, table.Row{
			mark,
			t.Text,
			t.Category,
			notify.FormatDeadline(t.Deadline),
			views.UrgencyLabel(string(t.Urgency(now)), t.Done),
		})
	}
	m.boardTable.SetRows(rows)
	if len(rows) > 0 {
		m.boardTable.SetCursor(m.boardCursor)
	}

	binRows := make([]table.Row, 0, len(m.Bin))
	for _, t := range m.Bin {
		binRows = append(binRows, table.Row{t.Text, t.Category, notify.FormatDeadline(t.Deadline)})
	}
	m.binTable.SetRows(binRows)
	if len(binRows) > 0 {
		m.binTable.SetCursor(m.binCursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	for i := range m.formInputs {
		if m.CurrentView == ViewAdd && formField(i) == m.Form.Focus && !m.Palette.Active {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

// reload pulls the board, bin, categories and preferences from storage.
func (m *Model) reload() {
	if m.tasks != nil {
		board, err := m.tasks.Board(m.ctx, m.Filter)
		if err != nil {
			m.fail(err)
			return
		}
		bin, err := m.tasks.RecycleBin(m.ctx)
		if err != nil {
			m.fail(err)
			return
		}
		categories, err := m.tasks.Categories(m.ctx)
		if err != nil {
			m.fail(err)
			return
		}
		all, err := m.tasks.Tasks(m.ctx)
		if err != nil {
			m.fail(err)
			return
		}
		m.Board, m.Bin, m.Categories = board, bin, categories
		m.Upcoming = notify.Upcoming(all, m.now(), m.window)
	}
	if m.prefStore != nil {
		prefs, err := m.prefStore.Load(m.ctx)
		if err != nil {
			m.fail(err)
			return
		}
		m.Prefs = prefs
	}
	m.boardCursor = clampCursor(m.boardCursor, len(m.Board))
	m.binCursor = clampCursor(m.binCursor, len(m.Bin))
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) selectedBoardTask() (model.Task, bool) {
	if m.boardCursor < 0 || m.boardCursor >= len(m.Board) {
		return model.Task{}, false
	}
	return m.Board[m.boardCursor], true
}

func (m Model) selectedBinTask() (model.Task, bool) {
	if m.binCursor < 0 || m.binCursor >= len(m.Bin) {
		return model.Task{}, false
	}
	return m.Bin[m.binCursor], true
}

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

func refreshCmd(ctx context.Context, engine *scheduler.Engine) tea.Cmd {
	return func() tea.Msg {
		_ = engine.Refresh(ctx)
		return nil
	}
}
