package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.engine == nil {
		return nil
	}
	return tea.Batch(waitForEventCmd(m.engine.C()), refreshCmd(m.ctx, m.engine))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.handle(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) handle(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.switchView(typed.View)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.fail(typed.Err)
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case SchedulerEventMsg:
		m.applySchedulerEvent(typed)
		if m.engine != nil {
			return m, waitForEventCmd(m.engine.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	if m.CurrentView == ViewAdd {
		return m.handleFormKey(msg), nil
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Board:
		m.switchView(ViewBoard)
		return m, nil
	case m.Keys.Add:
		m.switchView(ViewAdd)
		return m, nil
	case m.Keys.Bin:
		m.switchView(ViewBin)
		return m, nil
	case m.Keys.Settings:
		m.switchView(ViewSettings)
		return m, nil
	case m.Keys.Bell:
		m.switchView(ViewBell)
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewBoard:
		return m.handleBoardKey(msg), nil
	case ViewBin:
		return m.handleBinKey(msg), nil
	case ViewSettings:
		return m.handleSettingsKey(msg), nil
	}
	return m, nil
}

func (m *Model) switchView(v View) {
	m.CurrentView = v
	if v == ViewAdd {
		m.Form.Err = ""
	}
}

func (m *Model) applySchedulerEvent(msg SchedulerEventMsg) {
	m.reload()
	if msg.Event.Upcoming != nil {
		m.Upcoming = msg.Event.Upcoming
	}
	for _, a := range msg.Event.Alerts {
		m.notify(a.Title, a.Body, "warn")
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", a.Title, a.Body)}
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	left := ""
	right := m.renderBellSummary()
	switch m.CurrentView {
	case ViewBoard:
		left = m.renderBoardView()
	case ViewAdd:
		left = m.renderAddView()
	case ViewBin:
		left = m.renderBinView()
	case ViewSettings:
		left = m.renderSettingsView()
	case ViewBell:
		left = m.renderBellView()
		right = m.renderNotificationLog()
	}
	right = strings.TrimSpace(strings.Join([]string{right, m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n\n"))

	tabs := make([]string, 0, len(viewOrder))
	active := 0
	for i, v := range viewOrder {
		tabs = append(tabs, fmt.Sprintf("%d %s", i+1, v))
		if v == m.CurrentView {
			active = i
		}
	}

	notifications := "off"
	if m.Prefs.NotificationsEnabled {
		notifications = "on"
	}
	header := fmt.Sprintf("taskwall | notifications: %s", notifications)
	if badge := notify.Badge(len(m.Upcoming)); badge != "" {
		header += " | bell: " + badge
	}

	return views.RenderApp(views.AppData{
		Theme:         string(m.Prefs.Theme),
		Header:        header,
		Tabs:          tabs,
		ActiveTab:     active,
		LeftPane:      left,
		RightPane:     right,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer:        fmt.Sprintf("keys: 1-5 views | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	for _, known := range viewOrder {
		if v == known {
			return true
		}
	}
	return false
}
