package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskwall/internal/model"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.boardCursor = clampCursor(m.boardCursor+1, len(m.Board))
	case "k", "up":
		m.boardCursor = clampCursor(m.boardCursor-1, len(m.Board))
	case " ", "enter":
		task, ok := m.selectedBoardTask()
		if !ok {
			return m
		}
		if err := m.tasks.ToggleDone(m.ctx, task.ID); err != nil {
			m.fail(err)
			return m
		}
		if task.Done {
			m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Text)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Text)}
		}
		m.reload()
	case "d", "delete":
		task, ok := m.selectedBoardTask()
		if !ok {
			return m
		}
		if err := m.tasks.SoftDelete(m.ctx, task.ID); err != nil {
			m.fail(err)
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("moved to recycle bin: %s", task.Text)}
		m.reload()
	case "f":
		m.cycleFilter()
	case "a":
		m.switchView(ViewAdd)
	}
	return m
}

// cycleFilter steps through "all" and every category currently on the board.
func (m *Model) cycleFilter() {
	options := []string{""}
	for _, c := range m.Categories {
		options = append(options, c.Name)
	}
	next := 0
	for i, opt := range options {
		if opt == m.Filter {
			next = (i + 1) % len(options)
			break
		}
	}
	m.Filter = options[next]
	m.boardCursor = 0
	m.reload()
	label := m.Filter
	if label == "" {
		label = "all"
	}
	m.Status = StatusBar{Text: "filter: " + label}
}

func (m Model) handleBinKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.binCursor = clampCursor(m.binCursor+1, len(m.Bin))
	case "k", "up":
		m.binCursor = clampCursor(m.binCursor-1, len(m.Bin))
	case "r":
		task, ok := m.selectedBinTask()
		if !ok {
			return m
		}
		if err := m.tasks.Restore(m.ctx, task.ID); err != nil {
			m.fail(err)
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("restored: %s", task.Text)}
		m.reload()
	case "x":
		task, ok := m.selectedBinTask()
		if !ok {
			return m
		}
		if err := m.tasks.PermanentlyDelete(m.ctx, task.ID); err != nil {
			m.fail(err)
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleted forever: %s", task.Text)}
		m.reload()
	}
	return m
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) Model {
	if m.prefStore == nil {
		return m
	}
	switch msg.String() {
	case "t":
		theme := model.NextTheme(m.Prefs.Theme)
		if err := m.prefStore.SetTheme(m.ctx, theme); err != nil {
			m.fail(err)
			return m
		}
		m.Status = StatusBar{Text: "theme: " + string(theme)}
		m.reload()
	case "n":
		m = m.setNotifications(!m.Prefs.NotificationsEnabled)
	}
	return m
}

func (m Model) setNotifications(enabled bool) Model {
	if err := m.prefStore.SetNotificationsEnabled(m.ctx, enabled); err != nil {
		m.fail(err)
		return m
	}
	m.reload()
	switch {
	case !enabled:
		m.Status = StatusBar{Text: "notifications off"}
	case !m.notifier.Permitted():
		m.Status = StatusBar{Text: fmt.Sprintf("notifications on, but the %s notifier is not permitted; alerts stay paused", m.notifierName), IsError: true}
	default:
		m.Status = StatusBar{Text: "notifications on"}
	}
	return m
}
