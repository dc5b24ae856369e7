package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/views"
)

func (m Model) renderBoardView() string {
	cats := make([]views.CategoryData, 0, len(m.Categories))
	for _, c := range m.Categories {
		cats = append(cats, views.CategoryData{Name: c.Name, Count: c.Count})
	}
	return views.RenderBoardPanel(views.BoardPanelData{
		Filter:     m.Filter,
		TableView:  m.boardTable.View(),
		Empty:      len(m.Board) == 0,
		Categories: cats,
	})
}

func (m Model) renderAddView() string {
	fields := make([]views.FormFieldData, 0, len(m.formInputs))
	for i, in := range m.formInputs {
		fields = append(fields, views.FormFieldData{
			Label:   fieldLabels[i],
			View:    in.View(),
			Focused: formField(i) == m.Form.Focus,
		})
	}
	return views.RenderAddForm(views.AddFormData{Fields: fields, Error: m.Form.Err})
}

func (m Model) renderBinView() string {
	return views.RenderBinPanel(views.BinPanelData{
		TableView: m.binTable.View(),
		Empty:     len(m.Bin) == 0,
	})
}

func (m Model) renderSettingsView() string {
	return views.RenderSettingsPanel(views.SettingsData{
		Theme:         string(m.Prefs.Theme),
		Font:          m.Prefs.Font,
		Notifications: m.Prefs.NotificationsEnabled,
		Notifier:      m.notifierName,
		Permitted:     m.notifier.Permitted(),
	})
}

func (m Model) bellData() views.BellPanelData {
	now := m.now()
	items := make([]views.BellItemData, 0, len(m.Upcoming))
	for _, t := range m.Upcoming {
		items = append(items, views.BellItemData{
			Text:     t.Text,
			Category: t.Category,
			Deadline: notify.FormatDeadline(t.Deadline),
			In:       humanizeUntil(t.Deadline.Sub(now)),
			Color:    t.Color,
		})
	}
	return views.BellPanelData{
		Badge:  notify.Badge(len(m.Upcoming)),
		Window: humanizeUntil(m.window),
		Items:  items,
	}
}

func (m Model) renderBellView() string {
	return views.RenderBellPanel(m.bellData())
}

// renderBellSummary is the side pane version of the bell panel, capped at five entries.
func (m Model) renderBellSummary() string {
	data := m.bellData()
	if len(data.Items) > 5 {
		data.Items = data.Items[:5]
	}
	return views.RenderBellPanel(data)
}

func (m Model) renderNotificationLog() string {
	if len(m.Notifications) == 0 {
		return "alerts:\n(none yet)"
	}
	var b strings.Builder
	b.WriteString("alerts:\n")
	for i := len(m.Notifications) - 1; i >= 0; i-- {
		n := m.Notifications[i]
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", n.At.Local().Format("15:04"), strings.ToUpper(n.Level), n.Body))
	}
	return strings.TrimSpace(b.String())
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	})
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

func humanizeUntil(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	h := int(d / time.Hour)
	min := int((d % time.Hour) / time.Minute)
	if h == 0 {
		return fmt.Sprintf("%dm", min)
	}
	if min == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, min)
}
