package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskwall/internal/commands"
	"github.com/sandeepkv93/taskwall/internal/lifecycle"
)

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.switchView(ViewBoard)
		m.Status = StatusBar{Text: "add cancelled"}
		return m
	case "tab", "down":
		m.Form.Focus = (m.Form.Focus + 1) % fieldCount
		return m
	case "shift+tab", "up":
		m.Form.Focus = (m.Form.Focus + fieldCount - 1) % fieldCount
		return m
	case "enter":
		return m.submitForm()
	}

	in := &m.formInputs[m.Form.Focus]
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
	default:
		in.Focus()
		updated, _ := in.Update(msg)
		*in = updated
	}
	return m
}

func (m Model) formDraft() lifecycle.Draft {
	v := func(f formField) string { return strings.TrimSpace(m.formInputs[f].Value()) }
	return lifecycle.Draft{
		Text:     v(fieldText),
		Date:     v(fieldDate),
		Time:     v(fieldTime),
		Meridiem: v(fieldMeridiem),
		Category: v(fieldCategory),
		Color:    v(fieldColor),
	}
}

func (m Model) submitForm() Model {
	task, err := m.tasks.Create(m.ctx, m.formDraft())
	if err != nil {
		m.Form.Err = commands.UserMessage(err)
		m.Status = StatusBar{Text: m.Form.Err, IsError: true}
		return m
	}
	for i := range m.formInputs {
		m.formInputs[i].SetValue("")
	}
	m.Form = AddFormState{}
	m.switchView(ViewBoard)
	m.reload()
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
	return m
}
