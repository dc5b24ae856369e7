package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskwall/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const guideMarkdown = `## Palette

- ` + "`/add pay rent @ 2026-03-01 9:00 AM #Home`" + `
- ` + "`/done <id>`, `/rm <id>`, `/restore <id>`, `/purge <id>`" + `
- ` + "`/filter Work`" + ` or ` + "`/filter all`" + `
- ` + "`/notify on`" + `, ` + "`/theme ocean`" + `

Alerts fire once, within 30 seconds of a deadline, while notifications are on.`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		GuideView: m.guideView.View(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Board, Action: "board"},
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Bin, Action: "recycle bin"},
		{Key: m.Keys.Settings, Action: "settings"},
		{Key: m.Keys.Bell, Action: "upcoming"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewBoard:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "space", Action: "complete / undo"},
			{Key: "d", Action: "move to recycle bin"},
			{Key: "f", Action: "cycle category filter"},
		}
	case ViewAdd:
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "enter", Action: "save task"},
			{Key: "esc", Action: "cancel"},
		}
	case ViewBin:
		return []KeyBinding{
			{Key: "r", Action: "restore"},
			{Key: "x", Action: "delete forever"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "t", Action: "next theme"},
			{Key: "n", Action: "toggle notifications"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
