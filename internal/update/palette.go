package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskwall/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m = m.executePaletteCommand()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.Palette.Input += string(msg.Runes)
		case tea.KeySpace:
			m.Palette.Input += " "
		default:
			m.commandInput.SetValue(m.Palette.Input)
			m.commandInput.Focus()
			m.commandInput.CursorEnd()
			var cmd tea.Cmd
			m.commandInput, cmd = m.commandInput.Update(msg)
			_ = cmd
			m.Palette.Input = m.commandInput.Value()
		}
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	handlers := commands.NewHandlers(m.ctx, m.tasks, m.prefStore)
	handlers.Filter = func(a commands.FilterArgs) (commands.Result, error) {
		m.boardCursor = 0
		if strings.EqualFold(a.Category, "all") {
			m.Filter = ""
			return commands.Result{Message: "filter: all"}, nil
		}
		m.Filter = a.Category
		m.CurrentView = ViewBoard
		return commands.Result{Message: "filter: " + a.Category}, nil
	}
	res, err := commands.Execute(cmd, handlers)
	m.reload()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}
	return m
}
