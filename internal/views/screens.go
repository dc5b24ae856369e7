package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type CategoryData struct {
	Name  string
	Count int
}

type BoardPanelData struct {
	Filter     string
	TableView  string
	Empty      bool
	Categories []CategoryData
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type AddFormData struct {
	Fields []FormFieldData
	Error  string
}

type BinPanelData struct {
	TableView string
	Empty     bool
}

type SettingsData struct {
	Theme         string
	Font          string
	Notifications bool
	Notifier      string
	Permitted     bool
}

type BellItemData struct {
	Text     string
	Category string
	Deadline string
	In       string
	Color    string
}

type BellPanelData struct {
	Badge  string
	Window string
	Items  []BellItemData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	GuideView   string
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	filter := data.Filter
	if filter == "" {
		filter = "all"
	}
	b.WriteString(fmt.Sprintf("board: filter=%s\n", filter))
	b.WriteString("actions: [j/k]move [space]done/undo [d]delete [f]filter [a]add\n")
	if data.Empty {
		b.WriteString("\n(no tasks)\n")
	} else {
		b.WriteString(data.TableView + "\n")
	}
	if len(data.Categories) > 0 {
		b.WriteString("\ncategories:\n")
		for _, c := range data.Categories {
			b.WriteString(fmt.Sprintf("- %s: %d\n", c.Name, c.Count))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderAddForm(data AddFormData) string {
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString("keys: [tab]next [shift+tab]prev [enter]save [esc]cancel\n\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Focused {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-9s %s\n", cursor, f.Label+":", f.View))
	}
	if data.Error != "" {
		b.WriteString("\nerror: " + data.Error)
	}
	return strings.TrimSpace(b.String())
}

func RenderBinPanel(data BinPanelData) string {
	var b strings.Builder
	b.WriteString("recycle bin:\n")
	b.WriteString("actions: [j/k]move [r]restore [x]delete forever\n")
	if data.Empty {
		b.WriteString("\n(bin is empty)")
		return b.String()
	}
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsData) string {
	state := "off"
	if data.Notifications {
		state = "on"
	}
	permission := "granted"
	if !data.Permitted {
		permission = "denied"
	}
	return fmt.Sprintf("settings:\nactions: [t]next theme [n]toggle notifications\n\ntheme: %s\nfont: %s\nnotifications: %s\nnotifier: %s (permission %s)",
		data.Theme, data.Font, state, data.Notifier, permission)
}

func RenderBellPanel(data BellPanelData) string {
	var b strings.Builder
	b.WriteString("upcoming")
	if data.Badge != "" {
		b.WriteString(" [" + data.Badge + "]")
	}
	b.WriteString(fmt.Sprintf(" (next %s):\n", data.Window))
	if len(data.Items) == 0 {
		b.WriteString("(nothing due soon)")
		return b.String()
	}
	for _, item := range data.Items {
		swatch := "*"
		if item.Color != "" {
			swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color)).Render("*")
		}
		b.WriteString(fmt.Sprintf("%s %s [%s]\n  %s (in %s)\n", swatch, item.Text, item.Category, item.Deadline, item.In))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help: %s\n%s\n%s", strings.ToLower(data.CurrentView), strings.Join(data.Bindings, "\n"), data.HelpView)
	if data.GuideView != "" {
		out += "\n\n" + data.GuideView
	}
	return out
}

// UrgencyLabel is the status column text for a board row.
func UrgencyLabel(urgency string, done bool) string {
	if done {
		return "done"
	}
	switch urgency {
	case "overdue":
		return "OVERDUE"
	case "soon":
		return "soon"
	default:
		return ""
	}
}
