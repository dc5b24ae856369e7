package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Theme         string
	Header        string
	Tabs          []string
	ActiveTab     int
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Footer        string
}

type palette struct {
	accent lipgloss.Color
	muted  lipgloss.Color
	ok     lipgloss.Color
	warn   lipgloss.Color
	err    lipgloss.Color
	border lipgloss.Color
}

var palettes = map[string]palette{
	"theme-default":  {accent: "12", muted: "8", ok: "10", warn: "11", err: "9", border: "12"},
	"theme-dark":     {accent: "15", muted: "240", ok: "114", warn: "179", err: "167", border: "238"},
	"theme-pastel":   {accent: "183", muted: "146", ok: "151", warn: "223", err: "217", border: "189"},
	"theme-contrast": {accent: "15", muted: "250", ok: "46", warn: "226", err: "196", border: "15"},
	"theme-ocean":    {accent: "39", muted: "67", ok: "43", warn: "229", err: "203", border: "31"},
	"theme-forest":   {accent: "34", muted: "65", ok: "71", warn: "178", err: "160", border: "28"},
	"theme-sunset":   {accent: "208", muted: "131", ok: "214", warn: "220", err: "197", border: "202"},
	"theme-neon":     {accent: "201", muted: "97", ok: "51", warn: "226", err: "199", border: "93"},
	"theme-earth":    {accent: "137", muted: "101", ok: "107", warn: "179", err: "131", border: "94"},
	"theme-rose":     {accent: "211", muted: "181", ok: "150", warn: "222", err: "168", border: "175"},
}

func paletteFor(theme string) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["theme-default"]
}

func RenderApp(data AppData) string {
	p := paletteFor(data.Theme)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	panelStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	footerStyle := lipgloss.NewStyle().Foreground(p.muted)

	left := panelStyle.Width(72).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := panelStyle.Width(44).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	lines := []string{headerStyle.Render(data.Header)}
	if len(data.Tabs) > 0 {
		lines = append(lines, renderTabs(p, data.Tabs, data.ActiveTab))
	}
	lines = append(lines, row)
	if data.StatusLine != "" {
		status := lipgloss.NewStyle().Foreground(p.ok).Render(data.StatusLine)
		if data.StatusIsError {
			status = lipgloss.NewStyle().Foreground(p.err).Render(data.StatusLine)
		}
		lines = append(lines, status)
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.BorderForeground(p.warn).Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func renderTabs(p palette, tabs []string, active int) string {
	out := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(p.muted)
		if i == active {
			style = style.Bold(true).Foreground(p.accent).Underline(true)
		}
		out = append(out, style.Render(tab))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// RenderMarkdown renders md for a pane of the given width; on failure md is returned as-is.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
