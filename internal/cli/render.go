package cli

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/views"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func renderTasks(tasks []model.Task, now time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			t.Category,
			notify.FormatDeadline(t.Deadline),
			views.UrgencyLabel(string(t.Urgency(now)), t.Done),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TASK", "CATEGORY", "DEADLINE", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
