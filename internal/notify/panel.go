package notify

import (
	"sort"
	"strconv"
	"time"

	"github.com/sandeepkv93/taskwall/internal/model"
)

const DefaultUpcomingWindow = 24 * time.Hour

// Upcoming returns active tasks due within (0, window] of now, soonest first.
func Upcoming(tasks []model.Task, now time.Time, window time.Duration) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if !t.Active() {
			continue
		}
		until := t.Deadline.Sub(now)
		if until > 0 && until <= window {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Deadline.Before(out[j].Deadline)
	})
	return out
}

// Badge is the bell counter text; empty hides the badge.
func Badge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 9:
		return "9+"
	default:
		return strconv.Itoa(n)
	}
}
