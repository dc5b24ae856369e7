package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultCategory = "Other"
	DefaultColor    = "#FFEB3B"

	// SoonWindow is how close a deadline must be for a task to count as "soon".
	SoonWindow = 24 * time.Hour
)

var (
	ErrEmptyText       = errors.New("model: task text is required")
	ErrMissingDateTime = errors.New("model: task date and time are required")
	ErrInvalidDateTime = errors.New("model: invalid task date/time")
	ErrDeadlineInPast  = errors.New("model: deadline must be in the future")
)

type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencySoon    Urgency = "soon"
	UrgencyLater   Urgency = "later"
)

type Task struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	Deadline time.Time `json:"deadline"`
	Category string    `json:"category"`
	Color    string    `json:"color"`
	Done     bool      `json:"done"`
	Deleted  bool      `json:"deleted"`
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("model: invalid task id %d", t.ID)
	}
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if t.Deadline.IsZero() {
		return ErrMissingDateTime
	}
	return nil
}

// Active reports whether the task is visible on the board and eligible for alerts.
func (t Task) Active() bool {
	return !t.Deleted && !t.Done
}

func (t Task) Urgency(now time.Time) Urgency {
	until := t.Deadline.Sub(now)
	switch {
	case until < 0:
		return UrgencyOverdue
	case until < SoonWindow:
		return UrgencySoon
	default:
		return UrgencyLater
	}
}

// Find returns the index of the task with the given id, or -1.
func Find(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
