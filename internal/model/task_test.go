package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:       1760000000000,
		Text:     "Submit lab report",
		Deadline: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
		Category: "Study",
		Color:    DefaultColor,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsEmptyText(t *testing.T) {
	task := Task{
		ID:       1,
		Text:     "   ",
		Deadline: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got: %v", err)
	}

	task.Text = "ok"
	task.Deadline = time.Time{}
	if err := task.Validate(); !errors.Is(err, ErrMissingDateTime) {
		t.Fatalf("expected ErrMissingDateTime, got: %v", err)
	}

	task.Deadline = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task.ID = 0
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for zero id")
	}
}

func TestTaskUrgency(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		deadline time.Time
		want     Urgency
	}{
		{now.Add(-time.Minute), UrgencyOverdue},
		{now.Add(time.Hour), UrgencySoon},
		{now.Add(23*time.Hour + 59*time.Minute), UrgencySoon},
		{now.Add(24 * time.Hour), UrgencyLater},
		{now.Add(72 * time.Hour), UrgencyLater},
	}
	for _, tc := range cases {
		got := Task{Deadline: tc.deadline}.Urgency(now)
		if got != tc.want {
			t.Fatalf("urgency for %s = %s, want %s", tc.deadline.Sub(now), got, tc.want)
		}
	}
}

func TestTaskActiveAndFind(t *testing.T) {
	tasks := []Task{
		{ID: 1, Text: "a"},
		{ID: 2, Text: "b", Done: true},
		{ID: 3, Text: "c", Deleted: true},
	}
	if !tasks[0].Active() || tasks[1].Active() || tasks[2].Active() {
		t.Fatalf("unexpected active flags: %+v", tasks)
	}
	if got := Find(tasks, 3); got != 2 {
		t.Fatalf("find(3) = %d, want 2", got)
	}
	if got := Find(tasks, 42); got != -1 {
		t.Fatalf("find(42) = %d, want -1", got)
	}
}

func TestThemeCycle(t *testing.T) {
	if !ThemeOcean.IsValid() || Theme("theme-plaid").IsValid() {
		t.Fatal("unexpected theme validity")
	}
	if got := NextTheme(ThemeRose); got != ThemeDefault {
		t.Fatalf("expected wrap to default, got %s", got)
	}
	if got := NextTheme(ThemeDefault); got != ThemeDark {
		t.Fatalf("expected dark after default, got %s", got)
	}
	if got := NextTheme(Theme("unknown")); got != ThemeDefault {
		t.Fatalf("expected default for unknown theme, got %s", got)
	}
}
