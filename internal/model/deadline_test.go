package model

import (
	"errors"
	"testing"
	"time"
)

func TestComposeDeadlineMeridiemBoundaries(t *testing.T) {
	cases := []struct {
		clock    string
		meridiem string
		want     string
	}{
		{"12:00", "AM", "2026-02-09 00:00"},
		{"12:30", "AM", "2026-02-09 00:30"},
		{"1:05", "AM", "2026-02-09 01:05"},
		{"11:59", "AM", "2026-02-09 11:59"},
		{"12:00", "PM", "2026-02-09 12:00"},
		{"12:45", "pm", "2026-02-09 12:45"},
		{"01:00", "PM", "2026-02-09 13:00"},
		{"11:59", "PM", "2026-02-09 23:59"},
		{"7:15", "", "2026-02-09 07:15"},
	}
	for _, tc := range cases {
		got, err := ComposeDeadline("2026-02-09", tc.clock, tc.meridiem, time.UTC)
		if err != nil {
			t.Fatalf("compose %s %s failed: %v", tc.clock, tc.meridiem, err)
		}
		if got.Format("2006-01-02 15:04") != tc.want {
			t.Fatalf("compose %s %s = %s, want %s", tc.clock, tc.meridiem, got.Format(time.RFC3339), tc.want)
		}
	}
}

func TestComposeDeadlineUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	got, err := ComposeDeadline("2026-03-01", "9:00", "AM", loc)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 1, 4, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant: %s", got.UTC().Format(time.RFC3339))
	}
}

func TestComposeDeadlineMissingFields(t *testing.T) {
	if _, err := ComposeDeadline("", "9:00", "AM", time.UTC); !errors.Is(err, ErrMissingDateTime) {
		t.Fatalf("expected ErrMissingDateTime for empty date, got %v", err)
	}
	if _, err := ComposeDeadline("2026-02-09", "  ", "AM", time.UTC); !errors.Is(err, ErrMissingDateTime) {
		t.Fatalf("expected ErrMissingDateTime for empty time, got %v", err)
	}
}

func TestComposeDeadlineInvalidCalendarValues(t *testing.T) {
	cases := []struct {
		date, clock, meridiem string
	}{
		{"2026-02-30", "9:00", "AM"},
		{"2026-13-01", "9:00", "AM"},
		{"09/02/2026", "9:00", "AM"},
		{"2026-02-09", "0:30", "AM"},
		{"2026-02-09", "13:00", "PM"},
		{"2026-02-09", "9:60", "AM"},
		{"2026-02-09", "9:5", "AM"},
		{"2026-02-09", "0930", "AM"},
		{"2026-02-09", "9:00", "XM"},
	}
	for _, tc := range cases {
		_, err := ComposeDeadline(tc.date, tc.clock, tc.meridiem, time.UTC)
		if !errors.Is(err, ErrInvalidDateTime) {
			t.Fatalf("compose %+v: expected ErrInvalidDateTime, got %v", tc, err)
		}
	}
}

func TestTo24Hour(t *testing.T) {
	for hour := 1; hour <= 12; hour++ {
		am := To24Hour(hour, MeridiemAM)
		pm := To24Hour(hour, MeridiemPM)
		if hour == 12 {
			if am != 0 || pm != 12 {
				t.Fatalf("12 o'clock: am=%d pm=%d", am, pm)
			}
			continue
		}
		if am != hour || pm != hour+12 {
			t.Fatalf("hour %d: am=%d pm=%d", hour, am, pm)
		}
	}
}
