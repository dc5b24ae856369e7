package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)

const DateLayout = "2006-01-02"

func ParseMeridiem(raw string) (Meridiem, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "AM":
		return MeridiemAM, nil
	case "PM":
		return MeridiemPM, nil
	default:
		return "", fmt.Errorf("%w: meridiem %q", ErrInvalidDateTime, raw)
	}
}

// To24Hour converts an hour on the 12-hour clock to 0-23.
// 12 AM is midnight and 12 PM is noon.
func To24Hour(hour int, m Meridiem) int {
	switch {
	case m == MeridiemPM && hour < 12:
		return hour + 12
	case m == MeridiemAM && hour == 12:
		return 0
	default:
		return hour
	}
}

// ComposeDeadline builds an absolute deadline from a YYYY-MM-DD date, an h:mm clock
// reading on the 12-hour clock and an AM/PM marker, interpreted in loc.
func ComposeDeadline(date, clock, meridiem string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, ErrMissingDateTime
	}
	if loc == nil {
		loc = time.Local
	}

	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidDateTime, date)
	}
	hour, minute, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseMeridiem(meridiem)
	if err != nil {
		return time.Time{}, err
	}

	y, mo, d := day.Date()
	return time.Date(y, mo, d, To24Hour(hour, m), minute, 0, 0, loc), nil
}

func parseClock(clock string) (int, int, error) {
	hh, mm, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: time %q", ErrInvalidDateTime, clock)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidDateTime, hh)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidDateTime, mm)
	}
	return hour, minute, nil
}
