package timecalc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the layout of every stored date key.
const DateLayout = "2006-01-02"

// ErrInvalidTime is returned when an input cannot be read as "HH:MM".
var ErrInvalidTime = errors.New("invalid time format, expected HH:MM")

// ToMinutes converts an hour/minute pair into minutes since midnight.
// No bounds checking is done.
func ToMinutes(hour, minute int) int {
	return hour*60 + minute
}

// ToHourMinute splits a minute total into hours and minutes.
func ToHourMinute(total int) (int, int) {
	return total / 60, total % 60
}

// FormatSignedDelta formats a signed minute delta as "+HH:MM" or "-HH:MM".
func FormatSignedDelta(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	h, m := ToHourMinute(minutes)
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// FormatHHMM formats a minute total as HH:MM. Negative totals get a leading "-".
func FormatHHMM(minutes int) string {
	if minutes < 0 {
		return "-" + FormatHHMM(-minutes)
	}
	h, m := ToHourMinute(minutes)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// FormatClock formats a raw hour/minute pair as HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseHHMM reads two integers separated by ':'. Values are not range checked.
func ParseHHMM(s string) (int, int, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h, m, nil
}

// ValidDate reports whether s looks like YYYY-MM-DD: ten characters with
// dashes at index 4 and 7. The calendar date itself is not checked.
func ValidDate(s string) bool {
	return len(s) == 10 && s[4] == '-' && s[7] == '-'
}

// DateKey returns the YYYY-MM-DD key of t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ISOWeekLabel returns a label like "2026-W09" for a YYYY-MM-DD date key.
// Keys that do not parse are returned unchanged.
func ISOWeekLabel(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthLabel returns the YYYY-MM prefix of a date key.
func MonthLabel(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// WeekRange returns the Monday and Sunday date keys of the ISO week containing t.
func WeekRange(t time.Time) (string, string) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	sunday := monday.AddDate(0, 0, 6)
	return DateKey(monday), DateKey(sunday)
}
