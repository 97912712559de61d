package utils

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical calendar-day representation used for the
// booking date and the capacity ledger key. Days are always UTC.
const DayKeyLayout = "2006-01-02"

// DayKey truncates t to its UTC calendar day key. Two timestamps that differ
// only in time of day map to the same key.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// ParseDayKey accepts either a bare day key or an RFC 3339 timestamp and
// returns the UTC day key. Clients send both shapes.
func ParseDayKey(value string) (string, error) {
	if t, err := time.Parse(DayKeyLayout, value); err == nil {
		return DayKey(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return DayKey(t), nil
	}
	return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD or RFC 3339", value)
}

// DayKeyBefore reports whether day a falls before day b. Day keys are
// zero-padded, so lexicographic order is chronological order.
func DayKeyBefore(a, b string) bool {
	return a < b
}

// TodayKey is the current UTC calendar day.
func TodayKey() string {
	return DayKey(time.Now())
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func FormatTimeISO(t time.Time) string {
	return t.Format(time.RFC3339)
}

func ParseTimeISO(timeStr string) (time.Time, error) {
	return time.Parse(time.RFC3339, timeStr)
}
