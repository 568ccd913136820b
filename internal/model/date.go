package model

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date encoding used for due dates and
// grouping keys. Lexicographic order on it equals chronological order.
const DateLayout = "2006-01-02"

func IsISODate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// ResolveDate accepts an ISO date or one of the relative words "today",
// "tomorrow" and "yesterday", relative to now.
func ResolveDate(raw string, now time.Time) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return DateOf(now), true
	case "tomorrow":
		return DateOf(now.AddDate(0, 0, 1)), true
	case "yesterday":
		return DateOf(now.AddDate(0, 0, -1)), true
	}
	v := strings.TrimSpace(raw)
	if !IsISODate(v) {
		return "", false
	}
	return v, true
}
