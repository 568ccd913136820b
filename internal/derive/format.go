package derive

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/kosei/internal/model"
)

const HeaderClockLayout = "2006.01.02 | 15:04:05"

// WeekdayLabels are the Sunday-first column headings of the month grid.
var WeekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatClock renders elapsed seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatMinutes renders "2h 5m", or "45m" under an hour.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if h := minutes / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// DateHeading renders a task-group heading like "June 10, 2024 · Monday".
// Unparseable dates are returned as is.
func DateHeading(date string) string {
	t, err := model.ParseDate(date, time.UTC)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006 · Monday")
}

// DayTitle renders the weekly breakdown heading, e.g. "Monday, Jun 10th".
func DayTitle(date string) string {
	t, err := model.ParseDate(date, time.UTC)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %s %d%s", t.Weekday(), t.Format("Jan"), t.Day(), ordinalSuffix(t.Day()))
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func MonthTitle(t time.Time) string {
	return t.Format("January 2006")
}

func HeaderClock(t time.Time) string {
	return t.Format(HeaderClockLayout)
}
