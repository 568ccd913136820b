package derive

import (
	"time"

	"github.com/sandeepkv93/kosei/internal/model"
)

type Tier string

const (
	TierNone   Tier = "none"
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	mediumThreshold = 60
	highThreshold   = 180
)

func IntensityTier(minutes int) Tier {
	switch {
	case minutes <= 0:
		return TierNone
	case minutes < mediumThreshold:
		return TierLow
	case minutes < highThreshold:
		return TierMedium
	default:
		return TierHigh
	}
}

// DailyFocusDuration sums the minutes of activities whose timestamp falls on
// date in loc's calendar. date is YYYY-MM-DD.
func DailyFocusDuration(activities []model.Activity, date string, loc *time.Location) int {
	total := 0
	for _, a := range activities {
		if localDate(a.Timestamp, loc) == date {
			total += a.DurationMinutes
		}
	}
	return total
}

// FocusByDay is DailyFocusDuration for every date at once.
func FocusByDay(activities []model.Activity, loc *time.Location) map[string]int {
	out := make(map[string]int)
	for _, a := range activities {
		out[localDate(a.Timestamp, loc)] += a.DurationMinutes
	}
	return out
}

func localDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return model.DateOf(t.In(loc))
}
