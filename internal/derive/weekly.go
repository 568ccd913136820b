package derive

import (
	"time"

	"github.com/sandeepkv93/kosei/internal/model"
)

const WeekLength = 7

type CategoryTotal struct {
	Minutes    int
	Activities []model.Activity
}

type DayBucket struct {
	Date       string
	Label      string
	ByCategory map[model.Category]CategoryTotal
}

func (b DayBucket) Total() int {
	total := 0
	for _, c := range model.Categories {
		total += b.ByCategory[c].Minutes
	}
	return total
}

// WeeklySeries buckets activities into the seven days ending on today's
// date, oldest first. Every bucket carries all three categories; detail
// lists keep log order.
func WeeklySeries(activities []model.Activity, today time.Time) []DayBucket {
	loc := today.Location()
	start := model.StartOfDay(today)
	buckets := make([]DayBucket, 0, WeekLength)
	index := make(map[string]int, WeekLength)
	for i := WeekLength - 1; i >= 0; i-- {
		day := start.AddDate(0, 0, -i)
		b := DayBucket{
			Date:       model.DateOf(day),
			Label:      day.Format("Mon"),
			ByCategory: make(map[model.Category]CategoryTotal, len(model.Categories)),
		}
		for _, c := range model.Categories {
			b.ByCategory[c] = CategoryTotal{Activities: []model.Activity{}}
		}
		index[b.Date] = len(buckets)
		buckets = append(buckets, b)
	}

	for _, a := range activities {
		i, ok := index[localDate(a.Timestamp, loc)]
		if !ok {
			continue
		}
		ct, ok := buckets[i].ByCategory[a.Category]
		if !ok {
			continue
		}
		ct.Minutes += a.DurationMinutes
		ct.Activities = append(ct.Activities, a)
		buckets[i].ByCategory[a.Category] = ct
	}
	return buckets
}
