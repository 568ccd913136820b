package derive

import (
	"time"

	"github.com/sandeepkv93/kosei/internal/model"
)

type CalendarCell struct {
	Date         string
	Day          int
	InMonth      bool
	IsToday      bool
	Tasks        []model.Task
	FocusMinutes int
	Tier         Tier
}

// MonthGrid lays out whole Sunday-first weeks covering month. month may be
// any instant inside the month; its location decides the calendar.
func MonthGrid(tasks []model.Task, activities []model.Activity, month, today time.Time) []CalendarCell {
	loc := month.Location()
	first := StartOfMonth(month)
	last := first.AddDate(0, 1, -1)
	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	focus := FocusByDay(activities, loc)
	byDate := make(map[string][]model.Task)
	for _, t := range tasks {
		byDate[t.DueDate] = append(byDate[t.DueDate], t)
	}
	todayKey := model.DateOf(today.In(loc))

	cells := make([]CalendarCell, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := model.DateOf(day)
		minutes := focus[key]
		dayTasks := byDate[key]
		if dayTasks == nil {
			dayTasks = []model.Task{}
		}
		cells = append(cells, CalendarCell{
			Date:         key,
			Day:          day.Day(),
			InMonth:      day.Month() == first.Month(),
			IsToday:      key == todayKey,
			Tasks:        dayTasks,
			FocusMinutes: minutes,
			Tier:         IntensityTier(minutes),
		})
	}
	return cells
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// ShiftMonth moves delta months from the first of t's month.
func ShiftMonth(t time.Time, delta int) time.Time {
	return StartOfMonth(t).AddDate(0, delta, 0)
}
