package app

import (
	"time"

	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
)

// Snapshot is everything a surface renders, derived from one consistent
// read of the stores.
type Snapshot struct {
	Now          time.Time
	Today        string
	Tasks        []model.Task
	Activities   []model.Activity
	Groups       []derive.TaskGroup
	TodayMinutes int
	TodayTier    derive.Tier
	Month        time.Time
	Calendar     []derive.CalendarCell
	Week         []derive.DayBucket
	Timer        TimerView
	Settings     Settings
}

func (a *App) Snapshot() Snapshot {
	now := a.clock.Now()
	taskList := a.tasks.List()
	acts := a.log.List()
	today := model.DateOf(now)
	todayMinutes := derive.DailyFocusDuration(acts, today, now.Location())

	return Snapshot{
		Now:          now,
		Today:        today,
		Tasks:        taskList,
		Activities:   acts,
		Groups:       derive.GroupTasksByDueDate(taskList),
		TodayMinutes: todayMinutes,
		TodayTier:    derive.IntensityTier(todayMinutes),
		Month:        a.month,
		Calendar:     derive.MonthGrid(taskList, acts, a.month, now),
		Week:         derive.WeeklySeries(acts, now),
		Timer:        a.Timer(),
		Settings:     a.settings,
	}
}
