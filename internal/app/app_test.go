package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kosei/internal/clock"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/stopwatch"
	"github.com/sandeepkv93/kosei/internal/storage"
)

var start = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newApp(t *testing.T) (*App, *clock.Manual, *storage.MemoryStore) {
	t.Helper()
	n := 0
	mem := storage.NewMemoryStore()
	clk := clock.NewManual(start)
	a := New(t.Context(), mem, Options{
		Clock: clk,
		IDs:   func() string { n++; return fmt.Sprintf("id-%d", n) },
	})
	return a, clk, mem
}

func taskNames(list []model.Task) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Name)
	}
	return out
}

func TestScenarioAddOrdersByDueDate(t *testing.T) {
	a, _, _ := newApp(t)
	ctx := t.Context()

	_, ok := a.AddTask(ctx, "Write report", "2024-06-10", 2)
	require.True(t, ok)
	_, ok = a.AddTask(ctx, "Email client", "2024-06-09", 1)
	require.True(t, ok)

	assert.Equal(t, []string{"Email client", "Write report"}, taskNames(a.Tasks()))

	snap := a.Snapshot()
	require.Len(t, snap.Groups, 2)
	assert.Equal(t, "2024-06-09", snap.Groups[0].Date)
}

func TestScenarioLoggedActivityShowsInTodayFocus(t *testing.T) {
	a, _, _ := newApp(t)

	_, ok := a.LogActivity(t.Context(), "Read chapter 3", model.CategorySchool, 45)
	require.True(t, ok)

	snap := a.Snapshot()
	assert.Equal(t, 45, snap.TodayMinutes)
	assert.Equal(t, derive.TierLow, snap.TodayTier)
	assert.Equal(t, 45, derive.DailyFocusDuration(snap.Activities, snap.Today, time.UTC))
	assert.Equal(t, 45, snap.Week[6].ByCategory[model.CategorySchool].Minutes)
}

func TestScenarioStopwatchCommit(t *testing.T) {
	a, clk, _ := newApp(t)
	ctx := t.Context()

	require.True(t, a.StartTimer())
	for i := 0; i < 125; i++ {
		clk.Advance(time.Second)
		a.Tick()
	}
	require.True(t, a.FinishTimer())
	assert.Equal(t, 3, a.Timer().PendingMinutes)

	act, ok := a.CommitTimer(ctx, "Deep work", model.CategoryWork)
	require.True(t, ok)

	acts := a.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, 3, acts[0].DurationMinutes)
	assert.Equal(t, model.CategoryWork, acts[0].Category)
	assert.Equal(t, act, acts[0])
	assert.Equal(t, start.Add(125*time.Second), acts[0].Timestamp, "stamped at commit time")
	assert.Equal(t, stopwatch.StateIdle, a.Timer().State)
}

func TestScenarioUpdateUnknownIDLeavesTasks(t *testing.T) {
	a, _, _ := newApp(t)
	ctx := t.Context()
	a.AddTask(ctx, "Essay", "2024-06-10", 3)
	before := a.Tasks()

	name := "x"
	assert.False(t, a.UpdateTask(ctx, "unknown", model.TaskPatch{Name: &name}))
	assert.Equal(t, before, a.Tasks())
}

func TestCommitWithBlankDescriptionStaysPending(t *testing.T) {
	a, _, _ := newApp(t)
	ctx := t.Context()
	a.StartTimer()
	a.Tick()
	a.FinishTimer()

	_, ok := a.CommitTimer(ctx, "   ", model.CategoryWork)
	assert.False(t, ok)
	assert.Equal(t, stopwatch.StatePending, a.Timer().State)
	assert.Empty(t, a.Activities())

	require.True(t, a.DiscardTimer())
	assert.Equal(t, stopwatch.StateIdle, a.Timer().State)
	assert.Empty(t, a.Activities())
}

func TestResetTimerLogsNothing(t *testing.T) {
	a, _, _ := newApp(t)
	a.StartTimer()
	for i := 0; i < 30; i++ {
		a.Tick()
	}
	a.TogglePause()
	require.True(t, a.ResetTimer())
	assert.Empty(t, a.Activities())
	assert.Equal(t, 0, a.Timer().Elapsed)
}

func TestLogManualIsLenient(t *testing.T) {
	a, _, _ := newApp(t)
	ctx := t.Context()

	tests := []struct {
		raw  string
		want int
	}{
		{raw: "60", want: 60},
		{raw: "25min", want: 25},
		{raw: "abc", want: 0},
		{raw: "-10", want: 0},
		{raw: "", want: 0},
	}
	for _, tt := range tests {
		act, ok := a.LogManual(ctx, "Manual "+tt.raw, model.CategoryOther, tt.raw)
		require.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, act.DurationMinutes, tt.raw)
	}
}

func TestSnapshotReflectsEveryMutation(t *testing.T) {
	a, _, _ := newApp(t)
	ctx := t.Context()

	task, _ := a.AddTask(ctx, "Essay", "2024-06-10", 3)
	a.ToggleTask(ctx, task.ID)
	a.LogActivity(ctx, "Lab", model.CategorySchool, 200)

	snap := a.Snapshot()
	require.Len(t, snap.Tasks, 1)
	assert.True(t, snap.Tasks[0].Completed)
	assert.True(t, snap.Groups[0].Tasks[0].Completed)

	var today derive.CalendarCell
	for _, c := range snap.Calendar {
		if c.IsToday {
			today = c
		}
	}
	assert.Equal(t, "2024-06-10", today.Date)
	assert.Equal(t, derive.TierHigh, today.Tier)
	require.Len(t, today.Tasks, 1)
	assert.True(t, today.Tasks[0].Completed)
}

func TestMonthNavigation(t *testing.T) {
	a, _, _ := newApp(t)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), a.Month())

	a.ShiftMonth(1)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), a.Month())
	a.ShiftMonth(-3)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), a.Month())
	assert.Equal(t, a.Month(), a.Snapshot().Month)

	a.ResetMonth()
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), a.Month())

	a.SetMonth(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), a.Month())
}

func TestStateSurvivesReload(t *testing.T) {
	a, clk, mem := newApp(t)
	ctx := t.Context()
	a.AddTask(ctx, "Essay", "2024-06-10", 3)
	a.LogActivity(ctx, "Lab", model.CategorySchool, 20)

	b := New(ctx, mem, Options{Clock: clk})
	assert.Equal(t, a.Tasks(), b.Tasks())
	assert.Equal(t, a.Activities(), b.Activities())
}

func TestDefaultSettings(t *testing.T) {
	a, _, _ := newApp(t)
	s := a.Settings()
	assert.Equal(t, 60, s.ManualMinutes)
	assert.Equal(t, model.CategorySchool, s.DefaultCategory)
	assert.Equal(t, 3, s.DefaultImportance)
}
