package app

import (
	"context"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/stopwatch"
)

type TimerView struct {
	State          stopwatch.State
	Elapsed        int
	PendingMinutes int
}

func (a *App) Timer() TimerView {
	return TimerView{
		State:          a.session.State(),
		Elapsed:        a.session.Elapsed(),
		PendingMinutes: a.session.PendingMinutes(),
	}
}

// Tick is called once per clock tick and advances a running stopwatch.
func (a *App) Tick() bool { return a.session.Tick() }

func (a *App) StartTimer() bool { return a.session.Start() }

func (a *App) TogglePause() bool { return a.session.TogglePause() }

func (a *App) ResetTimer() bool { return a.session.Reset() }

func (a *App) FinishTimer() bool { return a.session.Finish() }

func (a *App) DiscardTimer() bool { return a.session.Discard() }

// CommitTimer logs the pending session. A blank description or unknown
// category keeps the session pending.
func (a *App) CommitTimer(ctx context.Context, description string, category model.Category) (model.Activity, bool) {
	var logged model.Activity
	ok := a.session.Commit(func(minutes int) bool {
		act, ok := a.log.Append(ctx, description, category, minutes)
		logged = act
		return ok
	})
	if ok {
		a.logger.Debug().Str("id", logged.ID).Int("minutes", logged.DurationMinutes).Msg("focus session committed")
	}
	return logged, ok
}
