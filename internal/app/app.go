// Package app is the context object shared by every surface: it owns the
// task store, the activity log, the focus stopwatch, the clock and the
// visible calendar month, and hands out consistent snapshots after each
// mutation.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/kosei/internal/activity"
	"github.com/sandeepkv93/kosei/internal/clock"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/stopwatch"
	"github.com/sandeepkv93/kosei/internal/storage"
	"github.com/sandeepkv93/kosei/internal/tasks"
)

// Settings are the user-tunable defaults the surfaces fall back to.
type Settings struct {
	ManualMinutes     int
	DefaultCategory   model.Category
	DefaultImportance int
}

func DefaultSettings() Settings {
	return Settings{
		ManualMinutes:     60,
		DefaultCategory:   model.CategorySchool,
		DefaultImportance: model.ImportanceDefault,
	}
}

type Options struct {
	Namespace string
	Clock     clock.Clock
	Logger    zerolog.Logger
	// IDs overrides uuid generation for both stores.
	IDs      func() string
	Settings Settings
}

// App is not safe for concurrent use. The TUI calls it from its update loop
// only; ticks arrive there as messages.
type App struct {
	tasks    *tasks.Store
	log      *activity.Log
	session  *stopwatch.Session
	clock    clock.Clock
	month    time.Time
	settings Settings
	logger   zerolog.Logger
}

func New(ctx context.Context, backend storage.Store, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if strings.TrimSpace(opts.Namespace) == "" {
		opts.Namespace = storage.DefaultNamespace
	}
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}
	if !opts.Settings.DefaultCategory.IsValid() {
		opts.Settings.DefaultCategory = model.CategorySchool
	}
	opts.Settings.DefaultImportance = model.ClampImportance(opts.Settings.DefaultImportance)

	taskOpts := []tasks.Option{tasks.WithLogger(opts.Logger.With().Str("cmp", "tasks").Logger())}
	logOpts := []activity.Option{
		activity.WithLogger(opts.Logger.With().Str("cmp", "activity").Logger()),
		activity.WithClock(opts.Clock.Now),
	}
	if opts.IDs != nil {
		taskOpts = append(taskOpts, tasks.WithIDSource(opts.IDs))
		logOpts = append(logOpts, activity.WithIDSource(opts.IDs))
	}

	return &App{
		tasks:    tasks.Load(ctx, backend, opts.Namespace, taskOpts...),
		log:      activity.Load(ctx, backend, opts.Namespace, logOpts...),
		session:  stopwatch.New(),
		clock:    opts.Clock,
		month:    derive.StartOfMonth(opts.Clock.Now()),
		settings: opts.Settings,
		logger:   opts.Logger,
	}
}

func (a *App) Settings() Settings { return a.settings }

func (a *App) Now() time.Time { return a.clock.Now() }

func (a *App) Today() string { return model.DateOf(a.clock.Now()) }

func (a *App) Tasks() []model.Task { return a.tasks.List() }

func (a *App) Activities() []model.Activity { return a.log.List() }

func (a *App) Task(id string) (model.Task, bool) { return a.tasks.Get(id) }

// TaskAt looks a task up by its 1-based position in queue order.
func (a *App) TaskAt(n int) (model.Task, bool) { return a.tasks.At(n) }

func (a *App) AddTask(ctx context.Context, name, dueDate string, importance int) (model.Task, bool) {
	return a.tasks.Add(ctx, name, dueDate, importance)
}

func (a *App) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) bool {
	return a.tasks.Update(ctx, id, patch)
}

func (a *App) ToggleTask(ctx context.Context, id string) bool {
	return a.tasks.Toggle(ctx, id)
}

func (a *App) LogActivity(ctx context.Context, description string, category model.Category, minutes int) (model.Activity, bool) {
	return a.log.Append(ctx, description, category, minutes)
}

// LogManual logs a hand-entered duration. rawMinutes is coerced leniently:
// anything unparseable counts as zero minutes.
func (a *App) LogManual(ctx context.Context, description string, category model.Category, rawMinutes string) (model.Activity, bool) {
	return a.log.Append(ctx, description, category, model.ParseMinutes(rawMinutes))
}

// Month returns the first day of the visible calendar month.
func (a *App) Month() time.Time { return a.month }

func (a *App) ShiftMonth(delta int) {
	a.month = derive.ShiftMonth(a.month, delta)
}

// ResetMonth jumps the calendar back to the current month.
func (a *App) ResetMonth() {
	a.month = derive.StartOfMonth(a.clock.Now())
}

// SetMonth shows the month containing t.
func (a *App) SetMonth(t time.Time) {
	a.month = derive.StartOfMonth(t.In(a.clock.Now().Location()))
}
