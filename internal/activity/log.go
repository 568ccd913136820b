// Package activity owns the append-only log of focused time.
package activity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

// Log keeps activities in insertion order. It is never re-sorted.
type Log struct {
	backend    storage.Store
	key        string
	newID      func() string
	now        func() time.Time
	log        zerolog.Logger
	activities []model.Activity
}

type Option func(*Log)

func WithIDSource(fn func() string) Option {
	return func(l *Log) {
		if fn != nil {
			l.newID = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		if now != nil {
			l.now = now
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(l *Log) { l.log = logger }
}

func Load(ctx context.Context, backend storage.Store, namespace string, opts ...Option) *Log {
	l := &Log{
		backend: backend,
		key:     storage.Key(namespace, storage.KeyActivities),
		newID:   uuid.NewString,
		now:     time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	loaded, err := storage.LoadJSON[[]model.Activity](ctx, backend, l.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		loaded = nil
	case err != nil:
		l.log.Warn().Err(err).Str("key", l.key).Msg("stored activities unreadable, starting empty")
		loaded = nil
	}
	for _, a := range loaded {
		if err := a.Validate(); err != nil {
			l.log.Warn().Err(err).Str("id", a.ID).Msg("stored activity failed validation")
		}
	}
	l.activities = loaded
	return l
}

func (l *Log) List() []model.Activity {
	out := make([]model.Activity, len(l.activities))
	copy(out, l.activities)
	return out
}

func (l *Log) Len() int { return len(l.activities) }

// Append records an activity stamped with the current time. Blank
// descriptions and categories outside the closed set are ignored; negative
// durations are stored as zero.
func (l *Log) Append(ctx context.Context, description string, category model.Category, minutes int) (model.Activity, bool) {
	description = strings.TrimSpace(description)
	if description == "" || !category.IsValid() {
		return model.Activity{}, false
	}
	a := model.Activity{
		ID:              l.newID(),
		Description:     description,
		Category:        category,
		DurationMinutes: model.ClampMinutes(minutes),
		Timestamp:       l.now().UTC().Truncate(time.Millisecond),
	}
	l.activities = append(l.activities, a)
	l.log.Debug().Str("id", a.ID).Str("category", string(a.Category)).Int("minutes", a.DurationMinutes).Msg("activity logged")
	l.persist(ctx)
	return a, true
}

func (l *Log) persist(ctx context.Context) {
	if l.backend == nil {
		return
	}
	list := l.activities
	if list == nil {
		list = []model.Activity{}
	}
	if err := storage.SaveJSON(ctx, l.backend, l.key, list); err != nil {
		l.log.Warn().Err(err).Str("key", l.key).Msg("persist activities failed")
	}
}
