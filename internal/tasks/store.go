// Package tasks owns the task list. Every add or update re-sorts the list by
// due date and persists it in full before returning.
package tasks

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

// Store is not safe for concurrent use; the UI drives it from a single
// goroutine.
type Store struct {
	backend storage.Store
	key     string
	newID   func() string
	log     zerolog.Logger
	tasks   []model.Task
}

type Option func(*Store)

func WithIDSource(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Load rehydrates the store from backend under <namespace>_tasks. Absent or
// unreadable data yields an empty list.
func Load(ctx context.Context, backend storage.Store, namespace string, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     storage.Key(namespace, storage.KeyTasks),
		newID:   uuid.NewString,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := storage.LoadJSON[[]model.Task](ctx, backend, s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		loaded = nil
	case err != nil:
		s.log.Warn().Err(err).Str("key", s.key).Msg("stored tasks unreadable, starting empty")
		loaded = nil
	}
	for _, t := range loaded {
		if err := t.Validate(); err != nil {
			s.log.Warn().Err(err).Str("id", t.ID).Msg("stored task failed validation")
		}
	}
	s.tasks = loaded
	sortByDueDate(s.tasks)
	return s
}

// List returns a copy of the tasks in store order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// At returns the task at 1-based position n in store order.
func (s *Store) At(n int) (model.Task, bool) {
	if n < 1 || n > len(s.tasks) {
		return model.Task{}, false
	}
	return s.tasks[n-1], true
}

// Add inserts a new incomplete task. It is a no-op when name is blank or
// dueDate is not YYYY-MM-DD. Importance is clamped to [1,5].
func (s *Store) Add(ctx context.Context, name, dueDate string, importance int) (model.Task, bool) {
	name = strings.TrimSpace(name)
	dueDate = strings.TrimSpace(dueDate)
	if name == "" || !model.IsISODate(dueDate) {
		return model.Task{}, false
	}
	t := model.Task{
		ID:         s.newID(),
		Name:       name,
		DueDate:    dueDate,
		Importance: model.ClampImportance(importance),
	}
	s.tasks = append(s.tasks, t)
	sortByDueDate(s.tasks)
	s.log.Debug().Str("id", t.ID).Str("due", t.DueDate).Msg("task added")
	s.persist(ctx)
	return t, true
}

// Update merges patch into the task with id. Unknown ids, empty patches, a
// blank name or a malformed due date leave the list untouched.
func (s *Store) Update(ctx context.Context, id string, patch model.TaskPatch) bool {
	idx := s.indexOf(id)
	if idx < 0 || patch.IsEmpty() {
		return false
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return false
		}
		patch.Name = &name
	}
	if patch.DueDate != nil {
		due := strings.TrimSpace(*patch.DueDate)
		if !model.IsISODate(due) {
			return false
		}
		patch.DueDate = &due
	}
	s.tasks[idx] = patch.Apply(s.tasks[idx])
	sortByDueDate(s.tasks)
	s.log.Debug().Str("id", id).Msg("task updated")
	s.persist(ctx)
	return true
}

// Toggle flips completed. Order is untouched since the due date is unchanged.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.log.Debug().Str("id", id).Bool("completed", s.tasks[idx].Completed).Msg("task toggled")
	s.persist(ctx)
	return true
}

func (s *Store) indexOf(id string) int {
	if strings.TrimSpace(id) == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) {
	if s.backend == nil {
		return
	}
	list := s.tasks
	if list == nil {
		list = []model.Task{}
	}
	if err := storage.SaveJSON(ctx, s.backend, s.key, list); err != nil {
		s.log.Warn().Err(err).Str("key", s.key).Msg("persist tasks failed")
	}
}

func sortByDueDate(list []model.Task) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DueDate < list[j].DueDate
	})
}
