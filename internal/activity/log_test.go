package activity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

var fixedNow = time.Date(2024, 6, 10, 14, 30, 15, 123456789, time.UTC)

func newLog(t *testing.T) (*Log, *storage.MemoryStore) {
	t.Helper()
	n := 0
	mem := storage.NewMemoryStore()
	l := Load(t.Context(), mem, storage.DefaultNamespace,
		WithIDSource(func() string { n++; return fmt.Sprintf("act-%d", n) }),
		WithClock(func() time.Time { return fixedNow }),
	)
	return l, mem
}

func TestAppendStampsAndPreservesOrder(t *testing.T) {
	l, _ := newLog(t)
	ctx := t.Context()

	first, ok := l.Append(ctx, "Read chapter 3", model.CategorySchool, 45)
	require.True(t, ok)
	_, ok = l.Append(ctx, "Deep work", model.CategoryWork, 3)
	require.True(t, ok)

	assert.Equal(t, "act-1", first.ID)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), first.Timestamp)

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Read chapter 3", list[0].Description)
	assert.Equal(t, "Deep work", list[1].Description)
}

func TestAppendIgnoresInvalidInput(t *testing.T) {
	l, _ := newLog(t)
	ctx := t.Context()

	tests := []struct {
		name     string
		desc     string
		category model.Category
	}{
		{name: "blank description", desc: "  ", category: model.CategoryWork},
		{name: "unknown category", desc: "Gym", category: model.Category("fitness")},
		{name: "empty category", desc: "Gym", category: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := l.Append(ctx, tt.desc, tt.category, 10)
			assert.False(t, ok)
		})
	}
	assert.Equal(t, 0, l.Len())
}

func TestAppendClampsNegativeDuration(t *testing.T) {
	l, _ := newLog(t)
	a, ok := l.Append(t.Context(), "Oops", model.CategoryOther, -15)
	require.True(t, ok)
	assert.Equal(t, 0, a.DurationMinutes)
}

func TestAppendPersistsFieldNames(t *testing.T) {
	l, mem := newLog(t)
	ctx := t.Context()
	l.Append(ctx, "Read chapter 3", model.CategorySchool, 45)

	raw, err := mem.Load(ctx, "kosei_v3_activities")
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"durationMinutes":45`)
	assert.Contains(t, s, `"category":"school"`)
	assert.Contains(t, s, `"timestamp":"2024-06-10T14:30:15.123Z"`)

	reloaded := Load(ctx, mem, storage.DefaultNamespace)
	assert.Equal(t, l.List(), reloaded.List())
}

func TestLoadAcceptsBrowserTimestamps(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx := t.Context()
	raw := `[{"id":"a","description":"Essay","category":"school","durationMinutes":30,"timestamp":"2024-06-09T22:05:00.000Z"}]`
	require.NoError(t, mem.Save(ctx, "kosei_v3_activities", []byte(raw)))

	l := Load(ctx, mem, storage.DefaultNamespace)
	require.Equal(t, 1, l.Len())
	got := l.List()[0]
	assert.Equal(t, time.Date(2024, 6, 9, 22, 5, 0, 0, time.UTC), got.Timestamp.UTC())
}

func TestLoadCorruptStartsEmpty(t *testing.T) {
	mem := storage.NewMemoryStore()
	ctx := t.Context()
	require.NoError(t, mem.Save(ctx, "kosei_v3_activities", []byte("not json")))
	assert.Equal(t, 0, Load(ctx, mem, storage.DefaultNamespace).Len())
}

func TestPersistedTimestampsKeepMilliseconds(t *testing.T) {
	n := 0
	mem := storage.NewMemoryStore()
	l := Load(t.Context(), mem, storage.DefaultNamespace,
		WithIDSource(func() string { n++; return fmt.Sprintf("act-%d", n) }),
		WithClock(func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 120_000_000, time.UTC) }),
	)
	_, ok := l.Append(t.Context(), "Read chapter 3", model.CategorySchool, 45)
	require.True(t, ok)

	raw, err := mem.Load(t.Context(), storage.Key(storage.DefaultNamespace, storage.KeyActivities))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"timestamp":"2024-06-10T09:00:00.120Z"`)
}
