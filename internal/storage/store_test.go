package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	out := map[string]Store{}
	for _, driver := range Drivers {
		path := filepath.Join(dir, driver+".db")
		if driver == DriverFile {
			path = filepath.Join(dir, "files")
		}
		s, err := Open(t.Context(), driver, path)
		if err != nil {
			t.Fatalf("open %s: %v", driver, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		out[driver] = s
	}
	return out
}

func TestStoresLoadMissingKey(t *testing.T) {
	for driver, s := range openAll(t) {
		_, err := s.Load(t.Context(), "kosei_v3_tasks")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", driver, err)
		}
	}
}

func TestStoresSaveOverwrites(t *testing.T) {
	for driver, s := range openAll(t) {
		ctx := t.Context()
		if err := s.Save(ctx, "k", []byte("one")); err != nil {
			t.Fatalf("%s: save: %v", driver, err)
		}
		if err := s.Save(ctx, "k", []byte("two")); err != nil {
			t.Fatalf("%s: overwrite: %v", driver, err)
		}
		got, err := s.Load(ctx, "k")
		if err != nil {
			t.Fatalf("%s: load: %v", driver, err)
		}
		if string(got) != "two" {
			t.Fatalf("%s: expected latest value, got %q", driver, got)
		}
	}
}

func TestJSONHelpers(t *testing.T) {
	s := NewMemoryStore()
	ctx := t.Context()
	key := Key(DefaultNamespace, KeyTasks)
	if key != "kosei_v3_tasks" {
		t.Fatalf("unexpected key: %q", key)
	}

	if _, err := LoadJSON[[]record](ctx, s, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
	in := []record{{ID: "a", Name: "Essay"}}
	if err := SaveJSON(ctx, s, key, in); err != nil {
		t.Fatalf("save json: %v", err)
	}
	out, err := LoadJSON[[]record](ctx, s, key)
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Fatalf("unexpected decoded value: %+v", out)
	}

	if err := s.Save(ctx, key, []byte("{not json")); err != nil {
		t.Fatalf("save corrupt: %v", err)
	}
	if _, err := LoadJSON[[]record](ctx, s, key); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestKeyWithoutNamespace(t *testing.T) {
	if got := Key("  ", KeyActivities); got != "activities" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(t.Context(), "redis", ""); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestFileStoreLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := s.Save(t.Context(), "kosei_v3_activities", []byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "kosei_v3_activities.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "kosei_v3_activities.json")); err != nil {
		t.Fatalf("expected value file: %v", err)
	}
}

func TestSQLiteUpdatedAt(t *testing.T) {
	s, err := OpenSQLite(t.Context(), filepath.Join(t.TempDir(), "kosei.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()
	fixed := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	if err := s.Save(t.Context(), "k", []byte("v")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.UpdatedAt(t.Context(), "k")
	if err != nil {
		t.Fatalf("updated at: %v", err)
	}
	if !got.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, got)
	}
	if _, err := s.UpdatedAt(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
