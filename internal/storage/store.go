package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("storage: not found")

const (
	KeyTasks      = "tasks"
	KeyActivities = "activities"

	DefaultNamespace = "kosei_v3"
)

const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
	DriverFile   = "file"
	DriverMemory = "memory"
)

// Drivers lists the supported storage drivers.
var Drivers = []string{DriverSQLite, DriverBolt, DriverFile, DriverMemory}

// Store is the load/save key-value collaborator. Values are opaque raw
// text; callers own the encoding.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, raw []byte) error
	Close() error
}

// Key builds the namespaced key for a collection, e.g. kosei_v3_tasks.
func Key(namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return name
	}
	return namespace + "_" + name
}

// Open returns a store for the given driver. path is a file for sqlite and
// bolt and a directory for the file driver; memory ignores it.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, path)
	case DriverBolt:
		return OpenBolt(path)
	case DriverFile:
		return NewFileStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}

// LoadJSON decodes the value stored under key into T. ErrNotFound is
// returned unwrapped when the key is absent so callers can tell "no prior
// data" apart from corrupt data.
func LoadJSON[T any](ctx context.Context, s Store, key string) (T, error) {
	var out T
	raw, err := s.Load(ctx, key)
	if err != nil {
		return out, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, ErrNotFound
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Save(ctx, key, raw)
}
