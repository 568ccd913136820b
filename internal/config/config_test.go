package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/kosei/internal/model"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"KOSEI_STORAGE_DRIVER", "KOSEI_STORAGE_PATH", "KOSEI_NAMESPACE", "KOSEI_LOG_LEVEL",
		"KOSEI_LOG_FILE", "KOSEI_TICK_INTERVAL", "KOSEI_MANUAL_MINUTES", "KOSEI_DEFAULT_CATEGORY",
		"KOSEI_DEFAULT_IMPORTANCE",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Chdir(t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "kosei_v3", cfg.Storage.Namespace)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second, cfg.TUI.TickInterval)
	assert.Equal(t, 60, cfg.Focus.ManualMinutes)
	assert.Equal(t, model.CategorySchool, cfg.DefaultCategory())
	assert.Equal(t, 3, cfg.Tasks.DefaultImportance)
	assert.Equal(t, filepath.Join(dataDir, "kosei.db"), cfg.StoragePath())
	assert.Equal(t, filepath.Join(dataDir, "kosei.log"), cfg.LogFile())
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  driver: bolt
  namespace: custom
log:
  level: debug
tui:
  tick_interval: 500ms
focus:
  manual_minutes: 25
  default_category: work
tasks:
  default_importance: 1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dataDir)
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, "custom", cfg.Storage.Namespace)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.TUI.TickInterval)
	assert.Equal(t, 25, cfg.Focus.ManualMinutes)
	assert.Equal(t, model.CategoryWork, cfg.DefaultCategory())
	assert.Equal(t, 1, cfg.Tasks.DefaultImportance)
	assert.Equal(t, filepath.Join(dataDir, "kosei.bolt"), cfg.StoragePath())
	assert.Equal(t, dataDir, cfg.DataDir)
}

func TestLoadKeepsExplicitZeroManualMinutes(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("focus:\n  manual_minutes: 0\n"), 0o644))

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Focus.ManualMinutes)
	assert.Equal(t, model.CategorySchool, cfg.DefaultCategory())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestEnvOverridesFileAndDotEnv(t *testing.T) {
	clearEnv(t)
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, ".env"),
		[]byte("KOSEI_STORAGE_DRIVER=file\nKOSEI_MANUAL_MINUTES=15\n"), 0o644))
	t.Setenv("KOSEI_MANUAL_MINUTES", "90")
	t.Setenv("KOSEI_DEFAULT_CATEGORY", "Other")
	t.Setenv("KOSEI_TICK_INTERVAL", "not-a-duration")

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Storage.Driver, ".env should apply when env is unset")
	assert.Equal(t, 90, cfg.Focus.ManualMinutes, "process env should beat .env")
	assert.Equal(t, model.CategoryOther, cfg.DefaultCategory())
	assert.Equal(t, time.Second, cfg.TUI.TickInterval, "unparseable values are ignored")
	assert.Equal(t, filepath.Join(dataDir, "state"), cfg.StoragePath())
	_, set := os.LookupEnv("KOSEI_STORAGE_DRIVER")
	assert.False(t, set, ".env values must not leak into the process environment")
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KOSEI_STORAGE_PATH", "/tmp/kosei.db")
	t.Setenv("KOSEI_NAMESPACE", "kosei_v4")
	t.Setenv("KOSEI_LOG_LEVEL", "WARN")
	t.Setenv("KOSEI_LOG_FILE", "/tmp/kosei.log")
	t.Setenv("KOSEI_DEFAULT_IMPORTANCE", "abc")

	cfg := fromEnv(DefaultConfig(), os.LookupEnv)
	assert.Equal(t, "/tmp/kosei.db", cfg.StoragePath())
	assert.Equal(t, "kosei_v4", cfg.Storage.Namespace)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/kosei.log", cfg.LogFile())
	assert.Equal(t, 3, cfg.Tasks.DefaultImportance)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, field: "storage.driver"},
		{name: "blank namespace", mutate: func(c *Config) { c.Storage.Namespace = " " }, field: "storage.namespace"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, field: "log.level"},
		{name: "tick interval", mutate: func(c *Config) { c.TUI.TickInterval = -time.Second }, field: "tui.tick_interval"},
		{name: "manual minutes", mutate: func(c *Config) { c.Focus.ManualMinutes = -1 }, field: "focus.manual_minutes"},
		{name: "category", mutate: func(c *Config) { c.Focus.DefaultCategory = "fitness" }, field: "focus.default_category"},
		{name: "importance", mutate: func(c *Config) { c.Tasks.DefaultImportance = 7 }, field: "tasks.default_importance"},
		{name: "data dir", mutate: func(c *Config) { c.DataDir = "" }, field: "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	assert.NoError(t, cfg.Validate())
}
