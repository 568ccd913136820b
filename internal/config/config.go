package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

type Config struct {
	DataDir string        `yaml:"-"` // set by caller, not from config file
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	TUI     TUIConfig     `yaml:"tui"`
	Focus   FocusConfig   `yaml:"focus"`
	Tasks   TasksConfig   `yaml:"tasks"`
}

type StorageConfig struct {
	Driver    string `yaml:"driver"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type TUIConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
}

type FocusConfig struct {
	ManualMinutes   int    `yaml:"manual_minutes"`
	DefaultCategory string `yaml:"default_category"`
}

type TasksConfig struct {
	DefaultImportance int `yaml:"default_importance"`
}

func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver:    storage.DriverSQLite,
			Namespace: storage.DefaultNamespace,
		},
		Log: LogConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			TickInterval: time.Second,
		},
		Focus: FocusConfig{
			ManualMinutes:   60,
			DefaultCategory: string(model.CategorySchool),
		},
		Tasks: TasksConfig{
			DefaultImportance: model.ImportanceDefault,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at configPath
// (skipped when empty or missing), .env files in dataDir and the working
// directory, and KOSEI_* environment variables, in that order.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}
	cfg.DataDir = dataDir

	dotenv, err := readDotEnv(filepath.Join(dataDir, ".env"), ".env")
	if err != nil {
		return nil, err
	}
	cfg = fromEnv(cfg, func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := dotenv[name]
		return v, ok
	})

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// readDotEnv merges the given .env files, earlier files winning. Missing
// files are skipped.
func readDotEnv(paths ...string) (map[string]string, error) {
	out := make(map[string]string)
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		vals, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		for k, v := range vals {
			if _, ok := out[k]; !ok {
				out[k] = v
			}
		}
	}
	return out, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Storage.Driver) == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		c.Storage.Namespace = defaults.Storage.Namespace
	}
	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.TUI.TickInterval == 0 {
		c.TUI.TickInterval = defaults.TUI.TickInterval
	}
	if strings.TrimSpace(c.Focus.DefaultCategory) == "" {
		c.Focus.DefaultCategory = defaults.Focus.DefaultCategory
	}
	if c.Tasks.DefaultImportance == 0 {
		c.Tasks.DefaultImportance = defaults.Tasks.DefaultImportance
	}
}

// StoragePath resolves the storage location, defaulting per driver inside
// the data directory.
func (c *Config) StoragePath() string {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		return p
	}
	switch c.Storage.Driver {
	case storage.DriverBolt:
		return filepath.Join(c.DataDir, "kosei.bolt")
	case storage.DriverFile:
		return filepath.Join(c.DataDir, "state")
	case storage.DriverMemory:
		return ""
	default:
		return filepath.Join(c.DataDir, "kosei.db")
	}
}

func (c *Config) LogFile() string {
	if f := strings.TrimSpace(c.Log.File); f != "" {
		return f
	}
	return filepath.Join(c.DataDir, "kosei.log")
}

// DefaultCategory returns the configured category, falling back to school.
func (c *Config) DefaultCategory() model.Category {
	cat, err := model.ParseCategory(c.Focus.DefaultCategory)
	if err != nil {
		return model.CategorySchool
	}
	return cat
}
