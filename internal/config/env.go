package config

import (
	"strconv"
	"strings"
	"time"
)

type lookupFunc func(name string) (string, bool)

// fromEnv overlays KOSEI_* variables found through lookup on base. Values
// that do not parse are ignored.
func fromEnv(base Config, lookup lookupFunc) Config {
	cfg := base
	if v, ok := getEnvString(lookup, "KOSEI_STORAGE_DRIVER"); ok {
		cfg.Storage.Driver = strings.ToLower(v)
	}
	if v, ok := getEnvString(lookup, "KOSEI_STORAGE_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvString(lookup, "KOSEI_NAMESPACE"); ok {
		cfg.Storage.Namespace = v
	}
	if v, ok := getEnvString(lookup, "KOSEI_LOG_LEVEL"); ok {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v, ok := getEnvString(lookup, "KOSEI_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvDuration(lookup, "KOSEI_TICK_INTERVAL"); ok && v > 0 {
		cfg.TUI.TickInterval = v
	}
	if v, ok := getEnvInt(lookup, "KOSEI_MANUAL_MINUTES"); ok && v >= 0 {
		cfg.Focus.ManualMinutes = v
	}
	if v, ok := getEnvString(lookup, "KOSEI_DEFAULT_CATEGORY"); ok {
		cfg.Focus.DefaultCategory = strings.ToLower(v)
	}
	if v, ok := getEnvInt(lookup, "KOSEI_DEFAULT_IMPORTANCE"); ok && v > 0 {
		cfg.Tasks.DefaultImportance = v
	}
	return cfg
}

func getEnvString(lookup lookupFunc, name string) (string, bool) {
	raw, ok := lookup(name)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(lookup lookupFunc, name string) (int, bool) {
	raw, ok := getEnvString(lookup, name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(lookup lookupFunc, name string) (time.Duration, bool) {
	raw, ok := getEnvString(lookup, name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
