package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

// Validate checks that the configuration is usable. Problems are reported as
// criterio.FieldErrors keyed by their YAML path.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.TUI.TickInterval <= 0 {
		errs = errs.Append("tui.tick_interval", fmt.Errorf("must be positive, got %s", c.TUI.TickInterval))
	}
	if c.Focus.ManualMinutes < 0 {
		errs = errs.Append("focus.manual_minutes", fmt.Errorf("must not be negative, got %d", c.Focus.ManualMinutes))
	}
	if !model.ValidImportance(c.Tasks.DefaultImportance) {
		errs = errs.Append("tasks.default_importance", fmt.Errorf("%w: %d", model.ErrInvalidImportance, c.Tasks.DefaultImportance))
	}

	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notBlank),
		criterio.Run("storage.driver", c.Storage.Driver, knownDriver),
		criterio.Run("storage.namespace", c.Storage.Namespace, notBlank),
		criterio.Run("log.level", c.Log.Level, knownLevel),
		criterio.Run("focus.default_category", c.Focus.DefaultCategory, knownCategory),
		errs.ToError(),
	)
}

func notBlank(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

func knownDriver(v string) error {
	if !slices.Contains(storage.Drivers, v) {
		return fmt.Errorf("unknown driver %q (want one of %s)", v, strings.Join(storage.Drivers, ", "))
	}
	return nil
}

func knownLevel(v string) error {
	if _, err := zerolog.ParseLevel(v); err != nil || v == "" {
		return fmt.Errorf("unknown log level %q", v)
	}
	return nil
}

func knownCategory(v string) error {
	_, err := model.ParseCategory(v)
	return err
}
