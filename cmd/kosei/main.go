package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	kcli "github.com/sandeepkv93/kosei/internal/cli"
	"github.com/sandeepkv93/kosei/internal/clock"
	"github.com/sandeepkv93/kosei/internal/config"
	"github.com/sandeepkv93/kosei/internal/logging"
	"github.com/sandeepkv93/kosei/internal/storage"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
)

func build() string {
	v, c := version, commit
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
			}
		}
	}
	if len(c) > 7 {
		c = c[:7]
	}
	return fmt.Sprintf("%s (%s)", v, c)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		backend   storage.Store
		kosei     = &app.App{}
	)

	flags := &kcli.Flags{}

	root := &cli.Command{
		Name:      "kosei",
		Usage:     "Plan tasks and track focus time",
		UsageText: "kosei [global options] command [command options]",
		Description: `kosei keeps a dated task queue and a log of focused minutes split into
school, work and other.

Run 'kosei' with no arguments to open the interactive planner.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("KOSEI_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/kosei.log)",
				Sources:     cli.EnvVars("KOSEI_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("KOSEI_CONFIG"),
				Value:       kcli.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("KOSEI_DATA_DIR"),
				Value:       kcli.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			level := cfg.Log.Level
			if strings.TrimSpace(flags.LogLevel) != "" {
				level = flags.LogLevel
			}
			logFile := cfg.LogFile()
			if strings.TrimSpace(flags.LogFile) != "" {
				logFile = flags.LogFile
			}
			logger, closer, err := logging.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logging.SetGlobal(logger)
			logCloser = closer

			backend, err = storage.Open(ctx, cfg.Storage.Driver, cfg.StoragePath())
			if err != nil {
				return ctx, fmt.Errorf("open storage: %w", err)
			}
			log.Debug().
				Str("driver", cfg.Storage.Driver).
				Str("path", cfg.StoragePath()).
				Str("namespace", cfg.Storage.Namespace).
				Msg("storage opened")
			if sq, ok := backend.(*storage.SQLiteStore); ok {
				for _, name := range []string{storage.KeyTasks, storage.KeyActivities} {
					key := storage.Key(cfg.Storage.Namespace, name)
					if at, err := sq.UpdatedAt(ctx, key); err == nil {
						log.Debug().Str("key", key).Time("updated_at", at).Msg("last saved")
					}
				}
			}

			// Commands already hold a pointer to the pre-allocated App.
			*kosei = *app.New(ctx, backend, app.Options{
				Namespace: cfg.Storage.Namespace,
				Clock:     clock.System{},
				Logger:    logging.Component("app"),
				Settings: app.Settings{
					ManualMinutes:     cfg.Focus.ManualMinutes,
					DefaultCategory:   cfg.DefaultCategory(),
					DefaultImportance: cfg.Tasks.DefaultImportance,
				},
			})
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if backend != nil {
				if err := backend.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close storage")
					return err
				}
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := kcli.NewTuiCmd(flags, kosei)

	root = tuiCmd.Register(root)
	root = kcli.NewTaskCmd(flags, kosei).Register(root)
	root = kcli.NewLogCmd(flags, kosei).Register(root)
	root = kcli.NewWeekCmd(flags, kosei).Register(root)
	root = kcli.NewMonthCmd(flags, kosei).Register(root)

	// The planner is the default action when no subcommand is provided
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'kosei --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := root.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}
	os.Exit(exitCode)
}
