package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/clock"
	"github.com/sandeepkv93/kosei/internal/logging"
	"github.com/sandeepkv93/kosei/internal/update"
)

type TuiCmd struct {
	flags *Flags
	app   *app.App
}

func NewTuiCmd(flags *Flags, a *app.App) *TuiCmd {
	return &TuiCmd{flags: flags, app: a}
}

func (cmd *TuiCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive planner",
		Action: cmd.Run,
	})
	return root
}

// Run starts the tick source, hands its channel to the UI and stops it once
// the program exits.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	ticker, err := clock.NewTicker(cmd.flags.tickInterval(), 1)
	if err != nil {
		return fmt.Errorf("create ticker: %w", err)
	}
	ticker.Start()
	defer func() {
		ticker.Stop()
		if n := ticker.Dropped(); n > 0 {
			log.Debug().Uint64("dropped", n).Msg("ticks dropped while the UI was busy")
		}
	}()

	model := update.NewModel(ctx, cmd.app, ticker.C()).WithLogger(logging.Component("tui"))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
