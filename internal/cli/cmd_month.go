package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/update"
	"github.com/sandeepkv93/kosei/internal/views"
)

const monthLayout = "2006-01"

type MonthCmd struct {
	flags *Flags
	app   *app.App

	month string
}

func NewMonthCmd(flags *Flags, a *app.App) *MonthCmd {
	return &MonthCmd{flags: flags, app: a}
}

func (cmd *MonthCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "month",
		Usage:     "Print a month calendar with due tasks and focus intensity",
		UsageText: "kosei month [--month YYYY-MM]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "month",
				Usage:       "month to show (defaults to the current month)",
				Destination: &cmd.month,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *MonthCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.month != "" {
		t, err := time.ParseInLocation(monthLayout, cmd.month, cmd.app.Now().Location())
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", cmd.month)
		}
		cmd.app.SetMonth(t)
	}

	snap := cmd.app.Snapshot()
	out := c.Root().Writer
	_, _ = fmt.Fprintln(out, derive.MonthTitle(snap.Month))
	_, _ = fmt.Fprintln(out, views.RenderCalendarGrid(update.CalendarPanelData(snap.Month, snap.Calendar, "")))
	for _, cell := range snap.Calendar {
		if !cell.InMonth || (len(cell.Tasks) == 0 && cell.FocusMinutes == 0) {
			continue
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, views.RenderDayPanel(update.DayPanelData(cell, snap.Tasks)))
	}
	return nil
}
