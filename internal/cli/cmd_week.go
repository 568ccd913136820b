package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/update"
	"github.com/sandeepkv93/kosei/internal/views"
)

type WeekCmd struct {
	flags *Flags
	app   *app.App

	jsonOutput bool
}

func NewWeekCmd(flags *Flags, a *app.App) *WeekCmd {
	return &WeekCmd{flags: flags, app: a}
}

func (cmd *WeekCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "week",
		Usage: "Show focus minutes per category for the last seven days",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output one JSON line per day",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return root
}

// dayInfo is the JSON output format for kosei week --json.
type dayInfo struct {
	Date    string         `json:"date"`
	Label   string         `json:"label"`
	Minutes map[string]int `json:"minutes"`
	Total   int            `json:"total"`
	Details []activityInfo `json:"details"`
}

type activityInfo struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
}

func (cmd *WeekCmd) run(ctx context.Context, c *cli.Command) error {
	snap := cmd.app.Snapshot()
	out := c.Root().Writer

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, b := range snap.Week {
			if err := enc.Encode(newDayInfo(b)); err != nil {
				return fmt.Errorf("encode day: %w", err)
			}
		}
		return nil
	}

	_, _ = fmt.Fprintln(out, views.RenderWeekChart(update.WeekChartData(snap.Week)))
	for _, b := range snap.Week {
		if b.Total() == 0 {
			continue
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, views.RenderDayDetail(update.DayDetailData(b)))
	}
	return nil
}

func newDayInfo(b derive.DayBucket) dayInfo {
	info := dayInfo{
		Date:    b.Date,
		Label:   b.Label,
		Minutes: make(map[string]int, len(model.Categories)),
		Total:   b.Total(),
		Details: []activityInfo{},
	}
	for _, c := range model.Categories {
		info.Minutes[string(c)] = b.ByCategory[c].Minutes
		for _, a := range b.ByCategory[c].Activities {
			info.Details = append(info.Details, activityInfo{
				Category:    string(a.Category),
				Description: a.Description,
				Minutes:     a.DurationMinutes,
			})
		}
	}
	return info
}
