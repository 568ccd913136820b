package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
)

type LogCmd struct {
	flags *Flags
	app   *app.App

	// flags
	category string
	minutes  string

	// isTerminal reports whether the interactive form may be shown.
	isTerminal func() bool
	// form fills in missing fields; replaced in tests.
	form func(desc, category, minutes *string) error
}

func NewLogCmd(flags *Flags, a *app.App) *LogCmd {
	return &LogCmd{
		flags:      flags,
		app:        a,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		form:       runLogForm,
	}
}

func (cmd *LogCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "log",
		Usage:     "Record focus time",
		UsageText: "kosei log [description] [--category school|work|other] [--minutes N]",
		Description: `Appends one activity to the focus log.

Without a description on an interactive terminal a form asks for the
details. Minutes are read leniently: "25m" counts as 25, garbage as 0.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "category",
				Aliases:     []string{"c"},
				Usage:       "activity category (school, work, other)",
				Destination: &cmd.category,
			},
			&cli.StringFlag{
				Name:        "minutes",
				Aliases:     []string{"m"},
				Usage:       "duration in minutes",
				Destination: &cmd.minutes,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *LogCmd) run(ctx context.Context, c *cli.Command) error {
	settings := cmd.app.Settings()
	if cmd.category == "" {
		cmd.category = string(settings.DefaultCategory)
	}
	if cmd.minutes == "" {
		cmd.minutes = strconv.Itoa(settings.ManualMinutes)
	}

	desc := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(desc) == "" {
		if !cmd.isTerminal() {
			return errors.New("description is required")
		}
		if err := cmd.form(&desc, &cmd.category, &cmd.minutes); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	category, err := model.ParseCategory(cmd.category)
	if err != nil {
		return err
	}
	act, ok := cmd.app.LogManual(ctx, desc, category, cmd.minutes)
	if !ok {
		return errors.New("activity not logged")
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "logged %s of %s: %s\n", derive.FormatMinutes(act.DurationMinutes), act.Category, act.Description)
	return nil
}

func runLogForm(desc, category, minutes *string) error {
	options := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		options = append(options, string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What did you focus on?").
				Validate(validateDescription).
				Value(desc),
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(options...)...).
				Value(category),
			huh.NewInput().
				Title("Minutes").
				Value(minutes),
		),
	).Run()
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
