package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/model"
)

var errTaskNotFound = errors.New("task not found")

type TaskCmd struct {
	flags *Flags
	app   *app.App

	// flags
	due        string
	importance int
	name       string
	completed  bool
	jsonOutput bool
}

func NewTaskCmd(flags *Flags, a *app.App) *TaskCmd {
	return &TaskCmd{flags: flags, app: a}
}

func (cmd *TaskCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:  "task",
		Usage: "Manage the task queue",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a task",
				UsageText: "kosei task add <name> [--due YYYY-MM-DD|today|tomorrow] [--importance 1-5]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "due",
						Aliases:     []string{"d"},
						Usage:       "due date",
						Value:       "today",
						Destination: &cmd.due,
					},
					&cli.IntFlag{
						Name:        "importance",
						Aliases:     []string{"p"},
						Usage:       "importance from 1 (highest) to 5; 0 uses the configured default",
						Destination: &cmd.importance,
					},
				},
				Action: cmd.runAdd,
			},
			{
				Name:    "ls",
				Aliases: []string{"list"},
				Usage:   "List tasks in queue order",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "edit",
				Usage:     "Change fields of a task",
				UsageText: "kosei task edit <id> [--name ...] [--due ...] [--importance ...] [--completed]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Destination: &cmd.name},
					&cli.StringFlag{Name: "due", Destination: &cmd.due},
					&cli.IntFlag{Name: "importance", Destination: &cmd.importance},
					&cli.BoolFlag{Name: "completed", Destination: &cmd.completed},
				},
				Action: cmd.runEdit,
			},
			{
				Name:      "toggle",
				Usage:     "Flip a task's completed flag",
				UsageText: "kosei task toggle <id>",
				Action:    cmd.runToggle,
			},
		},
	})
	return root
}

func (cmd *TaskCmd) runAdd(ctx context.Context, c *cli.Command) error {
	name := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(name) == "" {
		return errors.New("task name is required")
	}
	due, ok := model.ResolveDate(cmd.due, cmd.app.Now())
	if !ok {
		return fmt.Errorf("invalid due date %q", cmd.due)
	}
	importance := cmd.importance
	if importance == 0 {
		importance = cmd.app.Settings().DefaultImportance
	}
	if !model.ValidImportance(importance) {
		return fmt.Errorf("importance must be between %d and %d", model.ImportanceHighest, model.ImportanceLowest)
	}

	task, ok := cmd.app.AddTask(ctx, name, due, importance)
	if !ok {
		return errors.New("task not added")
	}
	_, _ = fmt.Fprintln(c.Root().Writer, task.ID)
	return nil
}

func (cmd *TaskCmd) runList(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer
	list := cmd.app.Tasks()

	if cmd.jsonOutput {
		enc := json.NewEncoder(out)
		for _, t := range list {
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks queued")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tDUE\tP\tDONE\tNAME\tID")
	for i, t := range list {
		done := ""
		if t.Completed {
			done = "x"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, t.DueDate, model.ImportanceLabel(t.Importance), done, t.Name, t.ID)
	}
	return w.Flush()
}

func (cmd *TaskCmd) runEdit(ctx context.Context, c *cli.Command) error {
	task, err := cmd.lookup(c)
	if err != nil {
		return err
	}

	var patch model.TaskPatch
	if c.IsSet("name") {
		patch.Name = &cmd.name
	}
	if c.IsSet("due") {
		due, ok := model.ResolveDate(cmd.due, cmd.app.Now())
		if !ok {
			return fmt.Errorf("invalid due date %q", cmd.due)
		}
		patch.DueDate = &due
	}
	if c.IsSet("importance") {
		if !model.ValidImportance(cmd.importance) {
			return fmt.Errorf("importance must be between %d and %d", model.ImportanceHighest, model.ImportanceLowest)
		}
		patch.Importance = &cmd.importance
	}
	if c.IsSet("completed") {
		patch.Completed = &cmd.completed
	}
	if patch.IsEmpty() {
		return errors.New("nothing to change")
	}
	if !cmd.app.UpdateTask(ctx, task.ID, patch) {
		return errors.New("task not updated")
	}
	return nil
}

func (cmd *TaskCmd) runToggle(ctx context.Context, c *cli.Command) error {
	task, err := cmd.lookup(c)
	if err != nil {
		return err
	}
	cmd.app.ToggleTask(ctx, task.ID)
	updated, _ := cmd.app.Task(task.ID)
	state := "open"
	if updated.Completed {
		state = "done"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "%s: %s\n", state, updated.Name)
	return nil
}

func (cmd *TaskCmd) lookup(c *cli.Command) (model.Task, error) {
	id := c.Args().First()
	if id == "" {
		return model.Task{}, errors.New("task id is required")
	}
	task, ok := cmd.app.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", errTaskNotFound, id)
	}
	return task, nil
}
