package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/clock"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/storage"
)

var testNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	seq := 0
	return app.New(t.Context(), storage.NewMemoryStore(), app.Options{
		Clock: clock.NewManual(testNow),
		IDs: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
}

// run builds a fresh root per invocation; urfave commands keep flag state
// between runs.
func run(t *testing.T, a *app.App, register func(*Flags, *app.App, *cli.Command), args ...string) (string, error) {
	t.Helper()
	var buf, errBuf bytes.Buffer
	root := &cli.Command{Name: "kosei", Writer: &buf, ErrWriter: &errBuf}
	register(&Flags{}, a, root)
	err := root.Run(context.Background(), append([]string{"kosei"}, args...))
	return buf.String(), err
}

func taskCmd(f *Flags, a *app.App, root *cli.Command) { NewTaskCmd(f, a).Register(root) }
func weekCmd(f *Flags, a *app.App, root *cli.Command) { NewWeekCmd(f, a).Register(root) }
func monthCmd(f *Flags, a *app.App, root *cli.Command) { NewMonthCmd(f, a).Register(root) }

func TestTaskAddAndList(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, taskCmd, "task", "add", "--due", "2024-06-10", "-p", "2", "Write", "report")
	require.NoError(t, err)
	assert.Equal(t, "id-1\n", out)

	_, err = run(t, a, taskCmd, "task", "add", "--due", "yesterday", "--importance", "1", "Email client")
	require.NoError(t, err)

	out, err = run(t, a, taskCmd, "task", "ls")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2024-06-09")
	assert.Contains(t, lines[1], "Email client")
	assert.Contains(t, lines[2], "Write report")
	assert.Contains(t, lines[2], "P2")
}

func TestTaskAddDefaults(t *testing.T) {
	a := newTestApp(t)
	_, err := run(t, a, taskCmd, "task", "add", "Read")
	require.NoError(t, err)

	task, ok := a.TaskAt(1)
	require.True(t, ok)
	assert.Equal(t, "2024-06-10", task.DueDate)
	assert.Equal(t, model.ImportanceDefault, task.Importance)
}

func TestTaskAddRejectsBadInput(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing name", args: []string{"task", "add"}},
		{name: "bad due", args: []string{"task", "add", "--due", "06/10/2024", "x"}},
		{name: "importance out of range", args: []string{"task", "add", "-p", "9", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, a, taskCmd, tt.args...)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, a.Tasks())
}

func TestTaskListJSON(t *testing.T) {
	a := newTestApp(t)
	a.AddTask(t.Context(), "Essay", "2024-06-12", 2)

	out, err := run(t, a, taskCmd, "task", "ls", "--json")
	require.NoError(t, err)

	var got model.Task
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &got))
	assert.Equal(t, model.Task{ID: "id-1", Name: "Essay", DueDate: "2024-06-12", Importance: 2}, got)
}

func TestTaskEditAndToggle(t *testing.T) {
	a := newTestApp(t)
	a.AddTask(t.Context(), "Essay", "2024-06-12", 2)

	_, err := run(t, a, taskCmd, "task", "edit", "--name", "Final essay", "--due", "tomorrow", "id-1")
	require.NoError(t, err)
	task, _ := a.Task("id-1")
	assert.Equal(t, "Final essay", task.Name)
	assert.Equal(t, "2024-06-11", task.DueDate)
	assert.Equal(t, 2, task.Importance)

	out, err := run(t, a, taskCmd, "task", "toggle", "id-1")
	require.NoError(t, err)
	assert.Equal(t, "done: Final essay\n", out)

	_, err = run(t, a, taskCmd, "task", "edit", "--completed=false", "id-1")
	require.NoError(t, err)
	task, _ = a.Task("id-1")
	assert.False(t, task.Completed)

	_, err = run(t, a, taskCmd, "task", "edit", "id-1")
	assert.EqualError(t, err, "nothing to change")

	_, err = run(t, a, taskCmd, "task", "toggle", "missing")
	assert.ErrorIs(t, err, errTaskNotFound)
}

func TestLogCommand(t *testing.T) {
	a := newTestApp(t)
	register := func(f *Flags, a *app.App, root *cli.Command) {
		cmd := NewLogCmd(f, a)
		cmd.isTerminal = func() bool { return false }
		cmd.Register(root)
	}

	out, err := run(t, a, register, "log", "--category", "work", "--minutes", "25m", "Deep", "work")
	require.NoError(t, err)
	assert.Equal(t, "logged 25m of work: Deep work\n", out)

	_, err = run(t, a, register, "log", "Reading")
	require.NoError(t, err)

	_, err = run(t, a, register, "log", "--category", "leisure", "Nap")
	assert.Error(t, err)

	_, err = run(t, a, register, "log")
	assert.EqualError(t, err, "description is required")

	acts := a.Activities()
	require.Len(t, acts, 2)
	assert.Equal(t, 25, acts[0].DurationMinutes)
	assert.Equal(t, model.CategoryWork, acts[0].Category)
	assert.Equal(t, 60, acts[1].DurationMinutes)
	assert.Equal(t, model.CategorySchool, acts[1].Category)
}

func TestLogCommandForm(t *testing.T) {
	a := newTestApp(t)
	var calls int
	register := func(f *Flags, a *app.App, root *cli.Command) {
		cmd := NewLogCmd(f, a)
		cmd.isTerminal = func() bool { return true }
		cmd.form = func(desc, category, minutes *string) error {
			calls++
			if calls == 2 {
				return huh.ErrUserAborted
			}
			*desc = "Gym"
			*category = "other"
			*minutes = "45"
			return nil
		}
		cmd.Register(root)
	}

	_, err := run(t, a, register, "log")
	require.NoError(t, err)
	_, err = run(t, a, register, "log")
	require.NoError(t, err, "aborting the form is not an error")

	acts := a.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, "Gym", acts[0].Description)
	assert.Equal(t, model.CategoryOther, acts[0].Category)
	assert.Equal(t, 45, acts[0].DurationMinutes)
}

func TestWeekCommand(t *testing.T) {
	a := newTestApp(t)
	a.LogActivity(t.Context(), "Essay", model.CategorySchool, 90)
	a.LogActivity(t.Context(), "Shift", model.CategoryWork, 30)

	out, err := run(t, a, weekCmd, "week")
	require.NoError(t, err)
	chart, detail, found := strings.Cut(out, "\n\n")
	require.True(t, found, "expected a breakdown after the chart: %q", out)
	lines := strings.Split(chart, "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[6], "Mon"))
	assert.True(t, strings.HasSuffix(lines[6], "2h 0m"))
	assert.Equal(t, "Monday, Jun 10th\nschool 1h 30m\n  Essay (1h 30m)\nwork 30m\n  Shift (30m)\n", detail)

	out, err = run(t, a, weekCmd, "week", "--json")
	require.NoError(t, err)
	days := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, days, 7)

	var today dayInfo
	require.NoError(t, json.Unmarshal([]byte(days[6]), &today))
	assert.Equal(t, "2024-06-10", today.Date)
	assert.Equal(t, 120, today.Total)
	assert.Equal(t, map[string]int{"school": 90, "work": 30, "other": 0}, today.Minutes)
	assert.Equal(t, []activityInfo{
		{Category: "school", Description: "Essay", Minutes: 90},
		{Category: "work", Description: "Shift", Minutes: 30},
	}, today.Details)

	var earlier dayInfo
	require.NoError(t, json.Unmarshal([]byte(days[0]), &earlier))
	assert.Empty(t, earlier.Details)
}

func TestMonthCommand(t *testing.T) {
	a := newTestApp(t)
	a.AddTask(t.Context(), "Essay", "2024-07-04", 2)

	out, err := run(t, a, monthCmd, "month")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "June 2024\n"))

	out, err = run(t, a, monthCmd, "month", "--month", "2024-07")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "July 2024\n"))
	assert.Contains(t, out, " 4•")
	assert.Contains(t, out, "July 4, 2024 · Thursday")
	assert.Contains(t, out, "[ ] P2 Essay")
	assert.Equal(t, 1, strings.Count(out, "due:"), "only days with tasks or focus are listed")

	_, err = run(t, a, monthCmd, "month", "--month", "July")
	assert.Error(t, err)
}
