package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/kosei/internal/commands"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
)

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.Palette.Input = prefill
	m.commandInput.Focus()
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette()
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due, err := m.resolveDue(a.Due)
			if err != nil {
				return commands.Result{}, err
			}
			importance := a.Importance
			if importance == 0 {
				importance = m.App.Settings().DefaultImportance
			}
			task, ok := m.App.AddTask(m.ctx, a.Name, due, importance)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task not added"}
			}
			m.CurrentView = ViewTasks
			return commands.Result{Message: fmt.Sprintf("added %s due %s", task.Name, task.DueDate)}, nil
		},
		Edit: func(e commands.EditArgs) (commands.Result, error) {
			task, ok := m.App.TaskAt(e.Index)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d", e.Index)}
			}
			var patch model.TaskPatch
			if e.Name != "" {
				patch.Name = &e.Name
			}
			if e.Due != "" {
				due, err := m.resolveDue(e.Due)
				if err != nil {
					return commands.Result{}, err
				}
				patch.DueDate = &due
			}
			if e.Importance != 0 {
				patch.Importance = &e.Importance
			}
			if !m.App.UpdateTask(m.ctx, task.ID, patch) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "nothing to change"}
			}
			return commands.Result{Message: fmt.Sprintf("updated #%d", e.Index)}, nil
		},
		Toggle: func(t commands.ToggleArgs) (commands.Result, error) {
			task, ok := m.App.TaskAt(t.Index)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task #%d", t.Index)}
			}
			m.App.ToggleTask(m.ctx, task.ID)
			return commands.Result{Message: fmt.Sprintf("toggled %s", task.Name)}, nil
		},
		Log: func(l commands.LogArgs) (commands.Result, error) {
			act, ok := m.App.LogActivity(m.ctx, l.Description, l.Category, l.Minutes)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "activity not logged"}
			}
			return commands.Result{Message: fmt.Sprintf("logged %s of %s", derive.FormatMinutes(act.DurationMinutes), act.Category)}, nil
		},
		Month: func(a commands.MonthArgs) (commands.Result, error) {
			switch a.Direction {
			case commands.MonthNext:
				m.App.ShiftMonth(1)
			case commands.MonthPrev:
				m.App.ShiftMonth(-1)
			default:
				m.App.ResetMonth()
			}
			m.CurrentView = ViewCalendar
			return commands.Result{Message: "calendar: " + derive.MonthTitle(m.App.Month())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.log.Debug().Err(err).Str("input", raw).Msg("palette command failed")
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.clampTaskCursor()
	return m.closePalette()
}

func (m Model) resolveDue(raw string) (string, error) {
	if raw == "" {
		return m.App.Today(), nil
	}
	due, ok := model.ResolveDate(raw, m.App.Now())
	if !ok {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid due date %q", raw)}
	}
	return due, nil
}
