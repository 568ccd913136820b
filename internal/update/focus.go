package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/stopwatch"
)

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.App.StartTimer() {
			m.Status = StatusBar{Text: "stopwatch running"}
		}
	case " ":
		if m.App.TogglePause() {
			m.Status = StatusBar{Text: "stopwatch " + timerLabel(m.App.Timer().State)}
		}
	case "r":
		if m.App.ResetTimer() {
			m.Status = StatusBar{Text: "stopwatch reset"}
		}
	case "f":
		if m.App.FinishTimer() {
			return m.openForm(FormCommit), textinput.Blink
		}
	case "m":
		return m.openForm(FormManual), textinput.Blink
	case "h", "left":
		if m.WeekCursor > 0 {
			m.WeekCursor--
		}
	case "l", "right":
		if m.WeekCursor < derive.WeekLength-1 {
			m.WeekCursor++
		}
	}
	return m, nil
}

func (m Model) openForm(kind FormKind) Model {
	settings := m.App.Settings()
	m.Form = FormState{Kind: kind, Active: true, Category: settings.DefaultCategory}
	m.descInput.SetValue("")
	m.descInput.Focus()
	m.minutesInput.SetValue(strconv.Itoa(settings.ManualMinutes))
	m.minutesInput.Blur()
	return m
}

func (m Model) closeForm() Model {
	m.Form = FormState{}
	m.descInput.Blur()
	m.minutesInput.Blur()
	return m
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.Form.Kind == FormCommit && m.App.DiscardTimer() {
			m.Status = StatusBar{Text: "session discarded"}
		} else {
			m.Status = StatusBar{Text: "entry cancelled"}
		}
		return m.closeForm(), nil
	case "enter":
		return m.submitForm(), nil
	case "tab":
		m.Form.Category = nextCategory(m.Form.Category)
		return m, nil
	case "up", "down":
		if m.Form.Kind == FormManual {
			m.Form.Field = 1 - m.Form.Field
			if m.Form.Field == 0 {
				m.descInput.Focus()
				m.minutesInput.Blur()
			} else {
				m.minutesInput.Focus()
				m.descInput.Blur()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.Form.Kind == FormManual && m.Form.Field == 1 {
		m.minutesInput, cmd = m.minutesInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitForm() Model {
	desc := m.descInput.Value()
	switch m.Form.Kind {
	case FormCommit:
		act, ok := m.App.CommitTimer(m.ctx, desc, m.Form.Category)
		if !ok {
			m.Form.Err = "description is required"
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("logged %s of %s", derive.FormatMinutes(act.DurationMinutes), act.Category)}
	case FormManual:
		act, ok := m.App.LogManual(m.ctx, desc, m.Form.Category, m.minutesInput.Value())
		if !ok {
			m.Form.Err = "description is required"
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("logged %s of %s", derive.FormatMinutes(act.DurationMinutes), act.Category)}
	}
	return m.closeForm()
}

func nextCategory(c model.Category) model.Category {
	for i, candidate := range model.Categories {
		if candidate == c {
			return model.Categories[(i+1)%len(model.Categories)]
		}
	}
	return model.Categories[0]
}

func timerLabel(state stopwatch.State) string {
	switch state {
	case stopwatch.StateRunning:
		return "running"
	case stopwatch.StatePaused:
		return "paused"
	case stopwatch.StatePending:
		return "finished"
	default:
		return "idle"
	}
}
