package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	count := len(m.App.Tasks())
	switch msg.String() {
	case "up", "k":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case "down", "j":
		if m.TaskCursor < count-1 {
			m.TaskCursor++
		}
	case " ", "x":
		m = m.toggleTaskAtCursor()
	case "a":
		return m.openPalette("add ")
	case "e":
		if count > 0 {
			return m.openPalette(fmt.Sprintf("edit %d ", m.TaskCursor+1))
		}
	}
	m.clampTaskCursor()
	return m
}

func (m Model) toggleTaskAtCursor() Model {
	task, ok := m.App.TaskAt(m.TaskCursor + 1)
	if !ok {
		m.Status = StatusBar{Text: "no task selected"}
		return m
	}
	if !m.App.ToggleTask(m.ctx, task.ID) {
		return m
	}
	state := "reopened"
	if !task.Completed {
		state = "completed"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", state, task.Name)}
	return m
}

func (m *Model) clampTaskCursor() {
	count := len(m.App.Tasks())
	if m.TaskCursor >= count {
		m.TaskCursor = count - 1
	}
	if m.TaskCursor < 0 {
		m.TaskCursor = 0
	}
}
