package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func waitForTickCmd(ch <-chan time.Time) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		at, ok := <-ch
		if !ok {
			return TickerStoppedMsg{}
		}
		return TickMsg{At: at}
	}
}

func (m Model) onTick() (tea.Model, tea.Cmd) {
	m.App.Tick()
	return m, waitForTickCmd(m.ticks)
}
