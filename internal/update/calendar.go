package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h":
		m.App.ShiftMonth(-1)
		m.SelectedDate = model.DateOf(m.App.Month())
	case "l":
		m.App.ShiftMonth(1)
		m.SelectedDate = model.DateOf(m.App.Month())
	case "t":
		m.App.ResetMonth()
		m.SelectedDate = m.App.Today()
	case "left":
		return m.moveSelectedDay(-1)
	case "right":
		return m.moveSelectedDay(1)
	case "up":
		return m.moveSelectedDay(-7)
	case "down":
		return m.moveSelectedDay(7)
	default:
		return m
	}
	m.Status = StatusBar{Text: "calendar: " + derive.MonthTitle(m.App.Month())}
	return m
}

// moveSelectedDay steps the selection through the visible grid, stopping at
// its first and last cells.
func (m Model) moveSelectedDay(delta int) Model {
	cells := m.App.Snapshot().Calendar
	if len(cells) == 0 {
		return m
	}
	idx := selectedCell(cells, m.SelectedDate, m.App.Today()) + delta
	idx = max(0, min(idx, len(cells)-1))
	m.SelectedDate = cells[idx].Date
	m.Status = StatusBar{Text: "selected " + derive.DateHeading(m.SelectedDate)}
	return m
}

// selectedCell finds selected in cells, then today, then the first day of
// the month.
func selectedCell(cells []derive.CalendarCell, selected, today string) int {
	for _, want := range []string{selected, today} {
		if want == "" {
			continue
		}
		for i, c := range cells {
			if c.Date == want {
				return i
			}
		}
	}
	for i, c := range cells {
		if c.InMonth {
			return i
		}
	}
	return 0
}
