package update

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
	"github.com/sandeepkv93/kosei/internal/stopwatch"
	"github.com/sandeepkv93/kosei/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderTaskPanel(snap app.Snapshot) string {
	return views.RenderTaskPanel(TaskPanelData(snap.Groups, m.TaskCursor))
}

// TaskPanelData numbers tasks by queue position, which is also the position
// the palette's edit and toggle commands accept.
func TaskPanelData(groups []derive.TaskGroup, cursor int) views.TaskPanelData {
	data := views.TaskPanelData{Groups: make([]views.TaskGroupData, 0, len(groups))}
	idx := 0
	for _, g := range groups {
		gd := views.TaskGroupData{Heading: derive.DateHeading(g.Date)}
		for _, t := range g.Tasks {
			gd.Rows = append(gd.Rows, views.TaskRowData{
				Index:      idx + 1,
				Name:       t.Name,
				Importance: model.ImportanceLabel(t.Importance),
				Completed:  t.Completed,
				Selected:   idx == cursor,
			})
			idx++
		}
		data.Groups = append(data.Groups, gd)
	}
	return data
}

func (m Model) renderCalendarPanel(snap app.Snapshot) string {
	selected := ""
	if m.CurrentView == ViewCalendar && len(snap.Calendar) > 0 {
		selected = snap.Calendar[selectedCell(snap.Calendar, m.SelectedDate, snap.Today)].Date
	}
	return views.RenderCalendarPanel(CalendarPanelData(snap.Month, snap.Calendar, selected))
}

// CalendarPanelData converts a month grid; the cell dated selected, if any,
// is highlighted.
func CalendarPanelData(month time.Time, cells []derive.CalendarCell, selected string) views.CalendarPanelData {
	data := views.CalendarPanelData{
		Title:    derive.MonthTitle(month),
		Weekdays: derive.WeekdayLabels,
		Cells:    make([]views.CalendarCellData, 0, len(cells)),
	}
	for _, c := range cells {
		data.Cells = append(data.Cells, views.CalendarCellData{
			Day:       c.Day,
			InMonth:   c.InMonth,
			IsToday:   c.IsToday,
			Selected:  selected != "" && c.Date == selected,
			TaskCount: len(c.Tasks),
			Minutes:   c.FocusMinutes,
			Tier:      string(c.Tier),
		})
	}
	return data
}

func (m Model) renderSelectedDay(snap app.Snapshot) string {
	if len(snap.Calendar) == 0 {
		return ""
	}
	cell := snap.Calendar[selectedCell(snap.Calendar, m.SelectedDate, snap.Today)]
	return views.RenderDayPanel(DayPanelData(cell, snap.Tasks))
}

// DayPanelData lists the tasks due on the cell's date, numbered by their
// position in the whole queue.
func DayPanelData(cell derive.CalendarCell, queue []model.Task) views.DayPanelData {
	data := views.DayPanelData{
		Heading: derive.DateHeading(cell.Date),
		Focus:   derive.FormatMinutes(cell.FocusMinutes),
		Tier:    string(cell.Tier),
	}
	position := make(map[string]int, len(queue))
	for i, t := range queue {
		position[t.ID] = i + 1
	}
	for _, t := range derive.TasksDueOn(queue, cell.Date) {
		data.Tasks = append(data.Tasks, views.TaskRowData{
			Index:      position[t.ID],
			Name:       t.Name,
			Importance: model.ImportanceLabel(t.Importance),
			Completed:  t.Completed,
		})
	}
	return data
}

func (m Model) renderFocusPanel(snap app.Snapshot) string {
	cursor := max(0, min(m.WeekCursor, len(snap.Week)-1))
	week := WeekChartData(snap.Week)
	var detail views.DayDetailData
	if len(snap.Week) > 0 {
		week.Bars[cursor].Selected = true
		detail = DayDetailData(snap.Week[cursor])
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		State:        timerLabel(snap.Timer.State),
		Clock:        derive.FormatClock(snap.Timer.Elapsed),
		TodayTotal:   derive.FormatMinutes(snap.TodayMinutes),
		TodayTier:    string(snap.TodayTier),
		Pending:      snap.Timer.State == stopwatch.StatePending,
		PendingLabel: derive.FormatMinutes(snap.Timer.PendingMinutes),
		Week:         week,
		Detail:       detail,
	})
}

func WeekChartData(week []derive.DayBucket) views.WeekChartData {
	data := views.WeekChartData{Bars: make([]views.WeekBarData, 0, len(week))}
	for _, b := range week {
		bar := views.WeekBarData{Label: b.Label, Date: b.Date, Total: derive.FormatMinutes(b.Total())}
		for _, c := range model.Categories {
			bar.Segments = append(bar.Segments, views.CategoryMinutes{Category: string(c), Minutes: b.ByCategory[c].Minutes})
		}
		data.Bars = append(data.Bars, bar)
	}
	return data
}

// DayDetailData breaks one bucket down by category, keeping log order
// within each category.
func DayDetailData(b derive.DayBucket) views.DayDetailData {
	data := views.DayDetailData{Heading: derive.DayTitle(b.Date)}
	for _, c := range model.Categories {
		total := b.ByCategory[c]
		if total.Minutes == 0 && len(total.Activities) == 0 {
			continue
		}
		cd := views.CategoryDetailData{Category: string(c), Total: derive.FormatMinutes(total.Minutes)}
		for _, a := range total.Activities {
			cd.Activities = append(cd.Activities, views.ActivityLineData{
				Description: a.Description,
				Duration:    derive.FormatMinutes(a.DurationMinutes),
			})
		}
		data.Categories = append(data.Categories, cd)
	}
	return data
}

func (m Model) renderForm(snap app.Snapshot) string {
	if !m.Form.Active {
		return ""
	}
	data := views.FormData{
		Category: string(m.Form.Category),
		Error:    m.Form.Err,
	}
	switch m.Form.Kind {
	case FormCommit:
		data.Title = fmt.Sprintf("log focus session (%s)", derive.FormatMinutes(snap.Timer.PendingMinutes))
		data.Fields = []string{m.descInput.View()}
		data.Hint = "[enter]commit [tab]category [esc]discard"
	case FormManual:
		data.Title = "log minutes by hand"
		data.Fields = []string{m.descInput.View(), m.minutesInput.View()}
		data.Hint = "[enter]log [tab]category [up/down]field [esc]cancel"
	}
	return views.RenderForm(data)
}
