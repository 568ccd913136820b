package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type TaskRowData struct {
	Index      int
	Name       string
	Importance string
	Completed  bool
	Selected   bool
}

type TaskGroupData struct {
	Heading string
	Rows    []TaskRowData
}

type TaskPanelData struct {
	Groups []TaskGroupData
}

type CalendarCellData struct {
	Day       int
	InMonth   bool
	IsToday   bool
	Selected  bool
	TaskCount int
	Minutes   int
	Tier      string
}

type CalendarPanelData struct {
	Title    string
	Weekdays []string
	Cells    []CalendarCellData
}

type CategoryMinutes struct {
	Category string
	Minutes  int
}

type WeekBarData struct {
	Label    string
	Date     string
	Segments []CategoryMinutes
	Total    string
	Selected bool
}

type WeekChartData struct {
	Bars []WeekBarData
}

type FocusPanelData struct {
	State        string
	Clock        string
	TodayTotal   string
	TodayTier    string
	Pending      bool
	PendingLabel string
	Week         WeekChartData
	Detail       DayDetailData
}

type ActivityLineData struct {
	Description string
	Duration    string
}

type CategoryDetailData struct {
	Category   string
	Total      string
	Activities []ActivityLineData
}

// DayDetailData is one day of the weekly chart broken down by category.
// Categories without minutes are left out.
type DayDetailData struct {
	Heading    string
	Categories []CategoryDetailData
}

// DayPanelData describes one calendar day: focus time and the tasks due.
type DayPanelData struct {
	Heading string
	Focus   string
	Tier    string
	Tasks   []TaskRowData
}

type FormData struct {
	Title    string
	Fields   []string
	Category string
	Hint     string
	Error    string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	Markdown    string
}

var (
	groupStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Reverse(true)
	urgentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	outOfMonth     = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	todayCellStyle = lipgloss.NewStyle().Underline(true).Bold(true)

	tierStyles = map[string]lipgloss.Style{
		"none":   lipgloss.NewStyle(),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"high":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
	categoryStyles = map[string]lipgloss.Style{
		"school": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"work":   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		"other":  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

const chartWidth = 28

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("task queue:\n")
	b.WriteString("actions: [j/k]move [space]toggle [a]add [e]edit\n")
	if len(data.Groups) == 0 {
		b.WriteString("\n(no tasks queued)")
		return b.String()
	}
	for _, g := range data.Groups {
		b.WriteString("\n" + groupStyle.Render(g.Heading) + "\n")
		for _, row := range g.Rows {
			b.WriteString(renderTaskRow(row) + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTaskRow(row TaskRowData) string {
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	prio := row.Importance
	if prio == "P1" && !row.Completed {
		prio = urgentStyle.Render(prio)
	}
	name := row.Name
	if row.Completed {
		name = doneStyle.Render(name)
	}
	line := fmt.Sprintf("%2d %s %s %s", row.Index, check, prio, name)
	if row.Selected {
		return selectedStyle.Render(line)
	}
	return line
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar: " + data.Title + "\n")
	b.WriteString("actions: [h/l]month [t]today [arrows]day\n\n")
	b.WriteString(RenderCalendarGrid(data))
	return b.String()
}

// RenderCalendarGrid draws the month as week rows. A dot marks days with
// tasks due; the day number is tinted by focus intensity.
func RenderCalendarGrid(data CalendarPanelData) string {
	var b strings.Builder
	for _, w := range data.Weekdays {
		b.WriteString(fmt.Sprintf("%-6s", w))
	}
	b.WriteString("\n")
	for i, c := range data.Cells {
		b.WriteString(renderCell(c))
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderCell(c CalendarCellData) string {
	marker := " "
	if c.TaskCount > 0 {
		marker = "•"
	}
	day := fmt.Sprintf("%2d", c.Day)
	style, ok := tierStyles[c.Tier]
	if !ok {
		style = tierStyles["none"]
	}
	switch {
	case c.Selected:
		day = selectedStyle.Render(day)
	case !c.InMonth:
		day = outOfMonth.Render(day)
	case c.IsToday:
		day = todayCellStyle.Inherit(style).Render(day)
	default:
		day = style.Render(day)
	}
	return day + marker + "   "
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	b.WriteString(fmt.Sprintf("stopwatch: %s [%s]\n", data.Clock, strings.ToUpper(data.State)))
	b.WriteString("actions: [s]start [space]pause/resume [f]finish [r]reset [m]manual [h/l]day\n")
	if data.Pending {
		b.WriteString(fmt.Sprintf("session finished: %s ready to commit\n", data.PendingLabel))
	}
	today := tierStyles[data.TodayTier].Render(data.TodayTotal)
	b.WriteString(fmt.Sprintf("today: %s (%s)\n\n", today, data.TodayTier))
	b.WriteString(RenderWeekChart(data.Week))
	if data.Detail.Heading != "" {
		b.WriteString("\n\n" + RenderDayDetail(data.Detail))
	}
	return b.String()
}

func RenderDayDetail(data DayDetailData) string {
	var b strings.Builder
	b.WriteString(groupStyle.Render(data.Heading))
	if len(data.Categories) == 0 {
		b.WriteString("\n(no focus logged)")
		return b.String()
	}
	for _, c := range data.Categories {
		b.WriteString("\n" + categoryStyles[c.Category].Render(c.Category) + " " + c.Total)
		for _, a := range c.Activities {
			b.WriteString(fmt.Sprintf("\n  %s (%s)", a.Description, a.Duration))
		}
	}
	return b.String()
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(groupStyle.Render(data.Heading) + "\n")
	focus := data.Focus
	if style, ok := tierStyles[data.Tier]; ok {
		focus = style.Render(focus)
	}
	b.WriteString(fmt.Sprintf("focus: %s (%s)\n", focus, data.Tier))
	if len(data.Tasks) == 0 {
		b.WriteString("\n(nothing due)")
		return b.String()
	}
	b.WriteString("\ndue:\n")
	for _, row := range data.Tasks {
		b.WriteString(renderTaskRow(row) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// RenderWeekChart draws one stacked bar per day, scaled to the busiest day.
func RenderWeekChart(data WeekChartData) string {
	maxTotal := 0
	for _, bar := range data.Bars {
		sum := 0
		for _, s := range bar.Segments {
			sum += s.Minutes
		}
		if sum > maxTotal {
			maxTotal = sum
		}
	}

	var b strings.Builder
	for _, bar := range data.Bars {
		label := fmt.Sprintf("%-4s", bar.Label)
		if bar.Selected {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label)
		used := 0
		for _, s := range bar.Segments {
			n := 0
			if maxTotal > 0 {
				n = s.Minutes * chartWidth / maxTotal
			}
			if n == 0 && s.Minutes > 0 {
				n = 1
			}
			used += n
			b.WriteString(categoryStyles[s.Category].Render(strings.Repeat("█", n)))
		}
		if used < chartWidth {
			b.WriteString(strings.Repeat(" ", chartWidth-used))
		}
		b.WriteString(" " + bar.Total + "\n")
	}
	legend := make([]string, 0, len(categoryStyles))
	for _, c := range []string{"school", "work", "other"} {
		legend = append(legend, categoryStyles[c].Render("█")+" "+c)
	}
	b.WriteString(strings.Join(legend, "  "))
	return b.String()
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	for _, f := range data.Fields {
		b.WriteString(f + "\n")
	}
	if data.Category != "" {
		style := categoryStyles[data.Category]
		b.WriteString("category: " + style.Render(data.Category) + "\n")
	}
	if data.Error != "" {
		b.WriteString(errorStyle.Render(data.Error) + "\n")
	}
	if data.Hint != "" {
		b.WriteString(footerStyle.Render(data.Hint))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.Markdown != "" {
		out += "\n\n" + data.Markdown
	}
	return out
}
