package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForTickCmd(m.ticks)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}

		switch typed.String() {
		case "/":
			return m.openPalette(""), nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			return m, nil
		case m.Keys.NextView:
			m.CurrentView = nextView(m.CurrentView)
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewFocus:
			return m.handleFocusKey(typed)
		}
	case tea.WindowSizeMsg:
		m.helpViewport.Width = typed.Width / 2
		return m, nil
	case TickMsg:
		return m.onTick()
	case TickerStoppedMsg:
		return m, nil
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.log.Error().Err(typed.Err).Msg("app error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	snap := m.App.Snapshot()

	var left, right string
	switch m.CurrentView {
	case ViewTasks:
		left = m.renderTaskPanel(snap)
		right = m.renderCalendarPanel(snap)
	case ViewCalendar:
		left = m.renderCalendarPanel(snap)
		right = m.renderSelectedDay(snap)
	case ViewFocus:
		left = m.renderFocusPanel(snap)
		right = m.renderTaskPanel(snap)
	}
	if m.HelpVisible {
		right = m.renderHelpView()
	}

	overlay := m.renderCommandPalette()
	if overlay == "" {
		overlay = m.renderForm(snap)
	}

	tabs := make([]views.TabData, 0, len(Views))
	for i, v := range Views {
		tabs = append(tabs, views.TabData{Label: fmt.Sprintf("%d %s", i+1, v), Active: v == m.CurrentView})
	}

	return views.RenderApp(views.AppData{
		Header:     "kosei",
		Clock:      derive.HeaderClock(snap.Now),
		Tabs:       tabs,
		LeftPane:   left,
		RightPane:  right,
		Overlay:    overlay,
		StatusLine: m.Status.Text,
		IsError:    m.Status.IsError,
		Footer:     fmt.Sprintf("keys: %s/%s/%s views | %s next | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.Calendar, m.Keys.Focus, m.Keys.NextView, m.Keys.Help, m.Keys.Quit),
	})
}

func nextView(v View) View {
	for i, candidate := range Views {
		if candidate == v {
			return Views[(i+1)%len(Views)]
		}
	}
	return ViewTasks
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewCalendar, ViewFocus:
		return true
	default:
		return false
	}
}
