package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/kosei/internal/app"
	"github.com/sandeepkv93/kosei/internal/derive"
	"github.com/sandeepkv93/kosei/internal/model"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewCalendar View = "Calendar"
	ViewFocus    View = "Focus"
)

// Views is the tab order.
var Views = []View{ViewTasks, ViewCalendar, ViewFocus}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	Calendar string
	Focus    string
	NextView string
	Help     string
	Quit     string
}

type FormKind string

const (
	FormCommit FormKind = "commit"
	FormManual FormKind = "manual"
)

// FormState backs the activity forms: committing a finished stopwatch
// session, or entering minutes by hand.
type FormState struct {
	Kind     FormKind
	Active   bool
	Category model.Category
	// Field is 0 for description and 1 for minutes (manual form only).
	Field int
	Err   string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	App         *app.App
	CurrentView View
	TaskCursor  int
	// WeekCursor indexes the focus chart's days; the last one is today.
	WeekCursor int
	// SelectedDate is the calendar day shown beside the month grid. Empty
	// or off-grid values fall back to today.
	SelectedDate string
	Palette     CommandPaletteState
	Form        FormState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	ctx          context.Context
	ticks        <-chan time.Time
	log          zerolog.Logger
	commandInput textinput.Model
	descInput    textinput.Model
	minutesInput textinput.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TickMsg carries one clock tick from the ticker into the update loop.
type TickMsg struct {
	At time.Time
}

// TickerStoppedMsg arrives once the ticker channel has closed.
type TickerStoppedMsg struct{}

// NewModel wires the UI to a. ticks may be nil, in which case the stopwatch
// only advances on TickMsg values sent by the caller.
func NewModel(ctx context.Context, a *app.App, ticks <-chan time.Time) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := Model{
		App:         a,
		CurrentView: ViewTasks,
		WeekCursor:  derive.WeekLength - 1,
		ctx:         ctx,
		ticks:       ticks,
		log:         zerolog.Nop(),
		Keys: GlobalKeyMap{
			Tasks:    "1",
			Calendar: "2",
			Focus:    "3",
			NextView: "tab",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	return m
}

// WithLogger returns a copy of m that logs UI events to l.
func (m Model) WithLogger(l zerolog.Logger) Model {
	m.log = l
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.descInput = textinput.New()
	m.descInput.Prompt = "what> "
	m.descInput.Placeholder = "what did you focus on?"
	m.descInput.CharLimit = 200
	m.descInput.Width = 42

	m.minutesInput = textinput.New()
	m.minutesInput.Prompt = "minutes> "
	m.minutesInput.CharLimit = 6
	m.minutesInput.Width = 8

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 12)
	m.helpViewport.SetContent(helpMarkdown())
}
