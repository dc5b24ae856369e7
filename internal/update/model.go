package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskwall/internal/lifecycle"
	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/scheduler"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

type View string

const (
	ViewBoard    View = "Board"
	ViewAdd      View = "Add"
	ViewBin      View = "Bin"
	ViewSettings View = "Settings"
	ViewBell     View = "Upcoming"
)

var viewOrder = []View{ViewBoard, ViewAdd, ViewBin, ViewSettings, ViewBell}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Board    string
	Add      string
	Bin      string
	Settings string
	Bell     string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type formField int

const (
	fieldText formField = iota
	fieldDate
	fieldTime
	fieldMeridiem
	fieldCategory
	fieldColor
	fieldCount
)

var fieldLabels = [fieldCount]string{"text", "date", "time", "am/pm", "category", "color"}

type AddFormState struct {
	Focus formField
	Err   string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Deps are the services the TUI drives. Engine and Notifier may be nil.
type Deps struct {
	Tasks        *lifecycle.Manager
	Prefs        *storage.PreferenceStore
	Engine       *scheduler.Engine
	Notifier     notify.Notifier
	NotifierName string
	Window       time.Duration
	Clock        func() time.Time
}

type Model struct {
	CurrentView   View
	Filter        string
	Board         []model.Task
	Bin           []model.Task
	Categories    []lifecycle.CategoryCount
	Upcoming      []model.Task
	Notifications []Notification
	Prefs         storage.Preferences
	Palette       CommandPaletteState
	Form          AddFormState
	HelpVisible   bool
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx          context.Context
	tasks        *lifecycle.Manager
	prefStore    *storage.PreferenceStore
	engine       *scheduler.Engine
	notifier     notify.Notifier
	notifierName string
	window       time.Duration
	now          func() time.Time

	boardCursor int
	binCursor   int

	boardTable   table.Model
	binTable     table.Model
	formInputs   []textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	guideView    viewport.Model
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

// SchedulerEventMsg carries a scheduler tick or refresh into the update loop.
type SchedulerEventMsg struct {
	Event scheduler.Event
}
