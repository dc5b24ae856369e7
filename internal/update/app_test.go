package update

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskwall/internal/lifecycle"
	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/scheduler"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

var testNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	mgr    *lifecycle.Manager
	tasks  *storage.TaskStore
	prefs  *storage.PreferenceStore
	engine *scheduler.Engine
	now    time.Time
}

func newTestEnv(t *testing.T, notifier notify.Notifier) *testEnv {
	t.Helper()
	logger := log.New()
	logger.SetOutput(io.Discard)

	kv := storage.NewMemoryKV()
	env := &testEnv{now: testNow}
	clock := func() time.Time { return env.now }
	env.tasks = storage.NewTaskStore(kv, logger)
	notified := storage.NewNotifiedStore(kv, logger)
	env.prefs = storage.NewPreferenceStore(kv)
	env.mgr = lifecycle.NewManager(env.tasks, notified,
		lifecycle.WithClock(clock), lifecycle.WithLocation(time.UTC), lifecycle.WithLogger(logger))
	engine, err := scheduler.NewEngine(env.tasks, notified, env.prefs, notifier, scheduler.DefaultConfig(),
		scheduler.WithClock(clock), scheduler.WithLogger(logger))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	env.engine = engine
	return env
}

func (e *testEnv) model(notifier notify.Notifier, name string) Model {
	return NewModel(Deps{
		Tasks:        e.mgr,
		Prefs:        e.prefs,
		Engine:       e.engine,
		Notifier:     notifier,
		NotifierName: name,
		Clock:        func() time.Time { return e.now },
	})
}

func (e *testEnv) create(t *testing.T, text, date, clock, meridiem, category string) model.Task {
	t.Helper()
	task, err := e.mgr.Create(context.Background(), lifecycle.Draft{
		Text: text, Date: date, Time: clock, Meridiem: meridiem, Category: category,
	})
	if err != nil {
		t.Fatalf("create %q: %v", text, err)
	}
	return task
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := env.model(nil, "")
	if m.CurrentView != ViewBoard {
		t.Fatalf("expected default view %q, got %q", ViewBoard, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.Prefs.Theme != model.ThemeDefault || m.Prefs.NotificationsEnabled {
		t.Fatalf("unexpected default prefs: %+v", m.Prefs)
	}
	if m.Board == nil || len(m.Board) != 0 {
		t.Fatalf("expected empty board, got %#v", m.Board)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := press(t, env.model(nil, ""), "3")
	if m.CurrentView != ViewBin {
		t.Fatalf("expected bin view, got %q", m.CurrentView)
	}
	m = press(t, m, "4")
	if m.CurrentView != ViewSettings {
		t.Fatalf("expected settings view, got %q", m.CurrentView)
	}
	m = press(t, m, "5")
	if m.CurrentView != ViewBell {
		t.Fatalf("expected upcoming view, got %q", m.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	updated, _ := env.model(nil, "").Update(SwitchViewMsg{View: ViewSettings})
	next := updated.(Model)
	if next.CurrentView != ViewSettings {
		t.Fatalf("expected settings view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Calendar")})
	next = updated.(Model)
	if next.CurrentView != ViewSettings {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	updated, _ := env.model(nil, "").Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	updated, cmd := env.model(nil, "").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestAddFormCreatesTask(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := press(t, env.model(nil, ""), "2")
	if m.CurrentView != ViewAdd {
		t.Fatalf("expected add view, got %q", m.CurrentView)
	}
	m = press(t, m, "Call", "space", "mom", "tab", "2026-02-10", "tab", "9:30", "tab", "PM", "tab", "Home", "enter")

	if m.CurrentView != ViewBoard {
		t.Fatalf("expected return to board, got %q (form error %q)", m.CurrentView, m.Form.Err)
	}
	if len(m.Board) != 1 || m.Board[0].Text != "Call mom" || m.Board[0].Category != "Home" {
		t.Fatalf("unexpected board: %+v", m.Board)
	}
	if !m.Board[0].Deadline.Equal(time.Date(2026, 2, 10, 21, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline: %s", m.Board[0].Deadline)
	}
	if m.Status.Text != "added: Call mom" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	for i, in := range m.formInputs {
		if in.Value() != "" {
			t.Fatalf("form field %d not cleared: %q", i, in.Value())
		}
	}
}

func TestAddFormRejectsPastDeadline(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := press(t, env.model(nil, ""), "2", "late", "tab", "2026-02-09", "tab", "11:00", "tab", "AM", "enter")
	if m.CurrentView != ViewAdd {
		t.Fatalf("expected to stay on the form, got %q", m.CurrentView)
	}
	if m.Form.Err != "deadline must be in the future" || !m.Status.IsError {
		t.Fatalf("unexpected form error %q status %+v", m.Form.Err, m.Status)
	}
	if len(m.Board) != 0 {
		t.Fatalf("rejected task reached the board: %+v", m.Board)
	}

	m = press(t, m, "esc")
	if m.CurrentView != ViewBoard {
		t.Fatalf("esc should return to board, got %q", m.CurrentView)
	}
}

func TestBoardToggleDeleteRestorePurge(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	a := env.create(t, "write report", "2026-02-10", "9:00", "AM", "Work")
	env.create(t, "buy milk", "2026-02-10", "6:00", "PM", "Home")
	m := env.model(nil, "")

	m = press(t, m, "space")
	if !m.Board[0].Done || m.Board[0].ID != a.ID {
		t.Fatalf("expected first task done: %+v", m.Board)
	}
	m = press(t, m, "space")
	if m.Board[0].Done {
		t.Fatal("second toggle should reopen the task")
	}

	m = press(t, m, "d")
	if len(m.Board) != 1 || len(m.Bin) != 1 || m.Bin[0].ID != a.ID {
		t.Fatalf("expected task in bin: board=%+v bin=%+v", m.Board, m.Bin)
	}

	m = press(t, m, "3", "r")
	if len(m.Bin) != 0 || len(m.Board) != 2 {
		t.Fatalf("expected restore: board=%+v bin=%+v", m.Board, m.Bin)
	}

	m = press(t, m, "1", "d", "3", "x")
	all, err := env.tasks.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 || all[0].Text != "buy milk" {
		t.Fatalf("expected purge to remove the task for good, got %+v", all)
	}
}

func TestBoardFilterCycles(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	env.create(t, "report", "2026-02-10", "9:00", "AM", "Work")
	env.create(t, "dishes", "2026-02-10", "6:00", "PM", "Home")
	m := env.model(nil, "")

	m = press(t, m, "f")
	if m.Filter != "Home" || len(m.Board) != 1 || m.Board[0].Text != "dishes" {
		t.Fatalf("expected Home filter, got %q %+v", m.Filter, m.Board)
	}
	m = press(t, m, "f")
	if m.Filter != "Work" || len(m.Board) != 1 {
		t.Fatalf("expected Work filter, got %q %+v", m.Filter, m.Board)
	}
	m = press(t, m, "f")
	if m.Filter != "" || len(m.Board) != 2 {
		t.Fatalf("expected filter reset, got %q %+v", m.Filter, m.Board)
	}
}

func TestPaletteCommands(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := env.model(nil, "")

	m = press(t, m, "/", "add pay rent @ 2026-02-10 9:00 AM #Home", "enter")
	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	if len(m.Board) != 1 || m.Board[0].Text != "pay rent" || m.Board[0].Category != "Home" {
		t.Fatalf("palette add failed: %+v status=%+v", m.Board, m.Status)
	}

	m = press(t, m, "/", "notify on", "enter")
	if !m.Prefs.NotificationsEnabled {
		t.Fatalf("expected notifications on, status=%+v", m.Status)
	}
	m = press(t, m, "/", "theme ocean", "enter")
	if m.Prefs.Theme != model.ThemeOcean {
		t.Fatalf("expected ocean theme, got %q", m.Prefs.Theme)
	}

	m = press(t, m, "/", "done 999", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task with id 999") {
		t.Fatalf("expected unknown id error, got %+v", m.Status)
	}

	m = press(t, m, "/", "bogus", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := press(t, env.model(nil, ""), "/", "rm 1", "esc")
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("expected palette closed, got %+v", m.Palette)
	}
}

func TestSettingsKeys(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	m := press(t, env.model(notify.NoopNotifier{}, "none"), "4", "t")
	if m.Prefs.Theme != model.ThemeDark {
		t.Fatalf("expected dark theme, got %q", m.Prefs.Theme)
	}
	m = press(t, m, "n")
	if !m.Prefs.NotificationsEnabled {
		t.Fatal("expected notifications enabled")
	}
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "not permitted") {
		t.Fatalf("expected permission warning, got %+v", m.Status)
	}
	stored, err := env.prefs.NotificationsEnabled(context.Background())
	if err != nil || !stored {
		t.Fatalf("expected persisted flag, got %v %v", stored, err)
	}
	m = press(t, m, "n")
	if m.Prefs.NotificationsEnabled || m.Status.Text != "notifications off" {
		t.Fatalf("expected notifications off, got %+v %+v", m.Prefs, m.Status)
	}
}

func TestInitWithEngineReturnsCmd(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	if cmd := env.model(nil, "").Init(); cmd == nil {
		t.Fatal("expected event wait cmd when an engine is attached")
	}
	bare := NewModel(Deps{Tasks: env.mgr})
	if cmd := bare.Init(); cmd != nil {
		t.Fatal("expected no cmd without an engine")
	}
}

func TestSchedulerEventUpdatesBellAndRearms(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	task := env.create(t, "standup", "2026-02-09", "12:10", "PM", "Work")
	m := env.model(nil, "")

	alert := notify.NewAlert(task, testNow)
	updated, cmd := m.Update(SchedulerEventMsg{Event: scheduler.Event{
		At:       testNow,
		Alerts:   []notify.Alert{alert},
		Upcoming: []model.Task{task},
	}})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected listener rearm cmd")
	}
	if len(next.Notifications) != 1 || next.Notifications[0].Title != notify.AlertTitle {
		t.Fatalf("unexpected notifications: %+v", next.Notifications)
	}
	if !strings.HasPrefix(next.Status.Text, "Task due: standup - ") {
		t.Fatalf("unexpected status: %q", next.Status.Text)
	}
	if out := next.View(); !strings.Contains(out, "bell: 1") {
		t.Fatalf("expected bell badge in header: %q", out)
	}
}

func TestEngineTickReachesModel(t *testing.T) {
	env := newTestEnv(t, notify.InAppNotifier{})
	env.create(t, "standup", "2026-02-09", "12:10", "PM", "Work")
	if err := env.prefs.SetNotificationsEnabled(context.Background(), true); err != nil {
		t.Fatalf("enable: %v", err)
	}
	m := env.model(notify.InAppNotifier{}, "inapp")

	env.now = testNow.Add(9*time.Minute + 45*time.Second)
	if _, err := env.engine.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	msg := waitForEventCmd(env.engine.C())()
	updated, _ := m.Update(msg)
	next := updated.(Model)
	if len(next.Notifications) != 1 || !strings.HasPrefix(next.Notifications[0].Body, "standup - ") {
		t.Fatalf("expected alert to reach the model, got %+v", next.Notifications)
	}
	if len(next.Upcoming) != 1 {
		t.Fatalf("expected upcoming panel from event, got %+v", next.Upcoming)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	env := newTestEnv(t, notify.NoopNotifier{})
	env.create(t, "report", "2026-02-10", "9:00", "AM", "Work")
	m := env.model(nil, "")
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"taskwall | notifications: off", "status: all good", "1 Board", "report"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}

	m = press(t, m, "?")
	if !m.HelpVisible || !strings.Contains(m.View(), "help: board") {
		t.Fatal("expected help panel after ?")
	}
}
