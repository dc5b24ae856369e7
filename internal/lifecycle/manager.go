// Package lifecycle owns every mutation of the task collection: create, complete/undo,
// soft-delete, restore and permanent delete. Each operation loads the whole collection,
// mutates it in memory, saves it back and then notifies change listeners.
package lifecycle

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

// Draft is the raw user input for a new task.
type Draft struct {
	Text     string
	Date     string // YYYY-MM-DD
	Time     string // h:mm on the 12-hour clock
	Meridiem string // AM or PM
	Category string
	Color    string
}

type CategoryCount struct {
	Name  string
	Count int
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(m *Manager) { m.loc = loc }
}

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.log = l }
}

type Manager struct {
	mu        sync.Mutex
	tasks     *storage.TaskStore
	notified  *storage.NotifiedStore
	log       *log.Logger
	now       func() time.Time
	loc       *time.Location
	listeners []func()
}

func NewManager(tasks *storage.TaskStore, notified *storage.NotifiedStore, opts ...Option) *Manager {
	m := &Manager{
		tasks:    tasks,
		notified: notified,
		log:      log.StandardLogger(),
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnChange registers fn to run after every successful mutation.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) Create(ctx context.Context, d Draft) (model.Task, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return model.Task{}, model.ErrEmptyText
	}
	deadline, err := model.ComposeDeadline(d.Date, d.Time, d.Meridiem, m.loc)
	if err != nil {
		return model.Task{}, err
	}
	now := m.now()
	if !deadline.After(now) {
		return model.Task{}, model.ErrDeadlineInPast
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	color := strings.TrimSpace(d.Color)
	if color == "" {
		color = model.DefaultColor
	}

	m.mu.Lock()
	task, err := m.createLocked(ctx, model.Task{
		Text:     text,
		Deadline: deadline.UTC(),
		Category: category,
		Color:    color,
	}, now)
	m.mu.Unlock()
	if err != nil {
		return model.Task{}, err
	}

	m.log.WithFields(log.Fields{"task": task.ID, "deadline": task.Deadline.Format(time.RFC3339)}).Info("task created")
	m.changed()
	return task, nil
}

func (m *Manager) createLocked(ctx context.Context, task model.Task, now time.Time) (model.Task, error) {
	tasks, err := m.tasks.Load(ctx)
	if err != nil {
		return model.Task{}, err
	}
	used := storage.NewIDSet()
	for _, t := range tasks {
		used.Add(t.ID)
	}
	if m.notified != nil {
		seen, err := m.notified.Load(ctx)
		if err != nil {
			return model.Task{}, err
		}
		for id := range seen {
			used.Add(id)
		}
	}
	task.ID = nextID(now, used)

	if err := m.tasks.Save(ctx, append(tasks, task)); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// nextID derives an id from the creation time, stepping past every id ever handed out
// that is still visible in the task list or the notified set.
func nextID(now time.Time, used storage.IDSet) int64 {
	id := now.UnixMilli()
	var highest int64
	for u := range used {
		if u > highest {
			highest = u
		}
	}
	if id <= highest {
		id = highest + 1
	}
	return id
}

func (m *Manager) ToggleDone(ctx context.Context, id int64) error {
	return m.mutate(ctx, id, "toggle", func(tasks []model.Task, i int) []model.Task {
		tasks[i].Done = !tasks[i].Done
		return tasks
	})
}

func (m *Manager) SoftDelete(ctx context.Context, id int64) error {
	return m.mutate(ctx, id, "delete", func(tasks []model.Task, i int) []model.Task {
		tasks[i].Deleted = true
		return tasks
	})
}

func (m *Manager) Restore(ctx context.Context, id int64) error {
	return m.mutate(ctx, id, "restore", func(tasks []model.Task, i int) []model.Task {
		tasks[i].Deleted = false
		return tasks
	})
}

func (m *Manager) PermanentlyDelete(ctx context.Context, id int64) error {
	return m.mutate(ctx, id, "purge", func(tasks []model.Task, i int) []model.Task {
		return append(tasks[:i], tasks[i+1:]...)
	})
}

// mutate applies fn to the task with id. Unknown ids are ignored without saving.
func (m *Manager) mutate(ctx context.Context, id int64, op string, fn func([]model.Task, int) []model.Task) error {
	m.mu.Lock()
	applied, err := func() (bool, error) {
		tasks, err := m.tasks.Load(ctx)
		if err != nil {
			return false, err
		}
		i := model.Find(tasks, id)
		if i < 0 {
			return false, nil
		}
		return true, m.tasks.Save(ctx, fn(tasks, i))
	}()
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if !applied {
		m.log.WithFields(log.Fields{"task": id, "op": op}).Debug("unknown task, nothing to do")
		return nil
	}
	m.log.WithFields(log.Fields{"task": id, "op": op}).Info("task updated")
	m.changed()
	return nil
}

func (m *Manager) changed() {
	m.mu.Lock()
	listeners := append([]func(){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Tasks returns the full collection, deleted tasks included.
func (m *Manager) Tasks(ctx context.Context) ([]model.Task, error) {
	return m.tasks.Load(ctx)
}

// Board returns non-deleted tasks in insertion order. An empty category or "all"
// disables the filter.
func (m *Manager) Board(ctx context.Context, category string) ([]model.Task, error) {
	tasks, err := m.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	all := category == "" || strings.EqualFold(category, "all")
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		if !all && t.Category != category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *Manager) RecycleBin(ctx context.Context) ([]model.Task, error) {
	tasks, err := m.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Deleted {
			out = append(out, t)
		}
	}
	return out, nil
}

// Categories counts non-deleted tasks per category, sorted by name.
func (m *Manager) Categories(ctx context.Context) ([]CategoryCount, error) {
	tasks, err := m.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range tasks {
		if !t.Deleted {
			counts[t.Category]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
