package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskwall/internal/model"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

const (
	DefaultInterval  = 15 * time.Second
	DefaultTolerance = 30 * time.Second
	DefaultBuffer    = 16
)

var ErrInvalidConfig = errors.New("scheduler: invalid config")

// Event is published after every tick that was not skipped, and on Refresh.
type Event struct {
	At       time.Time
	Alerts   []notify.Alert
	Upcoming []model.Task
}

// Result describes a single tick.
type Result struct {
	Event
	Skipped bool
}

type TaskSource interface {
	Load(ctx context.Context) ([]model.Task, error)
}

type NotifiedSet interface {
	Load(ctx context.Context) (storage.IDSet, error)
	Save(ctx context.Context, set storage.IDSet) error
}

type EnabledFlag interface {
	NotificationsEnabled(ctx context.Context) (bool, error)
}

type Config struct {
	Interval       time.Duration
	Tolerance      time.Duration
	UpcomingWindow time.Duration
	Buffer         int
}

func DefaultConfig() Config {
	return Config{
		Interval:       DefaultInterval,
		Tolerance:      DefaultTolerance,
		UpcomingWindow: notify.DefaultUpcomingWindow,
		Buffer:         DefaultBuffer,
	}
}

// Validate rejects configs where a due instant could fall between two ticks.
func (c Config) Validate() error {
	if c.Interval <= 0 || c.Tolerance <= 0 || c.UpcomingWindow <= 0 {
		return ErrInvalidConfig
	}
	if c.Interval > c.Tolerance {
		return errors.Join(ErrInvalidConfig, errors.New("interval must not exceed tolerance"))
	}
	return nil
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine polls the task store and fires one alert per task whose deadline is within
// the tolerance window of now. Ticks never overlap.
type Engine struct {
	tasks    TaskSource
	notified NotifiedSet
	enabled  EnabledFlag
	notifier notify.Notifier
	cfg      Config
	log      *log.Logger
	now      func() time.Time

	tickMu sync.Mutex

	mu      sync.Mutex
	out     chan Event
	cancel  context.CancelFunc
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(tasks TaskSource, notified NotifiedSet, enabled EnabledFlag, notifier notify.Notifier, cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1
	}
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	e := &Engine{
		tasks:    tasks,
		notified: notified,
		enabled:  enabled,
		notifier: notifier,
		cfg:      cfg,
		log:      log.StandardLogger(),
		now:      time.Now,
		out:      make(chan Event, cfg.Buffer),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

// Tick runs one due check.
func (e *Engine) Tick(ctx context.Context) (Result, error) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	now := e.now()
	res := Result{Event: Event{At: now}}

	enabled, err := e.enabled.NotificationsEnabled(ctx)
	if err != nil {
		return res, err
	}
	if !enabled || !e.notifier.Permitted() {
		res.Skipped = true
		return res, nil
	}

	tasks, err := e.tasks.Load(ctx)
	if err != nil {
		return res, err
	}
	seen, err := e.notified.Load(ctx)
	if err != nil {
		return res, err
	}

	for _, t := range tasks {
		if !t.Active() || seen.Has(t.ID) {
			continue
		}
		delta := t.Deadline.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta > e.cfg.Tolerance {
			continue
		}
		alert := notify.NewAlert(t, now)
		if err := e.notifier.Send(alert); err != nil {
			e.log.WithError(err).WithField("task", t.ID).Warn("alert delivery failed")
		}
		seen.Add(t.ID)
		res.Alerts = append(res.Alerts, alert)
	}

	if len(res.Alerts) > 0 {
		if err := e.notified.Save(ctx, seen); err != nil {
			return res, err
		}
		e.log.WithField("alerts", len(res.Alerts)).Info("due alerts fired")
	}

	res.Upcoming = notify.Upcoming(tasks, now, e.cfg.UpcomingWindow)
	e.publish(res.Event)
	return res, nil
}

// Refresh publishes the upcoming panel without checking deadlines.
func (e *Engine) Refresh(ctx context.Context) error {
	tasks, err := e.tasks.Load(ctx)
	if err != nil {
		e.log.WithError(err).Warn("upcoming refresh failed")
		return err
	}
	now := e.now()
	e.publish(Event{At: now, Upcoming: notify.Upcoming(tasks, now, e.cfg.UpcomingWindow)})
	return nil
}

func (e *Engine) publish(ev Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	select {
	case e.out <- ev:
	default:
		atomic.AddUint64(&e.dropped, 1)
	}
}

// Run ticks once per value received on ticks until ctx is done or ticks is closed.
func (e *Engine) Run(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			if _, err := e.Tick(ctx); err != nil {
				e.log.WithError(err).Warn("due check failed")
			}
		}
	}
}

// Start runs the engine on a wall-clock ticker until Stop or ctx cancellation.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	ticker := time.NewTicker(e.cfg.Interval)
	go func() {
		defer close(e.doneCh)
		defer ticker.Stop()
		e.Run(runCtx, ticker.C)
	}()
}

// Stop halts the ticker, waits for an in-flight tick and closes C.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	cancel := e.cancel
	e.mu.Unlock()

	cancel()
	<-e.doneCh

	e.mu.Lock()
	e.stopped = true
	close(e.out)
	e.mu.Unlock()
}
