package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/taskwall/internal/config"
	"github.com/sandeepkv93/taskwall/internal/lifecycle"
	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/scheduler"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

// app is everything a command needs, built from the resolved config.
type app struct {
	cfg      config.Config
	logger   *log.Logger
	kv       storage.KV
	tasks    *storage.TaskStore
	notified *storage.NotifiedStore
	prefs    *storage.PreferenceStore
	manager  *lifecycle.Manager
	notifier notify.Notifier
	engine   *scheduler.Engine
	now      func() time.Time

	closeLog func()
}

// loadConfig reads the config file, writing defaults on first run, then applies
// TASKWALL_* overrides.
func loadConfig(opts *rootOptions) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, fmt.Errorf("locate config: %w", err)
		}
		path = p
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, verbose bool, out io.Writer, toFile bool) (*log.Logger, func(), error) {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log_level: %v", config.ErrInvalid, err)
	}
	if verbose || os.Getenv("DEBUG") != "" {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	if !toFile {
		logger.SetOutput(out)
		return logger, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() { _ = f.Close() }, nil
}

func openKV(ctx context.Context, cfg config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return storage.OpenSQLite(cfg.DBPath)
	case config.BackendRedis:
		return storage.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case config.BackendMemory:
		return storage.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, cfg.Backend)
	}
}

// openApp wires storage, lifecycle and scheduler. In live mode (board or watch)
// the log goes to the log file and every task change republishes the upcoming panel.
func openApp(ctx context.Context, opts *rootOptions, stderr io.Writer, live bool) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(cfg, opts.verbose, stderr, live)
	if err != nil {
		return nil, err
	}

	kv, err := openKV(ctx, cfg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	logger.WithField("backend", cfg.Backend).Debug("store opened")

	notifier, err := notify.ByName(cfg.Notifier)
	if err != nil {
		_ = kv.Close()
		closeLog()
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		kv:       kv,
		tasks:    storage.NewTaskStore(kv, logger),
		notified: storage.NewNotifiedStore(kv, logger),
		prefs:    storage.NewPreferenceStore(kv),
		notifier: notifier,
		now:      time.Now,
		closeLog: closeLog,
	}
	a.manager = lifecycle.NewManager(a.tasks, a.notified, lifecycle.WithLogger(logger))
	a.engine, err = scheduler.NewEngine(a.tasks, a.notified, a.prefs, notifier, cfg.Scheduler(), scheduler.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	if live {
		a.manager.OnChange(func() {
			if err := a.engine.Refresh(ctx); err != nil {
				logger.WithError(err).Warn("refresh upcoming")
			}
		})
	}
	return a, nil
}

func (a *app) Close() {
	if a.engine != nil {
		a.engine.Stop()
	}
	if err := a.kv.Close(); err != nil {
		a.logger.WithError(err).Warn("close store")
	}
	a.closeLog()
}
