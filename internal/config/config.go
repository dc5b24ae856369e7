package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/sandeepkv93/taskwall/internal/notify"
	"github.com/sandeepkv93/taskwall/internal/scheduler"
	"github.com/sandeepkv93/taskwall/internal/storage"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskwall.db"
	DefaultLogName        = "taskwall.log"
	DefaultRedisAddr      = "localhost:6379"
	EnvPrefix             = "TASKWALL_"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var ErrInvalid = errors.New("config: invalid")

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) D() time.Duration { return time.Duration(d) }

type Config struct {
	Backend        string   `toml:"backend"`
	DBPath         string   `toml:"db_path"`
	RedisAddr      string   `toml:"redis_addr"`
	RedisPrefix    string   `toml:"redis_prefix"`
	PollInterval   Duration `toml:"poll_interval"`
	DueTolerance   Duration `toml:"due_tolerance"`
	UpcomingWindow Duration `toml:"upcoming_window"`
	Notifier       string   `toml:"notifier"`
	EventBuffer    int      `toml:"event_buffer"`
	LogLevel       string   `toml:"log_level"`
	LogFile        string   `toml:"log_file"`
}

func Default() Config {
	return Config{
		Backend:        BackendSQLite,
		DBPath:         DefaultDBName,
		RedisAddr:      DefaultRedisAddr,
		RedisPrefix:    storage.DefaultRedisPrefix,
		PollInterval:   Duration(scheduler.DefaultInterval),
		DueTolerance:   Duration(scheduler.DefaultTolerance),
		UpcomingWindow: Duration(notify.DefaultUpcomingWindow),
		Notifier:       "desktop",
		EventBuffer:    scheduler.DefaultBuffer,
		LogLevel:       "info",
		LogFile:        DefaultLogName,
	}
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskwall", DefaultConfigFileName), nil
}

// LoadOrCreate reads path, writing the defaults there first if it does not exist.
// Relative db_path and log_file values resolve against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogName
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) resolve(dir string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(dir, c.LogFile)
	}
	return c
}

// FromEnv overlays TASKWALL_* variables on base. Unparseable values are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := getEnvString("REDIS_PREFIX"); ok {
		cfg.RedisPrefix = v
	}
	if v, ok := getEnvDuration("POLL_INTERVAL"); ok {
		cfg.PollInterval = Duration(v)
	}
	if v, ok := getEnvDuration("DUE_TOLERANCE"); ok {
		cfg.DueTolerance = Duration(v)
	}
	if v, ok := getEnvDuration("UPCOMING_WINDOW"); ok {
		cfg.UpcomingWindow = Duration(v)
	}
	if v, ok := getEnvString("NOTIFIER"); ok {
		cfg.Notifier = strings.ToLower(v)
	}
	if v, ok := getEnvInt("EVENT_BUFFER"); ok && v > 0 {
		cfg.EventBuffer = v
	}
	if v, ok := getEnvString("LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return fmt.Errorf("%w: db_path is required for the sqlite backend", ErrInvalid)
		}
	case BackendRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("%w: redis_addr is required for the redis backend", ErrInvalid)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if _, err := notify.ByName(c.Notifier); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Scheduler().Validate(); err != nil {
		return fmt.Errorf("%w: poll_interval and due_tolerance must be positive with poll_interval <= due_tolerance, upcoming_window must be positive", ErrInvalid)
	}
	return nil
}

// Scheduler maps the polling keys onto the engine config.
func (c Config) Scheduler() scheduler.Config {
	return scheduler.Config{
		Interval:       c.PollInterval.D(),
		Tolerance:      c.DueTolerance.D(),
		UpcomingWindow: c.UpcomingWindow.D(),
		Buffer:         c.EventBuffer,
	}
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(EnvPrefix + name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw, ok := getEnvString(name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
