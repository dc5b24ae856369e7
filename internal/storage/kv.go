package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Keys of the persisted layout.
const (
	KeyTasks                = "tasks"
	KeyNotifiedTaskIDs      = "notifiedTaskIds"
	KeyTheme                = "theme"
	KeyFont                 = "font"
	KeyNotificationsEnabled = "notificationsEnabled"
)

// KV is a flat string key-value store. Set replaces the whole value in one write,
// so readers never observe a partially written value.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
