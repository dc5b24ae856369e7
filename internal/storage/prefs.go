package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskwall/internal/model"
)

type Preferences struct {
	Theme                model.Theme
	Font                 string
	NotificationsEnabled bool
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme: model.ThemeDefault,
		Font:  model.DefaultFont,
	}
}

type PreferenceStore struct {
	kv KV
}

func NewPreferenceStore(kv KV) *PreferenceStore {
	return &PreferenceStore{kv: kv}
}

func (s *PreferenceStore) Load(ctx context.Context) (Preferences, error) {
	p := DefaultPreferences()

	theme, err := s.get(ctx, KeyTheme)
	if err != nil {
		return p, err
	}
	if model.Theme(theme).IsValid() {
		p.Theme = model.Theme(theme)
	}

	font, err := s.get(ctx, KeyFont)
	if err != nil {
		return p, err
	}
	if strings.TrimSpace(font) != "" {
		p.Font = font
	}

	enabled, err := s.NotificationsEnabled(ctx)
	if err != nil {
		return p, err
	}
	p.NotificationsEnabled = enabled
	return p, nil
}

func (s *PreferenceStore) Save(ctx context.Context, p Preferences) error {
	if !p.Theme.IsValid() {
		return fmt.Errorf("storage: unknown theme %q", p.Theme)
	}
	if err := s.kv.Set(ctx, KeyTheme, string(p.Theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.kv.Set(ctx, KeyFont, p.Font); err != nil {
		return fmt.Errorf("save font: %w", err)
	}
	return s.SetNotificationsEnabled(ctx, p.NotificationsEnabled)
}

// NotificationsEnabled is true only when the stored value is exactly "true".
func (s *PreferenceStore) NotificationsEnabled(ctx context.Context) (bool, error) {
	raw, err := s.get(ctx, KeyNotificationsEnabled)
	if err != nil {
		return false, err
	}
	return raw == "true", nil
}

func (s *PreferenceStore) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if err := s.kv.Set(ctx, KeyNotificationsEnabled, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("save notifications flag: %w", err)
	}
	return nil
}

func (s *PreferenceStore) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("storage: unknown theme %q", theme)
	}
	if err := s.kv.Set(ctx, KeyTheme, string(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *PreferenceStore) get(ctx context.Context, key string) (string, error) {
	v, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}
