package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/okenna/tasktrail/internal/storage"
)

const (
	settingsKey    = "settings"
	exportPrefsKey = "export_prefs"
)

// Settings holds the user profile and app preferences.
type Settings struct {
	Version              int        `json:"version"`
	Username             string     `json:"username,omitempty"`
	Email                string     `json:"email,omitempty"`
	JoinedAt             *time.Time `json:"joined_at,omitempty"`
	Region               string     `json:"region,omitempty"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	AutoMarkAfterDays    int        `json:"auto_mark_after_days,omitempty"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Version:              schemaVersion,
		Region:               "Global",
		NotificationsEnabled: true,
		AutoMarkAfterDays:    3,
	}
}

// ExportPrefs holds the export screen preferences.
type ExportPrefs struct {
	Version          int    `json:"version"`
	Format           string `json:"format"`
	IncludeCompleted bool   `json:"include_completed"`
	GroupBy          string `json:"group_by,omitempty"`
}

// DefaultExportPrefs returns the export preferences of a fresh install.
func DefaultExportPrefs() ExportPrefs {
	return ExportPrefs{
		Version:          schemaVersion,
		Format:           "csv",
		IncludeCompleted: true,
	}
}

// SettingsRepository persists settings and export preferences through the
// persistence port.
type SettingsRepository struct {
	store  storage.Store
	logger *slog.Logger
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(store storage.Store, logger *slog.Logger) *SettingsRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsRepository{store: store, logger: logger}
}

// LoadSettings returns persisted settings, or defaults on a new install.
func (r *SettingsRepository) LoadSettings(ctx context.Context) (Settings, error) {
	var s Settings
	if err := r.load(ctx, settingsKey, &s); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return DefaultSettings(), nil
		}
		return Settings{}, err
	}
	return s, nil
}

// SaveSettings replaces persisted settings.
func (r *SettingsRepository) SaveSettings(ctx context.Context, s Settings) error {
	s.Version = schemaVersion
	return r.save(ctx, settingsKey, s)
}

// LoadExportPrefs returns persisted export preferences, or defaults.
func (r *SettingsRepository) LoadExportPrefs(ctx context.Context) (ExportPrefs, error) {
	var p ExportPrefs
	if err := r.load(ctx, exportPrefsKey, &p); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return DefaultExportPrefs(), nil
		}
		return ExportPrefs{}, err
	}
	return p, nil
}

// SaveExportPrefs replaces persisted export preferences.
func (r *SettingsRepository) SaveExportPrefs(ctx context.Context, p ExportPrefs) error {
	p.Version = schemaVersion
	return r.save(ctx, exportPrefsKey, p)
}

func (r *SettingsRepository) load(ctx context.Context, key string, out any) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding %s: %w", key, ErrCorrupt)
	}
	return nil
}

func (r *SettingsRepository) save(ctx context.Context, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
