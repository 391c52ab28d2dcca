package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// Config defines host configuration for the tracking engine.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Streak  StreakConfig  `yaml:"streak"`
	Export  ExportConfig  `yaml:"export"`
	Photos  PhotosConfig  `yaml:"photos"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type StreakConfig struct {
	WindowDays int `yaml:"window_days"`
}

type ExportConfig struct {
	Dir string `yaml:"dir"`
}

type PhotosConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads configuration from an optional YAML file and environment
// variables.
func Load() (Config, error) {
	cfg := Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "tasktrail.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Streak: StreakConfig{
			WindowDays: 30,
		},
		Export: ExportConfig{
			Dir: "exports",
		},
		Photos: PhotosConfig{
			Dir: "photos",
		},
	}

	if path := os.Getenv("TASKTRAIL_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if backend := os.Getenv("TASKTRAIL_STORAGE_BACKEND"); backend != "" {
		cfg.Storage.Backend = backend
	}
	if path := os.Getenv("TASKTRAIL_STORAGE_PATH"); path != "" {
		cfg.Storage.Path = path
	}
	if level := os.Getenv("TASKTRAIL_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if windowStr := os.Getenv("TASKTRAIL_STREAK_WINDOW"); windowStr != "" {
		window, err := strconv.Atoi(windowStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKTRAIL_STREAK_WINDOW: %w", err)
		}
		cfg.Streak.WindowDays = window
	}
	if dir := os.Getenv("TASKTRAIL_EXPORT_DIR"); dir != "" {
		cfg.Export.Dir = dir
	}
	if dir := os.Getenv("TASKTRAIL_PHOTOS_DIR"); dir != "" {
		cfg.Photos.Dir = dir
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendBadger, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
