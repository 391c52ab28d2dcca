package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, "tasktrail.db", cfg.Storage.Path)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, 30, cfg.Streak.WindowDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TASKTRAIL_STORAGE_BACKEND", config.BackendBadger)
	t.Setenv("TASKTRAIL_STORAGE_PATH", "/tmp/data")
	t.Setenv("TASKTRAIL_STREAK_WINDOW", "14")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.BackendBadger, cfg.Storage.Backend)
	require.Equal(t, "/tmp/data", cfg.Storage.Path)
	require.Equal(t, 14, cfg.Streak.WindowDays)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  backend: memory
log:
  level: debug
`), 0o644))
	t.Setenv("TASKTRAIL_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.BackendMemory, cfg.Storage.Backend)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("TASKTRAIL_STORAGE_BACKEND", "redis")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoad_RejectsBadStreakWindow(t *testing.T) {
	t.Setenv("TASKTRAIL_STREAK_WINDOW", "soon")

	_, err := config.Load()
	require.Error(t, err)
}
