package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/repository"
	"github.com/okenna/tasktrail/internal/storage"
)

func TestSettings_DefaultsOnNewInstall(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSettingsRepository(storage.NewMemory(), quietLogger())

	settings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, repository.DefaultSettings(), settings)

	prefs, err := repo.LoadExportPrefs(ctx)
	require.NoError(t, err)
	require.Equal(t, repository.DefaultExportPrefs(), prefs)
}

func TestSettings_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := repository.NewSettingsRepository(store, quietLogger())

	settings := repository.Settings{
		Username:             "Okenna",
		Email:                "okenna@example.com",
		Region:               "EU",
		NotificationsEnabled: false,
		AutoMarkAfterDays:    7,
	}
	require.NoError(t, repo.SaveSettings(ctx, settings))

	loaded, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, "Okenna", loaded.Username)
	require.Equal(t, 7, loaded.AutoMarkAfterDays)
	require.False(t, loaded.NotificationsEnabled)
	require.NotZero(t, loaded.Version, "saved blobs carry a schema version")

	prefs := repository.ExportPrefs{Format: "pdf", IncludeCompleted: false, GroupBy: "Weekly"}
	require.NoError(t, repo.SaveExportPrefs(ctx, prefs))

	loadedPrefs, err := repo.LoadExportPrefs(ctx)
	require.NoError(t, err)
	require.Equal(t, "pdf", loadedPrefs.Format)
	require.Equal(t, "Weekly", loadedPrefs.GroupBy)
}

func TestSettings_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := repository.NewSettingsRepository(store, quietLogger())

	require.NoError(t, store.Set(ctx, "settings", "{broken"))
	_, err := repo.LoadSettings(ctx)
	require.ErrorIs(t, err, repository.ErrCorrupt)
}
