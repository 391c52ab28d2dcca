package repository_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/domain/task"
	"github.com/okenna/tasktrail/internal/repository"
	"github.com/okenna/tasktrail/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRepo(t *testing.T) (*repository.TaskRepository, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	return repository.NewTaskRepository(store, quietLogger()), store
}

func TestLoadAll_NewInstall(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	col, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Empty(t, col.Tasks)
	require.Zero(t, col.ActiveTaskID)

	total, err := repo.LoadCumulativeTime(ctx)
	require.NoError(t, err)
	require.Zero(t, total)
}

func TestSaveAll_RoundTripIsByteStable(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	completedAt := time.Date(2024, time.January, 5, 12, 0, 0, 0, time.UTC)
	due := task.NewDate(2024, time.January, 5)
	col := task.Collection{
		ActiveTaskID: 2,
		Tasks: []task.Task{
			{
				ID:             1,
				Name:           "done task",
				Description:    "with, comma",
				StartDate:      task.NewDate(2024, time.January, 1),
				CompletionDate: &due,
				HasStartedOnce: true,
				ElapsedSeconds: 42,
				IsCompleted:    true,
				CompletedAt:    &completedAt,
				Photos:         []task.PhotoRef{"a.jpg", "b.jpg"},
				Photo:          "b.jpg",
			},
			{
				ID:             2,
				Name:           "running task",
				StartDate:      task.NewDate(2024, time.January, 2),
				IsRunning:      true,
				HasStartedOnce: true,
			},
		},
	}
	require.NoError(t, repo.SaveAll(ctx, col))

	first, err := store.Get(ctx, "tasks")
	require.NoError(t, err)

	loaded, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, col, loaded)

	require.NoError(t, repo.SaveAll(ctx, loaded))
	second, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	require.Equal(t, first, second, "save(load()) must not rewrite bytes")
}

func TestLoadAll_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	require.NoError(t, store.Set(ctx, "tasks", "{not json"))

	_, err := repo.LoadAll(ctx)
	require.ErrorIs(t, err, repository.ErrCorrupt)
}

func TestLoadAll_MigratesLegacyKey(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	legacy := `[
		{"id":-1,"name":"Dummy Task","tspent":0},
		{"id":100,"name":"old style","desc":"carried","startDate":"2024-01-02",
		 "compdate":"2024-01-10","tspent":30,"isRunning":true,"hasStartedOnce":true,
		 "photo":"cap.jpg"},
		{"id":101,"name":"second runner","duration":5,"isRunning":true}
	]`
	require.NoError(t, store.Set(ctx, "tasks_data", legacy))

	col, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, col.Tasks, 2, "synthetic debug row dropped")

	first := col.Tasks[0]
	require.Equal(t, int64(100), first.ID)
	require.Equal(t, "carried", first.Description)
	require.Equal(t, task.NewDate(2024, time.January, 2), first.StartDate)
	require.NotNil(t, first.CompletionDate)
	require.Equal(t, task.NewDate(2024, time.January, 10), *first.CompletionDate)
	require.Equal(t, int64(30), first.ElapsedSeconds)
	require.True(t, first.IsRunning)
	require.Equal(t, []task.PhotoRef{"cap.jpg"}, first.Photos)

	// Only one task may keep the timer after migration.
	require.Equal(t, int64(100), col.ActiveTaskID)
	require.False(t, col.Tasks[1].IsRunning)
	require.Equal(t, int64(5), col.Tasks[1].ElapsedSeconds)

	// The blob now lives under the canonical key; the legacy key is gone.
	_, err = store.Get(ctx, "tasks_data")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
	_, err = store.Get(ctx, "tasks")
	require.NoError(t, err)

	// A later load reads the canonical blob directly.
	again, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, col, again)
}

func TestLoadAll_MigratesUnversionedCanonicalBlob(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	require.NoError(t, store.Set(ctx, "tasks",
		`[{"id":7,"name":"bare array","startDate":"2024-03-01","tspent":12}]`))

	col, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, col.Tasks, 1)
	require.Equal(t, int64(12), col.Tasks[0].ElapsedSeconds)
}

func TestCumulativeTime(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepo(t)

	require.NoError(t, repo.SaveCumulativeTime(ctx, 77))
	total, err := repo.LoadCumulativeTime(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(77), total)

	// Older builds wrote the counter as a bare integer string.
	require.NoError(t, store.Set(ctx, "cumulative_time", "123"))
	total, err = repo.LoadCumulativeTime(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(123), total)

	require.NoError(t, store.Set(ctx, "cumulative_time", "junk"))
	_, err = repo.LoadCumulativeTime(ctx)
	require.ErrorIs(t, err, repository.ErrCorrupt)
}
