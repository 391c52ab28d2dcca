package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/okenna/tasktrail/internal/domain/task"
	"github.com/okenna/tasktrail/internal/storage"
)

// Canonical storage keys. Older builds used a different key per screen
// rewrite; everything now lives under one key per entity.
const (
	tasksKey          = "tasks"
	cumulativeTimeKey = "cumulative_time"
)

const schemaVersion = 1

// Legacy keys probed once on first load, oldest rewrite first.
var legacyTaskKeys = []string{"tasks_data", "taskHistory"}

// TaskRepository persists the task collection and the cumulative-time
// counter through the persistence port. Every save is a full-snapshot
// replacement; it owns no business rules.
type TaskRepository struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(store storage.Store, logger *slog.Logger) *TaskRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskRepository{store: store, logger: logger}
}

// taskEnvelope is the persisted layout of the task collection.
type taskEnvelope struct {
	Version      int         `json:"version"`
	ActiveTaskID int64       `json:"active_task_id"`
	Tasks        []task.Task `json:"tasks"`
}

// LoadAll returns the persisted collection. A missing key is a new
// install and loads empty; an unreadable blob surfaces ErrCorrupt.
// Pre-versioning blobs and legacy keys are migrated in place.
func (r *TaskRepository) LoadAll(ctx context.Context) (task.Collection, error) {
	raw, err := r.store.Get(ctx, tasksKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return r.loadLegacy(ctx)
	}
	if err != nil {
		return task.Collection{}, fmt.Errorf("reading tasks: %w", err)
	}

	var env taskEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Version >= 1 {
		return task.Collection{ActiveTaskID: env.ActiveTaskID, Tasks: env.Tasks}, nil
	}

	// The canonical key may still hold a pre-versioning bare array.
	col, ok := decodeLegacyTasks(raw)
	if !ok {
		return task.Collection{}, fmt.Errorf("decoding tasks: %w", ErrCorrupt)
	}
	r.logger.Info("migrated unversioned task blob", "tasks", len(col.Tasks))
	if err := r.SaveAll(ctx, col); err != nil {
		return task.Collection{}, err
	}
	return col, nil
}

// SaveAll replaces the persisted collection. Last-writer-wins; there is
// exactly one writer.
func (r *TaskRepository) SaveAll(ctx context.Context, col task.Collection) error {
	env := taskEnvelope{
		Version:      schemaVersion,
		ActiveTaskID: col.ActiveTaskID,
		Tasks:        col.Tasks,
	}
	if env.Tasks == nil {
		env.Tasks = []task.Task{}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	if err := r.store.Set(ctx, tasksKey, string(data)); err != nil {
		return fmt.Errorf("writing tasks: %w", err)
	}
	return nil
}

// LoadCumulativeTime returns the process-wide seconds counter. Missing is
// zero; the bare-integer form written by older builds is accepted.
func (r *TaskRepository) LoadCumulativeTime(ctx context.Context) (int64, error) {
	raw, err := r.store.Get(ctx, cumulativeTimeKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading cumulative time: %w", err)
	}

	var env struct {
		Version int   `json:"version"`
		Seconds int64 `json:"seconds"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Version >= 1 {
		return env.Seconds, nil
	}
	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil && seconds >= 0 {
		return seconds, nil
	}
	return 0, fmt.Errorf("decoding cumulative time: %w", ErrCorrupt)
}

// SaveCumulativeTime replaces the counter.
func (r *TaskRepository) SaveCumulativeTime(ctx context.Context, seconds int64) error {
	data, err := json.Marshal(struct {
		Version int   `json:"version"`
		Seconds int64 `json:"seconds"`
	}{Version: schemaVersion, Seconds: seconds})
	if err != nil {
		return fmt.Errorf("encoding cumulative time: %w", err)
	}
	if err := r.store.Set(ctx, cumulativeTimeKey, string(data)); err != nil {
		return fmt.Errorf("writing cumulative time: %w", err)
	}
	return nil
}

// loadLegacy probes the storage keys earlier rewrites used. A found blob
// is migrated under the canonical key and the old key removed.
func (r *TaskRepository) loadLegacy(ctx context.Context) (task.Collection, error) {
	for _, key := range legacyTaskKeys {
		raw, err := r.store.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return task.Collection{}, fmt.Errorf("reading tasks: %w", err)
		}

		col, ok := decodeLegacyTasks(raw)
		if !ok {
			return task.Collection{}, fmt.Errorf("decoding legacy tasks under %q: %w", key, ErrCorrupt)
		}
		if err := r.SaveAll(ctx, col); err != nil {
			return task.Collection{}, err
		}
		if err := r.store.Remove(ctx, key); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
			return task.Collection{}, fmt.Errorf("removing legacy key %q: %w", key, err)
		}
		r.logger.Info("migrated legacy task blob", "key", key, "tasks", len(col.Tasks))
		return col, nil
	}
	return task.Collection{}, nil
}

// legacyTask accepts the field spellings older screens persisted
// inconsistently.
type legacyTask struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Desc           string   `json:"desc"`
	StartDate      string   `json:"startDate"`
	CompletionDate string   `json:"completionDate"`
	Compdate       string   `json:"compdate"`
	IsRunning      bool     `json:"isRunning"`
	HasStartedOnce bool     `json:"hasStartedOnce"`
	Tspent         *int64   `json:"tspent"`
	Duration       *int64   `json:"duration"`
	IsCompleted    bool     `json:"isCompleted"`
	CompletedAt    string   `json:"completedAt"`
	Photo          string   `json:"photo"`
	Photos         []string `json:"photos"`
}

// decodeLegacyTasks decodes a bare JSON task array in any of the legacy
// schemas. Synthetic debug rows (negative ids) are dropped. The active
// marker was never persisted by the old screens, so it is rebuilt from the
// first running task and any extra running flags are cleared.
func decodeLegacyTasks(raw string) (task.Collection, bool) {
	var rows []legacyTask
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return task.Collection{}, false
	}

	col := task.Collection{Tasks: []task.Task{}}
	for _, row := range rows {
		if row.ID < 0 {
			continue
		}

		t := task.Task{
			ID:             row.ID,
			Name:           row.Name,
			Description:    row.Description,
			HasStartedOnce: row.HasStartedOnce,
			IsCompleted:    row.IsCompleted,
			Photo:          task.PhotoRef(row.Photo),
		}
		if t.Description == "" {
			t.Description = row.Desc
		}
		if d, err := task.ParseDate(row.StartDate); err == nil {
			t.StartDate = d
		}
		completion := row.CompletionDate
		if completion == "" {
			completion = row.Compdate
		}
		if d, err := task.ParseDate(completion); err == nil {
			t.CompletionDate = &d
		}
		if row.Tspent != nil {
			t.ElapsedSeconds = *row.Tspent
		} else if row.Duration != nil {
			t.ElapsedSeconds = *row.Duration
		}
		if t.IsCompleted {
			if at, err := time.Parse(time.RFC3339, row.CompletedAt); err == nil {
				t.CompletedAt = &at
			}
		}
		for _, p := range row.Photos {
			t.Photos = append(t.Photos, task.PhotoRef(p))
		}
		if t.Photo != "" && len(t.Photos) == 0 {
			t.Photos = []task.PhotoRef{t.Photo}
		}

		if row.IsRunning && !t.IsCompleted && col.ActiveTaskID == 0 {
			t.IsRunning = true
			t.HasStartedOnce = true
			col.ActiveTaskID = t.ID
		}

		col.Tasks = append(col.Tasks, t)
	}
	return col, true
}
