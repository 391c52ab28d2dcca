package tracker

import (
	"context"

	"github.com/okenna/tasktrail/internal/domain/task"
)

// TaskRepository persists the task collection and the cumulative-time
// counter as full snapshots. There is exactly one logical writer, so every
// save is a last-writer-wins replacement.
type TaskRepository interface {
	LoadAll(ctx context.Context) (task.Collection, error)
	SaveAll(ctx context.Context, col task.Collection) error
	LoadCumulativeTime(ctx context.Context) (int64, error)
	SaveCumulativeTime(ctx context.Context, seconds int64) error
}

// Camera is the photo capture collaborator invoked by start and resume.
// A dismissed capture returns task.ErrCaptureCancelled.
type Camera interface {
	Capture(ctx context.Context) (task.PhotoRef, error)
}

// CameraFunc adapts a function to the Camera interface.
type CameraFunc func(ctx context.Context) (task.PhotoRef, error)

// Capture implements Camera.
func (f CameraFunc) Capture(ctx context.Context) (task.PhotoRef, error) {
	return f(ctx)
}
