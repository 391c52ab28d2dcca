// Package photo stores captured images on disk and adapts a host capture
// source to the engine's camera collaborator.
package photo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/okenna/tasktrail/internal/domain/task"
	"github.com/okenna/tasktrail/internal/domain/tracker"
)

// CaptureFunc is the host-side capture source: it returns the raw image
// bytes, or cancelled=true when the user dismissed the camera.
type CaptureFunc func(ctx context.Context) (data []byte, cancelled bool, err error)

// Library stores captured photos under uuid-derived names inside one
// directory. Refs are the bare filenames, so the directory can move
// without invalidating persisted tasks.
type Library struct {
	dir    string
	logger *slog.Logger
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{dir: dir, logger: logger}
}

// Add stores one captured image and returns its reference.
func (l *Library) Add(_ context.Context, data []byte) (task.PhotoRef, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating photo directory: %w", err)
	}
	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing photo: %w", err)
	}
	l.logger.Debug("photo stored", "ref", name)
	return task.PhotoRef(name), nil
}

// Path returns the on-disk location of a stored photo.
func (l *Library) Path(ref task.PhotoRef) string {
	return filepath.Join(l.dir, string(ref))
}

// Camera binds a capture source to the library, yielding the collaborator
// the lifecycle engine invokes on start and resume. A dismissed capture
// surfaces task.ErrCaptureCancelled and stores nothing.
func (l *Library) Camera(capture CaptureFunc) tracker.Camera {
	return tracker.CameraFunc(func(ctx context.Context) (task.PhotoRef, error) {
		data, cancelled, err := capture(ctx)
		if err != nil {
			return "", fmt.Errorf("capturing photo: %w", err)
		}
		if cancelled {
			return "", task.ErrCaptureCancelled
		}
		return l.Add(ctx, data)
	})
}
