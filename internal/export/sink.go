package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Sink receives rendered export content. Share-sheet invocation stays
// with the host; the engine only produces content strings.
type Sink interface {
	Write(ctx context.Context, filename, content string) (string, error)
}

// FileSink writes exports into a directory and returns the full path.
type FileSink struct {
	dir    string
	logger *slog.Logger
}

// NewFileSink creates a sink rooted at dir.
func NewFileSink(dir string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{dir: dir, logger: logger}
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, filename, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	s.logger.Info("export written", "path", path)
	return path, nil
}
