package export_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/domain/report"
	"github.com/okenna/tasktrail/internal/domain/task"
	"github.com/okenna/tasktrail/internal/export"
)

func sampleTasks() []task.Task {
	due := task.NewDate(2024, time.January, 5)
	completedAt := time.Date(2024, time.January, 4, 18, 30, 0, 0, time.UTC)
	return []task.Task{
		{
			ID:             1,
			Name:           "Write report, final",
			StartDate:      task.NewDate(2024, time.January, 1),
			CompletionDate: &due,
			ElapsedSeconds: 3723,
			IsCompleted:    true,
			CompletedAt:    &completedAt,
		},
		{
			ID:             2,
			Name:           "Groceries",
			StartDate:      task.NewDate(2024, time.January, 2),
			ElapsedSeconds: 60,
		},
	}
}

func TestCSV(t *testing.T) {
	content, err := export.CSV(sampleTasks())
	require.NoError(t, err)

	lines := []string{
		"Name,Start Date,Completion Date,Time Spent (s),Completed At",
		`"Write report, final",2024-01-01,2024-01-05,3723,2024-01-04T18:30:00Z`,
		"Groceries,2024-01-02,,60,",
	}
	require.Equal(t, lines[0]+"\n"+lines[1]+"\n"+lines[2]+"\n", content,
		"embedded commas must be quoted, empty fields stay empty")
}

func TestCSV_EmptyList(t *testing.T) {
	content, err := export.CSV(nil)
	require.NoError(t, err)
	require.Equal(t, "Name,Start Date,Completion Date,Time Spent (s),Completed At\n", content)
}

func TestHTMLTable_Escapes(t *testing.T) {
	tasks := []task.Task{{
		ID:        1,
		Name:      `<script>alert("x")</script>`,
		StartDate: task.NewDate(2024, time.January, 1),
	}}

	content, err := export.HTMLTable(tasks)
	require.NoError(t, err)
	require.NotContains(t, content, "<script>alert")
	require.Contains(t, content, "&lt;script&gt;")
	require.Contains(t, content, "<th>Time Spent (s)</th>")
}

func TestFileSink(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "exports")
	sink := export.NewFileSink(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

	path, err := sink.Write(ctx, "tasks_export.csv", "Name\n")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Name\n", string(data))
}

func TestWritePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	generatedAt := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)

	err := export.WritePDF(path, sampleTasks(), generatedAt, report.GroupByWeek)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
