// Package export renders the task list for hand-off. Formatters produce
// content only; writing files and invoking the share sheet belongs to the
// sink and the host.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/okenna/tasktrail/internal/domain/task"
)

var csvHeader = []string{"Name", "Start Date", "Completion Date", "Time Spent (s)", "Completed At"}

// CSV renders the task list as comma-separated values. Free-text fields
// are quoted per RFC 4180, so embedded delimiters survive.
func CSV(tasks []task.Task) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, t := range tasks {
		record := []string{
			t.Name,
			t.StartDate.String(),
			completionDateField(t),
			strconv.FormatInt(t.ElapsedSeconds, 10),
			completedAtField(t),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}

func completionDateField(t task.Task) string {
	if t.CompletionDate == nil {
		return ""
	}
	return t.CompletionDate.String()
}

func completedAtField(t task.Task) string {
	if t.CompletedAt == nil {
		return ""
	}
	return t.CompletedAt.Format(time.RFC3339)
}
