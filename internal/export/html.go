package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/okenna/tasktrail/internal/domain/task"
)

var htmlTableTemplate = template.Must(template.New("table").Parse(`<table>
  <thead>
    <tr><th>Name</th><th>Start Date</th><th>Completion Date</th><th>Time Spent (s)</th><th>Completed At</th></tr>
  </thead>
  <tbody>
{{- range . }}
    <tr><td>{{ .Name }}</td><td>{{ .StartDate }}</td><td>{{ .CompletionDate }}</td><td>{{ .ElapsedSeconds }}</td><td>{{ .CompletedAt }}</td></tr>
{{- end }}
  </tbody>
</table>
`))

type htmlRow struct {
	Name           string
	StartDate      string
	CompletionDate string
	ElapsedSeconds int64
	CompletedAt    string
}

// HTMLTable renders the task list as an escaped HTML table fragment, for
// hand-off to an external PDF renderer or viewer.
func HTMLTable(tasks []task.Task) (string, error) {
	rows := make([]htmlRow, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, htmlRow{
			Name:           t.Name,
			StartDate:      t.StartDate.String(),
			CompletionDate: completionDateField(t),
			ElapsedSeconds: t.ElapsedSeconds,
			CompletedAt:    completedAtField(t),
		})
	}

	var buf bytes.Buffer
	if err := htmlTableTemplate.Execute(&buf, rows); err != nil {
		return "", fmt.Errorf("rendering html table: %w", err)
	}
	return buf.String(), nil
}
