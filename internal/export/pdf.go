package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/okenna/tasktrail/internal/domain/report"
	"github.com/okenna/tasktrail/internal/domain/task"
)

var pdfHeaders = []string{"Name", "Start Date", "Completion Date", "Time Spent", "Completed At"}

var pdfGrid = []uint{3, 2, 2, 2, 3}

// WritePDF renders the task history report to a PDF file, optionally
// grouped by day or week of start date.
func WritePDF(path string, tasks []task.Task, generatedAt time.Time, groupBy string) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Task History", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(generatedAt.Format("2006-01-02"), props.Text{
					Top:   3,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	if groupBy == "" || groupBy == report.GroupByNone {
		writeTaskTable(m, tasks)
		return m.OutputFileAndClose(path)
	}

	// Group preserving first-seen order of start dates.
	groups := make(map[string][]task.Task)
	var keys []string
	titles := make(map[string]string)
	for _, t := range tasks {
		key := report.GroupKey(t.StartDate, groupBy)
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
			titles[key] = report.GroupTitle(t.StartDate, groupBy)
		}
		groups[key] = append(groups[key], t)
	}

	for _, key := range keys {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(titles[key], props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  12,
				})
			})
		})
		writeTaskTable(m, groups[key])
	}
	return m.OutputFileAndClose(path)
}

func writeTaskTable(m pdf.Maroto, tasks []task.Task) {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.Name,
			t.StartDate.String(),
			completionDateField(t),
			formatDuration(t.ElapsedSeconds),
			completedAtField(t),
		})
	}

	m.TableList(pdfHeaders, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: pdfGrid,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: pdfGrid,
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	h := int64(d.Hours())
	m := int64(d.Minutes()) % 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}
