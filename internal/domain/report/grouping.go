package report

import (
	"fmt"

	"github.com/okenna/tasktrail/internal/domain/task"
)

// Report grouping modes.
const (
	GroupByNone = "None"
	GroupByDay  = "Daily"
	GroupByWeek = "Weekly"
)

// GroupKey returns the bucket key for a date under the given grouping.
// Empty string means no grouping.
func GroupKey(d task.Date, groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return d.String()
	case GroupByWeek:
		year, week := d.Time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return ""
}

// GroupTitle returns the human heading for a date's bucket.
func GroupTitle(d task.Date, groupBy string) string {
	switch groupBy {
	case GroupByDay:
		return d.Time().Format("Monday, 02 Jan 2006")
	case GroupByWeek:
		start, end := weekRange(d)
		return fmt.Sprintf("%s - %s", start.Time().Format("Jan 02"), end.Time().Format("Jan 02, 2006"))
	}
	return ""
}

// weekRange returns the Monday and Sunday of the date's week.
func weekRange(d task.Date) (task.Date, task.Date) {
	offset := int(d.Time().Weekday())
	if offset == 0 {
		offset = 7
	}
	start := d.AddDays(-offset + 1)
	return start, start.AddDays(6)
}
