package report

import (
	"sort"
	"time"

	"github.com/okenna/tasktrail/internal/domain/task"
)

// Partition splits the task list into the four display buckets. The
// incomplete buckets are disjoint and cover every incomplete task: a task
// due before today is overdue regardless of its start date; otherwise it
// buckets by start date, with carried-over tasks (started in the past,
// still pending) shown under today.
type Partition struct {
	Today     []task.Task
	Overdue   []task.Task
	Future    []task.Task
	Completed []task.Task
}

// Classify partitions tasks relative to today. Completed tasks are ordered
// most recently completed first.
func Classify(tasks []task.Task, today task.Date) Partition {
	var p Partition
	for _, t := range tasks {
		switch {
		case t.IsCompleted:
			p.Completed = append(p.Completed, t)
		case t.CompletionDate != nil && t.CompletionDate.Before(today):
			p.Overdue = append(p.Overdue, t)
		case t.StartDate.After(today):
			p.Future = append(p.Future, t)
		default:
			p.Today = append(p.Today, t)
		}
	}

	sort.SliceStable(p.Completed, func(i, j int) bool {
		a, b := p.Completed[i].CompletedAt, p.Completed[j].CompletedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	return p
}

// MonthlyTotal sums elapsed seconds of tasks whose start date falls in the
// given month.
func MonthlyTotal(tasks []task.Task, year int, month time.Month) int64 {
	var total int64
	for _, t := range tasks {
		if t.StartDate.Year == year && t.StartDate.Month == month {
			total += t.ElapsedSeconds
		}
	}
	return total
}

// YearlyTotal sums elapsed seconds of tasks whose start date falls in the
// given year.
func YearlyTotal(tasks []task.Task, year int) int64 {
	var total int64
	for _, t := range tasks {
		if t.StartDate.Year == year {
			total += t.ElapsedSeconds
		}
	}
	return total
}

// DefaultStreakWindow is the number of calendar days the streak scan
// covers, ending today.
const DefaultStreakWindow = 30

// MaxStreak returns the longest run of consecutive "active" days within
// the window ending today. A day is active when any task's start date
// equals it. Single greedy backward scan, O(windowDays).
func MaxStreak(tasks []task.Task, today task.Date, windowDays int) int {
	if windowDays <= 0 {
		windowDays = DefaultStreakWindow
	}

	active := make(map[task.Date]bool, len(tasks))
	for _, t := range tasks {
		active[t.StartDate] = true
	}

	best, run := 0, 0
	day := today
	for i := 0; i < windowDays; i++ {
		if active[day] {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
		day = day.AddDays(-1)
	}
	return best
}
