package task

import "time"

// PhotoRef is an opaque reference to a captured image. The engine only
// appends and displays these; storage and rendering belong to the host.
type PhotoRef string

// Task is one tracked unit of work.
type Task struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	StartDate      Date       `json:"start_date"`
	CompletionDate *Date      `json:"completion_date,omitempty"`
	IsRunning      bool       `json:"is_running"`
	HasStartedOnce bool       `json:"has_started_once"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	IsCompleted    bool       `json:"is_completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Photos         []PhotoRef `json:"photos,omitempty"`
	Photo          PhotoRef   `json:"photo,omitempty"`
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	out := t
	if t.CompletionDate != nil {
		d := *t.CompletionDate
		out.CompletionDate = &d
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	if t.Photos != nil {
		out.Photos = append([]PhotoRef(nil), t.Photos...)
	}
	return out
}

// Collection is the unit of persistence: the full ordered task list plus
// the single active-task marker. Ordering is insertion order.
type Collection struct {
	ActiveTaskID int64  `json:"active_task_id"`
	Tasks        []Task `json:"tasks"`
}

// Find returns a pointer into the collection for the task with the given
// id, or nil if absent.
func (c *Collection) Find(id int64) *Task {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i]
		}
	}
	return nil
}

// Remove deletes the task with the given id, preserving order. It reports
// whether a task was removed.
func (c *Collection) Remove(id int64) bool {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	out := Collection{ActiveTaskID: c.ActiveTaskID}
	if c.Tasks != nil {
		out.Tasks = make([]Task, len(c.Tasks))
		for i, t := range c.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	return out
}
