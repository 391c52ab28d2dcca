package task

import "errors"

var (
	// ErrTaskNotFound indicates the task id is absent from the collection.
	ErrTaskNotFound = errors.New("task not found")
	// ErrAnotherTaskRunning indicates a start or resume while a different
	// task holds the timer. The caller must stop the current task first.
	ErrAnotherTaskRunning = errors.New("another task is running; stop it first")
	// ErrTaskRunning indicates an operation that requires a stopped task,
	// such as delete.
	ErrTaskRunning = errors.New("task is running; stop it first")
	// ErrNotRunning indicates a stop on a task that is not the active one.
	ErrNotRunning = errors.New("task is not running")
	// ErrNeverStarted indicates a resume on a task that was never started.
	ErrNeverStarted = errors.New("task has never been started")
	// ErrTaskCompleted indicates a timer operation on a completed task.
	ErrTaskCompleted = errors.New("task is completed")
	// ErrCaptureCancelled indicates the user dismissed the camera. The
	// triggering operation leaves all state unchanged.
	ErrCaptureCancelled = errors.New("photo capture cancelled")
	// ErrInvalidName indicates an empty or blank task name.
	ErrInvalidName = errors.New("task name must not be empty")
)
