package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/okenna/tasktrail/internal/domain/task"
)

// Service is the task lifecycle engine. It owns the in-memory task
// collection, the single active-task marker, and the cumulative-time
// counter. Every operation is serialized: the one-second tick and
// user-initiated transitions never interleave mid-mutation, and each
// mutation persists one full snapshot before the next one is applied.
type Service struct {
	repo   TaskRepository
	camera Camera
	logger *slog.Logger
	now    func() time.Time

	mu         sync.Mutex
	col        task.Collection
	cumulative int64
	loaded     bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new lifecycle engine.
func NewService(repo TaskRepository, camera Camera, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:   repo,
		camera: camera,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	Name           string
	Description    string
	StartDate      task.Date
	CompletionDate *task.Date
}

// UpdateRequest describes a task edit. Nil fields are left unchanged.
type UpdateRequest struct {
	ID                  int64
	Name                *string
	Description         *string
	StartDate           *task.Date
	CompletionDate      *task.Date
	ClearCompletionDate bool
}

// Create adds a new task with a fresh id and zeroed timer state.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	name, err := task.NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}

	start := req.StartDate
	if start.IsZero() {
		start = task.DateOf(s.now())
	}

	t := task.Task{
		ID:          s.nextID(),
		Name:        name,
		Description: req.Description,
		StartDate:   start,
	}
	if req.CompletionDate != nil {
		d := *req.CompletionDate
		t.CompletionDate = &d
	}

	prev := s.col.Clone()
	s.col.Tasks = append(s.col.Tasks, t)
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	s.logger.Info("task created", "task_id", t.ID, "name", t.Name)
	created := t.Clone()
	return &created, nil
}

// Start begins accruing time on the task. Only one task may run at a time;
// a start while another task is active fails without mutating anything.
// The camera is invoked before the transition and a cancelled capture
// leaves the task untouched.
func (s *Service) Start(ctx context.Context, id int64) (*task.Task, error) {
	return s.startTimer(ctx, id, false)
}

// Resume restarts a previously started task. Same single-active-task guard
// as Start; fails on a task that has never been started.
func (s *Service) Resume(ctx context.Context, id int64) (*task.Task, error) {
	return s.startTimer(ctx, id, true)
}

func (s *Service) startTimer(ctx context.Context, id int64, resume bool) (*task.Task, error) {
	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := s.checkStartable(id, resume); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()

	// Capture happens outside the lock; the guard is re-checked after the
	// await in case another start won the race meanwhile.
	ref, err := s.camera.Capture(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStartable(id, resume); err != nil {
		return nil, err
	}

	prev := s.col.Clone()
	t := s.col.Find(id)
	t.IsRunning = true
	t.HasStartedOnce = true
	t.Photos = append(t.Photos, ref)
	t.Photo = ref
	s.col.ActiveTaskID = id
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	s.logger.Info("task started", "task_id", id, "resume", resume)
	started := t.Clone()
	return &started, nil
}

// checkStartable validates the single-active-task guard and the per-task
// preconditions for start/resume. Callers hold the lock.
func (s *Service) checkStartable(id int64, resume bool) error {
	t := s.col.Find(id)
	if t == nil {
		return task.ErrTaskNotFound
	}
	if t.IsCompleted {
		return task.ErrTaskCompleted
	}
	if resume && !t.HasStartedOnce {
		return task.ErrNeverStarted
	}
	if s.col.ActiveTaskID != 0 {
		return task.ErrAnotherTaskRunning
	}
	return nil
}

// Stop halts the timer on the active task.
func (s *Service) Stop(ctx context.Context, id int64) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	t := s.col.Find(id)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}
	if s.col.ActiveTaskID != id || !t.IsRunning {
		return nil, task.ErrNotRunning
	}

	prev := s.col.Clone()
	t.IsRunning = false
	s.col.ActiveTaskID = 0
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	s.logger.Info("task stopped", "task_id", id, "elapsed_seconds", t.ElapsedSeconds)
	stopped := t.Clone()
	return &stopped, nil
}

// Tick advances elapsed time by one second on the active task and on the
// cumulative counter. It is a no-op when no task is active.
func (s *Service) Tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if s.col.ActiveTaskID == 0 {
		return nil
	}

	t := s.col.Find(s.col.ActiveTaskID)
	if t == nil || !t.IsRunning {
		// Marker drift; clear it rather than accrue against nothing.
		prev := s.col.Clone()
		s.col.ActiveTaskID = 0
		s.logger.Warn("cleared stale active-task marker")
		return s.persist(ctx, prev)
	}

	prev := s.col.Clone()
	prevCumulative := s.cumulative
	t.ElapsedSeconds++
	s.cumulative++
	if err := s.persist(ctx, prev); err != nil {
		s.cumulative = prevCumulative
		return err
	}
	if err := s.repo.SaveCumulativeTime(ctx, s.cumulative); err != nil {
		return fmt.Errorf("saving cumulative time: %w", err)
	}
	return nil
}

// MarkDone completes the task, stopping its timer first if it was active.
func (s *Service) MarkDone(ctx context.Context, id int64) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	t := s.col.Find(id)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}

	prev := s.col.Clone()
	if s.col.ActiveTaskID == id {
		s.col.ActiveTaskID = 0
	}
	t.IsRunning = false
	t.IsCompleted = true
	at := s.now()
	t.CompletedAt = &at
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	s.logger.Info("task completed", "task_id", id)
	done := t.Clone()
	return &done, nil
}

// MarkUndone reopens a completed task. The timer stays stopped.
func (s *Service) MarkUndone(ctx context.Context, id int64) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	t := s.col.Find(id)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}

	prev := s.col.Clone()
	t.IsCompleted = false
	t.CompletedAt = nil
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	s.logger.Info("task reopened", "task_id", id)
	undone := t.Clone()
	return &undone, nil
}

// Delete removes a task. A running task must be stopped first.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	t := s.col.Find(id)
	if t == nil {
		return task.ErrTaskNotFound
	}
	if t.IsRunning || s.col.ActiveTaskID == id {
		return task.ErrTaskRunning
	}

	prev := s.col.Clone()
	s.col.Remove(id)
	if err := s.persist(ctx, prev); err != nil {
		return err
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// Update edits name, description or dates. It never touches timer or
// completion state.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	t := s.col.Find(req.ID)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}

	prev := s.col.Clone()
	if req.Name != nil {
		name, err := task.NormalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.ClearCompletionDate {
		t.CompletionDate = nil
	} else if req.CompletionDate != nil {
		d := *req.CompletionDate
		t.CompletionDate = &d
	}
	if err := s.persist(ctx, prev); err != nil {
		return nil, err
	}

	updated := t.Clone()
	return &updated, nil
}

// Get returns a copy of the task with the given id.
func (s *Service) Get(ctx context.Context, id int64) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	t := s.col.Find(id)
	if t == nil {
		return nil, task.ErrTaskNotFound
	}
	found := t.Clone()
	return &found, nil
}

// List returns a copy of all tasks in insertion order.
func (s *Service) List(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.col.Clone().Tasks, nil
}

// Active returns the id of the running task, or 0 if none.
func (s *Service) Active(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	return s.col.ActiveTaskID, nil
}

// CumulativeTime returns total seconds accrued while any task was running.
// The counter survives task deletion, so it is not derivable from the list.
func (s *Service) CumulativeTime(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	return s.cumulative, nil
}

func (s *Service) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	col, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	cumulative, err := s.repo.LoadCumulativeTime(ctx)
	if err != nil {
		return fmt.Errorf("loading cumulative time: %w", err)
	}

	repaired := reconcile(&col)
	s.col = col
	s.cumulative = cumulative
	s.loaded = true

	if repaired {
		s.logger.Warn("repaired running flags against active-task marker")
		if err := s.repo.SaveAll(ctx, s.col); err != nil {
			return fmt.Errorf("saving repaired tasks: %w", err)
		}
	}
	return nil
}

// reconcile makes the persisted active-task marker authoritative: tasks
// running without holding the marker are stopped, a marker pointing at a
// missing or completed task is dropped, and the marked task is running.
func reconcile(col *task.Collection) bool {
	changed := false

	if col.ActiveTaskID != 0 {
		active := col.Find(col.ActiveTaskID)
		if active == nil || active.IsCompleted {
			col.ActiveTaskID = 0
			changed = true
		}
	}

	for i := range col.Tasks {
		t := &col.Tasks[i]
		running := t.ID == col.ActiveTaskID
		if t.IsRunning != running {
			t.IsRunning = running
			changed = true
		}
	}
	return changed
}

// persist writes the full snapshot; on failure the in-memory collection is
// rolled back so memory and disk never diverge.
func (s *Service) persist(ctx context.Context, prev task.Collection) error {
	if err := s.repo.SaveAll(ctx, s.col); err != nil {
		s.col = prev
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}

// nextID assigns millisecond-timestamp ids, bumped past the current
// maximum so rapid creations stay unique and monotonic.
func (s *Service) nextID() int64 {
	id := s.now().UnixMilli()
	for _, t := range s.col.Tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}
