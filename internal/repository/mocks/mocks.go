package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okenna/tasktrail/internal/domain/task"
)

// TaskRepository is a mock for tracker.TaskRepository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) LoadAll(ctx context.Context) (task.Collection, error) {
	args := m.Called(ctx)
	if col, ok := args.Get(0).(task.Collection); ok {
		return col, args.Error(1)
	}
	return task.Collection{}, args.Error(1)
}

func (m *TaskRepository) SaveAll(ctx context.Context, col task.Collection) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *TaskRepository) LoadCumulativeTime(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) SaveCumulativeTime(ctx context.Context, seconds int64) error {
	args := m.Called(ctx, seconds)
	return args.Error(0)
}

// Camera is a mock for tracker.Camera.
type Camera struct {
	mock.Mock
}

func (m *Camera) Capture(ctx context.Context) (task.PhotoRef, error) {
	args := m.Called(ctx)
	return args.Get(0).(task.PhotoRef), args.Error(1)
}

// Store is a mock for storage.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *Store) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Store) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
