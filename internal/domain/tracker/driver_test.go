package tracker_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/domain/tracker"
)

func TestDriver_TicksActiveTask(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEngine(t, staticCamera("p.jpg"))

	created := createTask(t, svc, "driven")
	_, err := svc.Start(ctx, created.ID)
	require.NoError(t, err)

	driver := tracker.NewDriver(svc, 5*time.Millisecond, quietLogger())
	runCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()

	err = driver.Run(runCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Greater(t, got.ElapsedSeconds, int64(0))
}

func TestDriver_StopsOnCancel(t *testing.T) {
	svc, _ := newEngine(t, staticCamera("p.jpg"))
	driver := tracker.NewDriver(svc, 5*time.Millisecond, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- driver.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("driver did not stop after cancel")
	}
}
