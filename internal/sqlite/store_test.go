package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okenna/tasktrail/internal/storage"
)

func TestStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewTestDB(t))

	_, err := store.Get(ctx, "tasks")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "tasks", `{"version":1}`))
	value, err := store.Get(ctx, "tasks")
	require.NoError(t, err)
	require.Equal(t, `{"version":1}`, value)

	// Set replaces the previous value.
	require.NoError(t, store.Set(ctx, "tasks", `{"version":1,"tasks":[]}`))
	value, err = store.Get(ctx, "tasks")
	require.NoError(t, err)
	require.Equal(t, `{"version":1,"tasks":[]}`, value)

	require.NoError(t, store.Remove(ctx, "tasks"))
	_, err = store.Get(ctx, "tasks")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)

	err = store.Remove(ctx, "tasks")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewTestDB(t))

	require.NoError(t, store.Set(ctx, "tasks", "a"))
	require.NoError(t, store.Set(ctx, "cumulative_time", "b"))

	require.NoError(t, store.Remove(ctx, "tasks"))
	value, err := store.Get(ctx, "cumulative_time")
	require.NoError(t, err)
	require.Equal(t, "b", value)
}
