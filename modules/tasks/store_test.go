package tasks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/crudkit"
	"github.com/dmitrymomot/crudkit/modules/tasks"
)

// storeSuite runs the Store contract against any implementation.
func storeSuite(t *testing.T, newStore func(t *testing.T) tasks.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("insert then get", func(t *testing.T) {
		store := newStore(t)
		task := tasks.NewTask("write report", "quarterly numbers")
		require.NoError(t, store.Insert(ctx, task))

		got, found, err := store.Get(ctx, task.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "write report", got.Title)
		assert.Equal(t, "quarterly numbers", got.Notes)
		assert.Equal(t, tasks.StatusPending, got.Status)
		assert.Equal(t, "/tasks/"+task.ID, got.URL)
	})

	t.Run("get miss", func(t *testing.T) {
		store := newStore(t)
		_, found, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("list is ordered by creation time", func(t *testing.T) {
		store := newStore(t)
		base := time.Now().UTC().Truncate(time.Millisecond)
		for i, title := range []string{"first", "second", "third"} {
			task := tasks.NewTask(title, "")
			task.CreatedAt = base.Add(time.Duration(i) * time.Second)
			task.UpdatedAt = task.CreatedAt
			require.NoError(t, store.Insert(ctx, task))
		}

		got, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].Title)
		assert.Equal(t, "second", got[1].Title)
		assert.Equal(t, "third", got[2].Title)
	})

	t.Run("update", func(t *testing.T) {
		store := newStore(t)
		task := tasks.NewTask("draft", "")
		require.NoError(t, store.Insert(ctx, task))

		task.Title = "final"
		task.Status = tasks.StatusDone
		task.UpdatedAt = time.Now().UTC()
		require.NoError(t, store.Update(ctx, task))

		got, found, err := store.Get(ctx, task.ID)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "final", got.Title)
		assert.Equal(t, tasks.StatusDone, got.Status)
	})

	t.Run("update missing", func(t *testing.T) {
		store := newStore(t)
		err := store.Update(ctx, tasks.NewTask("ghost", ""))
		assert.ErrorIs(t, err, crudkit.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		task := tasks.NewTask("temp", "")
		require.NoError(t, store.Insert(ctx, task))
		require.NoError(t, store.Delete(ctx, task.ID))

		_, found, err := store.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("delete missing", func(t *testing.T) {
		store := newStore(t)
		assert.ErrorIs(t, store.Delete(ctx, "nope"), crudkit.ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeSuite(t, func(t *testing.T) tasks.Store {
		return tasks.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()
	storeSuite(t, func(t *testing.T) tasks.Store {
		store, err := tasks.OpenSQLite(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}
