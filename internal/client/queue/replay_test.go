package queue

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/models"
)

func TestReplay_Empty(t *testing.T) {
	remote := newFakeRemote()
	c := newTestCollection(t, newMemStore(), remote)

	result, err := c.Replay(context.Background())
	require.NoError(t, err)

	assert.Zero(t, result.Saved)
	assert.Zero(t, result.Failed())
	assert.NoError(t, result.Err())
	assert.Empty(t, remote.operations())
}

func TestReplay_RecoversCreateQueue(t *testing.T) {
	store := newMemStore()
	store.put("queue-storage-/api/notes[create]", `{"create_queue":["c1"]}`)
	store.put("queue-storage-/api/notes/c1", `{"title":"t"}`)
	remote := newFakeRemote()
	c := newTestCollection(t, store, remote)

	result, err := c.Replay(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Materialized)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, []string{"create:c1"}, remote.operations())

	r := c.GetByClientID("c1")
	require.NotNil(t, r)
	assert.Equal(t, "1", r.ID())
	assert.Equal(t, models.Attributes{"id": "1", "title": "t"}, r.Attributes())
	assert.Empty(t, store.keys())
}

func TestReplay_PhaseOrder(t *testing.T) {
	store := newMemStore()
	store.put("queue-storage-/api/notes[create]", `{"create_queue":["c1"]}`)
	store.put("queue-storage-/api/notes/c1", `{"title":"t"}`)
	store.put("queue-storage-/api/notes[destroy]", `{"destroy_queue":["5"]}`)
	remote := newFakeRemote()
	c := newTestCollection(t, store, remote)
	c.Add(models.Attributes{"id": "2"})
	store.put("queue-storage-/api/notes/2[update]", `{"name":"b"}`)

	result, err := c.Replay(context.Background())
	require.NoError(t, err)

	ops := remote.operations()
	require.Len(t, ops, 3)
	// Удаление выполняется только после всех сохранений
	assert.ElementsMatch(t, []string{"create:c1", "update:/api/notes/2"}, ops[:2])
	assert.Equal(t, "destroy:/api/notes/5", ops[2])

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Destroyed)
	assert.Empty(t, store.keys())
}

func TestReplay_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.put("queue-storage-/api/notes[create]", `{"create_queue":["c1"]}`)
	store.put("queue-storage-/api/notes/c1", `{"title":"t"}`)
	remote := newFakeRemote()
	c := newTestCollection(t, store, remote)

	_, err := c.Replay(ctx)
	require.NoError(t, err)

	result, err := c.Replay(ctx)
	require.NoError(t, err)

	assert.Zero(t, result.Materialized)
	assert.Zero(t, result.Saved)
	assert.Len(t, remote.operations(), 1)
	assert.Equal(t, 1, c.Len())
}

func TestReplay_FailureIsolation(t *testing.T) {
	store := newMemStore()
	remote := newFakeRemote()
	remote.setFailSave(func(req SaveRequest) error {
		if req.EntityPath == "/api/notes/2" {
			return errBackend
		}
		return nil
	})
	c := newTestCollection(t, store, remote)
	for i := 1; i <= 3; i++ {
		c.Add(models.Attributes{"id": fmt.Sprint(i)})
		store.put(fmt.Sprintf("queue-storage-/api/notes/%d[update]", i), `{"v":1}`)
	}

	result, err := c.Replay(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.SaveFailed)
	require.Len(t, result.Errors, 1)
	assert.ErrorIs(t, result.Err(), ErrRemoteSave)

	_, ok := store.raw("queue-storage-/api/notes/2[update]")
	assert.True(t, ok)
	_, ok = store.raw("queue-storage-/api/notes/1[update]")
	assert.False(t, ok)
	assert.True(t, c.Get("2").Dirty())
}

func TestReplay_DestroyFailureStaysQueued(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.put("queue-storage-/api/notes[destroy]", `{"destroy_queue":["5","6"]}`)
	remote := newFakeRemote()
	remote.setFailDestroy(func(path string) error {
		if path == "/api/notes/5" {
			return errBackend
		}
		return nil
	})
	c := newTestCollection(t, store, remote)

	result, err := c.Replay(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Destroyed)
	assert.Equal(t, 1, result.DestroyFailed)
	assert.ErrorIs(t, result.Err(), ErrRemoteDestroy)

	raw, _ := store.raw("queue-storage-/api/notes[destroy]")
	assert.JSONEq(t, `{"destroy_queue":[5]}`, raw)

	remote.setFailDestroy(nil)
	result, err = c.Replay(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Destroyed)
	assert.Empty(t, store.keys())
}

func TestReplay_DestroyKnownRecord(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	remote := newFakeRemote()
	remote.setFailDestroy(func(string) error { return errBackend })
	c := newTestCollection(t, store, remote)
	r := c.Add(models.Attributes{"id": "9"})
	require.Error(t, r.Destroy(ctx))

	remote.setFailDestroy(nil)
	result, err := c.Replay(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Destroyed)
	assert.Zero(t, c.Len())
	assert.Empty(t, store.keys())
}

func TestReplay_QueueLoadFailure(t *testing.T) {
	store := newMemStore()
	store.failGet = func(key string) bool { return key == "queue-storage-/api/notes[create]" }
	remote := newFakeRemote()
	c := newTestCollection(t, store, remote)

	result, err := c.Replay(context.Background())
	require.ErrorIs(t, err, ErrLocalStorage)
	assert.Nil(t, result)
	assert.Empty(t, remote.operations())
}

func TestReplay_ConcurrencyLimit(t *testing.T) {
	store := newMemStore()
	remote := newFakeRemote()
	c := newTestCollection(t, store, remote, WithConcurrency(1))
	for i := 1; i <= 5; i++ {
		c.Add(models.Attributes{"id": fmt.Sprint(i)})
		store.put(fmt.Sprintf("queue-storage-/api/notes/%d[update]", i), `{"v":2}`)
	}

	result, err := c.Replay(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.Saved)
	assert.Empty(t, store.keys())
}
