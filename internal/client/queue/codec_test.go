package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophqueue/internal/models"
)

func TestLoadAttributes_Missing(t *testing.T) {
	store := newMemStore()

	attrs, found, err := loadAttributes(context.Background(), store.mock, "missing")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, attrs)
}

func TestSaveLoadAttributes(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	require.NoError(t, saveAttributes(ctx, store.mock, "k", models.Attributes{"name": "a"}))

	raw, ok := store.raw("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"a"}`, raw)

	attrs, found, err := loadAttributes(ctx, store.mock, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.Attributes{"name": "a"}, attrs)
}

func TestSaveAttributes_Empty(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	require.NoError(t, saveAttributes(ctx, store.mock, "k", nil))

	raw, ok := store.raw("k")
	require.True(t, ok)
	assert.Equal(t, `{}`, raw)
}

func TestLoadAttributes_Corrupted(t *testing.T) {
	store := newMemStore()
	store.put("k", "not json")

	_, _, err := loadAttributes(context.Background(), store.mock, "k")
	assert.Error(t, err)
}

func TestQueueFormat(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	require.NoError(t, saveQueue(ctx, store.mock, "c", createQueue, []string{"c1", "c2"}))
	require.NoError(t, saveQueue(ctx, store.mock, "d", destroyQueue, []string{"5", "a-1", "007", "9007199254740993"}))
	require.NoError(t, saveQueue(ctx, store.mock, "n", createQueue, []string{"5"}))

	raw, _ := store.raw("c")
	assert.JSONEq(t, `{"create_queue":["c1","c2"]}`, raw)
	// Целочисленные id сервера остаются числами
	raw, _ = store.raw("d")
	assert.JSONEq(t, `{"destroy_queue":[5,"a-1","007",9007199254740993]}`, raw)
	raw, _ = store.raw("n")
	assert.JSONEq(t, `{"create_queue":["5"]}`, raw)

	ids, err := loadQueue(ctx, store.mock, "d", destroyQueue)
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "a-1", "007", "9007199254740993"}, ids)
}

func TestLoadQueue(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	// Числовые id и дубликаты допустимы во входных данных
	store.put("d", `{"destroy_queue":[5,"5","7"]}`)

	ids, err := loadQueue(ctx, store.mock, "d", destroyQueue)
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "7"}, ids)

	ids, err = loadQueue(ctx, store.mock, "missing", createQueue)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveQueue_EmptyDeletesKey(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.put("c", `{"create_queue":["c1"]}`)

	require.NoError(t, saveQueue(ctx, store.mock, "c", createQueue, nil))

	_, ok := store.raw("c")
	assert.False(t, ok)
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "", idString(nil))
	assert.Equal(t, "abc", idString("abc"))
	assert.Equal(t, "42", idString(float64(42)))
	assert.Equal(t, "42", idString(42))
	assert.Equal(t, "42", idString(int64(42)))
}

func TestUnionWithout(t *testing.T) {
	ids := []string{"a"}

	assert.Equal(t, []string{"a", "b"}, union(ids, "b"))
	assert.Equal(t, []string{"a"}, union(ids, "a"))
	assert.Equal(t, []string{"a"}, ids)

	assert.Equal(t, []string{"b"}, without([]string{"a", "b", "a"}, "a"))
	assert.Empty(t, without(nil, "a"))
}
