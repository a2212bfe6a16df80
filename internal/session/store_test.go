package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/model"
	"taskflow/internal/storage"
)

type failingStorage struct {
	storage.Storage
}

func (failingStorage) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func record(at time.Time, seconds int) model.SessionRecord {
	return model.NewSessionRecord(model.KindPomodoro, seconds, true, at)
}

func TestAppendEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, storage.NewMemory())
	base := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 105; i++ {
		_, err := store.Append(ctx, record(base.Add(time.Duration(i)*time.Minute), i))
		require.NoError(t, err)
	}

	list := store.List()
	require.Len(t, list, Capacity)
	assert.Equal(t, 104, list[0].DurationSeconds)
	assert.Equal(t, 5, list[len(list)-1].DurationSeconds)
	for i := 1; i < len(list); i++ {
		assert.Greater(t, list[i-1].ID, list[i].ID)
	}
}

func TestAppendAssignsIncreasingIDsWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, nil)
	at := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)

	first, err := store.Append(ctx, record(at, 60))
	require.NoError(t, err)
	second, err := store.Append(ctx, record(at, 60))
	require.NoError(t, err)

	assert.Equal(t, at.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestPersistAndReload(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := Load(ctx, mem)
	at := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	_, err := store.Append(ctx, record(at, 1500))
	require.NoError(t, err)

	reloaded := Load(ctx, mem)
	require.Len(t, reloaded.List(), 1)
	got := reloaded.List()[0]
	assert.Equal(t, 1500, got.DurationSeconds)
	assert.Equal(t, "09:00:00 AM", got.Timestamp)
	assert.Equal(t, "Fri May 01 2026", got.Date)

	next, err := reloaded.Append(ctx, record(at, 60))
	require.NoError(t, err)
	assert.Greater(t, next.ID, got.ID)
}

func TestLoadTreatsCorruptDataAsAbsent(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, storage.KeyHistory, []byte(`{"oops":`)))

	store := Load(ctx, mem)
	assert.Empty(t, store.List())
}

func TestPersistFailureKeepsInMemoryRecord(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, failingStorage{Storage: storage.NewMemory()})

	_, err := store.Append(ctx, record(time.Now(), 90))
	assert.Error(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := Load(ctx, mem)
	_, err := store.Append(ctx, record(time.Now(), 90))
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.List())

	raw, ok, err := mem.Get(ctx, storage.KeyHistory)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := Load(ctx, nil)
	_, err := store.Append(ctx, record(time.Now(), 90))
	require.NoError(t, err)

	list := store.List()
	list[0].DurationSeconds = 1
	assert.Equal(t, 90, store.List()[0].DurationSeconds)
}
