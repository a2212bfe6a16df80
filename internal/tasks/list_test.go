package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/storage"
)

func newList(t *testing.T, s storage.Storage) *List {
	t.Helper()
	l := Load(context.Background(), s)
	now := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	l.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	l.newID = func() string {
		seq++
		return fmt.Sprintf("task-%d", seq)
	}
	return l
}

func TestAddRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	l := newList(t, storage.NewMemory())

	for _, text := range []string{"", "   ", "\t\n"} {
		task, err := l.Add(ctx, text)
		require.NoError(t, err)
		assert.Nil(t, task)
	}
	assert.Empty(t, l.List())

	task, err := l.Add(ctx, "buy milk")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "buy milk", task.Text)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Len(t, l.List(), 1)
}

func TestAddTrimsText(t *testing.T) {
	l := newList(t, nil)
	task, err := l.Add(context.Background(), "  write report ")
	require.NoError(t, err)
	assert.Equal(t, "write report", task.Text)
}

func TestToggleSetsAndClearsCompletedAt(t *testing.T) {
	ctx := context.Background()
	l := newList(t, storage.NewMemory())
	task, err := l.Add(ctx, "read")
	require.NoError(t, err)

	toggled, ok, err := l.Toggle(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	toggled, ok, err = l.Toggle(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, toggled.Completed)
	assert.Nil(t, toggled.CompletedAt)

	_, ok, err = l.Toggle(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAndClearCompleted(t *testing.T) {
	ctx := context.Background()
	l := newList(t, storage.NewMemory())
	a, _ := l.Add(ctx, "a")
	b, _ := l.Add(ctx, "b")
	c, _ := l.Add(ctx, "c")

	ok, err := l.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = l.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = l.Toggle(ctx, a.ID)
	require.NoError(t, err)

	removed, err := l.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	list := l.List()
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestTasksPersistAcrossLoads(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	l := newList(t, mem)
	first, _ := l.Add(ctx, "first")
	_, _ = l.Add(ctx, "second")
	_, _, err := l.Toggle(ctx, first.ID)
	require.NoError(t, err)

	reloaded := Load(ctx, mem)
	list := reloaded.List()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Text)
	assert.True(t, list[0].Completed)
	assert.Equal(t, "second", list[1].Text)

	got, ok := reloaded.Get(first.ID)
	require.True(t, ok)
	assert.NotNil(t, got.CompletedAt)
}

func TestLoadCorruptTasks(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, storage.KeyTasks, []byte(`"not a list"`)))
	assert.Empty(t, Load(ctx, mem).List())
}

type brokenStorage struct{ storage.Storage }

func (brokenStorage) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestPersistFailureKeepsMutation(t *testing.T) {
	l := newList(t, brokenStorage{storage.NewMemory()})
	task, err := l.Add(context.Background(), "still here")
	assert.Error(t, err)
	require.NotNil(t, task)
	assert.Len(t, l.List(), 1)
}
