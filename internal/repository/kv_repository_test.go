package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/db"
	"taskflow/internal/storage"
)

var _ storage.Storage = (*KVRepository)(nil)

func setupRepo(t *testing.T) *KVRepository {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database, db.Migrations))
	return NewKVRepository(database)
}

func TestKVRepositoryGetAbsent(t *testing.T) {
	repo := setupRepo(t)
	value, ok, err := repo.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)

	_, err = repo.GetEntry(context.Background(), "missing")
	assert.Equal(t, ErrNotFound, err)
}

func TestKVRepositorySetOverwrites(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	fixed := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Set(ctx, "k", []byte(`[1]`)))
	require.NoError(t, repo.Set(ctx, "k", []byte(`[1,2]`)))

	value, ok, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, string(value))

	entry, err := repo.GetEntry(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, fixed, entry.UpdatedAt)
}

func TestKVRepositoryKeysAndDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, storage.KeyTasks, []byte(`[]`)))
	require.NoError(t, repo.Set(ctx, storage.KeyHistory, []byte(`[]`)))

	keys, err := repo.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{storage.KeyHistory, storage.KeyTasks}, keys)

	require.NoError(t, repo.Delete(ctx, storage.KeyTasks))
	_, ok, err := repo.Get(ctx, storage.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseTimeAcceptsSecondPrecision(t *testing.T) {
	parsed, err := parseTime("2026-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC), parsed)

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}
