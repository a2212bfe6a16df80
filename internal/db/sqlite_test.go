package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, RunMigrations(database, Migrations))
	require.NoError(t, RunMigrations(database, Migrations))

	names, err := AppliedMigrations(database)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_kv_store.sql"}, names)

	_, err = database.Exec(`INSERT INTO kv_store (key, value, updated_at) VALUES ('a', 'b', 'c')`)
	assert.NoError(t, err)
}

func TestRunMigrationsRollsBackBrokenFile(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	broken := fstest.MapFS{
		"0001_ok.sql":     {Data: []byte(`CREATE TABLE a (id INTEGER);`)},
		"0002_broken.sql": {Data: []byte(`CREATE TABLE (`)},
		"README.md":       {Data: []byte(`ignored`)},
	}
	err = RunMigrations(database, broken)
	require.Error(t, err)

	names, err := AppliedMigrations(database)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_ok.sql"}, names)
}
