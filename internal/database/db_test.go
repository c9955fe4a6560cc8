package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, name string) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "nested", name+".db"),
		Profile: ProfileCache,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_CreatesDirectoryAndMigrates(t *testing.T) {
	db := newTestDB(t, "client_data")

	assert.True(t, filepath.IsAbs(db.Path()))
	assert.Equal(t, ProfileCache, db.Profile())
	assert.Equal(t, "client_data", db.Name())
	require.NoError(t, db.QuickCheck(context.Background()))

	require.NoError(t, db.Migrate())
	// Idempotent
	require.NoError(t, db.Migrate())

	for _, table := range []string{"narratives", "listings"} {
		var name string
		err := db.Conn().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_UnknownDatabaseIsNoop(t *testing.T) {
	db := newTestDB(t, "scratch")
	assert.NoError(t, db.Migrate())
}

func TestNew_DefaultsToCacheProfile(t *testing.T) {
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "x.db"), Name: "x"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileCache, db.Profile())
}

func TestWithTransaction(t *testing.T) {
	db := newTestDB(t, "client_data")
	require.NoError(t, db.Migrate())

	err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO narratives (prompt_hash, data, expires_at) VALUES ('a', x'00', 1)")
		return err
	})
	require.NoError(t, err)

	err = WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO narratives (prompt_hash, data, expires_at) VALUES ('b', x'00', 1)"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM narratives").Scan(&count))
	assert.Equal(t, 1, count)

	assert.Error(t, WithTransaction(nil, func(tx *sql.Tx) error { return nil }))
}

func TestGetStatsAndCheckpoint(t *testing.T) {
	db := newTestDB(t, "client_data")
	require.NoError(t, db.Migrate())

	stats, err := db.GetStats()
	require.NoError(t, err)
	assert.Positive(t, stats.PageSize)
	assert.Positive(t, stats.PageCount)

	assert.NoError(t, db.WALCheckpoint(""))
}

func TestBuildConnectionString(t *testing.T) {
	assert.Contains(t, buildConnectionString("/tmp/a.db", ProfileCache), "/tmp/a.db?_pragma=journal_mode(WAL)&_pragma=synchronous(OFF)")
	assert.Contains(t, buildConnectionString("file:mem?mode=memory", ProfileCache), "file:mem?mode=memory&_pragma=journal_mode(WAL)")
}
