package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/numwords/internal/config"
)

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".numwords")

	db, err := Init(dir)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, filepath.Join(dir, FileName))

	var journalMode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)

	var busyTimeout int
	require.NoError(t, db.QueryRow("PRAGMA busy_timeout;").Scan(&busyTimeout))
	assert.Equal(t, 5000, busyTimeout)

	version, err := GetUserVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)
}

func TestInit_Schema(t *testing.T) {
	db, err := Init(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	for _, object := range []struct{ kind, name string }{
		{"table", "conversions"},
		{"index", "idx_conversions_created"},
		{"index", "idx_conversions_source_created"},
		{"table", "conversions_fts"},
		{"trigger", "conversions_fts_insert"},
		{"trigger", "conversions_fts_delete"},
	} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type=? AND name=?", object.kind, object.name).Scan(&name)
		assert.NoError(t, err, "%s %s", object.kind, object.name)
	}
}

func TestInit_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	db1, err := Init(dir)
	require.NoError(t, err)
	_, err = db1.Exec(`INSERT INTO conversions VALUES ('01A', 'one', '1', 1, 3, 'cli', 1)`)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := Init(dir)
	require.NoError(t, err)
	defer db2.Close()

	var count int
	require.NoError(t, db2.QueryRow("SELECT COUNT(*) FROM conversions").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInit_MigratesVersionOneAndIndexesExistingRows(t *testing.T) {
	dir := t.TempDir()

	old, err := sql.Open("sqlite", dsn(filepath.Join(dir, FileName)))
	require.NoError(t, err)
	_, err = old.Exec(migrations[0])
	require.NoError(t, err)
	require.NoError(t, SetUserVersion(old, 1))
	_, err = old.Exec(`INSERT INTO conversions VALUES ('01OLD', 'gate forty two', 'gate 42', 1, 14, 'cli', 1)`)
	require.NoError(t, err)
	require.NoError(t, old.Close())

	db, err := Init(dir)
	require.NoError(t, err)
	defer db.Close()

	version, err := GetUserVersion(db)
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, version)

	results, total, err := Search(context.Background(), db, "gate", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "01OLD", results[0].Summary.ID)
}

func TestInit_RejectsNewerSchema(t *testing.T) {
	dir := t.TempDir()

	db, err := Init(dir)
	require.NoError(t, err)
	require.NoError(t, SetUserVersion(db, CurrentSchemaVersion+1))
	require.NoError(t, db.Close())

	_, err = Init(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestInit_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	_, err := Init(filepath.Join(file, "sub"))
	assert.Error(t, err)
}

func TestConfigurePool(t *testing.T) {
	db, err := Init(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ConfigurePool(db, nil)
	ConfigurePool(db, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
