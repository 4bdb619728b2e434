package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/numwords/internal/config"
	_ "modernc.org/sqlite"
)

// FileName is the database file created inside the base directory.
const FileName = "numwords.db"

// migrations holds the schema steps in order. Step i moves user_version
// from i to i+1. Append only.
var migrations = [...]string{
	`
	CREATE TABLE IF NOT EXISTS conversions (
	  id           TEXT PRIMARY KEY,
	  input_text   TEXT NOT NULL,
	  output_text  TEXT NOT NULL,
	  phrases      INTEGER NOT NULL,
	  input_chars  INTEGER NOT NULL,
	  source       TEXT NOT NULL,
	  created_at   INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_conversions_created
	ON conversions(created_at DESC);

	CREATE INDEX IF NOT EXISTS idx_conversions_source_created
	ON conversions(source, created_at DESC);
	`,
	// Full-text index over both texts. Records are never updated, so insert
	// and delete triggers keep it in sync.
	`
	CREATE VIRTUAL TABLE IF NOT EXISTS conversions_fts USING fts5(
	  input_text,
	  output_text,
	  content='conversions',
	  content_rowid='rowid'
	);

	CREATE TRIGGER IF NOT EXISTS conversions_fts_insert AFTER INSERT ON conversions BEGIN
	  INSERT INTO conversions_fts(rowid, input_text, output_text)
	  VALUES (new.rowid, new.input_text, new.output_text);
	END;

	CREATE TRIGGER IF NOT EXISTS conversions_fts_delete AFTER DELETE ON conversions BEGIN
	  INSERT INTO conversions_fts(conversions_fts, rowid, input_text, output_text)
	  VALUES ('delete', old.rowid, old.input_text, old.output_text);
	END;

	INSERT INTO conversions_fts(conversions_fts) VALUES ('rebuild');
	`,
}

// CurrentSchemaVersion is the user_version after all migrations run.
const CurrentSchemaVersion = len(migrations)

// Init opens (creating if needed) baseDir/numwords.db in WAL mode and
// brings its schema up to date. Tests pass t.TempDir() as baseDir.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	// Best-effort; may not work on all platforms
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, FileName)
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)
	return db, nil
}

// dsn builds the connection string. Pragmas given here apply to every
// pooled connection, not just the first.
func dsn(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

// ConfigurePool applies db_max_open_conns and db_max_idle_conns when set.
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate runs every step past the stored user_version, each in its own
// transaction together with its version bump.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}
	if version > CurrentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, CurrentSchemaVersion)
	}

	for v := version; v < CurrentSchemaVersion; v++ {
		if err := applyMigration(db, v); err != nil {
			return fmt.Errorf("migration %d failed: %w", v+1, err)
		}
	}
	return nil
}

func applyMigration(db *sql.DB, step int) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migrations[step]); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", step+1)); err != nil {
		return err
	}
	return tx.Commit()
}

// verifyWALMode checks that the DSN pragma switched the journal to WAL.
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the user_version pragma.
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the user_version pragma.
func SetUserVersion(db *sql.DB, version int) error {
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version)); err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
