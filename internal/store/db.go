package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dotcommander/faultline/internal/app"
	_ "modernc.org/sqlite"
)

// defaultBusyTimeoutMS is how long SQLite waits on a locked database before
// giving up. Override with FAULTLINE_BUSY_TIMEOUT_MS when several processes
// hammer the same preferences file.
const defaultBusyTimeoutMS = 5000

// InitDB opens the preferences database at the resolved path (CLI override,
// env, config, default — in that order) with WAL mode and migrations applied.
func InitDB() (*sql.DB, error) {
	dbPath, err := app.GetDBPath()
	if err != nil {
		return nil, err
	}
	return InitDBWithPath(dbPath)
}

// InitDBWithPath opens the preferences database at an explicit path. Tests
// point this at a temp file or :memory:.
func InitDBWithPath(dbPath string) (*sql.DB, error) {
	if _, err := app.EnsureDBDir(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", normalizeSQLiteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open preferences db: %w", err)
	}

	// A single connection is plenty for a key-value prefs store and takes
	// writer contention off the table.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := RetryWithBackoff(func() error { return RunMigrations(db) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

// applyPragmas puts the connection in WAL mode with a busy timeout. The
// timeout is set first so the remaining pragmas themselves wait on locks
// instead of failing; synchronous=NORMAL keeps committed transactions
// crash-safe under WAL while skipping per-commit fsyncs.
func applyPragmas(db *sql.DB) error {
	busyTimeout := defaultBusyTimeoutMS
	if v := os.Getenv("FAULTLINE_BUSY_TIMEOUT_MS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			busyTimeout = parsed
		}
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA journal_mode=WAL",
	}
	for _, pragma := range pragmas {
		if err := RetryWithBackoff(func() error {
			_, err := db.ExecContext(context.Background(), pragma)
			return err
		}); err != nil {
			return fmt.Errorf("set pragma %q: %w", pragma, err)
		}
	}
	return nil
}

// normalizeSQLiteDSN maps a plain path onto the file: URI form modernc's
// driver expects. mode=rwc creates the file when missing; without it some
// environments open read-only. The :memory: token gets a shared cache so
// every connection in a test sees the same database.
func normalizeSQLiteDSN(dbPath string) string {
	if strings.HasPrefix(dbPath, "file:") {
		return dbPath
	}
	if dbPath == ":memory:" {
		return "file::memory:?cache=shared"
	}
	return "file:" + dbPath + "?mode=rwc"
}
