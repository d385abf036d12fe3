package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection. foreign_keys and a busy
// timeout are applied via DSN pragmas rather than a one-off Exec, so every
// connection the pool opens gets them — a single Exec after Open only
// reaches whichever connection happens to serve it.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", withConnectionPragmas(dataSourceName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// withConnectionPragmas appends modernc.org/sqlite's per-connection pragma
// DSN parameters: foreign_keys so FK constraints are enforced no matter
// which pooled connection serves a query, and busy_timeout so a writer
// blocked behind another transaction's BEGIN IMMEDIATE lock waits instead
// of failing immediately with SQLITE_BUSY.
func withConnectionPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// RunMigrations applies the embedded schema. It is idempotent via
// CREATE TABLE/INDEX IF NOT EXISTS, so callers may run it on every startup.
func (db *DB) RunMigrations() error {
	if _, err := db.Exec(initialSchema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
