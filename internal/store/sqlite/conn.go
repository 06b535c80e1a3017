package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Open opens (or creates) a SQLite database at the given path in WAL mode
// with foreign keys enforced.
func Open(path string) (*sql.DB, error) {
	if path == MemoryPath {
		db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(ON)")
		if err != nil {
			return nil, err
		}
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
		return db, db.Ping()
	}

	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates core tables if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            user_id       TEXT PRIMARY KEY,
            external_id   TEXT NOT NULL UNIQUE,
            username      TEXT,
            email         TEXT UNIQUE,
            creation_time TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS checkins (
            checkin_id  TEXT PRIMARY KEY,
            user_id     TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            mood        INTEGER NOT NULL CHECK (mood BETWEEN 1 AND 10),
            text        TEXT,
            energy      INTEGER CHECK (energy BETWEEN 1 AND 10),
            sleep_hours REAL CHECK (sleep_hours >= 0),
            ts          TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS checkins_user_ts ON checkins (user_id, ts);`,
		`CREATE TABLE IF NOT EXISTS journal_entries (
            entry_id TEXT NOT NULL UNIQUE,
            user_id  TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            content  TEXT NOT NULL,
            summary  TEXT,
            advice   TEXT,
            ts       TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS journal_user_ts ON journal_entries (user_id, ts);`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
            message_id TEXT NOT NULL UNIQUE,
            user_id    TEXT NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
            role       TEXT NOT NULL CHECK (role IN ('user', 'model')),
            content    TEXT NOT NULL,
            ts         TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS chat_user_ts ON chat_messages (user_id, ts);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("sqlite schema: %w", err)
		}
	}
	return nil
}
