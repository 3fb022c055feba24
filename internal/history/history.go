// Package history persists one record per hearth invocation so `hearth
// status` can show what the matcher and classifier decided.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one executed (or attempted) command.
type Record struct {
	ID         string `json:"id"`
	Input      string `json:"input"`
	EntityIDs  string `json:"entity_ids"` // comma-separated
	Intent     string `json:"intent"`
	Outcome    string `json:"outcome"` // OK / NO_MATCH / FAILED
	DurationMs int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"` // RFC3339
}

func (r Record) Entities() []string {
	if r.EntityIDs == "" {
		return nil
	}
	return strings.Split(r.EntityIDs, ",")
}

// DB wraps the SQLite invocation log.
type DB struct {
	db *sql.DB
}

// Open creates or opens the history database at path with WAL mode and a
// busy timeout, creating the invocations table if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("history: %s: %w", p, err)
		}
	}

	ddl := `CREATE TABLE IF NOT EXISTS invocations (
		id          TEXT PRIMARY KEY,
		input       TEXT NOT NULL,
		entity_ids  TEXT NOT NULL DEFAULT '',
		intent      TEXT NOT NULL DEFAULT '',
		outcome     TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create table: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Append stores one record. A missing ID or timestamp is filled in.
func (d *DB) Append(rec Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := d.db.Exec(
		`INSERT INTO invocations (id, input, entity_ids, intent, outcome, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Input, rec.EntityIDs, rec.Intent, rec.Outcome, rec.DurationMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("history: append: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (d *DB) Recent(n int) ([]Record, error) {
	rows, err := d.db.Query(
		`SELECT id, input, entity_ids, intent, outcome, duration_ms, created_at
		 FROM invocations ORDER BY created_at DESC, id LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Input, &r.EntityIDs, &r.Intent, &r.Outcome, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
