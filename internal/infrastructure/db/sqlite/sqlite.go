// Package sqlite holds the SQLite-backed repositories and the schema
// initializer for the single-file marketplace store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open the store.
type Config struct {
	// Path is the database file. ":memory:" opens a private in-memory store.
	Path    string
	Timeout time.Duration
}

// Open opens the database file, verifies it with a ping and limits the pool to
// a single connection so writers never contend for the file lock.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := sql.Open("sqlite", dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return db, nil
}

func dsn(path string) string {
	if path == "" || path == ":memory:" {
		return ":memory:"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		bio TEXT,
		status TEXT DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS product (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price TEXT NOT NULL,
		seller_id TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS report (
		id TEXT PRIMARY KEY,
		reporter_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		reason TEXT NOT NULL
	)`,
}

// InitSchema creates the user, product and report tables if they are missing.
// It is safe to run against an already initialized store.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return WithTx(ctx, db, nil, func(ctx context.Context, tx DBTX) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}
		}
		return nil
	})
}
