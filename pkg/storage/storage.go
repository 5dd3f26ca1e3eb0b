// Package storage wraps the single local sqlite database file behind a
// thin statement layer. Repositories own their tables and run all reads
// and writes through an Engine handed to them at construction.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnavailable indicates that the database file could not be opened.
// It is fatal to the session; nothing recovers from it.
var ErrUnavailable = errors.New("storage unavailable")

// Engine manages the connection to the local database file. Every read
// and write hits the file directly; there is no cache layer in front.
type Engine struct {
	conn *sql.DB
}

// Open connects to the sqlite database at the given filename, creating
// the file (and its parent directory) if absent. The returned handle is
// meant to live for the whole session and be shared by all repositories.
func Open(ctx context.Context, filename string) (*Engine, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating directory for %s: %v", ErrUnavailable, filename, err)
		}
	}

	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to sqlite db at %s: %v", ErrUnavailable, filename, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()

		return nil, fmt.Errorf("%w: opening sqlite db at %s: %v", ErrUnavailable, filename, err)
	}

	return &Engine{conn: conn}, nil
}

// Close closes the database connection.
func (e *Engine) Close() error {
	return e.conn.Close()
}

// EnsureSchema runs an idempotent create-if-not-exists statement. A DDL
// failure is logged and swallowed so that it cannot take down startup;
// callers must tolerate a missing table on later statements instead.
func (e *Engine) EnsureSchema(ctx context.Context, ddl string) {
	if _, err := e.conn.ExecContext(ctx, ddl); err != nil {
		log.Error().Err(err).Msg("error ensuring schema")
	}
}

// Query runs a read statement with positional parameters and drains
// every row through scan before returning. Row order is the storage
// engine's natural order.
func (e *Engine) Query(ctx context.Context, query string, scan func(*sql.Rows) error, params ...interface{}) error {
	rows, err := e.conn.QueryContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("error running query: %w", err)
	}

	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading rows: %w", err)
	}

	return nil
}

// Execute runs a write statement with positional parameters and returns
// the number of rows it affected, so callers can detect a no-match write.
func (e *Engine) Execute(ctx context.Context, query string, params ...interface{}) (int64, error) {
	result, err := e.conn.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("error running statement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected row count: %w", err)
	}

	return affected, nil
}
