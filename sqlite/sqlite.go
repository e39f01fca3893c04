// Package sqlite provides SQLite-based storage for parsed filings.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB wraps the SQLite connection used by the storage services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB for the database file at path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; a single connection also keeps ":memory:"
	// databases from being split across connections.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL is unavailable for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS form_d_filings (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			company_conformed_name TEXT NOT NULL DEFAULT '',
			central_index_key TEXT NOT NULL DEFAULT '',
			irs_number TEXT NOT NULL DEFAULT '',
			state_of_incorporation TEXT NOT NULL DEFAULT '',
			fiscal_year_end TEXT NOT NULL DEFAULT '',
			form_type TEXT NOT NULL DEFAULT '',
			sec_act TEXT,
			sec_file_number TEXT,
			film_number TEXT,
			industry_group_type TEXT NOT NULL DEFAULT '',
			investment_fund_type TEXT,
			is_40_act INTEGER,
			total_offering_amount INTEGER NOT NULL,
			total_amount_sold INTEGER NOT NULL,
			total_remaining INTEGER NOT NULL,
			clarification_of_response TEXT NOT NULL DEFAULT '',
			parsed_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_form_d_filings_content_hash ON form_d_filings(content_hash);
		CREATE INDEX IF NOT EXISTS idx_form_d_filings_cik ON form_d_filings(central_index_key);
	`

	_, err := db.db.Exec(schema)
	return err
}
