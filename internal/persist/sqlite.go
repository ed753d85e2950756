package persist

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/roster/internal/record"
)

//go:embed schema.sql
var schemaSQL string

// SQLite stores records in a SQLite database file.
type SQLite struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// OpenSQLite opens or creates the database at path and applies the
// embedded schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	// Single writer, single session.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "persist", "backend", "sqlite"),
	}, nil
}

// Location returns the database path.
func (s *SQLite) Location() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces every row with records inside one transaction.
// Unlike the text backend a failed save leaves the previous rows in place.
func (s *SQLite) Save(ctx context.Context, records []record.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO students (position, id, name, age, email, course)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.Name, r.Age, r.Email, r.Course); err != nil {
			return &IOError{Op: "save", Path: s.path, Err: fmt.Errorf("record %d: %w", r.ID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &IOError{Op: "save", Path: s.path, Err: err}
	}

	s.logger.Info("records saved", "path", s.path, "count", len(records))
	return nil
}

// Load returns all rows ordered by position.
func (s *SQLite) Load(ctx context.Context) (*LoadResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, age, email, course
		FROM students
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, &IOError{Op: "load", Path: s.path, Err: err}
	}
	defer rows.Close()

	res := &LoadResult{}
	for rows.Next() {
		var r record.Record
		if err := rows.Scan(&r.ID, &r.Name, &r.Age, &r.Email, &r.Course); err != nil {
			return nil, &IOError{Op: "load", Path: s.path, Err: err}
		}
		res.Records = append(res.Records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "load", Path: s.path, Err: err}
	}

	s.logger.Info("records loaded", "path", s.path, "count", len(res.Records))
	return res, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates the students table if it does not exist.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
