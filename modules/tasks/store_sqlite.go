package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/crudkit"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'pending',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks (created_at);
`

// SQLiteStore persists tasks in a local SQLite database. Timestamps are
// stored as UTC millis so ordering survives the round trip.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("tasks: sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("tasks: open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tasks: ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("tasks: apply sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Insert(ctx context.Context, t Task) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, notes, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Notes, t.Status,
		t.CreatedAt.UTC().UnixMilli(), t.UpdatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("tasks: insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Task, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, notes, status, created_at, updated_at
		   FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, false, nil
		}
		return Task{}, false, fmt.Errorf("tasks: get: %w", err)
	}
	return t, true, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, notes, status, created_at, updated_at
		   FROM tasks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("tasks: list: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Update(ctx context.Context, t Task) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, notes = ?, status = ?, updated_at = ?
		  WHERE id = ?`,
		t.Title, t.Notes, t.Status, t.UpdatedAt.UTC().UnixMilli(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("tasks: update: %w", err)
	}
	return requireAffected(res, t.ID)
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("tasks: delete: %w", err)
	}
	return requireAffected(res, id)
}

// scanTask reads one row regardless of whether it came from QueryRow or
// Rows.Next.
func scanTask(scan func(dest ...any) error) (Task, error) {
	var t Task
	var createdAt, updatedAt int64
	if err := scan(&t.ID, &t.Title, &t.Notes, &t.Status, &createdAt, &updatedAt); err != nil {
		return Task{}, err
	}
	t.URL = taskURL(t.ID)
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	t.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return t, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("tasks: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: task %s", crudkit.ErrNotFound, id)
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
