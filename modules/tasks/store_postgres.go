package tasks

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/crudkit"
)

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path inside Migrations handed to the migration
// runner.
const MigrationsDir = "migrations"

const tasksTable = "tasks"

var pgDialect = goqu.Dialect("postgres")

// PostgresStore persists tasks through a pgx pool. SQL is built with goqu
// so the statements stay composable.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an already-connected pool. Run the embedded
// migrations before first use.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

type taskRecord struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Notes     string    `db:"notes"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toRecord(t Task) taskRecord {
	return taskRecord{
		ID:        t.ID,
		Title:     t.Title,
		Notes:     t.Notes,
		Status:    t.Status,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func (r taskRecord) toTask() Task {
	return Task{
		ID:        r.ID,
		URL:       taskURL(r.ID),
		Title:     r.Title,
		Notes:     r.Notes,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

func (s *PostgresStore) Insert(ctx context.Context, t Task) error {
	query, args, err := pgDialect.Insert(tasksTable).Rows(toRecord(t)).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("tasks: build insert: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("tasks: insert: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Task, bool, error) {
	query, args, err := pgDialect.From(tasksTable).
		Select("id", "title", "notes", "status", "created_at", "updated_at").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return Task{}, false, fmt.Errorf("tasks: build get: %w", err)
	}

	var r taskRecord
	row := s.pool.QueryRow(ctx, query, args...)
	if err := row.Scan(&r.ID, &r.Title, &r.Notes, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, false, nil
		}
		return Task{}, false, fmt.Errorf("tasks: get: %w", err)
	}
	return r.toTask(), true, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Task, error) {
	query, args, err := pgDialect.From(tasksTable).
		Select("id", "title", "notes", "status", "created_at", "updated_at").
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("tasks: build list: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		var r taskRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Notes, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("tasks: list: %w", err)
		}
		out = append(out, r.toTask())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tasks: list: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Update(ctx context.Context, t Task) error {
	query, args, err := pgDialect.Update(tasksTable).
		Set(goqu.Record{
			"title":      t.Title,
			"notes":      t.Notes,
			"status":     t.Status,
			"updated_at": t.UpdatedAt.UTC(),
		}).
		Where(goqu.C("id").Eq(t.ID)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("tasks: build update: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("tasks: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", crudkit.ErrNotFound, t.ID)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	query, args, err := pgDialect.Delete(tasksTable).
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("tasks: build delete: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("tasks: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", crudkit.ErrNotFound, id)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
