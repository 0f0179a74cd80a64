// Package store persists task records in PostgreSQL.
//
// Dates are stored as their canonical rendered text rather than as SQL
// dates: a placeholder has no date representation, and the engine's
// round-trip guarantee makes the rendered form lossless for concrete dates.
// Loading re-normalizes the stored text.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/code-and-relax/studio/internal/engine"
	"github.com/code-and-relax/studio/internal/task"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("task not found")

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Begin(context.Context) (pgx.Tx, error)
}

// Store provides task record persistence.
type Store struct {
	db DBTX
}

// New creates a Store on the given connection or transaction.
func New(db DBTX) *Store {
	return &Store{db: db}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS tasks (
	id           UUID PRIMARY KEY,
	content      TEXT NOT NULL,
	termini      TEXT NOT NULL,
	original_due TEXT NOT NULL,
	adjusted_due TEXT NOT NULL,
	status       TEXT NOT NULL,
	color        TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS tasks_created_at_idx ON tasks (created_at);
`

// EnsureSchema creates the tasks table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Insert stores a new task record.
func (s *Store) Insert(ctx context.Context, t task.Record) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO tasks (id, content, termini, original_due, adjusted_due, status, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		toPgUUID(t.ID),
		t.Content,
		t.Termini,
		t.OriginalDue.Render(),
		t.AdjustedDue.Render(),
		t.Status.String(),
		t.Color,
		pgtype.Timestamptz{Time: t.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// InsertAll stores records inside a single transaction. Either every record
// commits or none does; a failure partway through leaves the table untouched.
func (s *Store) InsertAll(ctx context.Context, records []task.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("insert tasks: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	txStore := New(tx)
	for _, t := range records {
		if err := txStore.Insert(ctx, t); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("insert tasks: commit: %w", err)
	}
	return nil
}

// List returns all task records in creation order.
func (s *Store) List(ctx context.Context) ([]task.Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, content, termini, original_due, adjusted_due, status, color, created_at
		FROM tasks
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var result []task.Record
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return result, nil
}

// Get returns a single task record by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (task.Record, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, content, termini, original_due, adjusted_due, status, color, created_at
		FROM tasks
		WHERE id = $1`,
		toPgUUID(id))

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return task.Record{}, ErrNotFound
	}
	return t, err
}

// Update replaces the mutable fields of a task record. The creation
// timestamp never changes.
func (s *Store) Update(ctx context.Context, t task.Record) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE tasks
		SET content = $2, termini = $3, original_due = $4, adjusted_due = $5, status = $6, color = $7
		WHERE id = $1`,
		toPgUUID(t.ID),
		t.Content,
		t.Termini,
		t.OriginalDue.Render(),
		t.AdjustedDue.Render(),
		t.Status.String(),
		t.Color,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task record.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, toPgUUID(id))
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByStatus returns the number of records per status name.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("count tasks: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// scanTask reads one task row. Stored date text is re-normalized; the
// round-trip law keeps concrete dates stable across store and load.
func scanTask(row pgx.Row) (task.Record, error) {
	var (
		id        pgtype.UUID
		status    string
		createdAt pgtype.Timestamptz
		t         task.Record
		origText  string
		adjText   string
	)

	err := row.Scan(&id, &t.Content, &t.Termini, &origText, &adjText, &status, &t.Color, &createdAt)
	if err != nil {
		return task.Record{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OriginalDue = engine.Normalize(origText, nil)
	t.AdjustedDue = engine.Normalize(adjText, nil)
	t.CreatedAt = createdAt.Time

	st, err := task.ParseStatus(status)
	if err != nil {
		return task.Record{}, fmt.Errorf("scan task %s: %w", t.ID, err)
	}
	t.Status = st

	return t, nil
}

// toPgUUID converts a uuid.UUID to pgtype.UUID.
func toPgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
