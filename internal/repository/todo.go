package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/deppfellow/todo-service/internal/sqlerr"
)

const todosTable = "todos"

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TodoStats summarizes the todos table.
type TodoStats struct {
	Open      int64
	Completed int64
}

// TodoRepository persists todos in PostgreSQL.
type TodoRepository struct {
	db            DB
	slowThreshold time.Duration
}

func NewTodoRepository(db DB, slowThreshold time.Duration) *TodoRepository {
	return &TodoRepository{db: db, slowThreshold: slowThreshold}
}

// Create inserts a new open todo.
func (r *TodoRepository) Create(ctx context.Context, id uuid.UUID, description string) error {
	defer r.observe(ctx, "create", time.Now())

	_, err := r.db.Exec(ctx,
		`INSERT INTO todos (id, description) VALUES ($1, $2)`,
		id, description,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// Complete marks a todo completed. Completing an already completed todo
// keeps its original completed_at. Unknown ids return a "no rows" error
// tagged with the todos table.
func (r *TodoRepository) Complete(ctx context.Context, id uuid.UUID) error {
	defer r.observe(ctx, "complete", time.Now())

	var returned uuid.UUID
	err := r.db.QueryRow(ctx,
		`UPDATE todos
		    SET completed = TRUE,
		        completed_at = COALESCE(completed_at, NOW())
		  WHERE id = $1
		RETURNING id`,
		id,
	).Scan(&returned)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlerr.WrapNoRows(err, todosTable)
	}
	if err != nil {
		return fmt.Errorf("complete todo: %w", err)
	}
	return nil
}

// Stats counts open and completed todos.
func (r *TodoRepository) Stats(ctx context.Context) (TodoStats, error) {
	defer r.observe(ctx, "stats", time.Now())

	var stats TodoStats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE NOT completed),
		        COUNT(*) FILTER (WHERE completed)
		   FROM todos`,
	).Scan(&stats.Open, &stats.Completed)
	if err != nil {
		return TodoStats{}, fmt.Errorf("todo stats: %w", err)
	}
	return stats, nil
}

func (r *TodoRepository) observe(ctx context.Context, op string, start time.Time) {
	elapsed := time.Since(start)
	if r.slowThreshold > 0 && elapsed > r.slowThreshold {
		zerolog.Ctx(ctx).Warn().
			Str("table", todosTable).
			Str("operation", op).
			Dur("duration", elapsed).
			Msg("slow query")
	}
}
