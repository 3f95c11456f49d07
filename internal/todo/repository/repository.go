package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ardanovsky/todo-service/internal/common/db"
	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
	"github.com/ardanovsky/todo-service/internal/todo/domain"
)

// Repository is owner-scoped by construction: every query condition includes
// owner_id, so a missing row and a row owned by someone else are the same
// not-found outcome.
type Repository interface {
	Create(ctx context.Context, todo domain.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	FindByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error)
	UpdateByIDForOwner(ctx context.Context, ownerID string, id domain.ID, patch domain.Patch, completedAt int64) (domain.Todo, error)
	DeleteByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, todo domain.Todo) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO todos (id, owner_id, text, completed, completed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		string(todo.ID),
		todo.OwnerID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.CreatedAt,
	)
	return db.HandleExecError(err, "create todo", start)
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, owner_id, text, completed, completed_at, created_at
		 FROM todos WHERE owner_id = $1 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list todos", start)
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "list todos", start)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list todos", start)
	}

	db.MeasureQueryDuration("list todos", start)
	return todos, nil
}

func (r *PgRepository) FindByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, owner_id, text, completed, completed_at, created_at
		 FROM todos WHERE id = $1 AND owner_id = $2`,
		string(id),
		ownerID,
	)

	var t domain.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return domain.Todo{}, db.HandleQueryError(err, commonerrors.ErrTodoNotFound, "find todo", start)
	}
	db.MeasureQueryDuration("find todo", start)
	return t, nil
}

// UpdateByIDForOwner is a single conditional write: the completed_at
// derivation happens inside the UPDATE, so a concurrent delete of the same
// row cannot interleave with a read-then-write.
func (r *PgRepository) UpdateByIDForOwner(ctx context.Context, ownerID string, id domain.ID, patch domain.Patch, completedAt int64) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE todos SET
			text = COALESCE($3, text),
			completed = COALESCE($4, completed),
			completed_at = CASE
				WHEN $4::boolean IS NULL THEN completed_at
				WHEN $4::boolean THEN $5::bigint
				ELSE NULL
			END
		 WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, text, completed, completed_at, created_at`,
		string(id),
		ownerID,
		patch.Text,
		patch.Completed,
		completedAt,
	)

	var t domain.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return domain.Todo{}, db.HandleQueryError(err, commonerrors.ErrTodoNotFound, "update todo", start)
	}
	db.MeasureQueryDuration("update todo", start)
	return t, nil
}

func (r *PgRepository) DeleteByIDForOwner(ctx context.Context, ownerID string, id domain.ID) (domain.Todo, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_id = $2
		 RETURNING id, owner_id, text, completed, completed_at, created_at`,
		string(id),
		ownerID,
	)

	var t domain.Todo
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		return domain.Todo{}, db.HandleQueryError(err, commonerrors.ErrTodoNotFound, "delete todo", start)
	}
	db.MeasureQueryDuration("delete todo", start)
	return t, nil
}
