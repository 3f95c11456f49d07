package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/ardanovsky/todo-service/internal/auth/domain"
	"github.com/ardanovsky/todo-service/internal/common/db"
	"github.com/ardanovsky/todo-service/internal/common/logger"
)

// TokenRepository is the server-side revocation allow-list. A signed token is
// only valid while its (user, purpose, token) row exists here.
type TokenRepository interface {
	Append(ctx context.Context, token domain.UserToken) error
	Exists(ctx context.Context, userID, purpose, token string) (bool, error)
	Delete(ctx context.Context, userID, token string) error
}

type PgTokenRepository struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPgTokenRepository(pool *pgxpool.Pool, log *logger.Logger) *PgTokenRepository {
	return &PgTokenRepository{pool: pool, log: log}
}

// Append and Delete retry on transient failures: losing an allow-list write
// to a dropped connection would strand a token the user believes is valid.
func (r *PgTokenRepository) Append(ctx context.Context, token domain.UserToken) error {
	start := time.Now()
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		_, execErr := r.pool.Exec(
			ctx,
			`INSERT INTO user_tokens (user_id, purpose, token, created_at) VALUES ($1, $2, $3, $4)`,
			token.UserID,
			token.Purpose,
			token.Token,
			token.CreatedAt,
		)
		return execErr
	})
	return db.HandleExecError(err, "append user token", start)
}

func (r *PgTokenRepository) Exists(ctx context.Context, userID, purpose, token string) (bool, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND purpose = $2 AND token = $3
		)`,
		userID,
		purpose,
		token,
	)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, db.HandleQueryError(err, nil, "check user token", start)
	}
	db.MeasureQueryDuration("check user token", start)
	return exists, nil
}

// Delete removes exactly the matching entry. Deleting an absent token is a
// no-op, which keeps revocation idempotent.
func (r *PgTokenRepository) Delete(ctx context.Context, userID, token string) error {
	start := time.Now()
	err := db.RetryWithBackoff(ctx, r.log, db.DefaultRetryConfig, func() error {
		_, execErr := r.pool.Exec(
			ctx,
			`DELETE FROM user_tokens WHERE user_id = $1 AND token = $2`,
			userID,
			token,
		)
		return execErr
	})
	return db.HandleExecError(err, "delete user token", start)
}
