package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voucher-service/internal/domain"
)

// SessionRepository persists opaque admin session tokens.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Exists(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository instantiates the repository.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (token, expires_at)
        VALUES ($1,$2)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query, session.Token, session.ExpiresAt).Scan(&session.CreatedAt)
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at < $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM sessions WHERE token=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, token).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token=$1`, token)
	return err
}
