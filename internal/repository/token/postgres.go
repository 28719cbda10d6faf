package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, t Token) error {
	if _, err := uuid.Parse(t.AccountID); err != nil {
		return domain.ErrNotFound
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO tokens (token, account_id, kind, expires_at)
VALUES ($1, $2::uuid, $3, $4)
`, t.Token, t.AccountID, t.Kind, t.ExpiresAt.UTC())
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pgErr) && pgErr.Code == "23505":
		return domain.ErrAlreadyExists
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		// account vanished between login and issue
		return domain.ErrNotFound
	default:
		return err
	}
}

func (r *postgresRepo) Get(ctx context.Context, token string) (*Token, error) {
	var out Token
	err := r.pool.QueryRow(ctx, `
SELECT token, account_id::text, kind, expires_at, created_at
FROM tokens
WHERE token = $1
`, token).Scan(&out.Token, &out.AccountID, &out.Kind, &out.ExpiresAt, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, token string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token = $1`, token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) PurgeExpired(ctx context.Context, accountID string, now time.Time) (int64, error) {
	if _, err := uuid.Parse(accountID); err != nil {
		return 0, nil
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE account_id = $1::uuid AND expires_at < $2`, accountID, now.UTC())
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
