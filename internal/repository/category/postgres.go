package category

import (
	"context"
	"errors"
	"strings"

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

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepo) SearchByBusinessName(ctx context.Context, term string) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, business_name, created_at
FROM categories
WHERE business_name ILIKE '%' || $1 || '%'
ORDER BY business_name ASC, name ASC
`
	return r.list(ctx, q, likeEscaper.Replace(term))
}

func (r *postgresRepo) ListByBusiness(ctx context.Context, businessName string) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, business_name, created_at
FROM categories
WHERE business_name = $1
ORDER BY name ASC
`
	return r.list(ctx, q, businessName)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.BusinessName, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, business_name)
VALUES ($1, $2)
RETURNING id::text, name, business_name, created_at
`
	var out domain.Category
	err := r.pool.QueryRow(ctx, q, c.Name, c.BusinessName).Scan(&out.ID, &out.Name, &out.BusinessName, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name, business_name)
VALUES ($1, $2)
ON CONFLICT (business_name, name) DO UPDATE
SET name = EXCLUDED.name
RETURNING id::text, name, business_name, created_at
`
	var out domain.Category
	if err := r.pool.QueryRow(ctx, q, c.Name, c.BusinessName).Scan(&out.ID, &out.Name, &out.BusinessName, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
