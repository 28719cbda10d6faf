package logistics

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by the logistics table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Logistics, error) {
	const q = `
SELECT id::text, name, attributes::text, created_at
FROM logistics
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("logistics repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Logistics
	for rows.Next() {
		var (
			l     domain.Logistics
			attrs string
		)
		if err := rows.Scan(&l.ID, &l.Name, &attrs, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attrs), &l.Attributes); err != nil {
			r.logger.Printf("logistics repo: decode attributes id=%s err=%v", l.ID, err)
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Logistics) (*domain.Logistics, error) {
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	const q = `
INSERT INTO logistics (name, attributes)
VALUES ($1, $2::text::jsonb)
ON CONFLICT (name) DO UPDATE SET attributes = EXCLUDED.attributes
RETURNING id::text, created_at
`
	out := domain.Logistics{Name: in.Name, Attributes: attrs}
	if err := r.pool.QueryRow(ctx, q, in.Name, string(raw)).Scan(&out.ID, &out.CreatedAt); err != nil {
		r.logger.Printf("logistics repo: upsert name=%s error=%v", in.Name, err)
		return nil, err
	}
	return &out, nil
}
