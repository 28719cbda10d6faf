package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id, items::text, total::text, status, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in NewOrder) (*domain.Order, error) {
	items, err := json.Marshal(in.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	const q = `
INSERT INTO customer_orders (user_id, items, total, status)
VALUES ($1, $2::text::jsonb, $3::text::numeric, $4)
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, in.UserID, string(items), in.Total.String(), string(in.Status)))
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", in.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user_id=%s items=%d total=%s", o.ID, o.UserID, len(o.Items), o.Total)
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + orderColumns + ` FROM customer_orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("order repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, rev Revision) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	items, err := json.Marshal(rev.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	const q = `
UPDATE customer_orders
SET items = $1::text::jsonb,
    total = $2::text::numeric,
    status = $3,
    updated_at = now()
WHERE id = $4
`
	cmd, err := r.pool.Exec(ctx, q, string(items), rev.Total.String(), string(rev.Status), id)
	if err != nil {
		r.logger.Printf("order repo: update id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: updated id=%s status=%s total=%s", id, rev.Status, rev.Total)
	return nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM customer_orders
WHERE ($1::text = '' OR items @> jsonb_build_array(jsonb_build_object('business_name', $1::text)))
ORDER BY created_at DESC
OFFSET $2 LIMIT $3
`
	rows, err := r.pool.Query(ctx, q, f.BusinessName, f.Offset, f.Limit)
	if err != nil {
		r.logger.Printf("order repo: list business=%q error=%v", f.BusinessName, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o      domain.Order
		items  string
		total  string
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &items, &total, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	o.Total = amount
	o.Status = domain.OrderStatus(status)
	return &o, nil
}
