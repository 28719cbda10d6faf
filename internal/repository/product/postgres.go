package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

const productColumns = `id::text, name, price::text, business_name, category, brand, image_url, user_id, created_at`

func (r *postgresRepo) ListByStore(ctx context.Context, businessName, category string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE business_name = $1 AND ($2::text = '' OR category = $2::text)
ORDER BY created_at DESC
`
	result, err := r.list(ctx, q, businessName, category)
	if err != nil {
		r.logger.Printf("product repo: list store=%s category=%s error=%v", businessName, category, err)
		return nil, err
	}
	r.logger.Printf("product repo: list store=%s category=%s count=%d", businessName, category, len(result))
	return result, nil
}

func (r *postgresRepo) ListByBusiness(ctx context.Context, businessName string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE business_name = $1
ORDER BY created_at DESC
`
	result, err := r.list(ctx, q, businessName)
	if err != nil {
		r.logger.Printf("product repo: list business=%s error=%v", businessName, err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, price, business_name, category, brand, image_url, user_id)
VALUES ($1, $2::text::numeric, $3, $4, $5, $6, $7)
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		in.Name, in.Price.String(), in.BusinessName, in.Category, in.Brand, in.ImageURL, in.UserID,
	))
	if err != nil {
		err = classify(err)
		r.logger.Printf("product repo: create business=%s name=%s error=%v", in.BusinessName, in.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: created business=%s id=%s", p.BusinessName, p.ID)
	return p, nil
}

func (r *postgresRepo) Update(ctx context.Context, in domain.Product) (*domain.Product, error) {
	if _, err := uuid.Parse(in.ID); err != nil {
		return nil, domain.ErrNotFound
	}
	const q = `
UPDATE products
SET name = $1, price = $2::text::numeric, category = $3, brand = $4, image_url = $5
WHERE id = $6 AND business_name = $7
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		in.Name, in.Price.String(), in.Category, in.Brand, in.ImageURL, in.ID, in.BusinessName,
	))
	if err != nil {
		err = classify(err)
		r.logger.Printf("product repo: update id=%s business=%s error=%v", in.ID, in.BusinessName, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, in domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, price, business_name, category, brand, image_url, user_id)
VALUES ($1, $2::text::numeric, $3, $4, $5, $6, $7)
ON CONFLICT (business_name, name) DO UPDATE SET
    price = EXCLUDED.price,
    category = EXCLUDED.category,
    brand = EXCLUDED.brand,
    image_url = EXCLUDED.image_url
RETURNING ` + productColumns
	p, err := scanProduct(r.pool.QueryRow(ctx, q,
		in.Name, in.Price.String(), in.BusinessName, in.Category, in.Brand, in.ImageURL, in.UserID,
	))
	if err != nil {
		r.logger.Printf("product repo: upsert business=%s name=%s error=%v", in.BusinessName, in.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted business=%s name=%s id=%s", p.BusinessName, p.Name, p.ID)
	return p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, businessName, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND business_name = $2`, id, businessName)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)
	if err := row.Scan(&p.ID, &p.Name, &price, &p.BusinessName, &p.Category, &p.Brand, &p.ImageURL, &p.UserID, &p.CreatedAt); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse product price: %w", err)
	}
	p.Price = amount
	return &p, nil
}

func classify(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrAlreadyExists
	}
	return err
}
