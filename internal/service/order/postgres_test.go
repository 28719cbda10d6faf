package order

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"storefront/internal/cartstore"
	"storefront/internal/domain"
	"storefront/internal/migrate"
	orderrepo "storefront/internal/repository/order"
)

func TestRevise_TotalRoundTripsThroughPostgres(t *testing.T) {
	ctx := context.Background()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer pool.Close()
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE customer_orders`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	repo := orderrepo.NewPostgres(pool, nil)
	created, err := repo.Create(ctx, orderrepo.NewOrder{
		UserID: buyer.ID,
		Items:  []domain.CartLine{{ID: "p1", Name: "mug", Price: decimal.NewFromInt(500), Quantity: 2, BusinessName: "acme"}},
		Total:  decimal.NewFromInt(1000),
		Status: domain.OrderStatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	svc := newService(repo, cartstore.New(cartstore.NewMemoryStorage(), nil), Options{})

	precise := decimal.RequireFromString("999.999")
	if _, err := svc.Revise(asUser(seller), created.ID, Patch{Total: &precise}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected three decimal total rejected, got %v", err)
	}
	huge := decimal.RequireFromString("10000000000")
	if _, err := svc.Revise(asUser(seller), created.ID, Patch{Total: &huge}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected oversized total rejected, got %v", err)
	}

	total := decimal.RequireFromString("999.99")
	revised, err := svc.Revise(asUser(seller), created.ID, Patch{Total: &total})
	if err != nil {
		t.Fatalf("revise: %v", err)
	}
	stored, err := svc.Get(asUser(seller), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.Total.Equal(total) || !stored.Total.Equal(revised.Total) {
		t.Fatalf("expected stored total %s to match response %s", stored.Total, revised.Total)
	}
}
