package order

import (
	"context"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

// NewOrder is the insert payload built at checkout.
type NewOrder struct {
	UserID string
	Items  []domain.CartLine
	Total  decimal.Decimal
	Status domain.OrderStatus
}

// Revision replaces items, total and status in one statement.
type Revision struct {
	Items  []domain.CartLine
	Total  decimal.Decimal
	Status domain.OrderStatus
}

// ListFilter selects a page of orders, newest first. An empty BusinessName
// returns every order.
type ListFilter struct {
	BusinessName string
	Offset       int
	Limit        int
}

type Repository interface {
	Create(ctx context.Context, in NewOrder) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, id string, rev Revision) error
	List(ctx context.Context, f ListFilter) ([]domain.Order, error)
}
