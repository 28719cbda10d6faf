package product

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// ListByStore returns a store's products, optionally narrowed to one
	// category. Both filters match lowercase values.
	ListByStore(ctx context.Context, businessName, category string) ([]domain.Product, error)
	ListByBusiness(ctx context.Context, businessName string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Upsert inserts or replaces the product with the same business and name.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, businessName, id string) error
}
