package category

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	// SearchByBusinessName matches business names containing term,
	// case-insensitively.
	SearchByBusinessName(ctx context.Context, term string) ([]domain.Category, error)
	ListByBusiness(ctx context.Context, businessName string) ([]domain.Category, error)
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
