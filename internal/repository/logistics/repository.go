package logistics

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Logistics, error)
	Upsert(ctx context.Context, l domain.Logistics) (*domain.Logistics, error)
}
