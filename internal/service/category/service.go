package category

import (
	"context"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// SearchStores finds categories whose business name contains q. A blank
// query returns nothing without touching the store.
func (s *Service) SearchStores(ctx context.Context, q string) ([]domain.Category, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Category{}, nil
	}
	found, err := s.repo.SearchByBusinessName(ctx, q)
	if err != nil {
		return nil, domain.StoreFailure("search stores", err)
	}
	if found == nil {
		found = []domain.Category{}
	}
	return found, nil
}

func (s *Service) List(ctx context.Context, store string) ([]domain.Category, error) {
	list, err := s.repo.ListByBusiness(ctx, strings.ToLower(strings.TrimSpace(store)))
	if err != nil {
		return nil, domain.StoreFailure("list categories", err)
	}
	if list == nil {
		list = []domain.Category{}
	}
	return list, nil
}

// Create adds a category to the seller's own business.
func (s *Service) Create(ctx context.Context, seller domain.Identity, name string) (*domain.Category, error) {
	if !seller.IsSeller() || seller.BusinessName == "" {
		return nil, domain.ErrForbidden
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, domain.Invalid("category name is required")
	}
	c, err := s.repo.Create(ctx, domain.Category{Name: name, BusinessName: seller.BusinessName})
	if err != nil {
		return nil, domain.StoreFailure("create category", err)
	}
	return c, nil
}

func (s *Service) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	return s.repo.Upsert(ctx, c)
}
