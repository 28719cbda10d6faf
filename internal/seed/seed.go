package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
)

type Accounts interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
}

type Categories interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type Products interface {
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type Logistics interface {
	Upsert(ctx context.Context, l domain.Logistics) (*domain.Logistics, error)
}

// Stores groups the writers Apply needs.
type Stores struct {
	Accounts   Accounts
	Categories Categories
	Products   Products
	Logistics  Logistics
}

const (
	DemoBusiness = "demo-garden"
	DemoEmail    = "seller@demo-garden.test"
	DemoPassword = "Seller123"
)

type productSeed struct {
	Name     string
	Price    string
	Category string
	Brand    string
}

var products = []productSeed{
	{Name: "terracotta pot", Price: "12.50", Category: "pots", Brand: "terra"},
	{Name: "hanging pot", Price: "9.99", Category: "pots", Brand: "terra"},
	{Name: "snake plant", Price: "24.00", Category: "plants", Brand: "greenco"},
	{Name: "aloe vera", Price: "15.75", Category: "plants", Brand: "greenco"},
}

var logistics = []domain.Logistics{
	{Name: "swift couriers", Attributes: map[string]interface{}{"coverage": "nationwide", "days": 3}},
	{Name: "city bikes", Attributes: map[string]interface{}{"coverage": "same city", "days": 1}},
}

// Apply inserts basic seed data for manual testing. It is idempotent: the
// demo seller is kept if it exists and catalog rows are upserted.
func Apply(ctx context.Context, s Stores) error {
	_, err := s.Accounts.Signup(ctx, accountsvc.SignupInput{
		Email:        DemoEmail,
		Password:     DemoPassword,
		Role:         domain.RoleSeller,
		BusinessName: DemoBusiness,
	})
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return fmt.Errorf("ensure seller: %w", err)
	}

	seen := map[string]bool{}
	for _, p := range products {
		if !seen[p.Category] {
			if _, err := s.Categories.Upsert(ctx, domain.Category{Name: p.Category, BusinessName: DemoBusiness}); err != nil {
				return fmt.Errorf("upsert category %s: %w", p.Category, err)
			}
			seen[p.Category] = true
		}
		if _, err := s.Products.Upsert(ctx, domain.Product{
			Name:         p.Name,
			Price:        decimal.RequireFromString(p.Price),
			BusinessName: DemoBusiness,
			Category:     p.Category,
			Brand:        p.Brand,
		}); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	for _, l := range logistics {
		if _, err := s.Logistics.Upsert(ctx, l); err != nil {
			return fmt.Errorf("upsert logistics %s: %w", l.Name, err)
		}
	}
	return nil
}
