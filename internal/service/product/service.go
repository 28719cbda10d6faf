package product

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const (
	storePageSize  = 10
	sellerPageSize = 5
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// StoreProducts lists one page of a store's products, optionally limited to
// a category. Store and category are matched lowercase.
func (s *Service) StoreProducts(ctx context.Context, store, category string, page int) (domain.Page[domain.Product], error) {
	store = normalize(store)
	if store == "" {
		return domain.Page[domain.Product]{}, domain.Invalid("store is required")
	}
	all, err := s.repo.ListByStore(ctx, store, normalize(category))
	if err != nil {
		return domain.Page[domain.Product]{}, domain.StoreFailure("list store products", err)
	}
	return domain.Paginate(all, page, storePageSize), nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.StoreFailure("fetch product", err)
	}
	return p, nil
}

// SellerProducts lists one page of the seller's own products.
func (s *Service) SellerProducts(ctx context.Context, seller domain.Identity, page int) (domain.Page[domain.Product], error) {
	if !seller.IsSeller() {
		return domain.Page[domain.Product]{}, domain.ErrForbidden
	}
	all, err := s.repo.ListByBusiness(ctx, seller.BusinessName)
	if err != nil {
		return domain.Page[domain.Product]{}, domain.StoreFailure("list seller products", err)
	}
	return domain.Paginate(all, page, sellerPageSize), nil
}

// Input is the seller's product form.
type Input struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
}

func (s *Service) Create(ctx context.Context, seller domain.Identity, in Input) (*domain.Product, error) {
	p, err := s.fromInput(seller, in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, domain.StoreFailure("create product", err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, seller domain.Identity, id string, in Input) (*domain.Product, error) {
	p, err := s.fromInput(seller, in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, domain.StoreFailure("update product", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, seller domain.Identity, id string) error {
	if !seller.IsSeller() {
		return domain.ErrForbidden
	}
	return domain.StoreFailure("delete product", s.repo.Delete(ctx, seller.BusinessName, id))
}

func (s *Service) fromInput(seller domain.Identity, in Input) (domain.Product, error) {
	if !seller.IsSeller() || seller.BusinessName == "" {
		return domain.Product{}, domain.ErrForbidden
	}
	name, category, brand := normalize(in.Name), normalize(in.Category), normalize(in.Brand)
	if name == "" || category == "" || brand == "" || strings.TrimSpace(in.Price) == "" {
		return domain.Product{}, domain.Invalid("all fields are required")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() {
		return domain.Product{}, domain.Invalid("price must be a non-negative number")
	}
	return domain.Product{
		Name:         name,
		Price:        price,
		BusinessName: seller.BusinessName,
		Category:     category,
		Brand:        brand,
		ImageURL:     strings.TrimSpace(in.ImageURL),
		UserID:       seller.ID,
	}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
