package category

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	searched []string
	created  []domain.Category
	result   []domain.Category
	err      error
}

func (s *stubRepo) SearchByBusinessName(_ context.Context, term string) ([]domain.Category, error) {
	s.searched = append(s.searched, term)
	return s.result, s.err
}

func (s *stubRepo) ListByBusiness(_ context.Context, _ string) ([]domain.Category, error) {
	return s.result, s.err
}

func (s *stubRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, c)
	return &c, nil
}

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, s.err
}

func TestSearchStores_BlankQuerySkipsStore(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	got, err := svc.SearchStores(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if len(repo.searched) != 0 {
		t.Fatalf("expected no store call, got %v", repo.searched)
	}
}

func TestSearchStores_Failure(t *testing.T) {
	svc := New(&stubRepo{err: errors.New("boom")})
	if _, err := svc.SearchStores(context.Background(), "acme"); !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected store failure, got %v", err)
	}
}

func TestCreate_ScopedToSellerBusiness(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	seller := domain.Identity{ID: "s1", Role: domain.RoleSeller, BusinessName: "acme"}

	c, err := svc.Create(context.Background(), seller, " Kitchen ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "kitchen" || c.BusinessName != "acme" {
		t.Fatalf("unexpected category %+v", c)
	}
	if _, err := svc.Create(context.Background(), seller, ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.Identity{ID: "b1", Role: domain.RoleBuyer}, "x"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
