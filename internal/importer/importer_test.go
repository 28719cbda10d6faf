package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

type stubCategoryRepo struct {
	items []domain.Category
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &p, nil
}

func (s *stubCategoryRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.items = append(s.items, c)
	return &c, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `Name,Price,Category,Brand,image_url
Clay Pot,12.5,Pots,Terra,https://example.com/pot.jpg
Snake Plant,20,Succulents,GreenCo,
,,,,
Hanging Pot,8.999,pots,Terra`

	repo := &stubProductRepo{}
	catRepo := &stubCategoryRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, catRepo, " Plant-Shop ")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 products imported, got %d", count)
	}
	if len(repo.items) != 3 {
		t.Fatalf("expected 3 products saved, got %d", len(repo.items))
	}

	first := repo.items[0]
	if first.Name != "clay pot" || first.Category != "pots" || first.Brand != "terra" || first.BusinessName != "plant-shop" {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if first.Price.String() != "12.5" {
		t.Fatalf("unexpected price %s", first.Price)
	}
	if first.ImageURL != "https://example.com/pot.jpg" {
		t.Fatalf("expected image url to be kept, got %q", first.ImageURL)
	}
	if repo.items[2].Price.String() != "9" {
		t.Fatalf("expected price rounded to cents, got %s", repo.items[2].Price)
	}

	if len(catRepo.items) != 2 {
		t.Fatalf("expected 2 distinct categories, got %+v", catRepo.items)
	}
	if catRepo.items[0].Name != "pots" || catRepo.items[0].BusinessName != "plant-shop" {
		t.Fatalf("unexpected category %+v", catRepo.items[0])
	}
}

func TestCSVImporter_MissingColumn(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("name,price,brand\nx,1,y"), &stubProductRepo{}, &stubCategoryRepo{}, "shop")
	if _, err := imp.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "category") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestCSVImporter_InvalidRows(t *testing.T) {
	cases := map[string]string{
		"missing field":  "name,price,category,brand\npot,,pots,terra",
		"bad price":      "name,price,category,brand\npot,cheap,pots,terra",
		"negative price": "name,price,category,brand\npot,-1,pots,terra",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubProductRepo{}
			imp := NewCSVImporter(strings.NewReader(data), repo, &stubCategoryRepo{}, "shop")
			count, err := imp.Run(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("expected line number in error, got %v", err)
			}
			if count != 0 || len(repo.items) != 0 {
				t.Fatalf("expected nothing imported, got %d", count)
			}
		})
	}
}

func TestCSVImporter_RequiresBusiness(t *testing.T) {
	imp := NewCSVImporter(strings.NewReader("name,price,category,brand\n"), &stubProductRepo{}, &stubCategoryRepo{}, "  ")
	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for blank business")
	}
}

func TestCSVImporter_StopsOnStoreError(t *testing.T) {
	boom := errors.New("boom")
	repo := &stubProductRepo{err: boom}
	imp := NewCSVImporter(strings.NewReader("name,price,category,brand\npot,1,pots,terra"), repo, &stubCategoryRepo{}, "shop")
	if _, err := imp.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
