package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// CSVImporter reads a store's product sheet and inserts/updates products
// together with the categories they reference.
type CSVImporter struct {
	reader       *csv.Reader
	products     ProductWriter
	categories   CategoryWriter
	businessName string
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter, businessName string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // image_url is optional
	return &CSVImporter{
		reader:       csvr,
		products:     products,
		categories:   categories,
		businessName: strings.ToLower(strings.TrimSpace(businessName)),
	}
}

var requiredHeaders = []string{"name", "price", "category", "brand"}

// Run parses CSV rows and upserts one product per row. It stops at the
// first invalid row and reports how many rows were saved before it.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	if i.businessName == "" {
		return 0, errors.New("business name is required")
	}
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return 0, fmt.Errorf("missing column %q", h)
		}
	}

	var (
		imported int
		line     = 1
		seen     = map[string]bool{}
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		p, err := i.parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if p == nil {
			continue
		}

		if !seen[p.Category] {
			if _, err := i.categories.Upsert(ctx, domain.Category{Name: p.Category, BusinessName: i.businessName}); err != nil {
				return imported, fmt.Errorf("upsert category %q: %w", p.Category, err)
			}
			seen[p.Category] = true
		}
		if _, err := i.products.Upsert(ctx, *p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := strings.ToLower(pick(record, index, "name"))
	priceStr := pick(record, index, "price")
	category := strings.ToLower(pick(record, index, "category"))
	brand := strings.ToLower(pick(record, index, "brand"))
	imageURL := pick(record, index, "image_url")

	if name == "" && priceStr == "" && category == "" && brand == "" {
		return nil, nil
	}
	if name == "" || priceStr == "" || category == "" || brand == "" {
		return nil, fmt.Errorf("all fields are required")
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", priceStr)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative")
	}

	return &domain.Product{
		Name:         name,
		Price:        price.Round(2),
		BusinessName: i.businessName,
		Category:     category,
		Brand:        brand,
		ImageURL:     imageURL,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
