package catalog

import (
	"context"
	"errors"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog exposes the read-only product catalog. An unknown id yields
// ErrProductNotFound; callers enriching line items treat that as "keep the
// caller-supplied fields", not as a failure.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	Close() error
}

// SampleProducts returns the demo catalog this server ships with. The SQLite
// migrations seed the same rows.
func SampleProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "prod_001",
			Title:       "Sample Product 1",
			Description: "A great product",
			Price:       2999,
			ImageURL:    "https://example.com/product1.jpg",
			Stock:       100,
		},
		{
			ID:          "prod_002",
			Title:       "Sample Product 2",
			Description: "Another great product",
			Price:       4999,
			ImageURL:    "https://example.com/product2.jpg",
			Stock:       50,
		},
		{
			ID:          "prod_003",
			Title:       "Gift Wrap",
			Description: "Add-on gift wrapping",
			Price:       499,
			ImageURL:    "https://example.com/giftwrap.jpg",
			Stock:       500,
		},
	}
}
