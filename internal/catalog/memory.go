package catalog

import (
	"context"
	"sort"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

// MemoryCatalog is a map-backed Catalog seeded once at construction. It backs
// the server when no catalog database is configured and keeps tests free of
// filesystem state.
type MemoryCatalog struct {
	products map[string]domain.Product
}

func NewMemoryCatalog(products []domain.Product) *MemoryCatalog {
	m := make(map[string]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &MemoryCatalog{products: m}
}

func (c *MemoryCatalog) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (c *MemoryCatalog) ListProducts(_ context.Context) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(c.products))
	for _, p := range c.products {
		p := p
		products = append(products, &p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (c *MemoryCatalog) Close() error {
	return nil
}
