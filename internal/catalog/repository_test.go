package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/catalog"
)

func setupTestDB(t *testing.T) *catalog.Repository {
	// Use in-memory database for tests
	repo, err := catalog.NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("./migrations"))
	return repo
}

func TestRepository_ListProducts_SeededByMigrations(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "prod_001", products[0].ID)
	assert.Equal(t, "Sample Product 1", products[0].Title)
	assert.Equal(t, int64(2999), products[0].Price)
	assert.Equal(t, int64(100), products[0].Stock)
}

func TestRepository_GetProduct(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.GetProduct(context.Background(), "prod_002")
	require.NoError(t, err)

	assert.Equal(t, "Sample Product 2", p.Title)
	assert.Equal(t, int64(4999), p.Price)
	assert.Equal(t, "https://example.com/product2.jpg", p.ImageURL)
}

func TestRepository_GetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), "prod_999")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestMemoryCatalog_GetProduct(t *testing.T) {
	c := catalog.NewMemoryCatalog(catalog.SampleProducts())

	p, err := c.GetProduct(context.Background(), "prod_001")
	require.NoError(t, err)
	assert.Equal(t, int64(2999), p.Price)

	_, err = c.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
}

func TestMemoryCatalog_ListProducts_SortedByID(t *testing.T) {
	c := catalog.NewMemoryCatalog(catalog.SampleProducts())

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 3)
	for i := 1; i < len(products); i++ {
		assert.Less(t, products[i-1].ID, products[i].ID)
	}
}
