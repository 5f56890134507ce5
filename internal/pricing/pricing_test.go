package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

func TestSessionTotals_SingleItem(t *testing.T) {
	items := []domain.LineItem{
		{Item: domain.Item{ID: "prod_001", Price: 2999}, Quantity: 2},
	}

	totals := SessionTotals(items)

	require.Len(t, totals, 3)
	assert.Equal(t, domain.Total{Type: "subtotal", DisplayText: "Subtotal", Amount: 5998}, totals[0])
	assert.Equal(t, domain.Total{Type: "tax", DisplayText: "Tax", Amount: 599}, totals[1])
	assert.Equal(t, domain.Total{Type: "total", DisplayText: "Total", Amount: 6597}, totals[2])
}

func TestSessionTotals_TaxTruncatesTowardZero(t *testing.T) {
	// subtotal 15 -> 10% tax is 1.5, must truncate to 1, not round to 2
	items := []domain.LineItem{
		{Item: domain.Item{ID: "p", Price: 15}, Quantity: 1},
	}

	totals := SessionTotals(items)

	assert.Equal(t, int64(15), totals[0].Amount)
	assert.Equal(t, int64(1), totals[1].Amount)
	assert.Equal(t, int64(16), totals[2].Amount)
}

func TestSessionTotals_SkipsUnresolvedPrices(t *testing.T) {
	items := []domain.LineItem{
		{Item: domain.Item{ID: "known", Price: 1000}, Quantity: 3},
		{Item: domain.Item{ID: "unknown"}, Quantity: 5}, // no resolved price
	}

	totals := SessionTotals(items)

	assert.Equal(t, int64(3000), totals[0].Amount)
	assert.Equal(t, int64(300), totals[1].Amount)
	assert.Equal(t, int64(3300), totals[2].Amount)
}

func TestSessionTotals_EmptyItems(t *testing.T) {
	totals := SessionTotals(nil)

	require.Len(t, totals, 3)
	for _, tot := range totals {
		assert.Equal(t, int64(0), tot.Amount)
	}
}

func TestSessionTotals_MultipleItems(t *testing.T) {
	items := []domain.LineItem{
		{Item: domain.Item{ID: "prod_001", Price: 2999}, Quantity: 1},
		{Item: domain.Item{ID: "prod_002", Price: 4999}, Quantity: 2},
	}

	totals := SessionTotals(items)

	assert.Equal(t, int64(12997), totals[0].Amount)
	assert.Equal(t, int64(1299), totals[1].Amount) // 1299.7 truncated
	assert.Equal(t, int64(14296), totals[2].Amount)
}

func TestLineTotals_HasNoTaxComponent(t *testing.T) {
	li := domain.LineItem{Item: domain.Item{ID: "prod_001", Price: 2999}, Quantity: 2}

	totals := LineTotals(li)

	require.Len(t, totals, 2)
	assert.Equal(t, domain.Total{Type: "subtotal", Amount: 5998}, totals[0])
	assert.Equal(t, domain.Total{Type: "total", Amount: 5998}, totals[1])
}

func TestLineTotals_UnresolvedPrice(t *testing.T) {
	li := domain.LineItem{Item: domain.Item{ID: "unknown"}, Quantity: 2}

	assert.Nil(t, LineTotals(li))
}
