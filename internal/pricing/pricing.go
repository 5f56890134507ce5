package pricing

import (
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

// taxDivisor encodes the fixed 10% tax rate as integer division, so tax is
// truncated toward zero rather than rounded.
const taxDivisor = 10

// SessionTotals computes the session-level totals breakdown from the given
// line items. Items without a resolved price are skipped. The result always
// has exactly three entries, in order: subtotal, tax, total.
func SessionTotals(items []domain.LineItem) []domain.Total {
	var subtotal int64
	for _, li := range items {
		if li.Item.Price > 0 {
			subtotal += li.Item.Price * li.Quantity
		}
	}

	tax := subtotal / taxDivisor
	total := subtotal + tax

	return []domain.Total{
		{Type: domain.TotalTypeSubtotal, DisplayText: "Subtotal", Amount: subtotal},
		{Type: domain.TotalTypeTax, DisplayText: "Tax", Amount: tax},
		{Type: domain.TotalTypeTotal, DisplayText: "Total", Amount: total},
	}
}

// LineTotals computes the per-line totals for a single line item. Line-level
// totals carry no tax component; tax only appears at the session level.
// Returns nil when the item has no resolved price.
func LineTotals(li domain.LineItem) []domain.Total {
	if li.Item.Price <= 0 {
		return nil
	}

	subtotal := li.Item.Price * li.Quantity
	return []domain.Total{
		{Type: domain.TotalTypeSubtotal, Amount: subtotal},
		{Type: domain.TotalTypeTotal, Amount: subtotal},
	}
}
