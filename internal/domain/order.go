package domain

import "time"

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// Order is the immutable snapshot created once a checkout session completes.
// Exactly one order exists per completed session.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"session_id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	LineItems []LineItem  `json:"line_items"`
	Buyer     *Buyer      `json:"buyer,omitempty"`
	Totals    []Total     `json:"totals"`
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	out := *o
	out.LineItems = CloneLineItems(o.LineItems)
	out.Totals = cloneTotals(o.Totals)
	if o.Buyer != nil {
		buyer := *o.Buyer
		out.Buyer = &buyer
	}
	return &out
}
