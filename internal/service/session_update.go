package service

import (
	"context"
	"log"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/pricing"
)

// SessionPatch is a partial update. A nil field means "no change".
type SessionPatch struct {
	LineItems *[]domain.LineItem
	Buyer     *domain.Buyer
	Payment   *domain.Payment
}

// UpdateSession applies the patch to the session. When line items change,
// enrichment and pricing are re-run before the session is stored so totals
// can never go stale relative to the line items.
func (s *CheckoutServiceImpl) UpdateSession(ctx context.Context, id string, patch *SessionPatch) (*domain.CheckoutSession, error) {
	updated, err := s.store.UpdateSession(ctx, id, func(sess *domain.CheckoutSession) error {
		if patch.LineItems != nil {
			sess.LineItems = s.enrichLineItems(ctx, *patch.LineItems)
			sess.Totals = pricing.SessionTotals(sess.LineItems)
		}
		if patch.Buyer != nil {
			sess.Buyer = patch.Buyer
		}
		if patch.Payment != nil {
			sess.Payment = *patch.Payment
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(id)
	log.Printf("updated checkout session %s", id)
	return updated, nil
}
