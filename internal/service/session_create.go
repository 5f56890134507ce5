package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/catalog"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/pricing"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

type CreateSessionRequest struct {
	LineItems      []domain.LineItem
	Buyer          *domain.Buyer
	Currency       string
	Payment        *domain.Payment
	IdempotencyKey string
}

// CreateSession enriches the line items from the catalog, prices the session
// and stores it in ready_for_complete. A repeated request with the same
// idempotency key returns the previously created session unchanged.
func (s *CheckoutServiceImpl) CreateSession(ctx context.Context, req *CreateSessionRequest) (*domain.CheckoutSession, error) {
	v, err, _ := s.createG.Do(req.IdempotencyKey, func() (interface{}, error) {
		existing, err := s.store.GetSessionByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			log.Printf("duplicate request detected idempotency_key = %v with session_id = %v", req.IdempotencyKey, existing.ID)
			return existing, nil
		}
		if !errors.Is(err, store.ErrIdempotencyKeyNotFound) {
			return nil, fmt.Errorf("failed to check idempotency: %w", err)
		}

		items := s.enrichLineItems(ctx, req.LineItems)

		currency := req.Currency
		if currency == "" {
			currency = "USD"
		}

		payment := domain.Payment{
			Handlers:    []domain.PaymentHandler{},
			Instruments: []domain.PaymentInstrument{},
		}
		if req.Payment != nil {
			payment = *req.Payment
		}

		now := time.Now().UTC()
		session := &domain.CheckoutSession{
			UCP:       domain.NewEnvelope(),
			ID:        uuid.New().String(),
			LineItems: items,
			Buyer:     req.Buyer,
			Status:    domain.SessionStatusReadyForComplete,
			Currency:  currency,
			Totals:    pricing.SessionTotals(items),
			Links:     []domain.Link{},
			ExpiresAt: now.Add(SessionTTL),
			Payment:   payment,
		}
		session.ContinueURL = fmt.Sprintf("%s/checkout/%s", s.baseURL, session.ID)

		stored, created, err := s.store.CreateSession(ctx, session, req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("failed to store session: %w", err)
		}
		if created {
			log.Printf("created checkout session %s", stored.ID)
		}

		s.cacheSet(stored.ID, stored)
		return stored, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.CheckoutSession), nil
}

// enrichLineItems assigns line ids where missing, overwrites title/price/image
// from the catalog when the item id matches a known product, and computes the
// per-line totals. An unknown product id keeps the caller-supplied values.
func (s *CheckoutServiceImpl) enrichLineItems(ctx context.Context, items []domain.LineItem) []domain.LineItem {
	enriched := make([]domain.LineItem, 0, len(items))
	for _, li := range items {
		if li.ID == "" {
			li.ID = uuid.New().String()
		}

		product, err := s.catalog.GetProduct(ctx, li.Item.ID)
		switch {
		case err == nil:
			li.Item.Title = product.Title
			li.Item.Price = product.Price
			li.Item.ImageURL = product.ImageURL
		case !errors.Is(err, catalog.ErrProductNotFound):
			log.Printf("catalog lookup failed for item %s: %v", li.Item.ID, err)
		}

		li.Totals = pricing.LineTotals(li)
		enriched = append(enriched, li)
	}
	return enriched
}
