package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

// EventTypeOrderCompleted is the outbox event appended when a session
// completes and its order is created.
const EventTypeOrderCompleted = "order_completed"

// CompleteSession transitions the session to completed, snapshotting its
// current line items, buyer and totals into a new order. Completing an
// already-completed session returns it unchanged and does not create a
// second order.
func (s *CheckoutServiceImpl) CompleteSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	session, order, err := s.store.CompleteSession(ctx, id, func(sess *domain.CheckoutSession) *domain.Order {
		order := &domain.Order{
			ID:        uuid.New().String(),
			SessionID: sess.ID,
			Status:    domain.OrderStatusConfirmed,
			CreatedAt: time.Now().UTC(),
			LineItems: sess.LineItems,
			Buyer:     sess.Buyer,
			Totals:    sess.Totals,
		}
		sess.Status = domain.SessionStatusCompleted
		sess.OrderID = order.ID
		sess.OrderPermalinkURL = fmt.Sprintf("%s/orders/%s", s.baseURL, order.ID)
		return order
	})
	if err != nil {
		return nil, err
	}

	if order == nil {
		log.Printf("session %s already completed", id)
		return session, nil
	}

	s.appendOrderEvent(ctx, session, order)
	s.invalidateCache(id)
	log.Printf("completed session %s, created order %s", id, order.ID)
	return session, nil
}

func (s *CheckoutServiceImpl) appendOrderEvent(ctx context.Context, session *domain.CheckoutSession, order *domain.Order) {
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"session_id":   order.SessionID,
		"currency":     session.Currency,
		"line_items":   order.LineItems,
		"totals":       order.Totals,
		"completed_at": order.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal order event payload: %v", err)
		return
	}

	event := &store.OutboxEvent{
		AggregateID: order.SessionID,
		EventType:   EventTypeOrderCompleted,
		Payload:     data,
	}
	if err := s.store.AppendEvent(ctx, event); err != nil {
		log.Printf("failed to append order event for session %s: %v", order.SessionID, err)
	}
}
