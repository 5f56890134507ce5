package store

import (
	"context"
	"sync"
	"time"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

// MemoryStore implements SessionStore with in-memory maps. Data lives for the
// process lifetime only: no eviction, no persistence, sessions are never
// deleted and expiry timestamps are never enforced.
//
// Sessions are handed out as deep copies, so a caller can never observe a
// record being mutated by a concurrent request.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.CheckoutSession // sessionID -> session
	byIdem   map[string]string                  // idempotency key -> sessionID
	orders   map[string]*domain.Order           // orderID -> order
	bySess   map[string]string                  // sessionID -> orderID

	events      []*OutboxEvent
	nextEventID int64
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.CheckoutSession),
		byIdem:   make(map[string]string),
		orders:   make(map[string]*domain.Order),
		bySess:   make(map[string]string),
	}
}

func (s *MemoryStore) CreateSession(_ context.Context, session *domain.CheckoutSession, idempotencyKey string) (*domain.CheckoutSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Duplicate create: hand back the previously stored session unchanged.
	if existingID, ok := s.byIdem[idempotencyKey]; ok {
		return s.sessions[existingID].Clone(), false, nil
	}

	s.sessions[session.ID] = session.Clone()
	s.byIdem[idempotencyKey] = session.ID
	return session.Clone(), true, nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (*domain.CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *MemoryStore) GetSessionByIdempotencyKey(_ context.Context, key string) (*domain.CheckoutSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byIdem[key]
	if !ok {
		return nil, ErrIdempotencyKeyNotFound
	}
	return s.sessions[id].Clone(), nil
}

func (s *MemoryStore) UpdateSession(_ context.Context, id string, mutate func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	// Mutate a copy so a failed mutation leaves the stored session untouched.
	updated := current.Clone()
	if err := mutate(updated); err != nil {
		return nil, err
	}

	s.sessions[id] = updated
	return updated.Clone(), nil
}

func (s *MemoryStore) CompleteSession(_ context.Context, id string, newOrder func(*domain.CheckoutSession) *domain.Order) (*domain.CheckoutSession, *domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	// Idempotent no-op: the order is not recreated.
	if current.Status == domain.SessionStatusCompleted {
		return current.Clone(), nil, nil
	}

	updated := current.Clone()
	order := newOrder(updated)

	s.orders[order.ID] = order.Clone()
	s.bySess[id] = order.ID
	s.sessions[id] = updated
	return updated.Clone(), order.Clone(), nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bySess[order.SessionID]; ok {
		return nil, ErrOrderExists
	}

	s.orders[order.ID] = order.Clone()
	s.bySess[order.SessionID] = order.ID
	return order.Clone(), nil
}

func (s *MemoryStore) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (s *MemoryStore) AppendEvent(_ context.Context, event *OutboxEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	stored := *event
	stored.ID = s.nextEventID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.events = append(s.events, &stored)
	return nil
}

func (s *MemoryStore) GetUnpublishedEvents(_ context.Context, limit int) ([]*OutboxEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []*OutboxEvent
	for _, ev := range s.events {
		if ev.Published {
			continue
		}
		copied := *ev
		pending = append(pending, &copied)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *MemoryStore) MarkEventPublished(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events {
		if ev.ID == id {
			ev.Published = true
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements SessionStore
var _ SessionStore = (*MemoryStore)(nil)
