package store

import (
	"context"
	"errors"
	"time"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

// Common errors returned by the store
var (
	ErrSessionNotFound        = errors.New("checkout session not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	ErrOrderExists            = errors.New("order already exists for session")
)

// OutboxEvent is a pending domain event waiting to be published. Events are
// appended when an order is created and drained by the outbox poller.
type OutboxEvent struct {
	ID int64
	// AggregateID is the originating session id, used as the message key
	// so events for one session keep their order.
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	Published   bool
}

// SessionStore holds checkout sessions, orders, the idempotency index and the
// event outbox. Implementations must be safe for concurrent use; every
// read-modify-write on a session goes through UpdateSession or
// CompleteSession so racing requests cannot lose updates.
type SessionStore interface {
	// CreateSession stores the session and indexes it under the idempotency
	// key. If the key is already indexed the previously stored session is
	// returned instead and created is false.
	CreateSession(ctx context.Context, session *domain.CheckoutSession, idempotencyKey string) (stored *domain.CheckoutSession, created bool, err error)

	// GetSession returns the session or ErrSessionNotFound.
	GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error)

	// GetSessionByIdempotencyKey resolves the secondary index, returning
	// ErrIdempotencyKeyNotFound for an unknown key.
	GetSessionByIdempotencyKey(ctx context.Context, key string) (*domain.CheckoutSession, error)

	// UpdateSession applies mutate to the session under the store lock and
	// returns the updated session. If mutate returns an error the session is
	// left unchanged.
	UpdateSession(ctx context.Context, id string, mutate func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error)

	// CompleteSession atomically transitions a session to completed. When the
	// session is not yet completed, newOrder is called with the current
	// session state; it must mutate the session (status, order linkage) and
	// return the order to store. An already-completed session is returned
	// unchanged with a nil order.
	CompleteSession(ctx context.Context, id string, newOrder func(*domain.CheckoutSession) *domain.Order) (*domain.CheckoutSession, *domain.Order, error)

	// CreateOrder stores an order snapshot. At most one order may exist per
	// session; a second order for the same session yields ErrOrderExists.
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)

	// GetOrder returns the order or ErrOrderNotFound.
	GetOrder(ctx context.Context, id string) (*domain.Order, error)

	// AppendEvent adds an event to the outbox.
	AppendEvent(ctx context.Context, event *OutboxEvent) error

	// GetUnpublishedEvents returns up to limit pending events in append order.
	GetUnpublishedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)

	// MarkEventPublished flags an event so the poller does not resend it.
	MarkEventPublished(ctx context.Context, id int64) error

	Close() error
}
