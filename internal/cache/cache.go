package cache

import (
	"context"
	"errors"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
)

type SessionCache interface {
	Get(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
	Set(ctx context.Context, sessionID string, session *domain.CheckoutSession) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCacheMiss = errors.New("cache miss")
