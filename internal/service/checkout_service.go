package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/cache"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/catalog"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

// SessionTTL is the fixed expiry window stamped on new sessions. Expiry is
// recorded but never enforced; no sweep or on-read check exists.
const SessionTTL = time.Hour

type CheckoutService interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*domain.CheckoutSession, error)
	GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
	UpdateSession(ctx context.Context, id string, patch *SessionPatch) (*domain.CheckoutSession, error)
	CompleteSession(ctx context.Context, id string) (*domain.CheckoutSession, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type CheckoutServiceImpl struct {
	store    store.SessionStore
	catalog  catalog.Catalog
	cache    cache.SessionCache // optional, nil disables caching
	baseURL  string
	createG  singleflight.Group // collapses duplicate creates per idempotency key
	sessionG singleflight.Group // prevents cache stampede on session reads
}

func NewCheckoutService(st store.SessionStore, cat catalog.Catalog, sessionCache cache.SessionCache, baseURL string) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		store:   st,
		catalog: cat,
		cache:   sessionCache,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *CheckoutServiceImpl) GetSession(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sessionG.Do(id, func() (interface{}, error) {
		if s.cache != nil {
			session, err := s.cache.Get(ctx, id)
			if err == nil {
				return session, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				log.Printf("cache get error: %v", err) // log cache error but continue
			}
		}

		session, err := s.store.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}

		s.cacheSet(id, session)
		return session, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.CheckoutSession), nil
}

func (s *CheckoutServiceImpl) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.store.GetOrder(ctx, id)
}

func (s *CheckoutServiceImpl) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.catalog.ListProducts(ctx)
}

// cacheSet writes through to the cache off the request path; cache failures
// never fail the request.
func (s *CheckoutServiceImpl) cacheSet(id string, session *domain.CheckoutSession) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, id, session); err != nil {
			log.Printf("cache set error: %v", err)
		}
	}()
}

func (s *CheckoutServiceImpl) invalidateCache(id string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, id); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
