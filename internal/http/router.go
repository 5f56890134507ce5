package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
)

// NewRouter assembles the UCP REST surface.
func NewRouter(checkout service.CheckoutService, baseURL string, requestTimeout time.Duration) chi.Router {
	checkoutHandler := NewCheckoutHandler(checkout, requestTimeout)
	orderHandler := NewOrderHandler(checkout, requestTimeout)
	productHandler := NewProductHandler(checkout, requestTimeout)
	discoveryHandler := NewDiscoveryHandler(baseURL)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/.well-known/ucp", discoveryHandler.Profile)
	r.Get("/health", discoveryHandler.Health)
	r.Get("/products", productHandler.ListProducts)

	r.Route("/checkout-sessions", func(r chi.Router) {
		r.With(RequireUCPHeaders).Post("/", checkoutHandler.CreateSession)
		r.Get("/{session_id}", checkoutHandler.GetSession)
		r.With(RequireUCPHeaders).Put("/{session_id}", checkoutHandler.UpdateSession)
		r.With(RequireUCPHeaders).Post("/{session_id}/complete", checkoutHandler.CompleteSession)
	})

	r.Get("/orders/{order_id}", orderHandler.GetOrder)

	return r
}
