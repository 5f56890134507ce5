package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout service.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type CreateSessionRequestDTO struct {
	LineItems []domain.LineItem `json:"line_items"`
	Buyer     *domain.Buyer     `json:"buyer,omitempty"`
	Currency  string            `json:"currency,omitempty"`
	Payment   *domain.Payment   `json:"payment,omitempty"`
}

// UpdateSessionRequestDTO is a patch: a nil field means "no change".
type UpdateSessionRequestDTO struct {
	LineItems *[]domain.LineItem `json:"line_items"`
	Buyer     *domain.Buyer      `json:"buyer"`
	Payment   *domain.Payment    `json:"payment"`
}

// POST /checkout-sessions
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if len(req.LineItems) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "line_items is required")
		return
	}
	if !validQuantities(req.LineItems) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	log.Printf("creating checkout session request_id=%s idempotency_key=%s",
		getRequestID(r.Context()), getIdempotencyKey(r.Context()))

	session, err := h.checkout.CreateSession(ctx, &service.CreateSessionRequest{
		LineItems:      req.LineItems,
		Buyer:          req.Buyer,
		Currency:       req.Currency,
		Payment:        req.Payment,
		IdempotencyKey: getIdempotencyKey(r.Context()),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// GET /checkout-sessions/{session_id}
func (h *CheckoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := chi.URLParam(r, "session_id")

	session, err := h.checkout.GetSession(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// PUT /checkout-sessions/{session_id}
func (h *CheckoutHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := chi.URLParam(r, "session_id")

	var req UpdateSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.LineItems != nil && !validQuantities(*req.LineItems) {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	log.Printf("updating checkout session %s request_id=%s", sessionID, getRequestID(r.Context()))

	session, err := h.checkout.UpdateSession(ctx, sessionID, &service.SessionPatch{
		LineItems: req.LineItems,
		Buyer:     req.Buyer,
		Payment:   req.Payment,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// POST /checkout-sessions/{session_id}/complete
func (h *CheckoutHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := chi.URLParam(r, "session_id")

	log.Printf("completing checkout session %s request_id=%s", sessionID, getRequestID(r.Context()))

	session, err := h.checkout.CompleteSession(ctx, sessionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func validQuantities(items []domain.LineItem) bool {
	for _, li := range items {
		if li.Quantity <= 0 {
			return false
		}
	}
	return true
}
