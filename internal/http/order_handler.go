package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
)

type OrderHandler struct {
	checkout service.CheckoutService
	timeout  time.Duration
}

func NewOrderHandler(checkout service.CheckoutService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

// GET /orders/{order_id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	order, err := h.checkout.GetOrder(ctx, orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order)
}
