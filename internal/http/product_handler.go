package http

import (
	"context"
	"net/http"
	"time"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
)

type ProductHandler struct {
	checkout service.CheckoutService
	timeout  time.Duration
}

func NewProductHandler(checkout service.CheckoutService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
}

// GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.checkout.ListProducts(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, ProductListResponse{Products: products})
}
