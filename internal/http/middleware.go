package http

import (
	"context"
	"net/http"
)

// UCP request headers. UCP-Agent and Request-Signature are accepted but not
// validated here; signature verification belongs to an external collaborator.
const (
	HeaderIdempotencyKey   = "Idempotency-Key"
	HeaderRequestID        = "Request-Id"
	HeaderUCPAgent         = "UCP-Agent"
	HeaderRequestSignature = "Request-Signature"
)

// RequireUCPHeaders rejects mutating requests that lack the idempotency-key
// or request-id header and stashes both values in the request context.
func RequireUCPHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idempotencyKey := r.Header.Get(HeaderIdempotencyKey)
		if idempotencyKey == "" {
			respondError(w, http.StatusBadRequest, "missing_header", "Missing idempotency-key header")
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			respondError(w, http.StatusBadRequest, "missing_header", "Missing request-id header")
			return
		}

		ctx := context.WithValue(r.Context(), "idempotency_key", idempotencyKey)
		ctx = context.WithValue(ctx, "request_id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getIdempotencyKey(ctx context.Context) string {
	if key, ok := ctx.Value("idempotency_key").(string); ok {
		return key
	}
	return ""
}

func getRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value("request_id").(string); ok {
		return requestID
	}
	return ""
}
