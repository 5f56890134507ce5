package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/catalog"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/domain"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/service"
	"github.com/rickardsteinwig/ucp-acp-integration-kit/internal/store"
)

const testBaseURL = "http://localhost:8080"

func setupRouter(t *testing.T) chi.Router {
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	svc := service.NewCheckoutService(st, catalog.NewMemoryCatalog(catalog.SampleProducts()), nil, testBaseURL)
	return NewRouter(svc, testBaseURL, 5*time.Second)
}

func doRequest(t *testing.T, router chi.Router, method, path string, body interface{}, withHeaders bool) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	request := httptest.NewRequest(method, path, &buf)
	if withHeaders {
		request.Header.Set(HeaderIdempotencyKey, "idem-"+t.Name())
		request.Header.Set(HeaderRequestID, "req-"+t.Name())
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeSession(t *testing.T, recorder *httptest.ResponseRecorder) domain.CheckoutSession {
	t.Helper()
	var session domain.CheckoutSession
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&session))
	return session
}

func createBody() CreateSessionRequestDTO {
	return CreateSessionRequestDTO{
		LineItems: []domain.LineItem{
			{Item: domain.Item{ID: "prod_001"}, Quantity: 2},
		},
		Currency: "USD",
	}
}

func TestCreateSession_Success(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "POST", "/checkout-sessions", createBody(), true)

	require.Equal(t, http.StatusOK, recorder.Code)
	session := decodeSession(t, recorder)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.SessionStatusReadyForComplete, session.Status)

	require.Len(t, session.LineItems, 1)
	assert.Equal(t, int64(2999), session.LineItems[0].Item.Price)
	require.Len(t, session.Totals, 3)
	assert.Equal(t, int64(5998), session.Totals[0].Amount)
	assert.Equal(t, int64(599), session.Totals[1].Amount)
	assert.Equal(t, int64(6597), session.Totals[2].Amount)
}

func TestCreateSession_MissingIdempotencyKey(t *testing.T) {
	router := setupRouter(t)

	recorder := httptest.NewRecorder()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(createBody()))
	request := httptest.NewRequest("POST", "/checkout-sessions", &buf)
	request.Header.Set(HeaderRequestID, "req-1")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "missing_header", resp.Code)
	assert.Contains(t, resp.Error, "idempotency-key")
}

func TestCreateSession_MissingRequestID(t *testing.T) {
	router := setupRouter(t)

	recorder := httptest.NewRecorder()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(createBody()))
	request := httptest.NewRequest("POST", "/checkout-sessions", &buf)
	request.Header.Set(HeaderIdempotencyKey, "idem-1")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "missing_header", resp.Code)
	assert.Contains(t, resp.Error, "request-id")
}

func TestCreateSession_InvalidJSON(t *testing.T) {
	router := setupRouter(t)

	request := httptest.NewRequest("POST", "/checkout-sessions", bytes.NewBufferString("{not json"))
	request.Header.Set(HeaderIdempotencyKey, "idem-1")
	request.Header.Set(HeaderRequestID, "req-1")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateSession_EmptyLineItems(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "POST", "/checkout-sessions", CreateSessionRequestDTO{}, true)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "invalid_request", resp.Code)
}

func TestCreateSession_InvalidQuantity(t *testing.T) {
	router := setupRouter(t)

	body := CreateSessionRequestDTO{
		LineItems: []domain.LineItem{{Item: domain.Item{ID: "prod_001"}, Quantity: 0}},
	}
	recorder := doRequest(t, router, "POST", "/checkout-sessions", body, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateSession_RepeatedIdempotencyKeyReturnsSameSession(t *testing.T) {
	router := setupRouter(t)

	first := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))
	second := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))

	assert.Equal(t, first.ID, second.ID)
}

func TestGetSession_Success(t *testing.T) {
	router := setupRouter(t)

	created := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))

	recorder := doRequest(t, router, "GET", "/checkout-sessions/"+created.ID, nil, false)
	require.Equal(t, http.StatusOK, recorder.Code)
	got := decodeSession(t, recorder)
	assert.Equal(t, created.ID, got.ID)
}

func TestGetSession_NotFound(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "GET", "/checkout-sessions/unknown", nil, false)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Equal(t, "not_found", resp.Code)
}

func TestUpdateSession_Buyer(t *testing.T) {
	router := setupRouter(t)

	created := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))

	patch := UpdateSessionRequestDTO{Buyer: &domain.Buyer{FirstName: "Jane", Email: "jane@example.com"}}
	recorder := doRequest(t, router, "PUT", "/checkout-sessions/"+created.ID, patch, true)

	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decodeSession(t, recorder)
	require.NotNil(t, updated.Buyer)
	assert.Equal(t, "Jane", updated.Buyer.FirstName)
	assert.Equal(t, created.Totals, updated.Totals)
}

func TestUpdateSession_MissingHeaders(t *testing.T) {
	router := setupRouter(t)

	created := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))

	recorder := doRequest(t, router, "PUT", "/checkout-sessions/"+created.ID, UpdateSessionRequestDTO{}, false)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateSession_NotFound(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "PUT", "/checkout-sessions/unknown", UpdateSessionRequestDTO{}, true)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestCompleteSession_Success(t *testing.T) {
	router := setupRouter(t)

	created := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions", createBody(), true))

	recorder := doRequest(t, router, "POST", "/checkout-sessions/"+created.ID+"/complete", nil, true)
	require.Equal(t, http.StatusOK, recorder.Code)
	completed := decodeSession(t, recorder)
	assert.Equal(t, domain.SessionStatusCompleted, completed.Status)
	require.NotEmpty(t, completed.OrderID)
	assert.Equal(t, testBaseURL+"/orders/"+completed.OrderID, completed.OrderPermalinkURL)

	// completing again returns the same order
	again := decodeSession(t, doRequest(t, router, "POST", "/checkout-sessions/"+created.ID+"/complete", nil, true))
	assert.Equal(t, completed.OrderID, again.OrderID)

	// the order snapshot is retrievable
	orderRec := doRequest(t, router, "GET", "/orders/"+completed.OrderID, nil, false)
	require.Equal(t, http.StatusOK, orderRec.Code)
	var order domain.Order
	require.NoError(t, json.NewDecoder(orderRec.Body).Decode(&order))
	assert.Equal(t, created.ID, order.SessionID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
}

func TestCompleteSession_NotFound(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "POST", "/checkout-sessions/unknown/complete", nil, true)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "GET", "/orders/unknown", nil, false)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListProducts(t *testing.T) {
	router := setupRouter(t)

	recorder := doRequest(t, router, "GET", "/products", nil, false)
	require.Equal(t, http.StatusOK, recorder.Code)

	var resp ProductListResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	assert.Len(t, resp.Products, 3)
	assert.Equal(t, "prod_001", resp.Products[0].ID)
}
