package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/xenking/storefront/internal/domain/catalog"
	"github.com/xenking/storefront/internal/store"
)

func newTestServer(t *testing.T) (*store.Store, *http.ServeMux) {
	t.Helper()
	s, err := store.New([]catalog.Seed{
		{ID: 1, Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 5, Category: "electronics", Emoji: "💻"},
		{ID: 2, Name: "Mouse", Price: decimal.RequireFromString("49.99"), Stock: 30, Category: "accessories", Emoji: "🖱️"},
	})
	require.NoError(t, err)

	h, err := New(s, noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)
	return s, mux
}

func do(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

type statusBody struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) statusBody {
	t.Helper()
	var body statusBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProducts(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/products")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var products []struct {
		ID       int     `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Emoji    string  `json:"emoji"`
		Category string  `json:"category"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, "Laptop", products[0].Name)
	assert.InDelta(t, 999.99, products[0].Price, 0.001)
	assert.Equal(t, "electronics", products[0].Category)
}

func TestAdd(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/add?id=1&qty=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "added", decodeStatus(t, w).Status)

	// Second add to the same product reports a merge.
	w = do(t, mux, "/add?id=1&qty=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "updated", decodeStatus(t, w).Status)
}

func TestAdd_DefaultQuantity(t *testing.T) {
	s, mux := newTestServer(t)

	w := do(t, mux, "/add?id=2")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.ItemCount())
}

func TestAdd_MissingID(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/add?qty=2")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id is required", decodeStatus(t, w).Error)
}

func TestAdd_MalformedInput(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/add?id=abc")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, "/add?id=1&qty=abc")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, mux, "/add?id=1&qty=0")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdd_ProductNotFound(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/add?id=999")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product not found", decodeStatus(t, w).Error)
}

func TestAdd_InsufficientStock(t *testing.T) {
	s, mux := newTestServer(t)

	w := do(t, mux, "/add?id=1&qty=6")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "insufficient stock", decodeStatus(t, w).Error)
	assert.Zero(t, s.ItemCount())
}

func TestRemove(t *testing.T) {
	_, mux := newTestServer(t)

	do(t, mux, "/add?id=1&qty=1")
	w := do(t, mux, "/remove?id=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "removed", decodeStatus(t, w).Status)

	w = do(t, mux, "/remove?id=1")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not in cart", decodeStatus(t, w).Error)
}

func TestCart(t *testing.T) {
	_, mux := newTestServer(t)

	do(t, mux, "/add?id=1&qty=2")
	do(t, mux, "/add?id=2&qty=3")

	w := do(t, mux, "/cart")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			ID       int     `json:"id"`
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Quantity int     `json:"quantity"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Items, 2)
	assert.Equal(t, 2, body.Items[0].Quantity)
	// 2*999.99 + 3*49.99 = 2149.95
	assert.InDelta(t, 2149.95, body.Total, 0.001)
}

func TestCart_Empty(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/cart")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[],"total":0.00}`, w.Body.String())
}

func TestCheckout(t *testing.T) {
	s, mux := newTestServer(t)

	do(t, mux, "/add?id=1&qty=3")

	w := do(t, mux, "/checkout")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string  `json:"status"`
		Receipt string  `json:"receipt"`
		Total   float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "checked_out", body.Status)
	assert.NotEmpty(t, body.Receipt)
	assert.InDelta(t, 2999.97, body.Total, 0.001)

	assert.Zero(t, s.ItemCount())
	assert.Equal(t, 2, s.Products()[0].Stock)
}

func TestCheckout_EmptyCart(t *testing.T) {
	_, mux := newTestServer(t)

	w := do(t, mux, "/checkout")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "cart is empty", decodeStatus(t, w).Error)
}
