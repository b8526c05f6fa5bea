package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdomain "github.com/mbarros/stock-control/internal/product/domain"
	productrepo "github.com/mbarros/stock-control/internal/product/repository"
	salerepo "github.com/mbarros/stock-control/internal/sale/repository"
)

// One handler per test binary: the constructor registers Prometheus
// collectors and a second registration would panic.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	dir := t.TempDir()
	products := productrepo.NewCSVProductRepository(dir)
	require.NoError(t, products.SaveAll([]productdomain.Product{
		{Name: "Widget", Price: decimal.RequireFromString("2.50"), Quantity: 5},
	}))
	sales := salerepo.NewCSVSaleRepository(dir)
	require.NoError(t, sales.Ensure())

	handler := NewSaleHandler(products, sales, nil, 5)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestSaleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("record", func(t *testing.T) {
		body := `{"product":"Widget","quantity":3,"customer_cpf":"12345678900"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 2, data["remaining_stock"])
	})

	t.Run("record rejects insufficient stock", func(t *testing.T) {
		body := `{"product":"Widget","quantity":6}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("record rejects unknown product", func(t *testing.T) {
		body := `{"product":"Gadget","quantity":1}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("record rejects non-positive quantity", func(t *testing.T) {
		body := `{"product":"Widget","quantity":0}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("record rejects malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("history", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 1, data["total"])
	})

	t.Run("stats", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales/stats", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 1, data["sales_count"])
		assert.Equal(t, "7.5", data["total_revenue"])
	})

	t.Run("by day", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sales/by-day", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		series := data["series"].([]interface{})
		assert.Len(t, series, 1)
	})
}
