package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/internal/customer/repository"
)

// One handler per test binary: the constructor registers Prometheus
// collectors and a second registration would panic.
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	handler := NewCustomerHandler(repository.NewCSVCustomerRepository(t.TempDir()), nil)
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestCustomerEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("register", func(t *testing.T) {
		body := `{"cpf":"12345678900","name":"Maria Silva","birth_date":"1990-05-01","address":"Rua A, 10","phone":"11999990000"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("register rejects missing cpf", func(t *testing.T) {
		body := `{"name":"Maria Silva"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("register rejects missing name", func(t *testing.T) {
		body := `{"cpf":"12345678900"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("register rejects malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader("{not json")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/customers", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var resp Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.EqualValues(t, 1, data["total"])
	})
}
