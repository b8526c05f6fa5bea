package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/internal/customer/usecase/command"
	"github.com/mbarros/stock-control/internal/customer/usecase/query"
	"github.com/mbarros/stock-control/pkg/logger"
)

// CustomerHandler handles HTTP requests for customers using CQRS pattern
type CustomerHandler struct {
	registerHandler *command.RegisterCustomerHandler
	listHandler     *query.ListCustomersHandler

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCustomerHandler creates a new customer handler (manual DI). lookup
// may be nil when address resolution is disabled.
func NewCustomerHandler(repo domain.CustomerRepository, lookup domain.AddressLookup) *CustomerHandler {
	return NewCustomerHandlerWithDI(
		command.NewRegisterCustomerHandler(repo, lookup),
		query.NewListCustomersHandler(repo),
	)
}

// NewCustomerHandlerWithDI creates a new customer handler using dependency
// injection. This is the constructor Wire builds.
func NewCustomerHandlerWithDI(
	registerHandler *command.RegisterCustomerHandler,
	listHandler *query.ListCustomersHandler,
) *CustomerHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_control_customer_requests_total",
			Help: "Total number of requests to customer endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_control_customer_request_duration_seconds",
			Help:    "Duration of customer endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CustomerHandler{
		registerHandler: registerHandler,
		listHandler:     listHandler,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CustomerHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the customer routes on the router.
func (h *CustomerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/customers", h.metricsMiddleware("/api/customers", h.ListCustomers)).Methods("GET")
	router.HandleFunc("/api/customers", h.metricsMiddleware("/api/customers", h.RegisterCustomer)).Methods("POST")
}

// RegisterCustomer handles POST /api/customers
func (h *CustomerHandler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CPF       string `json:"cpf"`
		Name      string `json:"name"`
		BirthDate string `json:"birth_date"`
		Address   string `json:"address"`
		Phone     string `json:"phone"`
		CEP       string `json:"cep"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RegisterCustomerCommand{
		CPF:       req.CPF,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Address:   req.Address,
		Phone:     req.Phone,
		CEP:       req.CEP,
	}

	customer, err := h.registerHandler.Handle(r.Context(), cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register customer")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Customer registered successfully",
		Data:    customer,
	})
}

// ListCustomers handles GET /api/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.listHandler.Handle(query.ListCustomersQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list customers")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list customers",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"customers": customers,
			"total":     len(customers),
		},
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCPFRequired),
		errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
