package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/product/usecase/command"
	"github.com/mbarros/stock-control/internal/product/usecase/query"
	"github.com/mbarros/stock-control/pkg/logger"
)

// ProductHandler handles HTTP requests for products using CQRS pattern
type ProductHandler struct {
	registerHandler *command.RegisterProductHandler

	listHandler     *query.ListProductsHandler
	lowStockHandler *query.LowStockHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewProductHandler creates a new product handler (manual DI)
func NewProductHandler(repo domain.ProductRepository) *ProductHandler {
	return NewProductHandlerWithDI(
		command.NewRegisterProductHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewLowStockHandler(repo),
		repo,
	)
}

// NewProductHandlerWithDI creates a new product handler using dependency
// injection. This is the constructor Wire builds.
func NewProductHandlerWithDI(
	registerHandler *command.RegisterProductHandler,
	listHandler *query.ListProductsHandler,
	lowStockHandler *query.LowStockHandler,
	repo domain.ProductRepository,
) *ProductHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_control_product_requests_total",
			Help: "Total number of requests to product endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_control_product_request_duration_seconds",
			Help:    "Duration of product endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stock_control_total_products",
			Help: "Number of products in the collection",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &ProductHandler{
		registerHandler: registerHandler,
		listHandler:     listHandler,
		lowStockHandler: lowStockHandler,
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		totalProducts:   totalProducts,
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
func (h *ProductHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the product routes on the router.
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/low-stock", h.metricsMiddleware("/api/products/low-stock", h.LowStock)).Methods("GET")
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.RegisterProduct)).Methods("POST")
}

// RegisterProduct handles POST /api/products
func (h *ProductHandler) RegisterProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		Quantity int             `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RegisterProductCommand{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	}

	product, err := h.registerHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register product")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product registered successfully",
		Data:    product,
	})
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listHandler.Handle(query.ListProductsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products": products,
			"total":    len(products),
		},
	})
}

// LowStock handles GET /api/products/low-stock
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := query.DefaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Error:   "Invalid threshold",
			})
			return
		}
		threshold = parsed
	}

	products, err := h.lowStockHandler.Handle(query.LowStockQuery{Threshold: threshold})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to query low stock")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to query low stock",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"products":  products,
			"threshold": threshold,
		},
	})
}

func (h *ProductHandler) updateProductsMetric() {
	if products, _, err := h.repo.LoadAll(); err == nil {
		h.totalProducts.Set(float64(len(products)))
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrPriceNegative),
		errors.Is(err, domain.ErrQuantityNegative):
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
