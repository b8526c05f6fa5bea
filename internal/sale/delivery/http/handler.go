package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	productdomain "github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/internal/sale/usecase/command"
	"github.com/mbarros/stock-control/internal/sale/usecase/query"
	"github.com/mbarros/stock-control/pkg/logger"
)

// SaleHandler handles HTTP requests for sales using CQRS pattern
type SaleHandler struct {
	recordHandler *command.RecordSaleHandler

	historyHandler *query.SalesHistoryHandler
	statsHandler   *query.GetStatsHandler
	byDayHandler   *query.SalesByDayHandler

	publisher         domain.EventPublisher
	lowStockThreshold int

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalSales     prometheus.Counter
}

// NewSaleHandler creates a new sale handler (manual DI). publisher may be
// nil when event publishing is disabled.
func NewSaleHandler(
	products productdomain.ProductRepository,
	sales domain.SaleRepository,
	publisher domain.EventPublisher,
	lowStockThreshold int,
) *SaleHandler {
	return NewSaleHandlerWithDI(
		command.NewRecordSaleHandler(products, sales),
		query.NewSalesHistoryHandler(sales),
		query.NewGetStatsHandler(sales),
		query.NewSalesByDayHandler(sales),
		publisher,
		lowStockThreshold,
	)
}

// NewSaleHandlerWithDI creates a new sale handler using dependency
// injection. This is the constructor Wire builds.
func NewSaleHandlerWithDI(
	recordHandler *command.RecordSaleHandler,
	historyHandler *query.SalesHistoryHandler,
	statsHandler *query.GetStatsHandler,
	byDayHandler *query.SalesByDayHandler,
	publisher domain.EventPublisher,
	lowStockThreshold int,
) *SaleHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_control_sale_requests_total",
			Help: "Total number of requests to sale endpoints",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_control_sale_request_duration_seconds",
			Help:    "Duration of sale endpoint requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalSales := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_control_sales_recorded_total",
			Help: "Number of sales recorded since startup",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalSales)

	return &SaleHandler{
		recordHandler:     recordHandler,
		historyHandler:    historyHandler,
		statsHandler:      statsHandler,
		byDayHandler:      byDayHandler,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
		requestCounter:    requestCounter,
		requestLatency:    requestLatency,
		totalSales:        totalSales,
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
func (h *SaleHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers the sale routes on the router.
func (h *SaleHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/sales", h.metricsMiddleware("/api/sales", h.ListSales)).Methods("GET")
	router.HandleFunc("/api/sales/stats", h.metricsMiddleware("/api/sales/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/sales/by-day", h.metricsMiddleware("/api/sales/by-day", h.SalesByDay)).Methods("GET")
	router.HandleFunc("/api/sales", h.metricsMiddleware("/api/sales", h.RecordSale)).Methods("POST")
}

// RecordSale handles POST /api/sales
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product     string `json:"product"`
		Quantity    int    `json:"quantity"`
		CustomerCPF string `json:"customer_cpf"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	cmd := command.RecordSaleCommand{
		Product:     req.Product,
		Quantity:    req.Quantity,
		CustomerCPF: req.CustomerCPF,
	}

	result, err := h.recordHandler.Handle(cmd)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to record sale")
		respondJSON(w, statusForError(err), Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.totalSales.Inc()
	h.publishEvents(r, result)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Sale recorded successfully",
		Data: map[string]interface{}{
			"sale":            result.Sale,
			"remaining_stock": result.RemainingStock,
		},
	})
}

// publishEvents emits the sale recorded event, plus a low stock alert when
// the sale drained the product. Publishing is best effort.
func (h *SaleHandler) publishEvents(r *http.Request, result *command.RecordSaleResult) {
	if h.publisher == nil {
		return
	}

	ctx := r.Context()
	if err := h.publisher.PublishSaleRecorded(ctx, result.Sale); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to publish sale recorded event")
	}
	if result.RemainingStock <= h.lowStockThreshold {
		if err := h.publisher.PublishLowStock(ctx, result.Sale.Product, result.RemainingStock, h.lowStockThreshold); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish low stock event")
		}
	}
}

// ListSales handles GET /api/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.historyHandler.Handle(query.SalesHistoryQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list sales")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list sales",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"sales": sales,
			"total": len(sales),
		},
	})
}

// GetStats handles GET /api/sales/stats
func (h *SaleHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get sales stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get sales stats",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// SalesByDay handles GET /api/sales/by-day
func (h *SaleHandler) SalesByDay(w http.ResponseWriter, r *http.Request) {
	series, err := h.byDayHandler.Handle(query.SalesByDayQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get sales by day")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get sales by day",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"series": series,
		},
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuantityInvalid),
		errors.Is(err, domain.ErrProductRequired):
		return http.StatusBadRequest
	case errors.Is(err, productdomain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, productdomain.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
