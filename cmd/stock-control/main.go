package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/mbarros/stock-control/internal/customer"
	"github.com/mbarros/stock-control/internal/customer/client"
	customerdomain "github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/internal/product"
	productdomain "github.com/mbarros/stock-control/internal/product/domain"
	productquery "github.com/mbarros/stock-control/internal/product/usecase/query"
	"github.com/mbarros/stock-control/internal/sale"
	saledomain "github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/kafka"
	"github.com/mbarros/stock-control/pkg/logger"
	"github.com/mbarros/stock-control/pkg/textstore"
	"github.com/mbarros/stock-control/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "stock-control")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting stock control service")

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer tracing.Shutdown(context.Background(), tp)
	}

	// Create the flat-file resources with their headers on first start.
	dataDir := getEnv("DATA_DIR", ".")
	resources := []textstore.Resource{
		productdomain.Resource(dataDir),
		saledomain.Resource(dataDir),
		customerdomain.Resource(dataDir),
	}
	for _, res := range resources {
		if err := res.Ensure(); err != nil {
			logger.Logger.Fatal().Err(err).Str("resource", res.Path).Msg("Failed to ensure resource")
		}
	}
	logger.Logger.Info().Str("data_dir", dataDir).Msg("Resources initialized")

	lowStockThreshold := productquery.DefaultLowStockThreshold
	if raw := getEnv("LOW_STOCK_THRESHOLD", ""); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			logger.Logger.Fatal().Str("value", raw).Msg("Invalid LOW_STOCK_THRESHOLD")
		}
		lowStockThreshold = parsed
	}

	// Event publishing is optional; the service runs without a broker.
	var publisher saledomain.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		pub, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable, events disabled")
		} else {
			publisher = pub
			defer pub.Close()
		}
	}

	// The product repository is shared between the product and sale
	// contexts so a sale's stock decrement invalidates the same cache the
	// product endpoints read through.
	productRepo := product.InitializeRepository(dataDir)

	productHandler, err := product.InitializeHandler(productRepo)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize product handler")
	}
	saleHandler, err := sale.InitializeHandler(dataDir, productRepo, publisher, lowStockThreshold)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize sale handler")
	}

	lookup := client.NewViaCEPClient(getEnv("VIACEP_BASE_URL", ""))
	customerHandler, err := customer.InitializeHandler(dataDir, lookup)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize customer handler")
	}

	router := mux.NewRouter()
	productHandler.RegisterRoutes(router)
	saleHandler.RegisterRoutes(router)
	customerHandler.RegisterRoutes(router)

	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := http.ListenAndServe(":"+httpPort, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
