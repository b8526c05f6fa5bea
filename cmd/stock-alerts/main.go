package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mbarros/stock-control/kafka"
	"github.com/mbarros/stock-control/pkg/logger"
	"github.com/mbarros/stock-control/pkg/tracing"
)

// stock-alerts consumes the stock-control event topics and logs sales and
// low-stock alerts for the operator.
func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "stock-alerts")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer tracing.Shutdown(context.Background(), tp)
	}

	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "stock-alerts")

	consumer, err := kafka.NewConsumer(brokers, groupID, []string{
		kafka.TopicSaleRecorded,
		kafka.TopicLowStock,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create consumer")
	}
	defer consumer.Close()

	consumer.OnSaleRecorded(func(ctx context.Context, event kafka.SaleRecordedEvent) error {
		logger.Info(ctx).
			Str("product", event.Product).
			Int("quantity", event.Quantity).
			Str("total", event.Total.StringFixed(2)).
			Msg("Sale recorded")
		return nil
	})
	consumer.OnLowStock(func(ctx context.Context, event kafka.LowStockEvent) error {
		logger.Warn(ctx).
			Str("product", event.Product).
			Int("quantity", event.Quantity).
			Int("threshold", event.Threshold).
			Msg("Product is low on stock")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down alerts worker...")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
