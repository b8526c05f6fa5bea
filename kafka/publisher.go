package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	saledomain "github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/pkg/logger"
)

// Publisher wraps a Kafka producer for the stock-control events.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer, brokers: brokers}, nil
}

// PublishSaleRecorded publishes a sale recorded event with tracing.
func (p *Publisher) PublishSaleRecorded(ctx context.Context, sale saledomain.Sale) error {
	event := SaleRecordedEvent{
		EventID:     uuid.New().String(),
		EventType:   EventTypeSaleRecorded,
		Product:     sale.Product,
		Quantity:    sale.Quantity,
		Total:       sale.Total,
		CustomerCPF: sale.CustomerCPF,
		RecordedAt:  sale.RecordedAt,
		Timestamp:   time.Now(),
	}

	attrs := []attribute.KeyValue{
		attribute.String("sale.product", sale.Product),
		attribute.Int("sale.quantity", sale.Quantity),
	}
	return p.publish(ctx, TopicSaleRecorded, EventTypeSaleRecorded, event.EventID, event, attrs)
}

// PublishLowStock publishes a low stock alert event with tracing.
func (p *Publisher) PublishLowStock(ctx context.Context, product string, quantity, threshold int) error {
	event := LowStockEvent{
		EventID:   uuid.New().String(),
		EventType: EventTypeLowStock,
		Product:   product,
		Quantity:  quantity,
		Threshold: threshold,
		Timestamp: time.Now(),
	}

	attrs := []attribute.KeyValue{
		attribute.String("product.name", product),
		attribute.Int("product.quantity", quantity),
	}
	return p.publish(ctx, TopicLowStock, EventTypeLowStock, event.EventID, event, attrs)
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, eventID string, event any, attrs []attribute.KeyValue) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(append([]attribute.KeyValue{
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		}, attrs...)...),
	)
	defer span.End()

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for key, value := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(key),
			Value: []byte(value),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to publish event")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Str("event_id", eventID).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")

	logger.Logger.Info().
		Str("event_id", eventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
