package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/mbarros/stock-control/pkg/logger"
)

// SaleRecordedHandler handles sale recorded events.
type SaleRecordedHandler func(ctx context.Context, event SaleRecordedEvent) error

// LowStockHandler handles low stock events.
type LowStockHandler func(ctx context.Context, event LowStockEvent) error

// Consumer wraps a Kafka consumer group over the stock-control topics.
type Consumer struct {
	consumer sarama.ConsumerGroup
	groupID  string
	topics   []string

	mu             sync.RWMutex
	onSaleRecorded SaleRecordedHandler
	onLowStock     LowStockHandler
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return &Consumer{consumer: consumer, groupID: groupID, topics: topics}, nil
}

// OnSaleRecorded registers the handler for sale recorded events.
func (c *Consumer) OnSaleRecorded(handler SaleRecordedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSaleRecorded = handler
}

// OnLowStock registers the handler for low stock events.
func (c *Consumer) OnLowStock(handler LowStockHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onLowStock = handler
}

// Start starts consuming messages until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			default:
				if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
					logger.Logger.Error().Err(err).Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.handleMessage(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

func (h *consumerGroupHandler) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) {
	// Extract trace context from Kafka headers
	carrier := propagation.MapCarrier{}
	eventType := ""
	eventID := ""
	for _, header := range message.Headers {
		switch key := string(header.Key); key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case "event_type":
			eventType = string(header.Value)
		case "event_id":
			eventID = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
			attribute.String("event.type", eventType),
			attribute.String("event.id", eventID),
		),
	)
	defer span.End()

	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event_type header")
		logger.Logger.Warn().Msg("Message without event_type header")
		return
	}

	h.consumer.mu.RLock()
	onSaleRecorded := h.consumer.onSaleRecorded
	onLowStock := h.consumer.onLowStock
	h.consumer.mu.RUnlock()

	switch eventType {
	case EventTypeSaleRecorded:
		if onSaleRecorded == nil {
			span.SetStatus(codes.Error, "No handler registered")
			return
		}
		var event SaleRecordedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			h.fail(span, eventType, err, "Failed to unmarshal event")
			return
		}
		if err := onSaleRecorded(ctx, event); err != nil {
			h.fail(span, eventType, err, "Failed to handle event")
			return
		}
	case EventTypeLowStock:
		if onLowStock == nil {
			span.SetStatus(codes.Error, "No handler registered")
			return
		}
		var event LowStockEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			h.fail(span, eventType, err, "Failed to unmarshal event")
			return
		}
		if err := onLowStock(ctx, event); err != nil {
			h.fail(span, eventType, err, "Failed to handle event")
			return
		}
	default:
		span.SetStatus(codes.Error, "Unknown event type")
		logger.Logger.Warn().
			Str("event_type", eventType).
			Msg("Unknown event type")
		return
	}

	span.SetStatus(codes.Ok, "Event handled successfully")
	logger.Logger.Info().
		Str("event_type", eventType).
		Str("event_id", eventID).
		Msg("Event handled")
}

func (h *consumerGroupHandler) fail(span trace.Span, eventType string, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	logger.Logger.Error().
		Err(err).
		Str("event_type", eventType).
		Msg(msg)
}
