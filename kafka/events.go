package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecordedEvent is emitted after a sale lands in the sales log.
type SaleRecordedEvent struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	CustomerCPF string          `json:"customer_cpf,omitempty"`
	RecordedAt  time.Time       `json:"recorded_at"`
	Timestamp   time.Time       `json:"timestamp"`
}

// LowStockEvent is emitted when a sale leaves a product at or below the
// low-stock threshold.
type LowStockEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Product   string    `json:"product"`
	Quantity  int       `json:"quantity"`
	Threshold int       `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleRecorded = "sale.recorded"
	EventTypeLowStock     = "stock.low"
)

// Kafka topics
const (
	TopicSaleRecorded = "sale-recorded"
	TopicLowStock     = "stock-low"
)
