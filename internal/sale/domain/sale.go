package domain

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/pkg/textstore"
)

// FileName is the flat-file resource holding the sales log.
const FileName = "vendas.txt"

// TimeLayout is the persisted timestamp format, second precision.
const TimeLayout = "2006-01-02T15:04:05"

// Header is the exact persisted field order of the sales resource. The
// customer reference may be empty.
var Header = []string{"Data_iso", "Produto", "Quantidade", "Valor_total", "CPF-cliente"}

// Resource builds the sales resource rooted at dataDir.
func Resource(dataDir string) textstore.Resource {
	return textstore.Resource{
		Path:   filepath.Join(dataDir, FileName),
		Header: Header,
	}
}

// Sale is one confirmed sale. The product name is a denormalized
// reference, not a foreign key; sales are immutable once recorded.
type Sale struct {
	RecordedAt  time.Time       `json:"recorded_at"`
	Product     string          `json:"product"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	CustomerCPF string          `json:"customer_cpf,omitempty"`
}

// Row encodes the sale in header order, total with two decimals.
func (s Sale) Row() []string {
	return []string{
		s.RecordedAt.Format(TimeLayout),
		s.Product,
		strconv.Itoa(s.Quantity),
		s.Total.StringFixed(2),
		s.CustomerCPF,
	}
}

// DecodeSale parses a persisted row into a Sale.
func DecodeSale(row []string) (Sale, error) {
	if len(row) != len(Header) {
		return Sale{}, textstore.NewArityError(len(Header), len(row))
	}

	recordedAt, err := time.Parse(TimeLayout, row[0])
	if err != nil {
		return Sale{}, &textstore.DecodeError{Field: Header[0], Reason: err}
	}
	qty, err := strconv.Atoi(row[2])
	if err != nil {
		return Sale{}, &textstore.DecodeError{Field: Header[2], Reason: err}
	}
	total, err := decimal.NewFromString(row[3])
	if err != nil {
		return Sale{}, &textstore.DecodeError{Field: Header[3], Reason: err}
	}

	return Sale{
		RecordedAt:  recordedAt,
		Product:     row[1],
		Quantity:    qty,
		Total:       total,
		CustomerCPF: row[4],
	}, nil
}

// Day returns the calendar date the sale belongs to.
func (s Sale) Day() string {
	return s.RecordedAt.Format("2006-01-02")
}

// SaleRepository defines the contract for the append-only sales log.
type SaleRepository interface {
	// LoadAll returns all recorded sales and the number of rows the store
	// skipped as malformed.
	LoadAll() ([]Sale, int, error)
	// Append writes one sale to the end of the log.
	Append(sale Sale) error
}

// EventPublisher emits domain events after a sale lands. Implementations
// must not fail the sale; publishing is best effort.
type EventPublisher interface {
	PublishSaleRecorded(ctx context.Context, sale Sale) error
	PublishLowStock(ctx context.Context, product string, quantity, threshold int) error
}
