package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/pkg/textstore"
)

func TestSaleRowRoundTrip(t *testing.T) {
	s := Sale{
		RecordedAt:  time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC),
		Product:     "Widget",
		Quantity:    3,
		Total:       decimal.RequireFromString("7.50"),
		CustomerCPF: "12345678900",
	}

	row := s.Row()
	assert.Equal(t, []string{"2024-03-15T14:30:05", "Widget", "3", "7.50", "12345678900"}, row)

	decoded, err := DecodeSale(row)
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestSaleRowEmptyCustomerRef(t *testing.T) {
	s := Sale{
		RecordedAt: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		Product:    "Bolt",
		Quantity:   1,
		Total:      decimal.RequireFromString("1.50"),
	}

	decoded, err := DecodeSale(s.Row())
	require.NoError(t, err)
	assert.Empty(t, decoded.CustomerCPF)
	assert.Equal(t, s, decoded)
}

func TestDecodeSaleRejectsWrongArity(t *testing.T) {
	// Legacy four-field rows are dropped, not migrated.
	_, err := DecodeSale([]string{"2024-03-15T14:30:05", "Widget", "3", "7.50"})

	var decodeErr *textstore.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeSaleRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		row  []string
	}{
		{name: "bad timestamp", row: []string{"yesterday", "Widget", "3", "7.50", ""}},
		{name: "bad quantity", row: []string{"2024-03-15T14:30:05", "Widget", "three", "7.50", ""}},
		{name: "bad total", row: []string{"2024-03-15T14:30:05", "Widget", "3", "lots", ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeSale(tc.row)

			var decodeErr *textstore.DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestSaleDay(t *testing.T) {
	s := Sale{RecordedAt: time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)}
	assert.Equal(t, "2024-03-15", s.Day())
}
