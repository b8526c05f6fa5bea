package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/pkg/textstore"
)

func TestProductRowRoundTrip(t *testing.T) {
	p := Product{
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: 5,
	}

	row := p.Row()
	assert.Equal(t, []string{"Widget", "10.00", "5"}, row)

	decoded, err := DecodeProduct(row)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestProductRowFormatsPriceWithTwoDecimals(t *testing.T) {
	p := Product{Name: "Bolt", Price: decimal.RequireFromString("1.5"), Quantity: 10}
	assert.Equal(t, []string{"Bolt", "1.50", "10"}, p.Row())
}

func TestDecodeProductRejectsWrongArity(t *testing.T) {
	_, err := DecodeProduct([]string{"Widget", "10.00"})

	var decodeErr *textstore.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeProductRejectsBadNumbers(t *testing.T) {
	cases := []struct {
		name string
		row  []string
	}{
		{name: "bad price", row: []string{"Widget", "ten", "5"}},
		{name: "bad quantity", row: []string{"Widget", "10.00", "many"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeProduct(tc.row)

			var decodeErr *textstore.DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, Product{Quantity: 5}.IsLowStock(5))
	assert.True(t, Product{Quantity: 0}.IsLowStock(5))
	assert.False(t, Product{Quantity: 6}.IsLowStock(5))
}
