package query

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/internal/sale/repository"
)

func seedSales(t *testing.T, sales []domain.Sale) domain.SaleRepository {
	t.Helper()
	repo := repository.NewCSVSaleRepository(t.TempDir())
	for _, s := range sales {
		require.NoError(t, repo.Append(s))
	}
	return repo
}

func saleAt(day string, product string, total string) domain.Sale {
	at, err := time.Parse(domain.TimeLayout, day)
	if err != nil {
		panic(err)
	}
	return domain.Sale{
		RecordedAt: at,
		Product:    product,
		Quantity:   1,
		Total:      decimal.RequireFromString(total),
	}
}

func TestGetStatsSumsRevenue(t *testing.T) {
	repo := seedSales(t, []domain.Sale{
		saleAt("2024-03-15T10:00:00", "Widget", "7.50"),
		saleAt("2024-03-15T11:00:00", "Bolt", "2.00"),
		saleAt("2024-03-16T09:00:00", "Widget", "10.00"),
	})
	handler := NewGetStatsHandler(repo)

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.SalesCount)
	assert.Equal(t, "19.50", stats.TotalRevenue.StringFixed(2))
}

func TestGetStatsEmptyLog(t *testing.T) {
	handler := NewGetStatsHandler(seedSales(t, nil))

	stats, err := handler.Handle(GetStatsQuery{})
	require.NoError(t, err)
	assert.Zero(t, stats.SalesCount)
	assert.True(t, stats.TotalRevenue.IsZero())
}

func TestSalesHistoryNewestFirst(t *testing.T) {
	repo := seedSales(t, []domain.Sale{
		saleAt("2024-03-15T10:00:00", "Oldest", "1.00"),
		saleAt("2024-03-16T09:00:00", "Newest", "1.00"),
		saleAt("2024-03-15T11:00:00", "Middle", "1.00"),
	})
	handler := NewSalesHistoryHandler(repo)

	sales, err := handler.Handle(SalesHistoryQuery{})
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "Newest", sales[0].Product)
	assert.Equal(t, "Middle", sales[1].Product)
	assert.Equal(t, "Oldest", sales[2].Product)
}

func TestSalesByDayGroupsAndOrdersByDate(t *testing.T) {
	repo := seedSales(t, []domain.Sale{
		saleAt("2024-03-16T09:00:00", "Widget", "10.00"),
		saleAt("2024-03-15T10:00:00", "Widget", "7.50"),
		saleAt("2024-03-15T11:00:00", "Bolt", "2.00"),
	})
	handler := NewSalesByDayHandler(repo)

	series, err := handler.Handle(SalesByDayQuery{})
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-03-15", series[0].Date)
	assert.Equal(t, "9.50", series[0].Total.StringFixed(2))
	assert.Equal(t, "2024-03-16", series[1].Date)
	assert.Equal(t, "10.00", series[1].Total.StringFixed(2))
}
