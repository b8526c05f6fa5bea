package query

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/product/repository"
)

func seedRepo(t *testing.T, products []domain.Product) domain.ProductRepository {
	t.Helper()
	repo := repository.NewCSVProductRepository(t.TempDir())
	require.NoError(t, repo.SaveAll(products))
	return repo
}

func TestLowStockFiltersAtOrBelowThreshold(t *testing.T) {
	repo := seedRepo(t, []domain.Product{
		{Name: "Empty", Price: decimal.RequireFromString("1.00"), Quantity: 0},
		{Name: "Edge", Price: decimal.RequireFromString("1.00"), Quantity: 5},
		{Name: "Above", Price: decimal.RequireFromString("1.00"), Quantity: 6},
		{Name: "Plenty", Price: decimal.RequireFromString("1.00"), Quantity: 10},
	})
	handler := NewLowStockHandler(repo)

	low, err := handler.Handle(LowStockQuery{Threshold: DefaultLowStockThreshold})
	require.NoError(t, err)

	require.Len(t, low, 2)
	assert.Equal(t, "Empty", low[0].Name)
	assert.Equal(t, "Edge", low[1].Name)
}

func TestLowStockEmptyWhenAllStocked(t *testing.T) {
	repo := seedRepo(t, []domain.Product{
		{Name: "Plenty", Price: decimal.RequireFromString("1.00"), Quantity: 10},
	})
	handler := NewLowStockHandler(repo)

	low, err := handler.Handle(LowStockQuery{Threshold: DefaultLowStockThreshold})
	require.NoError(t, err)
	assert.Empty(t, low)
}

func TestListProductsKeepsStoredOrder(t *testing.T) {
	seeded := []domain.Product{
		{Name: "Zebra", Price: decimal.RequireFromString("3.00"), Quantity: 1},
		{Name: "Apple", Price: decimal.RequireFromString("2.00"), Quantity: 2},
	}
	handler := NewListProductsHandler(seedRepo(t, seeded))

	products, err := handler.Handle(ListProductsQuery{})
	require.NoError(t, err)
	assert.Equal(t, seeded, products)
}
