package command

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/product/repository"
)

func TestRegisterProductAppendsNewProduct(t *testing.T) {
	repo := repository.NewCSVProductRepository(t.TempDir())
	handler := NewRegisterProductHandler(repo)

	product, err := handler.Handle(RegisterProductCommand{
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 5, product.Quantity)

	products, _, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestRegisterProductRestocksCaseInsensitively(t *testing.T) {
	repo := repository.NewCSVProductRepository(t.TempDir())
	handler := NewRegisterProductHandler(repo)

	_, err := handler.Handle(RegisterProductCommand{
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		Quantity: 5,
	})
	require.NoError(t, err)

	product, err := handler.Handle(RegisterProductCommand{
		Name:     "widget",
		Price:    decimal.RequireFromString("12.00"),
		Quantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 8, product.Quantity)
	assert.Equal(t, "12.00", product.Price.StringFixed(2))

	products, _, err := repo.LoadAll()
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestRegisterProductValidation(t *testing.T) {
	repo := repository.NewCSVProductRepository(t.TempDir())
	handler := NewRegisterProductHandler(repo)

	_, err := handler.Handle(RegisterProductCommand{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = handler.Handle(RegisterProductCommand{
		Name:  "Widget",
		Price: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrPriceNegative)

	_, err = handler.Handle(RegisterProductCommand{
		Name:     "Widget",
		Price:    decimal.RequireFromString("1.00"),
		Quantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrQuantityNegative)
}
