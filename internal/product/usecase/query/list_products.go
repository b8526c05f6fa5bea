package query

import (
	"fmt"

	"github.com/mbarros/stock-control/internal/product/domain"
)

// ListProductsQuery requests the current product collection.
type ListProductsQuery struct{}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle returns the current collection in stored order.
func (h *ListProductsHandler) Handle(_ ListProductsQuery) ([]domain.Product, error) {
	products, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}
