package query

import (
	"fmt"

	"github.com/mbarros/stock-control/internal/product/domain"
)

// DefaultLowStockThreshold is the quantity at or below which a product
// counts as low stock.
const DefaultLowStockThreshold = 5

// LowStockQuery requests all products at or below the threshold.
type LowStockQuery struct {
	Threshold int
}

// LowStockHandler handles the low stock query
type LowStockHandler struct {
	repo domain.ProductRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ProductRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle returns the products whose quantity-on-hand is at or below the
// threshold, in stored order.
func (h *LowStockHandler) Handle(q LowStockQuery) ([]domain.Product, error) {
	products, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	low := make([]domain.Product, 0)
	for _, p := range products {
		if p.IsLowStock(q.Threshold) {
			low = append(low, p)
		}
	}
	return low, nil
}
