package query

import (
	"fmt"
	"sort"

	"github.com/mbarros/stock-control/internal/sale/domain"
)

// SalesHistoryQuery requests all sales, newest first.
type SalesHistoryQuery struct{}

// SalesHistoryHandler handles the sales history query
type SalesHistoryHandler struct {
	repo domain.SaleRepository
}

// NewSalesHistoryHandler creates a new sales history handler
func NewSalesHistoryHandler(repo domain.SaleRepository) *SalesHistoryHandler {
	return &SalesHistoryHandler{repo: repo}
}

// Handle returns the sales log sorted by timestamp descending.
func (h *SalesHistoryHandler) Handle(_ SalesHistoryQuery) ([]domain.Sale, error) {
	sales, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].RecordedAt.After(sales[j].RecordedAt)
	})
	return sales, nil
}
