package query

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/internal/sale/domain"
)

// GetStatsQuery requests revenue totals over the whole sales log.
type GetStatsQuery struct{}

// SalesStats aggregates the sales log.
type SalesStats struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	SalesCount   int             `json:"sales_count"`
}

// GetStatsHandler handles the sales stats query
type GetStatsHandler struct {
	repo domain.SaleRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.SaleRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle sums the total of every recorded sale.
func (h *GetStatsHandler) Handle(_ GetStatsQuery) (*SalesStats, error) {
	sales, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.Total)
	}

	return &SalesStats{TotalRevenue: revenue, SalesCount: len(sales)}, nil
}
