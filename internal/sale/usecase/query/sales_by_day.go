package query

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/internal/sale/domain"
)

// SalesByDayQuery requests revenue grouped by calendar date.
type SalesByDayQuery struct{}

// DailyRevenue is the revenue recorded on one calendar date.
type DailyRevenue struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// SalesByDayHandler handles the sales by day query
type SalesByDayHandler struct {
	repo domain.SaleRepository
}

// NewSalesByDayHandler creates a new sales by day handler
func NewSalesByDayHandler(repo domain.SaleRepository) *SalesByDayHandler {
	return &SalesByDayHandler{repo: repo}
}

// Handle groups sales by calendar date and sums totals per group. The
// series is ordered by date ascending.
func (h *SalesByDayHandler) Handle(_ SalesByDayQuery) ([]DailyRevenue, error) {
	sales, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	byDay := make(map[string]decimal.Decimal)
	for _, s := range sales {
		day := s.Day()
		byDay[day] = byDay[day].Add(s.Total)
	}

	series := make([]DailyRevenue, 0, len(byDay))
	for day, total := range byDay {
		series = append(series, DailyRevenue{Date: day, Total: total})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series, nil
}
