package query

import (
	"fmt"

	"github.com/mbarros/stock-control/internal/customer/domain"
)

// ListCustomersQuery requests the current customer collection.
type ListCustomersQuery struct{}

// ListCustomersHandler handles the list customers query
type ListCustomersHandler struct {
	repo domain.CustomerRepository
}

// NewListCustomersHandler creates a new list customers handler
func NewListCustomersHandler(repo domain.CustomerRepository) *ListCustomersHandler {
	return &ListCustomersHandler{repo: repo}
}

// Handle returns the current collection in registration order.
func (h *ListCustomersHandler) Handle(_ ListCustomersQuery) ([]domain.Customer, error) {
	customers, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}
