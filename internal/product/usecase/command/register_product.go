package command

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/internal/product/domain"
)

// RegisterProductCommand registers a new product or restocks an existing
// one, matched by name case-insensitively.
type RegisterProductCommand struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// RegisterProductHandler handles the register/restock command
type RegisterProductHandler struct {
	repo domain.ProductRepository
}

// NewRegisterProductHandler creates a new register product handler
func NewRegisterProductHandler(repo domain.ProductRepository) *RegisterProductHandler {
	return &RegisterProductHandler{repo: repo}
}

// Handle executes the upsert: an existing product gains the quantity and
// has its price overwritten; otherwise a new product is appended. The full
// collection is persisted afterward.
func (h *RegisterProductHandler) Handle(cmd RegisterProductCommand) (*domain.Product, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if cmd.Price.IsNegative() {
		return nil, domain.ErrPriceNegative
	}
	if cmd.Quantity < 0 {
		return nil, domain.ErrQuantityNegative
	}

	products, _, err := h.repo.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	idx := -1
	for i := range products {
		if strings.EqualFold(products[i].Name, name) {
			idx = i
			break
		}
	}
	if idx >= 0 {
		// Stored name casing wins over the submitted one.
		products[idx].Quantity += cmd.Quantity
		products[idx].Price = cmd.Price
	} else {
		products = append(products, domain.Product{
			Name:     name,
			Price:    cmd.Price,
			Quantity: cmd.Quantity,
		})
		idx = len(products) - 1
	}

	if err := h.repo.SaveAll(products); err != nil {
		return nil, fmt.Errorf("failed to save products: %w", err)
	}

	result := products[idx]
	return &result, nil
}
