package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	productdomain "github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/pkg/logger"
)

// RecordSaleCommand confirms a sale of a product at its current price.
type RecordSaleCommand struct {
	Product     string
	Quantity    int
	CustomerCPF string
}

// RecordSaleResult carries the recorded sale and the stock left over.
type RecordSaleResult struct {
	Sale           domain.Sale
	RemainingStock int
}

// RecordSaleHandler handles the record sale command
type RecordSaleHandler struct {
	products productdomain.ProductRepository
	sales    domain.SaleRepository
	now      func() time.Time
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(products productdomain.ProductRepository, sales domain.SaleRepository) *RecordSaleHandler {
	return &RecordSaleHandler{products: products, sales: sales, now: time.Now}
}

// Handle checks stock, decrements it, and records the sale. The product
// rewrite is staged first and committed only after the sale row is
// appended, so an append failure leaves stock untouched.
func (h *RecordSaleHandler) Handle(cmd RecordSaleCommand) (*RecordSaleResult, error) {
	name := strings.TrimSpace(cmd.Product)
	if name == "" {
		return nil, domain.ErrProductRequired
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrQuantityInvalid
	}

	products, _, err := h.products.LoadAll()
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
	if idx < 0 {
		return nil, productdomain.ErrProductNotFound
	}

	product := &products[idx]
	if cmd.Quantity > product.Quantity {
		return nil, fmt.Errorf("%w: %d units of %q on hand", productdomain.ErrInsufficientStock, product.Quantity, product.Name)
	}

	total := product.Price.Mul(decimal.NewFromInt(int64(cmd.Quantity))).Round(2)
	product.Quantity -= cmd.Quantity

	sale := domain.Sale{
		RecordedAt:  h.now().Truncate(time.Second),
		Product:     product.Name,
		Quantity:    cmd.Quantity,
		Total:       total,
		CustomerCPF: strings.TrimSpace(cmd.CustomerCPF),
	}

	staged, err := h.products.StageSaveAll(products)
	if err != nil {
		return nil, fmt.Errorf("failed to stage stock update: %w", err)
	}
	if err := h.sales.Append(sale); err != nil {
		staged.Abort()
		return nil, fmt.Errorf("failed to append sale: %w", err)
	}
	if err := staged.Commit(); err != nil {
		// The sale row is already on disk; the decrement is lost. Surface
		// the error so the operator can reconcile the stock count.
		logger.Logger.Error().
			Err(err).
			Str("product", product.Name).
			Msg("Sale appended but stock rewrite failed")
		return nil, fmt.Errorf("failed to commit stock update: %w", err)
	}

	return &RecordSaleResult{Sale: sale, RemainingStock: product.Quantity}, nil
}
