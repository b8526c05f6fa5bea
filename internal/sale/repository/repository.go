package repository

import (
	"github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/pkg/logger"
	"github.com/mbarros/stock-control/pkg/textstore"
)

// CSVSaleRepository persists the sales log in the flat-file sales
// resource. Sales are only ever appended, never rewritten.
type CSVSaleRepository struct {
	resource textstore.Resource
}

func NewCSVSaleRepository(dataDir string) *CSVSaleRepository {
	return &CSVSaleRepository{resource: domain.Resource(dataDir)}
}

// Ensure creates the resource with its header row if missing.
func (r *CSVSaleRepository) Ensure() error {
	return r.resource.Ensure()
}

func (r *CSVSaleRepository) LoadAll() ([]domain.Sale, int, error) {
	sales, skipped, err := textstore.LoadAll(r.resource, domain.DecodeSale)
	if err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		logger.Logger.Warn().
			Int("skipped_rows", skipped).
			Str("resource", r.resource.Path).
			Msg("Dropped malformed sale rows")
	}
	return sales, skipped, nil
}

func (r *CSVSaleRepository) Append(sale domain.Sale) error {
	return textstore.Append(r.resource, sale, domain.Sale.Row)
}
