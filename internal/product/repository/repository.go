package repository

import (
	"github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/pkg/logger"
	"github.com/mbarros/stock-control/pkg/textstore"
)

// CSVProductRepository persists the product collection in the flat-file
// products resource. It is the sole writer of the on-disk state.
type CSVProductRepository struct {
	resource textstore.Resource
}

func NewCSVProductRepository(dataDir string) *CSVProductRepository {
	return &CSVProductRepository{resource: domain.Resource(dataDir)}
}

// Ensure creates the resource with its header row if missing.
func (r *CSVProductRepository) Ensure() error {
	return r.resource.Ensure()
}

func (r *CSVProductRepository) LoadAll() ([]domain.Product, int, error) {
	products, skipped, err := textstore.LoadAll(r.resource, domain.DecodeProduct)
	if err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		logger.Logger.Warn().
			Int("skipped_rows", skipped).
			Str("resource", r.resource.Path).
			Msg("Dropped malformed product rows")
	}
	return products, skipped, nil
}

func (r *CSVProductRepository) SaveAll(products []domain.Product) error {
	return textstore.SaveAll(r.resource, products, domain.Product.Row)
}

func (r *CSVProductRepository) StageSaveAll(products []domain.Product) (domain.StagedSave, error) {
	return textstore.StageSave(r.resource, products, domain.Product.Row)
}
