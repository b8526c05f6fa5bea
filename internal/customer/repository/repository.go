package repository

import (
	"github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/pkg/logger"
	"github.com/mbarros/stock-control/pkg/textstore"
)

// CSVCustomerRepository persists the customer collection in the flat-file
// customers resource. Customers are appended on registration and never
// rewritten.
type CSVCustomerRepository struct {
	resource textstore.Resource
}

func NewCSVCustomerRepository(dataDir string) *CSVCustomerRepository {
	return &CSVCustomerRepository{resource: domain.Resource(dataDir)}
}

// Ensure creates the resource with its header row if missing.
func (r *CSVCustomerRepository) Ensure() error {
	return r.resource.Ensure()
}

func (r *CSVCustomerRepository) LoadAll() ([]domain.Customer, int, error) {
	customers, skipped, err := textstore.LoadAll(r.resource, domain.DecodeCustomer)
	if err != nil {
		return nil, 0, err
	}
	if skipped > 0 {
		logger.Logger.Warn().
			Int("skipped_rows", skipped).
			Str("resource", r.resource.Path).
			Msg("Dropped malformed customer rows")
	}
	return customers, skipped, nil
}

func (r *CSVCustomerRepository) Append(customer domain.Customer) error {
	return textstore.Append(r.resource, customer, domain.Customer.Row)
}
