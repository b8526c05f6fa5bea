package repository

import (
	"sync"

	"github.com/mbarros/stock-control/internal/sale/domain"
)

// CachedSaleRepository is a read-through cache in front of another sale
// repository, invalidated on every append.
type CachedSaleRepository struct {
	inner domain.SaleRepository

	mu    sync.Mutex
	sales []domain.Sale
	valid bool
}

func NewCachedSaleRepository(inner domain.SaleRepository) *CachedSaleRepository {
	return &CachedSaleRepository{inner: inner}
}

func (r *CachedSaleRepository) LoadAll() ([]domain.Sale, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.valid {
		return append([]domain.Sale(nil), r.sales...), 0, nil
	}

	sales, skipped, err := r.inner.LoadAll()
	if err != nil {
		return nil, 0, err
	}
	r.sales = append([]domain.Sale(nil), sales...)
	r.valid = true
	return sales, skipped, nil
}

func (r *CachedSaleRepository) Append(sale domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.valid = false
	return r.inner.Append(sale)
}
