package repository

import (
	"sync"

	"github.com/mbarros/stock-control/internal/customer/domain"
)

// CachedCustomerRepository is a read-through cache in front of another
// customer repository, invalidated on every append.
type CachedCustomerRepository struct {
	inner domain.CustomerRepository

	mu        sync.Mutex
	customers []domain.Customer
	valid     bool
}

func NewCachedCustomerRepository(inner domain.CustomerRepository) *CachedCustomerRepository {
	return &CachedCustomerRepository{inner: inner}
}

func (r *CachedCustomerRepository) LoadAll() ([]domain.Customer, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.valid {
		return append([]domain.Customer(nil), r.customers...), 0, nil
	}

	customers, skipped, err := r.inner.LoadAll()
	if err != nil {
		return nil, 0, err
	}
	r.customers = append([]domain.Customer(nil), customers...)
	r.valid = true
	return customers, skipped, nil
}

func (r *CachedCustomerRepository) Append(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.valid = false
	return r.inner.Append(customer)
}
