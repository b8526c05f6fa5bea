package repository

import (
	"sync"

	"github.com/mbarros/stock-control/internal/product/domain"
)

// CachedProductRepository is a read-through cache in front of another
// repository. Every save or staged commit invalidates the cache, so a load
// issued after a write always reflects it.
type CachedProductRepository struct {
	inner domain.ProductRepository

	mu       sync.Mutex
	products []domain.Product
	valid    bool
}

func NewCachedProductRepository(inner domain.ProductRepository) *CachedProductRepository {
	return &CachedProductRepository{inner: inner}
}

func (r *CachedProductRepository) LoadAll() ([]domain.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.valid {
		return append([]domain.Product(nil), r.products...), 0, nil
	}

	products, skipped, err := r.inner.LoadAll()
	if err != nil {
		return nil, 0, err
	}
	r.products = append([]domain.Product(nil), products...)
	r.valid = true
	return products, skipped, nil
}

func (r *CachedProductRepository) SaveAll(products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.valid = false
	return r.inner.SaveAll(products)
}

func (r *CachedProductRepository) StageSaveAll(products []domain.Product) (domain.StagedSave, error) {
	staged, err := r.inner.StageSaveAll(products)
	if err != nil {
		return nil, err
	}
	return &invalidatingStagedSave{StagedSave: staged, repo: r}, nil
}

// invalidatingStagedSave drops the cache when the staged rewrite lands.
type invalidatingStagedSave struct {
	domain.StagedSave
	repo *CachedProductRepository
}

func (s *invalidatingStagedSave) Commit() error {
	s.repo.mu.Lock()
	s.repo.valid = false
	s.repo.mu.Unlock()
	return s.StagedSave.Commit()
}
