//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"

	http "github.com/mbarros/stock-control/internal/product/delivery/http"
	"github.com/mbarros/stock-control/internal/product/domain"
	"github.com/mbarros/stock-control/internal/product/repository"
	"github.com/mbarros/stock-control/internal/product/usecase/command"
	"github.com/mbarros/stock-control/internal/product/usecase/query"
)

// ProvideProductRepository builds the repository chain: the CSV file store
// wrapped by the read-through cache and the tracing decorator.
func ProvideProductRepository(dataDir string) domain.ProductRepository {
	return repository.NewTracingProductRepository(
		repository.NewCachedProductRepository(
			repository.NewCSVProductRepository(dataDir),
		),
	)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterProductHandler,
	query.NewListProductsHandler,
	query.NewLowStockHandler,
	http.NewProductHandlerWithDI,
)

// InitializeRepository builds the shared product repository.
func InitializeRepository(dataDir string) domain.ProductRepository {
	wire.Build(RepositorySet)
	return nil
}

// InitializeHandler initializes the HTTP handler with all dependencies
func InitializeHandler(repo domain.ProductRepository) (*http.ProductHandler, error) {
	wire.Build(HandlerSet)
	return nil, nil
}
