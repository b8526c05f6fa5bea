//go:build wireinject
// +build wireinject

package sale

import (
	"github.com/google/wire"

	productdomain "github.com/mbarros/stock-control/internal/product/domain"
	http "github.com/mbarros/stock-control/internal/sale/delivery/http"
	"github.com/mbarros/stock-control/internal/sale/domain"
	"github.com/mbarros/stock-control/internal/sale/repository"
	"github.com/mbarros/stock-control/internal/sale/usecase/command"
	"github.com/mbarros/stock-control/internal/sale/usecase/query"
)

// ProvideSaleRepository builds the repository chain: the CSV file store
// wrapped by the read-through cache and the tracing decorator.
func ProvideSaleRepository(dataDir string) domain.SaleRepository {
	return repository.NewTracingSaleRepository(
		repository.NewCachedSaleRepository(
			repository.NewCSVSaleRepository(dataDir),
		),
	)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSaleRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRecordSaleHandler,
	query.NewSalesHistoryHandler,
	query.NewGetStatsHandler,
	query.NewSalesByDayHandler,
	http.NewSaleHandlerWithDI,
)

// InitializeHandler initializes the HTTP handler with all dependencies.
// The product repository is shared with the product context so both see
// the same cache; publisher may be nil when events are disabled.
func InitializeHandler(
	dataDir string,
	products productdomain.ProductRepository,
	publisher domain.EventPublisher,
	lowStockThreshold int,
) (*http.SaleHandler, error) {
	wire.Build(RepositorySet, HandlerSet)
	return nil, nil
}
