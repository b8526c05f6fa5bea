//go:build wireinject
// +build wireinject

package customer

import (
	"github.com/google/wire"

	http "github.com/mbarros/stock-control/internal/customer/delivery/http"
	"github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/internal/customer/repository"
	"github.com/mbarros/stock-control/internal/customer/usecase/command"
	"github.com/mbarros/stock-control/internal/customer/usecase/query"
)

// ProvideCustomerRepository builds the repository chain: the CSV file
// store wrapped by the read-through cache and the tracing decorator.
func ProvideCustomerRepository(dataDir string) domain.CustomerRepository {
	return repository.NewTracingCustomerRepository(
		repository.NewCachedCustomerRepository(
			repository.NewCSVCustomerRepository(dataDir),
		),
	)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCustomerRepository,
)

var HandlerSet = wire.NewSet(
	command.NewRegisterCustomerHandler,
	query.NewListCustomersHandler,
	http.NewCustomerHandlerWithDI,
)

// InitializeHandler initializes the HTTP handler with all dependencies.
// lookup may be nil when address resolution is disabled.
func InitializeHandler(dataDir string, lookup domain.AddressLookup) (*http.CustomerHandler, error) {
	wire.Build(RepositorySet, HandlerSet)
	return nil, nil
}
