package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/mbarros/stock-control/internal/customer/domain"
	"github.com/mbarros/stock-control/pkg/logger"
)

// RegisterCustomerCommand registers a new customer. When Address is empty
// and CEP is given, the address is resolved through the lookup
// collaborator; lookup failure falls back to the submitted address.
type RegisterCustomerCommand struct {
	CPF       string
	Name      string
	BirthDate string
	Address   string
	Phone     string
	CEP       string
}

// RegisterCustomerHandler handles the register customer command
type RegisterCustomerHandler struct {
	repo   domain.CustomerRepository
	lookup domain.AddressLookup
}

// NewRegisterCustomerHandler creates a new register customer handler.
// lookup may be nil when no address resolution is configured.
func NewRegisterCustomerHandler(repo domain.CustomerRepository, lookup domain.AddressLookup) *RegisterCustomerHandler {
	return &RegisterCustomerHandler{repo: repo, lookup: lookup}
}

// Handle validates the required fields and appends the customer.
func (h *RegisterCustomerHandler) Handle(ctx context.Context, cmd RegisterCustomerCommand) (*domain.Customer, error) {
	cpf := strings.TrimSpace(cmd.CPF)
	name := strings.TrimSpace(cmd.Name)
	if cpf == "" {
		return nil, domain.ErrCPFRequired
	}
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	address := strings.TrimSpace(cmd.Address)
	if address == "" && cmd.CEP != "" && h.lookup != nil {
		resolved, err := h.lookup.Lookup(ctx, cmd.CEP)
		if err != nil {
			// Manual address entry is the fallback; registration goes on.
			logger.Logger.Warn().
				Err(err).
				Str("cep", cmd.CEP).
				Msg("Address lookup failed, keeping manual address")
		} else {
			address = resolved.String()
		}
	}

	customer := domain.Customer{
		CPF:       cpf,
		Name:      name,
		BirthDate: strings.TrimSpace(cmd.BirthDate),
		Address:   address,
		Phone:     strings.TrimSpace(cmd.Phone),
	}

	if err := h.repo.Append(customer); err != nil {
		return nil, fmt.Errorf("failed to append customer: %w", err)
	}
	return &customer, nil
}
