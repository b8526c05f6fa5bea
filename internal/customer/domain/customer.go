package domain

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/mbarros/stock-control/pkg/textstore"
)

// FileName is the flat-file resource holding the customer collection.
const FileName = "clientes.txt"

// Header is the exact persisted field order of the customers resource.
var Header = []string{"CPF", "nome", "datanascimento", "endereço", "telefone"}

// Resource builds the customers resource rooted at dataDir.
func Resource(dataDir string) textstore.Resource {
	return textstore.Resource{
		Path:   filepath.Join(dataDir, FileName),
		Header: Header,
	}
}

// Customer is one registered customer, keyed by CPF. Records are appended
// once and never mutated.
type Customer struct {
	CPF       string `json:"cpf"`
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// Row encodes the customer in header order. All fields are plain strings.
func (c Customer) Row() []string {
	return []string{c.CPF, c.Name, c.BirthDate, c.Address, c.Phone}
}

// DecodeCustomer parses a persisted row into a Customer.
func DecodeCustomer(row []string) (Customer, error) {
	if len(row) != len(Header) {
		return Customer{}, textstore.NewArityError(len(Header), len(row))
	}
	return Customer{
		CPF:       row[0],
		Name:      row[1],
		BirthDate: row[2],
		Address:   row[3],
		Phone:     row[4],
	}, nil
}

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	// LoadAll returns the current collection and the number of rows the
	// store skipped as malformed.
	LoadAll() ([]Customer, int, error)
	// Append writes one customer to the end of the collection.
	Append(customer Customer) error
}

// Address is a structured address resolved from a postal code.
type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
	CEP      string `json:"cep"`
}

// String flattens the address into the free-form field stored on the
// customer record.
func (a Address) String() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.Street, a.District, a.City, a.State, a.CEP} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// AddressLookup resolves a postal code into a structured address. A failed
// lookup must never block customer registration.
type AddressLookup interface {
	Lookup(ctx context.Context, cep string) (*Address, error)
}
