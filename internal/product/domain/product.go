package domain

import (
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mbarros/stock-control/pkg/textstore"
)

// FileName is the flat-file resource holding the product collection.
const FileName = "produtos.txt"

// Header is the exact persisted field order of the products resource.
var Header = []string{"Nome", "Preco", "quantidade"}

// Resource builds the products resource rooted at dataDir.
func Resource(dataDir string) textstore.Resource {
	return textstore.Resource{
		Path:   filepath.Join(dataDir, FileName),
		Header: Header,
	}
}

// Product represents the product entity. The name is the collection key,
// matched case-insensitively by the registration upsert.
type Product struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Row encodes the product in header order, price with two decimals.
func (p Product) Row() []string {
	return []string{
		p.Name,
		p.Price.StringFixed(2),
		strconv.Itoa(p.Quantity),
	}
}

// DecodeProduct parses a persisted row into a Product.
func DecodeProduct(row []string) (Product, error) {
	if len(row) != len(Header) {
		return Product{}, textstore.NewArityError(len(Header), len(row))
	}

	price, err := decimal.NewFromString(row[1])
	if err != nil {
		return Product{}, &textstore.DecodeError{Field: Header[1], Reason: err}
	}
	qty, err := strconv.Atoi(row[2])
	if err != nil {
		return Product{}, &textstore.DecodeError{Field: Header[2], Reason: err}
	}

	return Product{Name: row[0], Price: price, Quantity: qty}, nil
}

// IsLowStock reports whether quantity-on-hand is at or below threshold.
func (p Product) IsLowStock(threshold int) bool {
	return p.Quantity <= threshold
}

// StagedSave is a prepared collection rewrite that becomes visible only on
// Commit. Abort leaves the persisted collection untouched.
type StagedSave interface {
	Commit() error
	Abort()
}

// ProductRepository defines the contract for product persistence.
type ProductRepository interface {
	// LoadAll returns the current collection and the number of rows the
	// store skipped as malformed.
	LoadAll() ([]Product, int, error)
	// SaveAll rewrites the whole collection in the given order.
	SaveAll(products []Product) error
	// StageSaveAll prepares a rewrite to be committed after another write
	// succeeds.
	StageSaveAll(products []Product) (StagedSave, error)
}
