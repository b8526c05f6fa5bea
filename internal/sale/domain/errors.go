package domain

import "errors"

var (
	// ErrQuantityInvalid is returned when a sale asks for zero or fewer units.
	ErrQuantityInvalid = errors.New("quantity sold must be greater than zero")
	// ErrProductRequired is returned when a sale names no product.
	ErrProductRequired = errors.New("product name is required")
)
