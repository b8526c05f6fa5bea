package domain

import "errors"

var (
	// ErrNameRequired is returned when a registration carries an empty name.
	ErrNameRequired = errors.New("product name is required")
	// ErrPriceNegative is returned when a registration carries a negative price.
	ErrPriceNegative = errors.New("price cannot be negative")
	// ErrQuantityNegative is returned when a registration carries a negative quantity.
	ErrQuantityNegative = errors.New("quantity cannot be negative")
	// ErrProductNotFound is returned when no product matches the given name.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a sale asks for more units than
	// are on hand.
	ErrInsufficientStock = errors.New("insufficient stock")
)
