package domain

import "errors"

var (
	// ErrCPFRequired is returned when a registration carries an empty CPF.
	ErrCPFRequired = errors.New("customer CPF is required")
	// ErrNameRequired is returned when a registration carries an empty name.
	ErrNameRequired = errors.New("customer name is required")
	// ErrCEPNotFound is returned when the postal code resolves to nothing.
	ErrCEPNotFound = errors.New("postal code not found")
)
