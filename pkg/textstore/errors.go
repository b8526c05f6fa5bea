package textstore

import "fmt"

// DecodeError reports a row that could not be parsed into a record.
type DecodeError struct {
	Field  string
	Reason error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode field %q: %v", e.Field, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Reason
}

// NewArityError builds a DecodeError for a row with the wrong field count.
func NewArityError(want, got int) *DecodeError {
	return &DecodeError{
		Field:  "row",
		Reason: fmt.Errorf("expected %d fields, got %d", want, got),
	}
}
