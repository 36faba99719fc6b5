package domain

import "errors"

// ValidationError describes an order request that was rejected by a
// validation rule. The message is surfaced verbatim to the caller.
// Validation errors are terminal: the caller must correct the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation checks if an error is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError signals that a requested resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// IsNotFound checks if an error is a missing-resource failure.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

var (
	// ErrOrderNotFound is returned when an order id has no entry in the order book.
	ErrOrderNotFound = &NotFoundError{Resource: "Order"}

	// ErrInstrumentNotFound is returned when a symbol has no entry in the reference store.
	ErrInstrumentNotFound = &NotFoundError{Resource: "Instrument"}
)
