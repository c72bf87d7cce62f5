package domain

import (
	"errors"
	"fmt"
)

// Draft validation errors
var (
	// ErrMissingProductID indicates a request that targets a product without naming it.
	ErrMissingProductID = errors.New("product id is required")

	// ErrEmptyTitle indicates a draft whose title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("title is required")

	// ErrMissingPrice indicates a draft submitted without a price.
	ErrMissingPrice = errors.New("price is required")

	// ErrInvalidPrice indicates a price that does not parse as a decimal number.
	ErrInvalidPrice = errors.New("price is not a valid decimal")

	// ErrPricePrecision indicates a price with more than two fractional digits.
	ErrPricePrecision = errors.New("price has more than two decimal places")

	// ErrNegativePrice indicates an attempt to set a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrTitleTooLong indicates the title exceeds the remote catalog's limit.
	ErrTitleTooLong = errors.New("title exceeds maximum length of 255 characters")

	// ErrMalformedImageList indicates a JSON-encoded image list that could not be decoded.
	ErrMalformedImageList = errors.New("image list is not a valid JSON array")

	// ErrDuplicateImageID indicates an existing-image manifest that lists the same id twice.
	ErrDuplicateImageID = errors.New("image ids must be unique within a product")
)

// ErrInvalidAction is wrapped in the ValidationError the action dispatcher
// builds for unknown action names.
var ErrInvalidAction = errors.New("invalid action")

// ValidationError reports a malformed or missing draft field. It is always
// produced before any remote call is issued.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds a ValidationError for field with a caller-facing message.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}

// RemoteUserError is a business-rule rejection returned by the remote catalog
// (for example a duplicate title). Its message is shown to the operator verbatim.
type RemoteUserError struct {
	Field   []string
	Message string
}

func (e *RemoteUserError) Error() string {
	return e.Message
}

// TransportError is a network or service failure that is independent of
// business rules. It carries no structured field.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
