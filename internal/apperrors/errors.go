package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the application error taxonomy. The data gateway
// translates low-level database errors into these before they reach the
// service layer; services add their own domain-rule sentinels on top.

// ErrValidation indicates that input data failed a precondition check
// (caller's fault, never retried).
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForeignKey indicates a referential-integrity violation (e.g. deleting a
// customer that is still referenced by a sale).
var ErrForeignKey = errors.New("referential integrity violation")

// ErrDataTooLong indicates a value exceeded the column length in the store.
var ErrDataTooLong = errors.New("data too long for column")

// ErrConversion indicates a value could not be converted to the column type.
var ErrConversion = errors.New("data conversion error")

// ErrTransient marks an infrastructure failure that is expected to resolve
// itself on retry (network blip, deadlock, timeout). The gateway retries
// these automatically.
var ErrTransient = errors.New("transient infrastructure failure")

// ErrRetriesExhausted is surfaced when a transient failure persisted through
// the full retry budget. It is distinct from a first-attempt permanent failure.
var ErrRetriesExhausted = errors.New("operation failed after retries")

// ErrUnauthorized indicates failed authentication. Callers receive this for
// every denial reason (unknown user, inactive, locked, bad password) so that
// usernames cannot be enumerated.
var ErrUnauthorized = errors.New("invalid credentials")

// ErrForbidden indicates the authenticated user's role does not permit the action.
var ErrForbidden = errors.New("forbidden")

// ErrInsufficientStock indicates an outbound stock movement larger than the
// current on-hand quantity. Business rejection, never retried.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrCartState indicates a checkout operation invalid for the cart's current state.
var ErrCartState = errors.New("invalid cart state")

// AppError wraps an underlying error with a stable code and a message safe to
// surface to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that satisfies errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
