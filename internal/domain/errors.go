package domain

import "errors"

var (
	// ErrUnauthenticated means no usable session token exists; the user must sign in again.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrValidation means the backend rejected a payload.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means no resource matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrTransport covers network failures and unexpected backend responses. Retry-able.
	ErrTransport = errors.New("transport failure")

	ErrTransitionNotAllowed = errors.New("booking transition not allowed")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrInvalidCurrency      = errors.New("unsupported currency")
	// ErrQueryDisabled means a read was requested without its required parameters.
	ErrQueryDisabled = errors.New("query disabled")
)
