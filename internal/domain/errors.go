package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// StoreError tags a persistence-layer failure surfaced by the navigation
// tracker. Store failures during a navigation session are best-effort: the
// session transition still happens and the StoreError is reported to the
// caller separately so the UI can offer a retry without treating navigation
// itself as broken.
type StoreError struct {
	Op  string // operation that failed, e.g. "create trip"
	Err error
}

func (e *StoreError) Error() string {
	return "store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
