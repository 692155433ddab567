package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo functions when the requested resource does
// not exist in the database. For the catalog lookup the handler maps this to
// HTTP 400, not 404: an unknown or inactive service id on the booking
// endpoint is a client input error, not a missing resource.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails validation.
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ValidationErrors aggregates every rule violation found in one submission.
// Validation does not short-circuit: the caller is told about all problems
// at once, not just the first.
type ValidationErrors struct {
	Violations []string
}

// Error joins all violations with "; " so the full list survives when the
// error is surfaced as a single message.
func (e *ValidationErrors) Error() string {
	return "validation error: " + strings.Join(e.Violations, "; ")
}

// Unwrap makes errors.Is(err, ErrValidation) true for a *ValidationErrors.
func (e *ValidationErrors) Unwrap() error { return ErrValidation }
