// Package error defines domain-specific errors for the rental marketplace core.
package error

import "errors"

// Error taxonomy. Every specific domain error wraps exactly one of these, so callers
// can branch either on the specific sentinel or on its kind with errors.Is.
var (
	// ErrValidation marks creation-time or input invariant violations.
	ErrValidation = errors.New("validation error")

	// ErrInvalidTransition marks state machine violations.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvariantViolation marks operations that would break an entity invariant.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCurrencyMismatch marks money operations across different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrNotFound marks a missing target (collection member or persisted entity).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a duplicate insertion.
	ErrAlreadyExists = errors.New("already exists")
)

// kindError is a specific sentinel classified under one taxonomy kind.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

func newKind(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

// Kind returns the taxonomy sentinel err belongs to, or nil if it is not a domain error.
func Kind(err error) error {
	for _, kind := range []error{
		ErrValidation,
		ErrInvalidTransition,
		ErrInvariantViolation,
		ErrCurrencyMismatch,
		ErrNotFound,
		ErrAlreadyExists,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
