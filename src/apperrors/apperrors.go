// Package apperrors defines the tagged business-error kinds returned by the
// service layer. Controllers map kinds to HTTP statuses; services never
// surface raw storage errors to callers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// Internal covers storage and other system-level failures.
	Internal Kind = iota
	// NotFound: the referenced book, borrower or borrow record does not exist.
	NotFound
	// Conflict: duplicate email, returning a closed record, or removing an
	// entity that still has open loans.
	Conflict
	// LimitExceeded: borrower is at their maximum concurrent loan count.
	LimitExceeded
	// Unavailable: no copies left to lend.
	Unavailable
	// InvariantViolation: a copy-count mutation would go negative or exceed
	// the total.
	InvariantViolation
	// ValidationError: malformed or missing input fields.
	ValidationError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case LimitExceeded:
		return "limit_exceeded"
	case Unavailable:
		return "unavailable"
	case InvariantViolation:
		return "invariant_violation"
	case ValidationError:
		return "validation_error"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a business error of the given kind.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error, keeping it reachable through errors.Unwrap.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain; unknown errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to the response status used by the controllers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Conflict, LimitExceeded, Unavailable:
		return http.StatusConflict
	case InvariantViolation:
		return http.StatusUnprocessableEntity
	case ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
