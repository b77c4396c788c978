package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can decide whether it blocks
// the interaction or is safe to swallow.
type Kind int

const (
	// KindTransport covers network failures and non-2xx statuses other
	// than 401.
	KindTransport Kind = iota
	// KindAuth is an HTTP 401; persisted credentials have already been
	// cleared by the time the caller sees it.
	KindAuth
	// KindBusiness is a backend-reported failure inside a 2xx envelope.
	KindBusiness
	// KindValidation is a client-side pre-flight rejection; no request
	// was sent.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindBusiness:
		return "business"
	case KindValidation:
		return "validation"
	default:
		return "transport"
	}
}

// Error carries the HTTP status (0 for pure transport failures), a
// classification, and the most specific human-readable message available.
type Error struct {
	Status  int
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// IsAuth reports whether err is a credential failure (HTTP 401).
func IsAuth(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuth
}

// Message extracts the human-readable message from an API error, falling
// back to a generic string for anything else.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return "Something went wrong. Please try again."
}

// recoverableError marks a failure from a supplementary lookup. The paths
// that swallow errors do so through IsRecoverable, so the intent is visible
// in the types rather than hidden in an empty branch.
type recoverableError struct{ err error }

func (r *recoverableError) Error() string { return r.err.Error() }
func (r *recoverableError) Unwrap() error { return r.err }

// Recoverable wraps err as safe-to-swallow. A nil err stays nil.
func Recoverable(err error) error {
	if err == nil {
		return nil
	}
	return &recoverableError{err: err}
}

// IsRecoverable reports whether err was marked by Recoverable.
func IsRecoverable(err error) bool {
	var r *recoverableError
	return errors.As(err, &r)
}
