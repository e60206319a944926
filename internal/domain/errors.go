package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking transport details.
var (
	// ErrValidation is a local, pre-network rejection (missing token, malformed email).
	ErrValidation = errors.New("validation failed")
	// ErrTransport means the auth backend could not be reached.
	ErrTransport = errors.New("transport failure")
	// ErrDomain means the auth backend answered with a non-2xx status.
	ErrDomain = errors.New("request rejected")

	ErrBusy              = errors.New("a request is already in flight")
	ErrInvalidTransition = errors.New("action not allowed in current phase")
	ErrResendUnavailable = errors.New("resend unavailable")
	ErrDisposed          = errors.New("flow disposed")
	ErrNotFound          = errors.New("not found")
	ErrCapacity          = errors.New("too many live flows")
)

// Error is the single error shape returned across a component boundary.
// Kind is one of ErrValidation, ErrTransport or ErrDomain.
type Error struct {
	Kind    error
	Status  int    // HTTP status for ErrDomain, zero otherwise
	Message string // user-facing text
	Email   string // echoed by the backend on some failures
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// NewValidationError builds a local rejection with a user-facing message.
func NewValidationError(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

// MessageOf returns the user-facing message of err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
