package errors

import (
	"errors"
	"fmt"
)

// TransportError describes a failed exchange with the remote authority.
// Status is zero for client-side/network failures.
type TransportError struct {
	Status int
	Method string
	Path   string
	// ServerMessage is the "message" field of the error body, if any.
	ServerMessage string
	// ClientSide marks failures that never produced an HTTP response.
	ClientSide bool
	Cause      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	switch {
	case e.ClientSide && e.Cause != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
	case e.ServerMessage != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.ServerMessage)
	default:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// AsTransport extracts a *TransportError from err's chain.
func AsTransport(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if te, ok := AsTransport(err); ok {
		return te.Status
	}
	return 0
}
