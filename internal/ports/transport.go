package ports

import (
	"context"
	"net/url"
)

// Request is one call to the remote authority.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body any
	// Kind names the resource kind for logging and metrics (e.g. "books").
	Kind string
	// Anonymous requests never carry a bearer token (login, register).
	Anonymous bool
	// Bearer overrides the session token for this request only.
	Bearer string
}

// Transport is the opaque request/response channel to the remote authority.
// When out is non-nil the response body is decoded into it.
// Failures are reported as *errors.TransportError.
type Transport interface {
	Do(ctx context.Context, req Request, out any) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request, out any) error

// Do implements Transport.
func (f TransportFunc) Do(ctx context.Context, req Request, out any) error {
	return f(ctx, req, out)
}

// Middleware decorates a Transport.
type Middleware func(next Transport) Transport

// Chain wraps t with mws; the first middleware is the outermost.
func Chain(t Transport, mws ...Middleware) Transport {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			t = mws[i](t)
		}
	}
	return t
}
