// Package metrics emits request and session metrics to a statsd.Sink.
package metrics

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/enicarthage/library-client/internal/domain/auth"
	obserrors "github.com/enicarthage/library-client/internal/observability/errors"
	"github.com/enicarthage/library-client/internal/observability/statsd"
	"github.com/enicarthage/library-client/internal/ports"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// RequestMetric captures one completed call to the remote authority.
type RequestMetric struct {
	Method   string
	Kind     string
	Duration time.Duration
	Err      error
}

// EmitRequest emits api.request and api.duration for one call.
func EmitRequest(sink statsd.Sink, in RequestMetric) {
	if sink == nil {
		return
	}

	kind := in.Kind
	if kind == "" {
		kind = "unknown"
	}
	tags := map[string]string{
		"method": strings.ToUpper(in.Method),
		"kind":   kind,
		"result": ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.duration", in.Duration, maps.Clone(tags))
	}
}

// Requests returns transport middleware that times every call.
// A nil sink yields a pass-through middleware.
func Requests(sink statsd.Sink) ports.Middleware {
	return func(next ports.Transport) ports.Transport {
		if sink == nil {
			return next
		}
		return ports.TransportFunc(func(ctx context.Context, req ports.Request, out any) error {
			start := time.Now()
			err := next.Do(ctx, req, out)
			EmitRequest(sink, RequestMetric{
				Method:   req.Method,
				Kind:     req.Kind,
				Duration: time.Since(start),
				Err:      err,
			})
			return err
		})
	}
}

// SessionSource is the subset of the session store the gauge needs.
type SessionSource interface {
	Subscribe() (func(), <-chan auth.Session)
}

// TrackSession sets the session.authenticated gauge (1 or 0) on every
// session change until ctx is done or the subscription closes.
func TrackSession(ctx context.Context, sink statsd.Sink, src SessionSource) {
	if sink == nil || src == nil {
		return
	}
	unsubscribe, updates := src.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-updates:
			if !ok {
				return
			}
			value := 0.0
			tags := map[string]string{"role": "anonymous"}
			if s.Identity != nil && s.Token != "" {
				value = 1
				tags["role"] = strings.ToLower(string(s.Role()))
			}
			sink.Gauge("session.authenticated", value, tags)
		}
	}
}
