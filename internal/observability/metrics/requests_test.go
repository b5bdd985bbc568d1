package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/observability/statsd"
	"github.com/enicarthage/library-client/internal/ports"
)

func TestRequestsRecordsSuccess(t *testing.T) {
	rec := &statsd.Recorder{}
	tr := ports.Chain(ports.TransportFunc(func(context.Context, ports.Request, any) error {
		time.Sleep(time.Millisecond)
		return nil
	}), Requests(rec))

	require.NoError(t, tr.Do(context.Background(), ports.Request{Method: "get", Kind: "books"}, nil))

	counts := rec.Named("api.request")
	require.Len(t, counts, 1)
	assert.Equal(t, map[string]string{"method": "GET", "kind": "books", "result": "success"}, counts[0].Tags)

	timings := rec.Named("api.duration")
	require.Len(t, timings, 1)
	assert.Positive(t, timings[0].Value)
}

func TestRequestsRecordsErrorClass(t *testing.T) {
	rec := &statsd.Recorder{}
	failure := &apperrors.TransportError{Status: 404, Method: "GET", Path: "/books/9"}
	tr := ports.Chain(ports.TransportFunc(func(context.Context, ports.Request, any) error {
		return failure
	}), Requests(rec))

	err := tr.Do(context.Background(), ports.Request{Method: "GET", Kind: "books"}, nil)
	require.ErrorIs(t, err, failure)

	counts := rec.Named("api.request")
	require.Len(t, counts, 1)
	assert.Equal(t, "error", counts[0].Tags["result"])
	assert.Equal(t, "http_404", counts[0].Tags["error_class"])
}

func TestRequestsNilSinkPassesThrough(t *testing.T) {
	called := false
	tr := ports.Chain(ports.TransportFunc(func(context.Context, ports.Request, any) error {
		called = true
		return nil
	}), Requests(nil))
	require.NoError(t, tr.Do(context.Background(), ports.Request{}, nil))
	assert.True(t, called)
}

func TestEmitRequestDefaultsKind(t *testing.T) {
	rec := &statsd.Recorder{}
	EmitRequest(rec, RequestMetric{Method: "POST"})
	counts := rec.Named("api.request")
	require.Len(t, counts, 1)
	assert.Equal(t, "unknown", counts[0].Tags["kind"])
	assert.Empty(t, rec.Named("api.duration"))
}

type fakeSessions struct {
	ch chan auth.Session
}

func (f *fakeSessions) Subscribe() (func(), <-chan auth.Session) {
	return func() {}, f.ch
}

func TestTrackSession(t *testing.T) {
	rec := &statsd.Recorder{}
	src := &fakeSessions{ch: make(chan auth.Session, 2)}
	src.ch <- auth.Anonymous()
	src.ch <- auth.Session{Identity: &auth.Identity{Username: "alice", Role: auth.RoleStudent}, Token: "t"}
	close(src.ch)

	TrackSession(context.Background(), rec, src)

	gauges := rec.Named("session.authenticated")
	require.Len(t, gauges, 2)
	assert.Zero(t, gauges[0].Value)
	assert.Equal(t, "anonymous", gauges[0].Tags["role"])
	assert.Equal(t, 1.0, gauges[1].Value)
	assert.Equal(t, "student", gauges[1].Tags["role"])
}
