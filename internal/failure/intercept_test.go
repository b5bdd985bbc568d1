package failure_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/failure"
	mockauth "github.com/enicarthage/library-client/internal/mocks/auth"
	"github.com/enicarthage/library-client/internal/observability/notify"
	"github.com/enicarthage/library-client/internal/ports"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIntercept_NotFoundEmitsOneNotificationAndPassesErrorThrough(t *testing.T) {
	rec := &mockauth.RecordingNotifier{}
	want := &apperrors.TransportError{Status: 404, Method: "GET", Path: "/books/999"}
	base := ports.TransportFunc(func(context.Context, ports.Request, any) error { return want })

	tr := ports.Chain(base, failure.Intercept(failure.Options{Notifier: rec, Logger: quietLogger()}))
	err := tr.Do(context.Background(), ports.Request{Method: "GET", Path: "/books/999"}, nil)

	require.Same(t, want, err)
	notes := rec.Notifications()
	require.Len(t, notes, 1)
	assert.Equal(t, failure.MsgNotFound, notes[0].Message)
	assert.Equal(t, notify.LevelError, notes[0].Level)
	assert.Equal(t, notify.DefaultAction, notes[0].Action)
	assert.Equal(t, notify.DurationError, notes[0].Duration)
}

func TestIntercept_SuccessIsSilent(t *testing.T) {
	rec := &mockauth.RecordingNotifier{}
	base := ports.TransportFunc(func(context.Context, ports.Request, any) error { return nil })

	tr := ports.Chain(base, failure.Intercept(failure.Options{Notifier: rec, Logger: quietLogger()}))
	require.NoError(t, tr.Do(context.Background(), ports.Request{Method: "GET", Path: "/books"}, nil))
	assert.Empty(t, rec.Notifications())
}

func TestIntercept_CanceledIsSilent(t *testing.T) {
	rec := &mockauth.RecordingNotifier{}
	base := ports.TransportFunc(func(ctx context.Context, req ports.Request, _ any) error {
		return &apperrors.TransportError{Method: req.Method, Path: req.Path, ClientSide: true, Cause: ctx.Err()}
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := ports.Chain(base, failure.Intercept(failure.Options{Notifier: rec, Logger: quietLogger()}))
	err := tr.Do(ctx, ports.Request{Method: "GET", Path: "/books"}, nil)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.Notifications())
}

func TestIntercept_EachFailureNotifiedOnce(t *testing.T) {
	rec := &mockauth.RecordingNotifier{}
	base := ports.TransportFunc(func(_ context.Context, req ports.Request, _ any) error {
		return &apperrors.TransportError{Status: 409, Method: req.Method, Path: req.Path, ServerMessage: "Book already borrowed"}
	})
	tr := ports.Chain(base, failure.Intercept(failure.Options{Notifier: rec, Logger: quietLogger()}))

	for range 3 {
		_ = tr.Do(context.Background(), ports.Request{Method: "POST", Path: "/borrowings/borrow"}, nil)
	}
	assert.Equal(t, []string{"Book already borrowed", "Book already borrowed", "Book already borrowed"}, rec.Messages())
}
