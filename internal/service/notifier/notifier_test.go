package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/enicarthage/library-client/internal/observability/notify"
)

func TestServiceNotify(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var received []notify.Notification
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "capture",
				Sink: notify.SinkFunc(func(_ context.Context, n notify.Notification) error {
					mu.Lock()
					defer mu.Unlock()
					received = append(received, n)
					return nil
				}),
			},
		},
	})

	svc.Notify(ctx, notify.Notification{Message: "Resource not found."})

	if len(received) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(received))
	}
	if received[0].Level != notify.LevelError {
		t.Fatalf("expected level to default to error, got %s", received[0].Level)
	}
	if received[0].Duration != 5*time.Second {
		t.Fatalf("expected 5s lifetime, got %s", received[0].Duration)
	}
}

func TestServiceDurationOverrides(t *testing.T) {
	var got time.Duration
	svc := NewService(Options{
		Durations: Durations{Confirm: 4 * time.Second},
		Sinks: []SinkRegistration{{
			Sink: notify.SinkFunc(func(_ context.Context, n notify.Notification) error {
				got = n.Duration
				return nil
			}),
		}},
	})

	svc.Notify(context.Background(), notify.Notification{Message: "Saved", Level: notify.LevelSuccess})
	if got != 4*time.Second {
		t.Fatalf("expected confirm override, got %s", got)
	}
}

func TestServiceDisabled(t *testing.T) {
	svc := NewService(Options{})
	if svc.Enabled() {
		t.Fatal("expected Enabled() to be false when no sinks registered")
	}
	svc.Notify(context.Background(), notify.Error("ignored"))
}

func TestServiceLogsErrors(t *testing.T) {
	// Ensure we don't panic when sink returns an error.
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "fail",
				Sink: notify.SinkFunc(func(context.Context, notify.Notification) error {
					return errors.New("boom")
				}),
			},
		},
	})

	svc.Notify(context.Background(), notify.Error("An error occurred"))
}

func TestServiceSkipsBlankMessages(t *testing.T) {
	var called bool
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "capture",
				Sink: notify.SinkFunc(func(context.Context, notify.Notification) error {
					called = true
					return nil
				}),
			},
		},
	})

	svc.Notify(context.Background(), notify.Notification{Message: "   "})

	if called {
		t.Fatal("expected sink not to be invoked for a blank message")
	}
}

func TestServiceOverrideReplacesPresetLifetime(t *testing.T) {
	var got time.Duration
	svc := NewService(Options{
		Durations: Durations{Error: 8 * time.Second},
		Sinks: []SinkRegistration{{
			Sink: notify.SinkFunc(func(_ context.Context, n notify.Notification) error {
				got = n.Duration
				return nil
			}),
		}},
	})

	svc.Notify(context.Background(), notify.Error("Server error."))
	if got != 8*time.Second {
		t.Fatalf("expected error override, got %s", got)
	}
}
