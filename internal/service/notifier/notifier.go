package notifier

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/enicarthage/library-client/internal/observability/notify"
	"github.com/enicarthage/library-client/internal/ports"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration
	// Durations set for a level replace the lifetime of every notification
	// at that level.
	Durations Durations
}

// Service dispatches notifications to all registered sinks.
type Service struct {
	logger    *slog.Logger
	sinks     []SinkRegistration
	overrides Durations
	defaults  Durations
}

var _ ports.Notifier = (*Service)(nil)

// NewService constructs a notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	return &Service{
		logger:    logger,
		sinks:     sinks,
		overrides: opts.Durations,
		defaults:  Durations{}.withDefaults(),
	}
}

// Notify fans the notification out to all sinks.
// Blank messages are dropped; a missing lifetime is filled from the level.
// A configured per-level override always wins.
func (s *Service) Notify(ctx context.Context, n notify.Notification) {
	if len(s.sinks) == 0 || strings.TrimSpace(n.Message) == "" {
		return
	}
	if n.Level == "" {
		n.Level = notify.LevelError
	}
	if d := s.overrides.For(n.Level); d > 0 {
		n.Duration = d
	} else if n.Duration <= 0 {
		n.Duration = s.defaults.For(n.Level)
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.Show(ctx, n); err != nil {
				s.logger.Error("notification delivery error",
					"sink", entry.Name,
					"level", n.Level,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return len(s.sinks) > 0
}
