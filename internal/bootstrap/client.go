package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/enicarthage/library-client/config"
	"github.com/enicarthage/library-client/internal/adapters/libraryapi"
	"github.com/enicarthage/library-client/internal/domain/access"
	"github.com/enicarthage/library-client/internal/failure"
	"github.com/enicarthage/library-client/internal/observability/metrics"
	"github.com/enicarthage/library-client/internal/observability/notify"
	"github.com/enicarthage/library-client/internal/observability/notify/toast"
	"github.com/enicarthage/library-client/internal/observability/statsd"
	"github.com/enicarthage/library-client/internal/ports"
	"github.com/enicarthage/library-client/internal/service"
	"github.com/enicarthage/library-client/internal/service/notifier"
	"github.com/enicarthage/library-client/internal/session"
)

// ClientOptions contains everything needed to assemble a Client.
type ClientOptions struct {
	Config config.AppConfig
	Logger *slog.Logger
	// Notices receives one line per user-facing notification. Nil disables printing.
	Notices io.Writer
	// Storage overrides the configured token backend (tests).
	Storage ports.TokenStorage
	// HTTPClient overrides the API HTTP client (tests).
	HTTPClient *http.Client
}

// Client is the assembled library client: session, credentials, access
// policy and the collection services, all sharing one transport chain.
type Client struct {
	Sessions   *session.Store
	Gateway    *service.CredentialGateway
	Guard      *access.Guard
	Books      *service.Books
	Borrowings *service.Borrowings
	Events     *service.Events
	Users      *service.Users
	Dashboard  *service.DashboardService
	Notifier   *notifier.Service
	Toasts     *toast.Center

	logger   *slog.Logger
	cancel   context.CancelFunc
	releases []func() error
}

// NewClient wires the client. Call Start to begin the session restore and
// Close to release resources.
func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	c := &Client{logger: logger}

	storage := opts.Storage
	if storage == nil {
		st, release, err := BuildTokenStorage(ctx, StorageConfig{
			Storage: cfg.Storage,
			Redis:   cfg.Redis,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build token storage: %w", err)
		}
		storage = st
		c.releases = append(c.releases, release)
	}

	sessions, err := session.NewStore(session.Options{
		Storage: storage,
		Logger:  logger.With("component", "session_store"),
	})
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.Sessions = sessions

	c.Toasts = toast.NewCenter(toast.Options{DefaultDuration: cfg.Observability.Notifications.ErrorDuration})
	sinks := []notifier.SinkRegistration{{Name: "toast", Sink: c.Toasts}}
	if opts.Notices != nil {
		sinks = append(sinks, notifier.SinkRegistration{Name: "console", Sink: notify.NewWriterSink(opts.Notices)})
	}
	c.Notifier = notifier.NewService(notifier.Options{
		Logger: logger.With("component", "notifier"),
		Sinks:  sinks,
		Durations: notifier.Durations{
			Error:   cfg.Observability.Notifications.ErrorDuration,
			Warning: cfg.Observability.Notifications.WarnDuration,
			Confirm: cfg.Observability.Notifications.ConfirmDuration,
		},
	})

	api, err := libraryapi.NewClient(libraryapi.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		Tokens:    sessions.TokenSource(),
		Client:    opts.HTTPClient,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("build api client: %w", err), c.Close())
	}

	sink := c.buildMetrics(cfg.Observability.Metrics)
	intercept := failure.Intercept(failure.Options{
		Notifier: c.Notifier,
		Logger:   logger.With("component", "failure_interceptor"),
	})

	// The gateway must not wait on the restore it performs itself.
	gateway, err := service.NewCredentialGateway(service.CredentialGatewayOptions{
		Transport: ports.Chain(api, intercept, metrics.Requests(sink)),
		Sessions:  sessions,
		Config: service.CredentialGatewayConfig{
			TokenPath: cfg.API.TokenPath,
			Logger:    logger.With("component", "credential_gateway"),
		},
	})
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.Gateway = gateway

	transport := ports.Chain(api,
		service.AwaitRestore(gateway.Ready()),
		intercept,
		metrics.Requests(sink),
	)
	c.Books = service.NewBooks(transport)
	c.Borrowings = service.NewBorrowings(transport)
	c.Events = service.NewEvents(transport)
	c.Users = service.NewUsers(transport)
	c.Dashboard = service.NewDashboardService(transport)
	c.Guard = access.NewGuard(sessions, logger.With("component", "access_guard"))

	if sink != nil {
		trackCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c.cancel = cancel
		go metrics.TrackSession(trackCtx, sink, sessions)
	}

	return c, nil
}

//nolint:ireturn // a nil Sink disables metrics middleware.
func (c *Client) buildMetrics(cfg config.ObservabilityMetricsConfig) statsd.Sink {
	if !cfg.IsEnabled() {
		return nil
	}
	client, err := statsd.NewClient(statsd.Config{
		Enabled: true,
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  c.logger.With("component", "statsd"),
	})
	if err != nil {
		c.logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	c.releases = append(c.releases, client.Close)
	return client
}

// Start begins restoring a persisted session in the background.
func (c *Client) Start(ctx context.Context) {
	c.Gateway.StartRestore(ctx)
}

// WaitReady blocks until the startup restore has finished or ctx is done.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.Gateway.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops background work and releases backend resources.
func (c *Client) Close() error {
	if c.cancel != nil {
		c.cancel()
	}
	if c.Sessions != nil {
		c.Sessions.Close()
	}
	if c.Toasts != nil {
		c.Toasts.Close()
	}
	var errs []error
	for i := len(c.releases) - 1; i >= 0; i-- {
		if err := c.releases[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.releases = nil
	return errors.Join(errs...)
}
