package failure

import (
	"context"
	"log/slog"

	apperrors "github.com/enicarthage/library-client/internal/errors"
	obserrors "github.com/enicarthage/library-client/internal/observability/errors"
	"github.com/enicarthage/library-client/internal/observability/notify"
	"github.com/enicarthage/library-client/internal/ports"
)

// Options configures the interceptor.
type Options struct {
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Intercept returns a middleware that emits exactly one error notification
// per failed request and hands the untouched error back to the caller.
func Intercept(opts Options) ports.Middleware {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "failure_interceptor")
	}
	return func(next ports.Transport) ports.Transport {
		return ports.TransportFunc(func(ctx context.Context, req ports.Request, out any) error {
			err := next.Do(ctx, req, out)
			if !Notifiable(err) {
				return err
			}

			msg := Translate(err)
			logger.WarnContext(ctx, "api request failed",
				"method", req.Method,
				"path", req.Path,
				"status", apperrors.StatusOf(err),
				"error_class", obserrors.Classify(err),
				"notification", msg,
			)
			if opts.Notifier != nil {
				opts.Notifier.Notify(ctx, notify.Error(msg))
			}
			return err
		})
	}
}
