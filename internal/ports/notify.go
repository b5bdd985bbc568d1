package ports

import (
	"context"

	"github.com/enicarthage/library-client/internal/observability/notify"
)

// Notifier displays a transient notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n notify.Notification)
}
