package access

import (
	"context"
	"log/slog"
	"time"

	"github.com/enicarthage/library-client/internal/domain/auth"
)

// SessionReader supplies the live session and clock to the guard.
type SessionReader interface {
	Session() auth.Session
	Now() time.Time
}

// Guard applies the route table to the live session.
type Guard struct {
	sessions SessionReader
	logger   *slog.Logger
}

// NewGuard constructs a guard over sessions.
func NewGuard(sessions SessionReader, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default().With("component", "access_guard")
	}
	return &Guard{sessions: sessions, logger: logger}
}

// Navigate returns the path to render for a request to path along with the
// decision. Unknown paths are treated as authenticated-only destinations.
func (g *Guard) Navigate(ctx context.Context, path string) (string, Decision) {
	route, ok := Lookup(path)
	if !ok {
		route = Route{Pattern: path}
	}

	decision := route.Evaluate(g.sessions.Session(), g.sessions.Now())
	if decision == Allow {
		return path, decision
	}

	g.logger.InfoContext(ctx, "navigation denied",
		"path", path,
		"decision", decision.String(),
		"role", g.sessions.Session().Role(),
	)
	return decision.Redirect(), decision
}

// Menu returns the sidebar for the live session.
func (g *Guard) Menu() []MenuItem {
	return VisibleMenu(g.sessions.Session(), g.sessions.Now())
}
