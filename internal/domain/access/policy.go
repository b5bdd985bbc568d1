// Package access decides whether a session may enter a destination.
// Evaluation is pure; Guard is the thin adapter that reads the live session.
package access

import (
	"slices"
	"time"

	"github.com/enicarthage/library-client/internal/domain/auth"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Allow Decision = iota
	DenyRedirectLogin
	DenyRedirectHome
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyRedirectLogin:
		return "deny_redirect_login"
	case DenyRedirectHome:
		return "deny_redirect_home"
	default:
		return "unknown"
	}
}

// Redirect destinations for denied navigation.
const (
	LoginPath = "/login"
	HomePath  = "/dashboard"
)

// Redirect returns the path a denied navigation is sent to, or "" for Allow.
func (d Decision) Redirect() string {
	switch d {
	case DenyRedirectLogin:
		return LoginPath
	case DenyRedirectHome:
		return HomePath
	default:
		return ""
	}
}

// CanActivateAt evaluates, in order: no roles required allows; an
// unauthenticated session is sent to login; a session holding one of the
// required roles is allowed; anything else is sent home.
func CanActivateAt(required []auth.Role, s auth.Session, now time.Time) Decision {
	if len(required) == 0 {
		return Allow
	}
	if !s.AuthenticatedAt(now) {
		return DenyRedirectLogin
	}
	if slices.Contains(required, s.Role()) {
		return Allow
	}
	return DenyRedirectHome
}

// CanActivate is CanActivateAt against the wall clock.
func CanActivate(required []auth.Role, s auth.Session) Decision {
	return CanActivateAt(required, s, time.Now())
}

// RequireSession is the authentication-only check for destinations without
// role requirements.
func RequireSession(s auth.Session, now time.Time) Decision {
	if !s.AuthenticatedAt(now) {
		return DenyRedirectLogin
	}
	return Allow
}
