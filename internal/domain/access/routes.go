package access

import (
	"strings"
	"time"

	"github.com/enicarthage/library-client/internal/domain/auth"
)

// Route is a navigable destination and what it demands of the session.
type Route struct {
	Pattern string
	// Public routes are reachable without a session.
	Public bool
	// Roles, when non-empty, restricts the route to these roles.
	Roles []auth.Role
}

var staffRoles = []auth.Role{auth.RoleAdmin, auth.RoleLibrarian}

// Routes is the client's navigation table.
var Routes = []Route{
	{Pattern: "/login", Public: true},
	{Pattern: "/register", Public: true},
	{Pattern: "/dashboard"},
	{Pattern: "/books"},
	{Pattern: "/books/:id"},
	{Pattern: "/borrowings"},
	{Pattern: "/events"},
	{Pattern: "/events/:id"},
	{Pattern: "/profile"},
	{Pattern: "/admin", Roles: staffRoles},
	{Pattern: "/users", Roles: staffRoles},
}

// Lookup finds the route matching path. Segments starting with ':' match any
// single non-empty segment.
func Lookup(path string) (Route, bool) {
	want := splitPath(path)
	for _, r := range Routes {
		if matchSegments(splitPath(r.Pattern), want) {
			return r, true
		}
	}
	return Route{}, false
}

// Evaluate decides whether s may enter r at now.
func (r Route) Evaluate(s auth.Session, now time.Time) Decision {
	switch {
	case r.Public:
		return Allow
	case len(r.Roles) > 0:
		return CanActivateAt(r.Roles, s, now)
	default:
		return RequireSession(s, now)
	}
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) != len(path) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}
