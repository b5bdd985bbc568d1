package access

import (
	"time"

	"github.com/enicarthage/library-client/internal/domain/auth"
)

// MenuItem is a sidebar entry.
type MenuItem struct {
	Label string
	Path  string
	Roles []auth.Role
}

// Menu is the full sidebar before role filtering.
var Menu = []MenuItem{
	{Label: "Dashboard", Path: "/dashboard", Roles: auth.Roles()},
	{Label: "Books", Path: "/books", Roles: auth.Roles()},
	{Label: "My Borrowings", Path: "/borrowings", Roles: []auth.Role{auth.RoleStudent, auth.RoleFaculty}},
	{Label: "Events", Path: "/events", Roles: auth.Roles()},
	{Label: "Users", Path: "/users", Roles: staffRoles},
	{Label: "Administration", Path: "/admin", Roles: staffRoles},
	{Label: "Profile", Path: "/profile", Roles: auth.Roles()},
}

// VisibleMenu returns the sidebar entries the session may see.
// Anonymous sessions see nothing.
func VisibleMenu(s auth.Session, now time.Time) []MenuItem {
	var out []MenuItem
	for _, item := range Menu {
		if CanActivateAt(item.Roles, s, now) == Allow {
			out = append(out, item)
		}
	}
	return out
}
