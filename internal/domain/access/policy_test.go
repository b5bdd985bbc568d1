package access

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/enicarthage/library-client/internal/domain/auth"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func sessionFor(role auth.Role) auth.Session {
	return auth.Session{Identity: &auth.Identity{Username: "u", Role: role}, Token: "tok"}
}

func TestCanActivateAt(t *testing.T) {
	staff := []auth.Role{auth.RoleAdmin, auth.RoleLibrarian}
	tests := []struct {
		name     string
		required []auth.Role
		session  auth.Session
		want     Decision
	}{
		{"no requirement anonymous", nil, auth.Anonymous(), Allow},
		{"no requirement student", nil, sessionFor(auth.RoleStudent), Allow},
		{"anonymous to staff route", staff, auth.Anonymous(), DenyRedirectLogin},
		{"student to staff route", staff, sessionFor(auth.RoleStudent), DenyRedirectHome},
		{"faculty to staff route", staff, sessionFor(auth.RoleFaculty), DenyRedirectHome},
		{"librarian to staff route", staff, sessionFor(auth.RoleLibrarian), Allow},
		{"admin to staff route", staff, sessionFor(auth.RoleAdmin), Allow},
		{
			"expired token",
			staff,
			auth.Session{Identity: &auth.Identity{Role: auth.RoleAdmin}, Token: "tok", ExpiresAt: now.Add(-time.Second)},
			DenyRedirectLogin,
		},
		{"identity without token", staff, auth.Session{Identity: &auth.Identity{Role: auth.RoleAdmin}}, DenyRedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActivateAt(tt.required, tt.session, now))
		})
	}
}

func TestRequireSession(t *testing.T) {
	assert.Equal(t, DenyRedirectLogin, RequireSession(auth.Anonymous(), now))
	assert.Equal(t, Allow, RequireSession(sessionFor(auth.RoleStudent), now))
}

func TestDecision_Redirect(t *testing.T) {
	assert.Equal(t, "", Allow.Redirect())
	assert.Equal(t, "/login", DenyRedirectLogin.Redirect())
	assert.Equal(t, "/dashboard", DenyRedirectHome.Redirect())
	assert.Equal(t, "deny_redirect_home", DenyRedirectHome.String())
}

func TestLookup(t *testing.T) {
	r, ok := Lookup("/books/42")
	assert.True(t, ok)
	assert.Equal(t, "/books/:id", r.Pattern)

	r, ok = Lookup("/users/")
	assert.True(t, ok)
	assert.Equal(t, staffRoles, r.Roles)

	_, ok = Lookup("/books/42/reviews")
	assert.False(t, ok)
}

func TestRoute_Evaluate(t *testing.T) {
	login, _ := Lookup("/login")
	assert.Equal(t, Allow, login.Evaluate(auth.Anonymous(), now))

	books, _ := Lookup("/books")
	assert.Equal(t, DenyRedirectLogin, books.Evaluate(auth.Anonymous(), now))
	assert.Equal(t, Allow, books.Evaluate(sessionFor(auth.RoleStudent), now))
}

func TestVisibleMenu(t *testing.T) {
	paths := func(items []MenuItem) []string {
		var out []string
		for _, it := range items {
			out = append(out, it.Path)
		}
		return out
	}

	assert.Empty(t, VisibleMenu(auth.Anonymous(), now))
	assert.Equal(t,
		[]string{"/dashboard", "/books", "/borrowings", "/events", "/profile"},
		paths(VisibleMenu(sessionFor(auth.RoleStudent), now)))
	assert.Equal(t,
		[]string{"/dashboard", "/books", "/events", "/users", "/admin", "/profile"},
		paths(VisibleMenu(sessionFor(auth.RoleLibrarian), now)))
}

type fixedSessions struct{ s auth.Session }

func (f fixedSessions) Session() auth.Session { return f.s }
func (f fixedSessions) Now() time.Time        { return now }

func TestGuard_Navigate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	tests := []struct {
		name    string
		session auth.Session
		path    string
		want    string
		dec     Decision
	}{
		{"student to users", sessionFor(auth.RoleStudent), "/users", "/dashboard", DenyRedirectHome},
		{"anonymous to users", auth.Anonymous(), "/users", "/login", DenyRedirectLogin},
		{"librarian to users", sessionFor(auth.RoleLibrarian), "/users", "/users", Allow},
		{"anonymous to register", auth.Anonymous(), "/register", "/register", Allow},
		{"anonymous to book detail", auth.Anonymous(), "/books/7", "/login", DenyRedirectLogin},
		{"unknown path needs session", auth.Anonymous(), "/nowhere", "/login", DenyRedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGuard(fixedSessions{tt.session}, logger)
			got, dec := g.Navigate(ctx, tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dec, dec)
		})
	}
}
