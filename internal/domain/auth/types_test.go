package auth

import (
	"testing"
	"time"
)

func TestSession_AuthenticatedRequiresIdentityAndToken(t *testing.T) {
	now := time.Now()
	id := &Identity{Username: "alice", Role: RoleStudent}

	cases := []struct {
		name string
		s    Session
		want bool
	}{
		{"anonymous", Anonymous(), false},
		{"identity only", Session{Identity: id}, false},
		{"token only", Session{Token: "t"}, false},
		{"both", Session{Identity: id, Token: "t"}, true},
		{"expired", Session{Identity: id, Token: "t", ExpiresAt: now.Add(-time.Minute)}, false},
		{"not yet expired", Session{Identity: id, Token: "t", ExpiresAt: now.Add(time.Minute)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.s.AuthenticatedAt(now); got != tc.want {
				t.Fatalf("AuthenticatedAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" librarian ")
	if err != nil || r != RoleLibrarian {
		t.Fatalf("ParseRole = %q, %v", r, err)
	}
	if _, err := ParseRole("janitor"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestIdentity_DisplayName(t *testing.T) {
	if got := (Identity{Username: "alice"}).DisplayName(); got != "alice" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := (Identity{Username: "alice", FirstName: "Alice", LastName: "Liddell"}).DisplayName(); got != "Alice Liddell" {
		t.Fatalf("DisplayName = %q", got)
	}
}

func TestSession_HasAnyRole(t *testing.T) {
	s := Session{Identity: &Identity{Role: RoleFaculty}, Token: "t"}
	if !s.HasAnyRole(RoleStudent, RoleFaculty) {
		t.Fatalf("expected faculty to match")
	}
	if Anonymous().HasAnyRole(Roles()...) {
		t.Fatalf("anonymous session must not hold a role")
	}
}
