package auth

// Package auth contains domain-level types for identities and client sessions.
// It is pure and free of transport/storage concerns.

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Role represents a library user's authorization role.
// String form matches the remote authority's enum.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleLibrarian Role = "LIBRARIAN"
	RoleStudent   Role = "STUDENT"
	RoleFaculty   Role = "FACULTY"
)

// Roles lists every valid role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleLibrarian, RoleStudent, RoleFaculty}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return slices.Contains(Roles(), r)
}

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Status is the account status reported by the remote authority.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusInactive  Status = "INACTIVE"
	StatusLocked    Status = "LOCKED"
	StatusSuspended Status = "SUSPENDED"
)

// Statuses lists every account status.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusLocked, StatusSuspended}
}

// Identity is the authenticated principal as described by the remote authority.
type Identity struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	Status      Status `json:"status"`
	StudentID   string `json:"studentId,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	LastLogin   string `json:"lastLogin,omitempty"`
}

// DisplayName returns "First Last", falling back to the username.
func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	if name == "" {
		return i.Username
	}
	return name
}

// Session is the client's view of who is logged in.
// A zero Session is anonymous.
type Session struct {
	Identity  *Identity
	Token     string
	ExpiresAt time.Time // zero when the token carries no known expiry
}

// Anonymous returns an empty session.
func Anonymous() Session { return Session{} }

// AuthenticatedAt reports whether the session has an identity and a token
// that is not known to be expired at now.
func (s Session) AuthenticatedAt(now time.Time) bool {
	if s.Identity == nil || s.Token == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Authenticated is AuthenticatedAt evaluated against the wall clock.
func (s Session) Authenticated() bool { return s.AuthenticatedAt(time.Now()) }

// Role returns the identity's role, or "" for anonymous sessions.
func (s Session) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// HasAnyRole reports whether the session's identity holds one of roles.
func (s Session) HasAnyRole(roles ...Role) bool {
	if s.Identity == nil {
		return false
	}
	return slices.Contains(roles, s.Identity.Role)
}

// Credentials are the username/password pair sent on login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration carries the fields accepted by the register endpoint.
type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	StudentID   string `json:"studentId,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
