package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	domainauth "github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/observability/notify"
	"github.com/enicarthage/library-client/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenStorage = (*MemoryTokenStorage)(nil)
	_ ports.Notifier     = (*RecordingNotifier)(nil)
	_ ports.Transport    = (*FakeAuthority)(nil)
)

// MemoryTokenStorage is an in-memory token storage for unit tests.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string

	LoadErr   error
	SaveErr   error
	RemoveErr error

	Saves   int
	Removes int
}

// NewMemoryTokenStorage creates storage pre-populated with token ("" for empty).
func NewMemoryTokenStorage(token string) *MemoryTokenStorage {
	return &MemoryTokenStorage{token: token}
}

func (m *MemoryTokenStorage) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	return m.token, nil
}

func (m *MemoryTokenStorage) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saves++
	m.token = token
	return nil
}

func (m *MemoryTokenStorage) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removes++
	m.token = ""
	return m.RemoveErr
}

// Token returns the stored token.
func (m *MemoryTokenStorage) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// RecordingNotifier captures notifications for assertions.
type RecordingNotifier struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (r *RecordingNotifier) Notify(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// Notifications returns a copy of everything received so far.
func (r *RecordingNotifier) Notifications() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Messages returns the received messages in order.
func (r *RecordingNotifier) Messages() []string {
	var out []string
	for _, n := range r.Notifications() {
		out = append(out, n.Message)
	}
	return out
}

// Account is a user known to the FakeAuthority.
type Account struct {
	Password string
	Identity domainauth.Identity
	Token    string
}

// FakeAuthority simulates the remote authority's /auth endpoints.
type FakeAuthority struct {
	mu       sync.Mutex
	accounts map[string]Account
	calls    map[string]int

	// Fail, when set, is returned for every request before routing.
	Fail error
}

// NewFakeAuthority creates an authority knowing accounts.
func NewFakeAuthority(accounts ...Account) *FakeAuthority {
	f := &FakeAuthority{
		accounts: make(map[string]Account),
		calls:    make(map[string]int),
	}
	for _, a := range accounts {
		f.accounts[a.Identity.Username] = a
	}
	return f
}

// Calls returns how many times "METHOD path" was requested.
func (f *FakeAuthority) Calls(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+path]
}

func (f *FakeAuthority) Do(_ context.Context, req ports.Request, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[req.Method+" "+req.Path]++
	if f.Fail != nil {
		return f.Fail
	}

	switch {
	case req.Method == http.MethodPost && req.Path == "/auth/login":
		creds, _ := req.Body.(domainauth.Credentials)
		acct, ok := f.accounts[creds.Username]
		if !ok || acct.Password != creds.Password {
			return reject(req, http.StatusUnauthorized, "Invalid username or password")
		}
		return encodeInto(out, loginBody(acct))
	case req.Method == http.MethodGet && req.Path == "/auth/me":
		for _, acct := range f.accounts {
			if acct.Token != "" && acct.Token == req.Bearer {
				return encodeInto(out, acct.Identity)
			}
		}
		return reject(req, http.StatusUnauthorized, "Token expired")
	case req.Method == http.MethodPost && req.Path == "/auth/register":
		reg, _ := req.Body.(domainauth.Registration)
		if _, exists := f.accounts[reg.Username]; exists {
			return reject(req, http.StatusBadRequest, "Username is already taken")
		}
		f.accounts[reg.Username] = Account{
			Password: reg.Password,
			Identity: domainauth.Identity{Username: reg.Username, Email: reg.Email, Role: domainauth.RoleStudent},
		}
		return nil
	default:
		return reject(req, http.StatusNotFound, "")
	}
}

func loginBody(a Account) map[string]any {
	return map[string]any{
		"token":     a.Token,
		"type":      "Bearer",
		"id":        a.Identity.ID,
		"username":  a.Identity.Username,
		"email":     a.Identity.Email,
		"firstName": a.Identity.FirstName,
		"lastName":  a.Identity.LastName,
		"role":      a.Identity.Role,
	}
}

func reject(req ports.Request, status int, msg string) error {
	return &apperrors.TransportError{Status: status, Method: req.Method, Path: req.Path, ServerMessage: msg}
}

// encodeInto round-trips v through JSON into out, like a real response body.
func encodeInto(out, v any) error {
	if out == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal fake response: %w", err)
	}
	return json.Unmarshal(b, out)
}
