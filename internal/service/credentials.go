package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
	"github.com/enicarthage/library-client/internal/session"
	"github.com/enicarthage/library-client/internal/validation"
)

// Remote authority endpoints used by the gateway.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathMe       = "/auth/me"
)

// DefaultTokenPath locates the token in the login response body.
const DefaultTokenPath = "token"

// CredentialGatewayConfig groups optional gateway settings.
type CredentialGatewayConfig struct {
	// TokenPath is a JMESPath expression selecting the token from the login body.
	TokenPath string
	Logger    *slog.Logger
}

// CredentialGatewayOptions groups dependencies for CredentialGateway.
type CredentialGatewayOptions struct {
	Transport ports.Transport // Required
	Sessions  *session.Store  // Required
	Config    CredentialGatewayConfig
}

// CredentialGateway is the only component that changes the session: it logs
// in, registers, logs out and restores a persisted session at startup.
type CredentialGateway struct {
	transport ports.Transport
	sessions  *session.Store
	tokenPath string
	logger    *slog.Logger

	restoreOnce    sync.Once
	restoreStarted atomic.Bool
	ready          chan struct{}
}

// NewCredentialGateway constructs a gateway. It panics when a required
// dependency is missing and fails when the token path does not compile.
func NewCredentialGateway(opts CredentialGatewayOptions) (*CredentialGateway, error) {
	if opts.Transport == nil {
		panic("CredentialGateway requires Transport")
	}
	if opts.Sessions == nil {
		panic("CredentialGateway requires Sessions")
	}

	tokenPath := strings.TrimSpace(opts.Config.TokenPath)
	if tokenPath == "" {
		tokenPath = DefaultTokenPath
	}
	if _, err := jmespath.Compile(tokenPath); err != nil {
		return nil, fmt.Errorf("compile token path %q: %w", tokenPath, err)
	}

	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default().With("component", "credential_gateway")
	}

	return &CredentialGateway{
		transport: opts.Transport,
		sessions:  opts.Sessions,
		tokenPath: tokenPath,
		logger:    logger,
		ready:     make(chan struct{}),
	}, nil
}

// Login exchanges credentials for a token and identity. On any failure the
// session is left untouched. A pending startup restore finishes first so it
// cannot replace or clear the new session.
func (g *CredentialGateway) Login(ctx context.Context, username, password string) (auth.Identity, error) {
	if err := g.awaitRestore(ctx); err != nil {
		return auth.Identity{}, fmt.Errorf("login: %w", err)
	}

	var raw json.RawMessage
	err := g.transport.Do(ctx, ports.Request{
		Method:    http.MethodPost,
		Path:      PathLogin,
		Body:      auth.Credentials{Username: username, Password: password},
		Kind:      "auth",
		Anonymous: true,
	}, &raw)
	if err != nil {
		switch apperrors.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return auth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeAuthentication, "invalid username or password")
		default:
			return auth.Identity{}, fmt.Errorf("login: %w", err)
		}
	}

	token, identity, err := g.decodeLogin(raw)
	if err != nil {
		return auth.Identity{}, err
	}
	if err := g.sessions.Set(ctx, &identity, token); err != nil {
		return auth.Identity{}, fmt.Errorf("login: %w", err)
	}

	g.logger.InfoContext(ctx, "logged in", "username", identity.Username, "role", identity.Role)
	return identity, nil
}

func (g *CredentialGateway) decodeLogin(raw json.RawMessage) (string, auth.Identity, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", auth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode login response")
	}
	found, err := jmespath.Search(g.tokenPath, body)
	if err != nil {
		return "", auth.Identity{}, apperrors.Wrapf(err, apperrors.ErrCodeInternal, "evaluate token path %q", g.tokenPath)
	}
	token, _ := found.(string)
	if token == "" {
		return "", auth.Identity{}, apperrors.Internal("login response carried no token")
	}

	var identity auth.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return "", auth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode login identity")
	}
	if identity.Username == "" {
		return "", auth.Identity{}, apperrors.Internal("login response carried no identity")
	}
	return token, identity, nil
}

// Register validates reg locally, then submits it. The session never changes.
func (g *CredentialGateway) Register(ctx context.Context, reg auth.Registration) error {
	if fields := ValidateRegistration(reg); len(fields) > 0 {
		return apperrors.ValidationFields("registration is invalid", fields)
	}

	err := g.transport.Do(ctx, ports.Request{
		Method:    http.MethodPost,
		Path:      PathRegister,
		Body:      reg,
		Kind:      "auth",
		Anonymous: true,
	}, nil)
	if err == nil {
		g.logger.InfoContext(ctx, "registered", "username", reg.Username)
		return nil
	}

	switch apperrors.StatusOf(err) {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		msg := "registration was rejected"
		if te, ok := apperrors.AsTransport(err); ok && te.ServerMessage != "" {
			msg = te.ServerMessage
		}
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, msg)
	default:
		return fmt.Errorf("register: %w", err)
	}
}

// ValidateRegistration applies the register form's field rules and returns
// the message for every rejected field.
func ValidateRegistration(reg auth.Registration) map[string]string {
	fv := validation.New().
		Validate("firstName", reg.FirstName, validation.Required("First name")).
		Validate("lastName", reg.LastName, validation.Required("Last name")).
		Validate("email", reg.Email, validation.Required("Email"), validation.Email("Email")).
		Validate("username", reg.Username, validation.Required("Username"), validation.MinLength("Username", 3)).
		Validate("password", reg.Password, validation.Required("Password"), validation.MinLength("Password", 6))
	if fv.Valid() {
		return nil
	}
	return fv.Errors()
}

// Logout clears the session and its stored token. It never fails; storage
// errors are logged. A pending startup restore finishes first.
func (g *CredentialGateway) Logout(ctx context.Context) {
	_ = g.awaitRestore(ctx)
	g.clear(ctx)
}

func (g *CredentialGateway) clear(ctx context.Context) {
	if err := g.sessions.Clear(ctx); err != nil {
		g.logger.WarnContext(ctx, "clear stored session token", "error", err)
	}
}

// RestoreSession revalidates a persisted token with the remote authority.
// No stored token is not an error. Any failure leaves the client logged out.
func (g *CredentialGateway) RestoreSession(ctx context.Context) error {
	token, err := g.sessions.StoredToken(ctx)
	if err != nil {
		g.clear(ctx)
		return err
	}
	if token == "" {
		return nil
	}

	if exp := session.TokenExpiry(token); !exp.IsZero() && !g.sessions.Now().Before(exp) {
		g.clear(ctx)
		return apperrors.SessionExpired("stored session has expired")
	}

	var identity auth.Identity
	err = g.transport.Do(ctx, ports.Request{
		Method: http.MethodGet,
		Path:   PathMe,
		Kind:   "auth",
		Bearer: token,
	}, &identity)
	if err != nil {
		g.clear(ctx)
		return apperrors.Wrap(err, apperrors.ErrCodeSessionExpired, "stored session was rejected")
	}

	if err := g.sessions.Set(ctx, &identity, token); err != nil {
		g.clear(ctx)
		return fmt.Errorf("restore session: %w", err)
	}
	g.logger.InfoContext(ctx, "session restored", "username", identity.Username)
	return nil
}

// StartRestore runs RestoreSession in the background exactly once.
// Ready is closed when it has finished.
func (g *CredentialGateway) StartRestore(ctx context.Context) {
	g.restoreOnce.Do(func() {
		g.restoreStarted.Store(true)
		go func() {
			defer close(g.ready)
			if err := g.RestoreSession(ctx); err != nil {
				g.logger.InfoContext(ctx, "session not restored", "error", err)
			}
		}()
	})
}

// Ready is closed once the startup restore has completed.
func (g *CredentialGateway) Ready() <-chan struct{} { return g.ready }

// awaitRestore blocks until a started restore completes. It returns at once
// when StartRestore was never called.
func (g *CredentialGateway) awaitRestore(ctx context.Context) error {
	if !g.restoreStarted.Load() {
		return nil
	}
	select {
	case <-g.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AwaitRestore returns a middleware that holds authenticated requests until
// the startup restore has completed. Anonymous requests pass straight through.
func AwaitRestore(ready <-chan struct{}) ports.Middleware {
	return func(next ports.Transport) ports.Transport {
		return ports.TransportFunc(func(ctx context.Context, req ports.Request, out any) error {
			if !req.Anonymous {
				select {
				case <-ready:
				case <-ctx.Done():
					return &apperrors.TransportError{
						Method:     req.Method,
						Path:       req.Path,
						ClientSide: true,
						Cause:      ctx.Err(),
					}
				}
			}
			return next.Do(ctx, req, out)
		})
	}
}
