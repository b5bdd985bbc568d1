// Package session holds the client's single authoritative view of who is
// logged in and mirrors the session token into durable storage.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
)

// ErrStorageRequired indicates a store cannot be constructed without token storage.
var ErrStorageRequired = errors.New("session token storage is required")

// Options configure a Store.
type Options struct {
	Storage ports.TokenStorage
	Logger  *slog.Logger
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Store is the session store. Reads are lock-free snapshots; writes are
// serialized, and every transition is queued to every subscriber while the
// write lock is held so all subscribers observe the same order.
type Store struct {
	storage ports.TokenStorage
	logger  *slog.Logger
	now     func() time.Time

	current atomic.Pointer[auth.Session]

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewStore constructs an anonymous store backed by opts.Storage.
func NewStore(opts Options) (*Store, error) {
	if opts.Storage == nil {
		return nil, ErrStorageRequired
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "session_store")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		storage: opts.Storage,
		logger:  logger,
		now:     now,
		subs:    make(map[*subscriber]struct{}),
	}
	anon := auth.Anonymous()
	s.current.Store(&anon)
	return s, nil
}

// Session returns the current session.
func (s *Store) Session() auth.Session {
	return *s.current.Load()
}

// Authenticated reports whether the current session is authenticated now.
func (s *Store) Authenticated() bool {
	return s.Session().AuthenticatedAt(s.now())
}

// Now returns the store's clock reading.
func (s *Store) Now() time.Time { return s.now() }

// Subscribe registers a listener. The current session is delivered first,
// then every subsequent transition in the order it was applied. The returned
// func unsubscribes and closes the channel; pending transitions are dropped.
func (s *Store) Subscribe() (func(), <-chan auth.Session) {
	sub := newSubscriber()

	s.mu.Lock()
	sub.push(s.Session())
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	go sub.run()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, sub)
			s.mu.Unlock()
			sub.stop()
		})
	}
	return unsub, sub.out
}

// Set installs an authenticated session. The token is persisted before the
// in-memory session changes; if persistence fails nothing changes.
func (s *Store) Set(ctx context.Context, identity *auth.Identity, token string) error {
	if identity == nil {
		return apperrors.Validation("session identity is required")
	}
	if token == "" {
		return apperrors.Validation("session token is required")
	}
	exp := TokenExpiry(token)
	if !exp.IsZero() && !s.now().Before(exp) {
		return apperrors.SessionExpired("session token has expired")
	}

	id := *identity
	next := auth.Session{Identity: &id, Token: token, ExpiresAt: exp}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(ctx, token); err != nil {
		return fmt.Errorf("persist session token: %w", err)
	}
	s.publishLocked(next)
	s.logger.DebugContext(ctx, "session established",
		"username", id.Username,
		"role", id.Role,
	)
	return nil
}

// Clear removes the session. Memory is always cleared and subscribers are
// notified; a storage failure is returned for the caller to log.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.Remove(ctx)
	s.publishLocked(auth.Anonymous())
	if err != nil {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}

// StoredToken reads the durable token, "" when none is stored.
func (s *Store) StoredToken(ctx context.Context) (string, error) {
	tok, err := s.storage.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load session token: %w", err)
	}
	return tok, nil
}

// Close unsubscribes every listener.
func (s *Store) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = make(map[*subscriber]struct{})
	s.mu.Unlock()

	for sub := range subs {
		sub.stop()
	}
}

func (s *Store) publishLocked(next auth.Session) {
	s.current.Store(&next)
	for sub := range s.subs {
		sub.push(next)
	}
}

// TokenExpiry returns the exp claim of a JWT, or the zero time when token is
// not a JWT or carries no expiry. The signature is not verified; the remote
// authority remains the judge of validity.
func TokenExpiry(token string) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// subscriber owns an unbounded FIFO drained by its own goroutine, so a slow
// reader never blocks writers and never misses a transition.
type subscriber struct {
	out    chan auth.Session
	wake   chan struct{}
	done   chan struct{}
	mu     sync.Mutex
	queue  []auth.Session
	closed sync.Once
}

func newSubscriber() *subscriber {
	return &subscriber{
		out:  make(chan auth.Session),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (b *subscriber) push(v auth.Session) {
	b.mu.Lock()
	b.queue = append(b.queue, v)
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *subscriber) pop() (auth.Session, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return auth.Session{}, false
	}
	v := b.queue[0]
	b.queue[0] = auth.Session{}
	b.queue = b.queue[1:]
	return v, true
}

func (b *subscriber) run() {
	defer close(b.out)
	for {
		v, ok := b.pop()
		if !ok {
			select {
			case <-b.wake:
				continue
			case <-b.done:
				return
			}
		}
		select {
		case b.out <- v:
		case <-b.done:
			return
		}
	}
}

func (b *subscriber) stop() {
	b.closed.Do(func() { close(b.done) })
}
