// Package memstore keeps the session token in process memory only.
package memstore

import (
	"context"
	"sync"

	"github.com/enicarthage/library-client/internal/ports"
)

// TokenStore forgets the token when the process exits.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

var _ ports.TokenStorage = (*TokenStore)(nil)

// NewTokenStore returns an empty in-memory store.
func NewTokenStore() *TokenStore { return &TokenStore{} }

func (s *TokenStore) Load(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *TokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *TokenStore) Remove(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
