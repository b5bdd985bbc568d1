package redis

// Package redis provides a Redis-backed token storage so several client
// processes on one host (or a BFF fleet) can share a session.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/enicarthage/library-client/internal/ports"
	"github.com/enicarthage/library-client/internal/session"
)

// DefaultTokenKey is the key the session token is stored under.
const DefaultTokenKey = "token"

// TokenStore is a Redis-based ports.TokenStorage.
// When the token is a JWT with an exp claim, the key expires with it.
type TokenStore struct {
	client redis.UniversalClient
	key    string
}

var _ ports.TokenStorage = (*TokenStore)(nil)

// NewTokenStore creates a token store using DefaultTokenKey.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return NewTokenStoreWithKey(client, DefaultTokenKey)
}

// NewTokenStoreWithKey creates a token store under a custom key.
func NewTokenStoreWithKey(client redis.UniversalClient, key string) *TokenStore {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultTokenKey
	}
	return &TokenStore{client: client, key: key}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return tok, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	var ttl time.Duration
	if exp := session.TokenExpiry(token); !exp.IsZero() {
		ttl = time.Until(exp)
		if ttl <= 0 {
			return errors.New("token is expired")
		}
	}
	if err := s.client.Set(ctx, s.key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
