package ports

// Package ports defines interfaces (hexagonal ports) for the client's outside world.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
)

// TokenStorage is the durable client storage holding the session token.
// Load returns "" and a nil error when no token is stored.
type TokenStorage interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}
