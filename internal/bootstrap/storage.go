package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/enicarthage/library-client/config"
	"github.com/enicarthage/library-client/internal/adapters/filestore"
	"github.com/enicarthage/library-client/internal/adapters/memstore"
	redisstore "github.com/enicarthage/library-client/internal/adapters/redis"
	"github.com/enicarthage/library-client/internal/ports"
)

// StorageConfig contains configuration for the token storage backend.
type StorageConfig struct {
	Storage config.StorageConfig
	Redis   config.RedisConfig
	Logger  *slog.Logger
}

// BuildTokenStorage selects the token backend. The returned release function
// frees backend resources and is never nil.
//
//nolint:ireturn // callers only depend on the TokenStorage port.
func BuildTokenStorage(ctx context.Context, cfg StorageConfig) (ports.TokenStorage, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.TokenBackendMemory:
		return memstore.NewTokenStore(), noop, nil
	case config.TokenBackendRedis:
		client, err := ConnectRedis(ctx, cfg.Redis, cfg.Logger)
		if err != nil {
			return nil, noop, fmt.Errorf("connect token redis: %w", err)
		}
		return redisstore.NewTokenStoreWithKey(client, cfg.Storage.RedisKey), client.Close, nil
	case config.TokenBackendFile, "":
		path := cfg.Storage.File
		if path == "" {
			def, err := filestore.DefaultPath()
			if err != nil {
				return nil, noop, err
			}
			path = def
		}
		store, err := filestore.NewTokenStore(path)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown token storage backend %q", cfg.Storage.Backend)
	}
}
