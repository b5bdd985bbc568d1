package config

import (
	"fmt"
	"strings"
)

// TokenBackend selects where the bearer token is persisted.
type TokenBackend string

const (
	TokenBackendFile   TokenBackend = "file"
	TokenBackendRedis  TokenBackend = "redis"
	TokenBackendMemory TokenBackend = "memory"
)

// StorageConfig controls token persistence.
type StorageConfig struct {
	Backend TokenBackend `env:"TOKEN_STORAGE" envDefault:"file"`

	// File overrides the default token file under the user config dir.
	File string `env:"TOKEN_FILE"`

	// RedisKey is the key holding the token when Backend is redis.
	RedisKey string `env:"TOKEN_REDIS_KEY" envDefault:"token"`
}

// Sanitize normalizes the backend name and trims paths.
func (c *StorageConfig) Sanitize() {
	c.Backend = TokenBackend(strings.ToLower(strings.TrimSpace(string(c.Backend))))
	if c.Backend == "" {
		c.Backend = TokenBackendFile
	}
	c.File = strings.TrimSpace(c.File)
	if c.RedisKey = strings.TrimSpace(c.RedisKey); c.RedisKey == "" {
		c.RedisKey = "token"
	}
}

// Validate rejects unknown backends.
func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case TokenBackendFile, TokenBackendRedis, TokenBackendMemory:
		return nil
	default:
		return fmt.Errorf("invalid TOKEN_STORAGE: %q (valid options: file, redis, memory)", c.Backend)
	}
}

// RedisConfig contains Redis configuration for the redis token backend.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Sanitize drops blank node addresses.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelNodes = compact(c.SentinelNodes)
	c.ClusterNodes = compact(c.ClusterNodes)
	if c.DB < 0 {
		c.DB = 0
	}
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
