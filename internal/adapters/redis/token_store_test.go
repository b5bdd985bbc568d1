package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enicarthage/library-client/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestTokenStore_SaveLoadRemove(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client)
	ctx := context.Background()

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save(ctx, "opaque-token"))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", tok)

	ttl, err := client.TTL(ctx, DefaultTokenKey).Result()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl, "opaque tokens do not expire")

	require.NoError(t, store.Remove(ctx))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Remove(ctx), "removing an absent token is not an error")
}

func TestTokenStore_JWTExpiryBecomesTTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStoreWithKey(client, "library:token")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testutil.SignedJWT(t, "alice", time.Now().Add(10*time.Minute))))
	ttl, err := client.TTL(ctx, "library:token").Result()
	require.NoError(t, err)
	assert.InDelta(t, (10 * time.Minute).Seconds(), ttl.Seconds(), 5)

	err = store.Save(ctx, testutil.SignedJWT(t, "alice", time.Now().Add(-time.Minute)))
	require.Error(t, err)
}

func TestTokenStore_RejectsEmptyToken(t *testing.T) {
	store := NewTokenStoreWithKey(nil, " ")
	assert.Equal(t, DefaultTokenKey, store.key)
	require.Error(t, store.Save(context.Background(), ""))
}
