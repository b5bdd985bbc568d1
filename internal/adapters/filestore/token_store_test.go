package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store, err := NewTokenStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok, "missing file means no token")

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", tok)

	if runtime.GOOS != "windows" {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, store.Remove(ctx))
	require.NoError(t, store.Remove(ctx))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestTokenStore_Validation(t *testing.T) {
	_, err := NewTokenStore("  ")
	require.Error(t, err)

	store, err := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	require.Error(t, store.Save(context.Background(), ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, store.Save(ctx, "tok"), context.Canceled)
}

func TestTokenStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("hand-edited\n"), 0o600))
	store, err := NewTokenStore(path)
	require.NoError(t, err)

	tok, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hand-edited", tok)
}
