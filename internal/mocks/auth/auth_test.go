package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/enicarthage/library-client/internal/domain/auth"
	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
)

func TestMemoryTokenStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryTokenStorage("")

	tok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.Save(ctx, "abc"))
	assert.Equal(t, "abc", s.Token())
	require.NoError(t, s.Remove(ctx))
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, s.Saves)
	assert.Equal(t, 1, s.Removes)
}

func TestFakeAuthority_Login(t *testing.T) {
	ctx := context.Background()
	fa := NewFakeAuthority(Account{
		Password: "correct",
		Token:    "tok-1",
		Identity: domainauth.Identity{ID: 7, Username: "alice", Role: domainauth.RoleStudent},
	})

	var out map[string]any
	err := fa.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   domainauth.Credentials{Username: "alice", Password: "correct"},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", out["token"])
	assert.Equal(t, "STUDENT", out["role"])

	err = fa.Do(ctx, ports.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   domainauth.Credentials{Username: "alice", Password: "wrong"},
	}, &out)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
	assert.Equal(t, 2, fa.Calls(http.MethodPost, "/auth/login"))
}

func TestFakeAuthority_Me(t *testing.T) {
	ctx := context.Background()
	fa := NewFakeAuthority(Account{Token: "tok-1", Identity: domainauth.Identity{Username: "alice"}})

	var id domainauth.Identity
	require.NoError(t, fa.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/auth/me", Bearer: "tok-1"}, &id))
	assert.Equal(t, "alice", id.Username)

	err := fa.Do(ctx, ports.Request{Method: http.MethodGet, Path: "/auth/me", Bearer: "stale"}, &id)
	assert.Equal(t, http.StatusUnauthorized, apperrors.StatusOf(err))
}
