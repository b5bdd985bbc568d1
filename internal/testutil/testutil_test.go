package testutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("LIBRARY_TESTUTIL_VALUE", "set")
	assert.Equal(t, "set", getEnvOrDefault("LIBRARY_TESTUTIL_VALUE", "fallback"))
	assert.Equal(t, "fallback", getEnvOrDefault("LIBRARY_TESTUTIL_MISSING", "fallback"))
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"1", "true", "YES", "y"} {
		t.Setenv("LIBRARY_TESTUTIL_FLAG", v)
		assert.True(t, envBool("LIBRARY_TESTUTIL_FLAG"), v)
	}
	t.Setenv("LIBRARY_TESTUTIL_FLAG", "off")
	assert.False(t, envBool("LIBRARY_TESTUTIL_FLAG"))
}

func TestSignedJWT(t *testing.T) {
	exp := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	tok := SignedJWT(t, "alice", exp)

	var claims jwt.RegisteredClaims
	_, _, err := jwt.NewParser().ParseUnverified(tok, &claims)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt.Time))

	var noExp jwt.RegisteredClaims
	_, _, err = jwt.NewParser().ParseUnverified(SignedJWT(t, "bob", time.Time{}), &noExp)
	require.NoError(t, err)
	assert.Nil(t, noExp.ExpiresAt)
}
