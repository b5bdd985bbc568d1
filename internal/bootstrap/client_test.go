package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enicarthage/library-client/config"
	"github.com/enicarthage/library-client/internal/domain/access"
	"github.com/enicarthage/library-client/internal/domain/page"
	"github.com/enicarthage/library-client/internal/failure"
	mockauth "github.com/enicarthage/library-client/internal/mocks/auth"
)

func libraryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Username, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "alice-token", "id": 1, "username": creds.Username, "role": "STUDENT",
		})
	})
	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer alice-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content":       []map[string]any{{"id": 1, "title": "Dune"}},
			"totalElements": 1, "totalPages": 1, "number": 0, "size": 10,
		})
	})
	mux.HandleFunc("GET /api/books/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) config.AppConfig {
	cfg := config.AppConfig{
		API:     config.APIConfig{BaseURL: baseURL + "/api"},
		Storage: config.StorageConfig{Backend: config.TokenBackendMemory},
	}
	cfg.Sanitize()
	return cfg
}

func TestClient_LoginThenBrowse(t *testing.T) {
	srv := libraryServer(t)
	var notices bytes.Buffer
	ctx := context.Background()

	c, err := NewClient(ctx, ClientOptions{
		Config:  testConfig(srv.URL),
		Notices: &notices,
		Storage: mockauth.NewMemoryTokenStorage(""),
	})
	require.NoError(t, err)
	defer c.Close()

	c.Start(ctx)
	require.NoError(t, c.WaitReady(ctx))

	_, decision := c.Guard.Navigate(ctx, "/books")
	assert.Equal(t, access.DenyRedirectLogin, decision)

	identity, err := c.Gateway.Login(ctx, "alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	_, decision = c.Guard.Navigate(ctx, "/books")
	assert.Equal(t, access.Allow, decision)

	res, err := c.Books.FetchPage(ctx, page.Request{Kind: "books", Size: 10})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "Dune", res.Content[0].Title)
	assert.Empty(t, notices.String())

	_, err = c.Books.Get(ctx, 99)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(notices.String(), failure.MsgNotFound))
	assert.Len(t, c.Toasts.Active(), 1)
}

func TestClient_FailedLoginNotifiesOnce(t *testing.T) {
	srv := libraryServer(t)
	var notices bytes.Buffer
	ctx := context.Background()

	c, err := NewClient(ctx, ClientOptions{Config: testConfig(srv.URL), Notices: &notices})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Gateway.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.False(t, c.Sessions.Authenticated())
	assert.Equal(t, 1, strings.Count(notices.String(), failure.MsgUnauthorized))
}

func TestClient_CollectionsWaitForRestore(t *testing.T) {
	srv := libraryServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c, err := NewClient(context.Background(), ClientOptions{Config: testConfig(srv.URL)})
	require.NoError(t, err)
	defer c.Close()

	// Start was never called, so authenticated requests stay parked.
	_, err = c.Books.FetchPage(ctx, page.Request{Kind: "books", Size: 10})
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_InvalidBaseURL(t *testing.T) {
	cfg := testConfig("")
	cfg.API.BaseURL = "not a url"
	_, err := NewClient(context.Background(), ClientOptions{Config: cfg})
	require.Error(t, err)
}

func TestBuildTokenStorage(t *testing.T) {
	ctx := context.Background()

	mem, release, err := BuildTokenStorage(ctx, StorageConfig{
		Storage: config.StorageConfig{Backend: config.TokenBackendMemory},
	})
	require.NoError(t, err)
	require.NoError(t, release())
	require.NoError(t, mem.Save(ctx, "t"))

	path := filepath.Join(t.TempDir(), "token")
	file, release, err := BuildTokenStorage(ctx, StorageConfig{
		Storage: config.StorageConfig{Backend: config.TokenBackendFile, File: path},
	})
	require.NoError(t, err)
	defer release()
	require.NoError(t, file.Save(ctx, "file-token"))
	got, err := file.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "file-token", got)

	_, _, err = BuildTokenStorage(ctx, StorageConfig{
		Storage: config.StorageConfig{Backend: "sqlite"},
	})
	require.Error(t, err)
}
