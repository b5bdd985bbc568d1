// Package libraryapi is the HTTP transport to the library's REST API.
package libraryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/oauth2"

	apperrors "github.com/enicarthage/library-client/internal/errors"
	"github.com/enicarthage/library-client/internal/ports"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Config captures the client's connection settings.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Tokens supplies the session token; requests go out without
	// Authorization when it returns an error.
	Tokens oauth2.TokenSource
	Client *http.Client
}

// Client implements ports.Transport over HTTP+JSON.
type Client struct {
	baseURL   *url.URL
	userAgent string
	tokens    oauth2.TokenSource
	client    *http.Client
}

var _ ports.Transport = (*Client)(nil)

// NewClient builds an API client. The base URL must be absolute.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("library api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse library api base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("library api base url must be absolute http(s): %q", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("create cookie jar: %w", jarErr)
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}

	return &Client{
		baseURL:   base,
		userAgent: fallbackString(strings.TrimSpace(cfg.UserAgent), "libraryctl"),
		tokens:    cfg.Tokens,
		client:    hc,
	}, nil
}

// Do sends req and decodes a successful JSON response into out.
func (c *Client) Do(ctx context.Context, req ports.Request, out any) error {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return clientSide(req, err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return clientSide(req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.TransportError{
			Status:        resp.StatusCode,
			Method:        req.Method,
			Path:          req.Path,
			ServerMessage: serverMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := decodeBody(resp.Body, out); err != nil {
		return clientSide(req, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req ports.Request) (*http.Request, error) {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	c.authorize(httpReq, req)
	return httpReq, nil
}

func (c *Client) authorize(httpReq *http.Request, req ports.Request) {
	if req.Anonymous {
		return
	}
	if req.Bearer != "" {
		(&oauth2.Token{AccessToken: req.Bearer, TokenType: "Bearer"}).SetAuthHeader(httpReq)
		return
	}
	if c.tokens == nil {
		return
	}
	tok, err := c.tokens.Token()
	if err != nil || tok == nil {
		return
	}
	tok.SetAuthHeader(httpReq)
}

// decodeBody decodes JSON into out. An empty body leaves out untouched.
func decodeBody(r io.Reader, out any) error {
	if raw, ok := out.(*json.RawMessage); ok {
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		*raw = b
		return nil
	}
	err := json.NewDecoder(r).Decode(out)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// serverMessage extracts the "message" (or "error") field of an error body.
func serverMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(b)) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(b, &body) != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Error)
}

func clientSide(req ports.Request, err error) error {
	return &apperrors.TransportError{
		Method:     req.Method,
		Path:       req.Path,
		ClientSide: true,
		Cause:      err,
	}
}

func fallbackString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
