package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// APIConfig describes the remote library API.
type APIConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8080/api".
	BaseURL string `env:"LIBRARY_API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds every request.
	Timeout time.Duration `env:"LIBRARY_API_TIMEOUT" envDefault:"15s"`

	// TokenPath is a JMESPath expression locating the bearer token in the
	// login response.
	TokenPath string `env:"LIBRARY_API_TOKEN_PATH" envDefault:"token"`

	UserAgent string `env:"LIBRARY_API_USER_AGENT" envDefault:"libraryctl"`
}

// Sanitize applies guardrails to API configuration values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.TokenPath = strings.TrimSpace(c.TokenPath); c.TokenPath == "" {
		c.TokenPath = "token"
	}
	if c.UserAgent = strings.TrimSpace(c.UserAgent); c.UserAgent == "" {
		c.UserAgent = "libraryctl"
	}
}

// Validate requires an absolute http(s) base URL.
func (c *APIConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("LIBRARY_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("LIBRARY_API_BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	return nil
}
