package config

import (
	"log/slog"
	"strings"
	"time"
)

const defaultMetricsPrefix = "libraryctl"

// ObservabilityConfig groups configuration that controls metrics, logging
// and notification lifetimes.
type ObservabilityConfig struct {
	Metrics       ObservabilityMetricsConfig
	Notifications NotificationsConfig
	LogLevel      string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Metrics.Sanitize()
	c.Notifications.Sanitize()
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Level maps LogLevel to a slog level; unknown values yield warn.
func (c *ObservabilityConfig) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ObservabilityMetricsConfig controls emission of metrics to StatsD.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"libraryctl"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
	if c.Prefix = strings.TrimSpace(c.Prefix); c.Prefix == "" {
		c.Prefix = defaultMetricsPrefix
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}

// NotificationsConfig sets how long each kind of notification stays visible.
type NotificationsConfig struct {
	ErrorDuration   time.Duration `env:"NOTIFY_ERROR_DURATION"   envDefault:"5s"`
	ConfirmDuration time.Duration `env:"NOTIFY_CONFIRM_DURATION" envDefault:"3s"`
	WarnDuration    time.Duration `env:"NOTIFY_WARN_DURATION"    envDefault:"4s"`
}

// Sanitize restores defaults for non-positive durations.
func (c *NotificationsConfig) Sanitize() {
	if c.ErrorDuration <= 0 {
		c.ErrorDuration = 5 * time.Second
	}
	if c.ConfirmDuration <= 0 {
		c.ConfirmDuration = 3 * time.Second
	}
	if c.WarnDuration <= 0 {
		c.WarnDuration = 4 * time.Second
	}
}
