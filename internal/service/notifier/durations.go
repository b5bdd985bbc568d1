package notifier

import (
	"time"

	"github.com/enicarthage/library-client/internal/observability/notify"
)

// Durations holds the lifetime per notification level.
type Durations struct {
	Error   time.Duration
	Warning time.Duration
	Confirm time.Duration
}

func (d Durations) withDefaults() Durations {
	if d.Error <= 0 {
		d.Error = notify.DurationError
	}
	if d.Warning <= 0 {
		d.Warning = notify.DurationWarning
	}
	if d.Confirm <= 0 {
		d.Confirm = notify.DurationConfirm
	}
	return d
}

// For returns the lifetime for level.
func (d Durations) For(level notify.Level) time.Duration {
	switch level {
	case notify.LevelSuccess:
		return d.Confirm
	case notify.LevelWarning:
		return d.Warning
	default:
		return d.Error
	}
}
