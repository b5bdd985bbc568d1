package notify

import (
	"context"
	"time"
)

// Level classifies a notification for display.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
)

// Default lifetimes for transient notifications.
const (
	DurationError   = 5 * time.Second
	DurationWarning = 4 * time.Second
	DurationConfirm = 3 * time.Second
)

// DefaultAction is the dismiss label shown next to every notification.
const DefaultAction = "Close"

// Notification is a single-line transient message with a dismiss action.
type Notification struct {
	ID        string
	Message   string
	Action    string
	Level     Level
	Duration  time.Duration
	CreatedAt time.Time
}

// Error builds an error notification with the default lifetime.
func Error(message string) Notification {
	return Notification{Message: message, Action: DefaultAction, Level: LevelError, Duration: DurationError}
}

// Confirm builds a lighter success notification.
func Confirm(message string) Notification {
	return Notification{Message: message, Action: DefaultAction, Level: LevelSuccess, Duration: DurationConfirm}
}

// Warning builds a warning notification.
func Warning(message string) Notification {
	return Notification{Message: message, Action: DefaultAction, Level: LevelWarning, Duration: DurationWarning}
}

// Sink describes a destination capable of displaying notifications.
type Sink interface {
	Show(ctx context.Context, n Notification) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, n Notification) error

// Show implements the Sink interface.
func (f SinkFunc) Show(ctx context.Context, n Notification) error {
	if f == nil {
		return nil
	}
	return f(ctx, n)
}
