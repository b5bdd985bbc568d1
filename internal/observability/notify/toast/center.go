// Package toast keeps the set of notifications currently on screen and
// dismisses each one after its lifetime.
package toast

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enicarthage/library-client/internal/observability/notify"
)

// AfterFunc schedules f after d and returns a stop function.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

// Options configures a Center.
type Options struct {
	// DefaultDuration applies to notifications without their own lifetime.
	DefaultDuration time.Duration
	// AfterFunc overrides timer scheduling (tests).
	AfterFunc AfterFunc
	// Now overrides the clock (tests).
	Now func() time.Time
}

// Center is a notify.Sink holding live notifications.
type Center struct {
	mu     sync.Mutex
	active []notify.Notification
	stops  map[string]func() bool

	defaultDuration time.Duration
	afterFunc       AfterFunc
	now             func() time.Time
}

var _ notify.Sink = (*Center)(nil)

// NewCenter constructs a Center.
func NewCenter(opts Options) *Center {
	c := &Center{
		stops:           make(map[string]func() bool),
		defaultDuration: opts.DefaultDuration,
		afterFunc:       opts.AfterFunc,
		now:             opts.Now,
	}
	if c.defaultDuration <= 0 {
		c.defaultDuration = notify.DurationError
	}
	if c.afterFunc == nil {
		c.afterFunc = func(d time.Duration, f func()) func() bool {
			return time.AfterFunc(d, f).Stop
		}
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Show adds n to the live set and schedules its dismissal.
func (c *Center) Show(_ context.Context, n notify.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Duration <= 0 {
		n.Duration = c.defaultDuration
	}
	if n.Action == "" {
		n.Action = notify.DefaultAction
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = append(c.active, n)
	id := n.ID
	c.stops[id] = c.afterFunc(n.Duration, func() { c.Dismiss(id) })
	return nil
}

// Dismiss removes a notification; it reports whether it was still live.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.active {
		if n.ID != id {
			continue
		}
		c.active = append(c.active[:i], c.active[i+1:]...)
		if stop := c.stops[id]; stop != nil {
			stop()
		}
		delete(c.stops, id)
		return true
	}
	return false
}

// Active returns a copy of the live notifications, oldest first.
func (c *Center) Active() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Notification, len(c.active))
	copy(out, c.active)
	return out
}

// Close cancels every pending dismissal and clears the live set.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, stop := range c.stops {
		stop()
	}
	c.stops = make(map[string]func() bool)
	c.active = nil
}
