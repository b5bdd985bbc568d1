package toast

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enicarthage/library-client/internal/observability/notify"
)

type fakeTimers struct {
	scheduled []time.Duration
	fire      []func()
}

func (f *fakeTimers) after(d time.Duration, fn func()) func() bool {
	f.scheduled = append(f.scheduled, d)
	f.fire = append(f.fire, fn)
	return func() bool { return true }
}

func TestCenter_ShowAssignsDefaultsAndSchedulesDismiss(t *testing.T) {
	timers := &fakeTimers{}
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewCenter(Options{AfterFunc: timers.after, Now: func() time.Time { return now }})

	require.NoError(t, c.Show(context.Background(), notify.Notification{Message: "Resource not found."}))

	active := c.Active()
	require.Len(t, active, 1)
	assert.NotEmpty(t, active[0].ID)
	assert.Equal(t, notify.DefaultAction, active[0].Action)
	assert.Equal(t, now, active[0].CreatedAt)
	assert.Equal(t, []time.Duration{notify.DurationError}, timers.scheduled)

	timers.fire[0]()
	assert.Empty(t, c.Active())
}

func TestCenter_ConfirmUsesShorterLifetime(t *testing.T) {
	timers := &fakeTimers{}
	c := NewCenter(Options{AfterFunc: timers.after})

	require.NoError(t, c.Show(context.Background(), notify.Confirm("Registration successful. Please login.")))
	assert.Equal(t, []time.Duration{3 * time.Second}, timers.scheduled)
}

func TestCenter_DismissIsIdempotent(t *testing.T) {
	timers := &fakeTimers{}
	c := NewCenter(Options{AfterFunc: timers.after})
	require.NoError(t, c.Show(context.Background(), notify.Notification{ID: "n1", Message: "a"}))
	require.NoError(t, c.Show(context.Background(), notify.Notification{ID: "n2", Message: "b"}))

	assert.True(t, c.Dismiss("n1"))
	assert.False(t, c.Dismiss("n1"))
	require.Len(t, c.Active(), 1)
	assert.Equal(t, "n2", c.Active()[0].ID)

	// a late timer for an already dismissed notification is harmless
	timers.fire[0]()
	assert.Len(t, c.Active(), 1)

	c.Close()
	assert.Empty(t, c.Active())
}

func TestCenter_RealTimerExpires(t *testing.T) {
	c := NewCenter(Options{})
	require.NoError(t, c.Show(context.Background(), notify.Notification{Message: "x", Duration: 10 * time.Millisecond}))
	assert.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := notify.NewWriterSink(&buf)
	require.NoError(t, sink.Show(context.Background(), notify.Error("Resource not found.")))
	assert.Equal(t, "[error] Resource not found.  [Close]\n", buf.String())
}
