package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterSink prints each notification as one line to W.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{W: w}
}

// Show implements Sink.
func (s *WriterSink) Show(_ context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	action := n.Action
	if action == "" {
		action = DefaultAction
	}
	_, err := fmt.Fprintf(s.W, "[%s] %s  [%s]\n", n.Level, n.Message, action)
	return err
}
