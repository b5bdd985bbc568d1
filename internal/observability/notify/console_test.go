package notify

import (
	"bytes"
	"context"
	"testing"
)

func TestWriterSinkShow(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	if err := sink.Show(context.Background(), Error("Resource not found.")); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	if err := sink.Show(context.Background(), Notification{Message: "Saved", Level: LevelSuccess}); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}

	want := "[error] Resource not found.  [Close]\n[success] Saved  [Close]\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", got, want)
	}
}

func TestPresetLifetimes(t *testing.T) {
	cases := []struct {
		n    Notification
		lvl  Level
		want string
	}{
		{Error("e"), LevelError, DurationError.String()},
		{Warning("w"), LevelWarning, DurationWarning.String()},
		{Confirm("c"), LevelSuccess, DurationConfirm.String()},
	}
	for _, tc := range cases {
		if tc.n.Level != tc.lvl || tc.n.Duration.String() != tc.want || tc.n.Action != DefaultAction {
			t.Fatalf("unexpected preset %+v", tc.n)
		}
	}
}

func TestNilSinkFunc(t *testing.T) {
	var f SinkFunc
	if err := f.Show(context.Background(), Error("x")); err != nil {
		t.Fatalf("nil SinkFunc should be a no-op, got %v", err)
	}
}
