package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func newTestUI() (*ui, *bytes.Buffer) {
	var buf bytes.Buffer
	return newUI(&lockedWriter{w: &buf}), &buf
}

func TestSpinnerBasic(t *testing.T) {
	u, buf := newTestUI()
	s := u.newSpinner(context.Background(), "Building sales")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Building sales") {
		t.Errorf("spinner output = %q", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	u, _ := newTestUI()
	ctx, cancel := context.WithCancel(context.Background())

	s := u.newSpinner(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	u, _ := newTestUI()
	s := u.newSpinner(context.Background(), "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	u, _ := newTestUI()
	s := u.newSpinner(context.Background(), "never started")

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a spinner that was never started")
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	u, buf := newTestUI()

	s := u.newSpinner(context.Background(), "ok")
	s.Start()
	s.StopWithSuccess("Built %s", "sales")

	s = u.newSpinner(context.Background(), "fail")
	s.Start()
	s.StopWithError("Failed to build %s", "sales")

	out := buf.String()
	for _, want := range []string{"Built sales", "Failed to build sales"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
