package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner("Computing layout...")
	s.out = &buf
	s.Start(context.Background())
	time.Sleep(3 * spinnerInterval)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Computing layout...") {
		t.Errorf("spinner output missing message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("Stop should leave the cursor at the start of a blank line: %q", out)
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner("Rendering facets...")
	s.out = &bytes.Buffer{}
	s.Start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner should stop when its context is cancelled")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Placing facets...")
	s.out = &bytes.Buffer{}
	s.Stop() // never started

	s = newSpinner("Placing facets...")
	s.out = &bytes.Buffer{}
	s.Start(context.Background())
	s.Stop()
	s.Stop()
}

func TestSpinTo(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	err := spinTo(context.Background(), &buf, "Computing layout...", "Layout failed", func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Fatalf("spinTo() = %v after %d calls", err, calls)
	}

	want := errors.New("no rows")
	if got := spinTo(context.Background(), &buf, "Computing layout...", "Layout failed", func() error { return want }); got != want {
		t.Errorf("spinTo() should return the stage error, got %v", got)
	}
}
