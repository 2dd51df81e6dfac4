package html2pdf

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestWithDeadline_OperationWins(t *testing.T) {
	got, err := withDeadline(func() (string, error) {
		return "done", nil
	}, time.Second, "should not fire")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "done" {
		t.Errorf("expected %q, got %q", "done", got)
	}
}

func TestWithDeadline_OperationError(t *testing.T) {
	opErr := errors.New("boom")

	_, err := withDeadline(func() (int, error) {
		return 0, opErr
	}, time.Second, "should not fire")

	if !errors.Is(err, opErr) {
		t.Errorf("expected operation error, got %v", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("operation error must not be reported as a timeout")
	}
}

func TestWithDeadline_TimerWins(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	start := time.Now()
	_, err := withDeadline(func() (int, error) {
		<-block
		return 42, nil
	}, 20*time.Millisecond, "stage deadline exceeded")
	elapsed := time.Since(start)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !strings.Contains(err.Error(), "stage deadline exceeded") {
		t.Errorf("expected failure message in error, got %q", err.Error())
	}
	// Generous slack: only the order of magnitude matters.
	if elapsed > time.Second {
		t.Errorf("timeout took %v, expected ~20ms", elapsed)
	}
}

func TestWithDeadline_AbandonedOperationDoesNotBlock(t *testing.T) {
	release := make(chan struct{})

	_, err := withDeadline(func() (int, error) {
		<-release
		return 1, nil
	}, 10*time.Millisecond, "timed out")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}

	// The abandoned goroutine must be able to settle into the buffered
	// channel without a receiver.
	close(release)
	time.Sleep(20 * time.Millisecond)
}

func TestWithDeadline_Stacked(t *testing.T) {
	inner := func() (string, error) {
		return withDeadline(func() (string, error) {
			return "inner", nil
		}, 50*time.Millisecond, "inner timed out")
	}

	got, err := withDeadline(inner, 100*time.Millisecond, "outer timed out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inner" {
		t.Errorf("expected %q, got %q", "inner", got)
	}
}

func TestWithDeadline_RepeatedCallsReleaseTimers(t *testing.T) {
	for range 100 {
		_, err := withDeadline(func() (int, error) {
			return 1, nil
		}, time.Minute, "never")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}
