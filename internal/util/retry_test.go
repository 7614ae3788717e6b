// ABOUTME: Tests for retry and backoff utilities
// ABOUTME: Verifies backoff bounds, permanent errors and context cancellation
package util

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseDelay := 100 * time.Millisecond

	// Attempt 0 should have no delay
	if got := CalculateBackoff(baseDelay, 0); got != 0 {
		t.Errorf("attempt 0 backoff = %v, want 0", got)
	}

	// A zero or negative base delay means no delay, never a panic
	if got := CalculateBackoff(0, 1); got != 0 {
		t.Errorf("zero base backoff = %v, want 0", got)
	}
	if got := CalculateBackoff(-time.Second, 3); got != 0 {
		t.Errorf("negative base backoff = %v, want 0", got)
	}

	// Later attempts grow exponentially; jitter is at most 25% either way
	for attempt := 1; attempt <= 4; attempt++ {
		expected := baseDelay * time.Duration(1<<uint(attempt))
		got := CalculateBackoff(baseDelay, attempt)
		if got < expected*3/4 || got > expected*5/4 {
			t.Errorf("attempt %d backoff = %v, want within 25%% of %v", attempt, got, expected)
		}
	}

	// Very large attempts must stay capped near 30 seconds
	got := CalculateBackoff(baseDelay, 100)
	if got > 38*time.Second {
		t.Errorf("capped backoff = %v, want <= ~37.5s", got)
	}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestRetry_ExhaustsAndReturnsLastError(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		attempts++
		return fmt.Errorf("failure %d", attempts)
	})
	if err == nil || err.Error() != "failure 3" {
		t.Errorf("err = %v, want last failure", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want maxRetries+1 = 3", attempts)
	}
}

func TestRetry_ZeroBaseDelay(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 2, 0, func() error {
		attempts++
		return fmt.Errorf("failure %d", attempts)
	})
	if err == nil || err.Error() != "failure 3" {
		t.Errorf("err = %v, want last failure", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 with zero base delay", attempts)
	}
}

func TestRetry_PermanentStopsImmediately(t *testing.T) {
	attempts := 0
	cause := errors.New("wrong dimension")
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		return Permanent(cause)
	})
	if !errors.Is(err, cause) {
		t.Errorf("err = %v, want wrapped cause", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 for permanent error", attempts)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := Retry(ctx, 5, 10*time.Second, func() error {
		attempts++
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 after cancellation", attempts)
	}
}

func TestPermanent(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}

	inner := errors.New("bad config")
	wrapped := fmt.Errorf("calling gateway: %w", Permanent(inner))

	if !IsPermanent(wrapped) {
		t.Error("IsPermanent should see through fmt.Errorf wrapping")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("Permanent should preserve errors.Is on the cause")
	}
	if IsPermanent(errors.New("plain")) {
		t.Error("plain errors are not permanent")
	}
}
