package element_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atheor/gowebtest/internal/element"
)

// TestWaitFor_ImmediateSuccess verifies a condition that already holds
// returns without sleeping a full interval.
func TestWaitFor_ImmediateSuccess(t *testing.T) {
	t.Parallel()
	start := time.Now()
	err := element.WaitFor(context.Background(), func(context.Context) (bool, error) {
		return true, nil
	}, time.Second, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitFor returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("WaitFor took %v for an immediately-true condition", elapsed)
	}
}

// TestWaitFor_TimeoutBounds verifies a never-true condition blocks for at
// least the timeout and not much more than timeout + one interval.
func TestWaitFor_TimeoutBounds(t *testing.T) {
	t.Parallel()
	const (
		timeout  = 200 * time.Millisecond
		interval = 50 * time.Millisecond
	)
	start := time.Now()
	err := element.WaitFor(context.Background(), func(context.Context) (bool, error) {
		return false, nil
	}, timeout, interval)
	elapsed := time.Since(start)

	if !errors.Is(err, element.ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("returned after %v, before the %v timeout", elapsed, timeout)
	}
	// Generous upper slack for slow CI schedulers.
	if elapsed > timeout+interval+150*time.Millisecond {
		t.Errorf("returned after %v, well past timeout+interval", elapsed)
	}
}

// TestWaitFor_SatisfiedMidway verifies the wait returns promptly once the
// condition becomes true, not after the full timeout.
func TestWaitFor_SatisfiedMidway(t *testing.T) {
	t.Parallel()
	const timeout = 2 * time.Second
	becomesTrue := time.Now().Add(150 * time.Millisecond)

	start := time.Now()
	err := element.WaitFor(context.Background(), func(context.Context) (bool, error) {
		return time.Now().After(becomesTrue), nil
	}, timeout, 20*time.Millisecond)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("WaitFor returned error: %v", err)
	}
	if elapsed >= timeout {
		t.Errorf("waited the full timeout (%v) despite condition becoming true early", elapsed)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("returned after %v, before the condition could hold", elapsed)
	}
}

// TestWaitFor_FinalRecheck verifies the condition is re-checked after the
// deadline passes, so a just-satisfied condition is not reported as a
// timeout.
func TestWaitFor_FinalRecheck(t *testing.T) {
	t.Parallel()
	const timeout = 100 * time.Millisecond
	start := time.Now()
	// True only once the deadline has already elapsed; the final re-check
	// must still observe it.
	err := element.WaitFor(context.Background(), func(context.Context) (bool, error) {
		return time.Since(start) >= timeout, nil
	}, timeout, 30*time.Millisecond)
	if err != nil {
		t.Fatalf("final re-check missed a satisfied condition: %v", err)
	}
}

// TestWaitFor_ConditionErrorsRetried verifies transient condition errors do
// not abort the wait and surface in the timeout error.
func TestWaitFor_ConditionErrorsRetried(t *testing.T) {
	t.Parallel()
	calls := 0
	err := element.WaitFor(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, errors.New("stale handle")
	}, 100*time.Millisecond, 25*time.Millisecond)

	if !errors.Is(err, element.ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	if calls < 2 {
		t.Errorf("condition called %d times; errors should be retried", calls)
	}
}

// TestWaitFor_Cancellation verifies context cancellation aborts the wait
// immediately and is never reported as success or timeout.
func TestWaitFor_Cancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := element.WaitFor(ctx, func(context.Context) (bool, error) {
		return false, nil
	}, 5*time.Second, 20*time.Millisecond)
	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, element.ErrWaitTimeout) {
		t.Error("cancellation misreported as wait timeout")
	}
	if elapsed > time.Second {
		t.Errorf("cancellation took %v to take effect", elapsed)
	}
}
