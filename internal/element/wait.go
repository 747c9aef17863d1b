package element

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrWaitTimeout is the sentinel wrapped by every wait-condition timeout
// error in this package. errors.Is(err, ErrWaitTimeout) holds for
// NotFoundError, NotVisibleError, NotClickableError and TextTimeoutError.
var ErrWaitTimeout = errors.New("wait condition not met within timeout")

// Condition is a single, immediate check against current page state.
type Condition func(ctx context.Context) (bool, error)

// WaitFor polls cond on a fixed interval until it holds or timeout elapses.
// The condition is always re-checked one final time after the deadline
// passes, so a condition satisfied exactly at the boundary is never
// misreported as a timeout.
//
// Errors returned by cond do not abort the wait; transiently failing checks
// (a page mid-navigation, a briefly stale handle) are part of normal
// polling. The last such error is attached to the timeout error. Context
// cancellation is the exception: it aborts immediately and is returned
// as-is, never treated as the condition holding.
func WaitFor(ctx context.Context, cond Condition, timeout, interval time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for {
		ok, err := cond(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("wait interrupted: %w", ctx.Err())
			}
			lastErr = err
		} else if ok {
			return nil
		}

		if !time.Now().Before(deadline) {
			if lastErr != nil {
				return fmt.Errorf("%w %v (last check error: %v)", ErrWaitTimeout, timeout, lastErr)
			}
			return fmt.Errorf("%w %v", ErrWaitTimeout, timeout)
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return fmt.Errorf("wait interrupted: %w", ctx.Err())
		}
	}
}
