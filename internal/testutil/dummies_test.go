package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atheor/gowebtest/internal/browser"
)

// Exercises clock reads and resets from separate goroutines; meaningful
// under the race detector.
func TestFakeSession_ConcurrentClockAccess(t *testing.T) {
	t.Parallel()
	fs := NewFakeSession()
	loc := browser.ID("target")
	fs.Add(loc, &FakeElement{VisibleAfter: time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := fs.Visible(context.Background(), loc); err != nil {
					t.Errorf("Visible: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 100; j++ {
			fs.ResetClock()
		}
	}()
	wg.Wait()
}

func TestFakeSession_HistoryNavigation(t *testing.T) {
	t.Parallel()
	fs := NewFakeSession()
	ctx := context.Background()

	if err := fs.Back(ctx); err != browser.ErrNoHistory {
		t.Errorf("Back with no history: %v", err)
	}

	_ = fs.Navigate(ctx, "http://example.test/a")
	_ = fs.Navigate(ctx, "http://example.test/b")

	if err := fs.Back(ctx); err != nil {
		t.Fatalf("Back: %v", err)
	}
	if url, _ := fs.CurrentURL(ctx); url != "http://example.test/a" {
		t.Errorf("after Back, URL = %q", url)
	}
	if err := fs.Forward(ctx); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if url, _ := fs.CurrentURL(ctx); url != "http://example.test/b" {
		t.Errorf("after Forward, URL = %q", url)
	}

	// A fresh navigation clears the forward stack.
	_ = fs.Back(ctx)
	_ = fs.Navigate(ctx, "http://example.test/c")
	if err := fs.Forward(ctx); err != browser.ErrNoHistory {
		t.Errorf("Forward after fresh navigation: %v", err)
	}
}
