package demoapp

import "time"

type Config struct {
	// ListenAddr is the HTTP listen address when run standalone
	// (tests mount the App on an httptest server instead).
	ListenAddr string

	// OverlayDismiss is how long the blocking overlay on /overlay
	// stays on top of the button.
	OverlayDismiss time.Duration

	// SlowReveal is how long /slow waits before showing its content.
	SlowReveal time.Duration

	// FeedInterval is the delay between websocket feed messages.
	FeedInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:     ":9990",
		OverlayDismiss: 2 * time.Second,
		SlowReveal:     3 * time.Second,
		FeedInterval:   500 * time.Millisecond,
	}
}
