package apiclient

import (
	"time"

	"github.com/atheor/gowebtest/internal/config"
)

// Config carries the executor's settings.
type Config struct {
	// BaseURL is prepended to relative endpoints.
	BaseURL string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of tries for a request, first
	// attempt included.
	MaxAttempts int

	// BaseDelay is the unit of the linear retry backoff: the wait before
	// attempt n+1 is BaseDelay * n.
	BaseDelay time.Duration
}

// ConfigFromProvider builds a Config from the shared configuration provider.
func ConfigFromProvider(p *config.Provider) Config {
	return Config{
		BaseURL:     p.APIBaseURL(),
		Timeout:     p.APITimeout(),
		MaxAttempts: p.APIRetryCount(),
		BaseDelay:   p.APIRetryBaseDelay(),
	}
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
	return c
}
