package browser

import (
	"net/http"
	"time"

	"github.com/atheor/gowebtest/internal/config"
)

// Backend names for the built-in session implementations.
const (
	BackendChromedp = "chromedp"
	BackendStatic   = "static"
)

// Config carries the settings needed to construct a Session backend.
type Config struct {
	// Backend selects the registered session implementation.
	Backend string

	// Headless controls whether Chrome runs without a visible window.
	Headless bool

	// UserAgent overrides the backend's default user agent when non-empty.
	UserAgent string

	// NavigationTimeout bounds a single page load.
	NavigationTimeout time.Duration

	// HTTPClient is used by the static backend; nil means a default client
	// with a fresh cookie jar.
	HTTPClient *http.Client
}

// ConfigFromProvider builds a Config from the shared configuration provider.
func ConfigFromProvider(p *config.Provider) Config {
	return Config{
		Backend:           p.SessionBackend(),
		Headless:          p.Headless(),
		NavigationTimeout: p.PageLoadTimeout(),
	}
}
