package config

import "time"

// Typed accessors for the well-known framework keys. Wait timeouts are
// configured in whole seconds, polling intervals and API timeouts in
// milliseconds, matching the key names.

// Browser returns the configured browser name.
func (p *Provider) Browser() string {
	return p.Get("browser", "chrome")
}

// Headless reports whether the browser should run headless.
func (p *Provider) Headless() bool {
	return p.GetBool("headless", true)
}

// SessionBackend names the browser session backend to construct.
func (p *Provider) SessionBackend() string {
	return p.Get("session.backend", "chromedp")
}

// BaseURL is the web application under test.
func (p *Provider) BaseURL() string {
	return p.Get("base.url", "http://localhost:8080")
}

// PageLoadTimeout bounds full page navigations.
func (p *Provider) PageLoadTimeout() time.Duration {
	return p.seconds("timeout.page.load", 30*time.Second)
}

// PresenceTimeout bounds waits for an element to exist in the document.
func (p *Provider) PresenceTimeout() time.Duration {
	return p.seconds("wait.element.presence", 10*time.Second)
}

// VisibleTimeout bounds waits for an element to be rendered.
func (p *Provider) VisibleTimeout() time.Duration {
	return p.seconds("wait.element.visible", 20*time.Second)
}

// ClickableTimeout bounds waits for an element to accept a click.
func (p *Provider) ClickableTimeout() time.Duration {
	return p.seconds("wait.element.clickable", 15*time.Second)
}

// TextTimeout bounds waits for an element's text to match.
func (p *Provider) TextTimeout() time.Duration {
	return p.seconds("wait.element.text", 20*time.Second)
}

// PollingInterval is the delay between condition re-checks during a wait.
func (p *Provider) PollingInterval() time.Duration {
	return p.millis("timeout.polling", 500*time.Millisecond)
}

// APIBaseURL is the base address for API requests.
func (p *Provider) APIBaseURL() string {
	return p.Get("api.base.url", "http://localhost:8080")
}

// APITimeout bounds a single HTTP request attempt.
func (p *Provider) APITimeout() time.Duration {
	return p.millis("api.timeout", 30*time.Second)
}

// APIRetryCount is the total number of attempts for an API request.
func (p *Provider) APIRetryCount() int {
	return p.GetInt("api.retry.count", 3)
}

// APIRetryBaseDelay is the base unit of the linear retry backoff.
func (p *Provider) APIRetryBaseDelay() time.Duration {
	return p.millis("api.retry.base.delay", time.Second)
}

// ScreenshotOnFailure reports whether failed steps capture a screenshot.
func (p *Provider) ScreenshotOnFailure() bool {
	return p.GetBool("screenshot.on.failure", true)
}

// ScreenshotDir is where captured screenshots are written.
func (p *Provider) ScreenshotDir() string {
	return p.Get("screenshot.dir", "test-output/screenshots")
}

// ReportDBPath locates the run recorder database.
func (p *Provider) ReportDBPath() string {
	return p.Get("report.db.path", "test-output/report.db")
}

// Environment names the environment under test (qa, staging, ...).
func (p *Provider) Environment() string {
	return p.Get("environment", "qa")
}
