package element

import (
	"fmt"
	"time"

	"github.com/atheor/gowebtest/internal/browser"
)

// NotFoundError reports that no element matched the locator within the
// presence timeout.
type NotFoundError struct {
	Name    string
	Locator browser.Locator
	Timeout time.Duration
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("element %q (%s) not found within %v", e.Name, e.Locator, e.Timeout)
}

func (e *NotFoundError) Unwrap() error { return ErrWaitTimeout }

// NotVisibleError reports that the element did not become visible within
// the visibility timeout.
type NotVisibleError struct {
	Name    string
	Locator browser.Locator
	Timeout time.Duration
}

func (e *NotVisibleError) Error() string {
	return fmt.Sprintf("element %q (%s) not visible within %v", e.Name, e.Locator, e.Timeout)
}

func (e *NotVisibleError) Unwrap() error { return ErrWaitTimeout }

// NotClickableError reports that the element did not become clickable
// within the clickability timeout.
type NotClickableError struct {
	Name    string
	Locator browser.Locator
	Timeout time.Duration
}

func (e *NotClickableError) Error() string {
	return fmt.Sprintf("element %q (%s) not clickable within %v", e.Name, e.Locator, e.Timeout)
}

func (e *NotClickableError) Unwrap() error { return ErrWaitTimeout }

// StillVisibleError reports that the element did not disappear within the
// visibility timeout.
type StillVisibleError struct {
	Name    string
	Locator browser.Locator
	Timeout time.Duration
}

func (e *StillVisibleError) Error() string {
	return fmt.Sprintf("element %q (%s) still visible after %v", e.Name, e.Locator, e.Timeout)
}

func (e *StillVisibleError) Unwrap() error { return ErrWaitTimeout }

// TextTimeoutError reports that the element's text did not come to contain
// the expected value within the text timeout.
type TextTimeoutError struct {
	Name     string
	Locator  browser.Locator
	Expected string
	Timeout  time.Duration
}

func (e *TextTimeoutError) Error() string {
	return fmt.Sprintf("text %q not present in element %q (%s) within %v", e.Expected, e.Name, e.Locator, e.Timeout)
}

func (e *TextTimeoutError) Unwrap() error { return ErrWaitTimeout }

// AttributeTimeoutError reports that the element's attribute did not come
// to contain the expected value within the text timeout.
type AttributeTimeoutError struct {
	Name      string
	Locator   browser.Locator
	Attribute string
	Expected  string
	Timeout   time.Duration
}

func (e *AttributeTimeoutError) Error() string {
	return fmt.Sprintf("attribute %q of element %q (%s) does not contain %q within %v",
		e.Attribute, e.Name, e.Locator, e.Expected, e.Timeout)
}

func (e *AttributeTimeoutError) Unwrap() error { return ErrWaitTimeout }
