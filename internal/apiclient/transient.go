package apiclient

import (
	"errors"
	"syscall"
)

// Category labels the transience of a transport failure, purely for
// observability: the retry loop retries every transport-level failure, but
// logging the category makes flaky-network diagnoses much faster.
type Category string

const (
	// CategoryTimeout is a client-side timeout: the server may just be
	// slow, or a longer per-attempt timeout may succeed.
	CategoryTimeout Category = "timeout"
	// CategoryConnRefused corresponds to ECONNREFUSED, typical of a
	// service that is still starting up.
	CategoryConnRefused Category = "connection-refused"
	// CategoryConnReset corresponds to ECONNRESET, an RST on an active
	// connection, common behind restarting load-balancer targets.
	CategoryConnReset Category = "connection-reset"
	// CategoryOther is any other transport failure (DNS, malformed
	// response, broken body stream).
	CategoryOther Category = "other"
)

type hasTimeout interface {
	Timeout() bool
}

// Categorize inspects err and its wrapped causes and names the transience
// category. Timeout takes precedence over the errno-based categories.
func Categorize(err error) Category {
	var t hasTimeout
	if errors.As(err, &t) && t.Timeout() {
		return CategoryTimeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return CategoryConnRefused
		case syscall.ECONNRESET:
			return CategoryConnReset
		}
	}

	return CategoryOther
}
