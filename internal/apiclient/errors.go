package apiclient

import "fmt"

// RequestFailedError reports that every retry attempt hit a transport-level
// failure. It wraps the failure from the last attempt.
type RequestFailedError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request to %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// DeserializationError reports that a response body could not be parsed
// into the requested shape. It is never retried: the transport succeeded,
// the payload is just not what the caller expected.
type DeserializationError struct {
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("failed to deserialize response body: %v", e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }
