package apiclient

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response is an immutable snapshot of one HTTP response: status, body
// text and headers, fully read and detached from the connection. The
// convenience predicates derive from the status code and headers; nothing
// is stored redundantly.
type Response struct {
	StatusCode int
	Status     string
	Body       string
	Headers    http.Header
}

// IsSuccessful reports a 2xx status.
func (r *Response) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsClientError reports a 4xx status.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports a 5xx status.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// Header returns the named header, case-insensitively. Empty string means
// absent.
func (r *Response) Header(name string) string {
	return r.Headers.Get(name)
}

// HasHeader reports whether the named header is present.
func (r *Response) HasHeader(name string) bool {
	return r.Headers.Get(name) != ""
}

// ContentType returns the Content-Type header.
func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// IsJSON reports whether the response declares a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

// IsXML reports whether the response declares an XML content type.
func (r *Response) IsXML() bool {
	ct := r.ContentType()
	return strings.Contains(ct, "application/xml") || strings.Contains(ct, "text/xml")
}

// DecodeJSON unmarshals the body into v, failing with a
// *DeserializationError when the body does not parse.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal([]byte(r.Body), v); err != nil {
		return &DeserializationError{Err: err}
	}
	return nil
}
