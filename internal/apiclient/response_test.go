package apiclient_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atheor/gowebtest/internal/apiclient"
)

func respWith(status int, contentType string) *apiclient.Response {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return &apiclient.Response{StatusCode: status, Headers: h}
}

func TestResponse_StatusPredicates(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status                          int
		successful, clientErr, serverErr bool
	}{
		{200, true, false, false},
		{201, true, false, false},
		{299, true, false, false},
		{301, false, false, false},
		{400, false, true, false},
		{404, false, true, false},
		{499, false, true, false},
		{500, false, false, true},
		{503, false, false, true},
	}
	for _, tc := range cases {
		r := respWith(tc.status, "")
		assert.Equal(t, tc.successful, r.IsSuccessful(), "status %d successful", tc.status)
		assert.Equal(t, tc.clientErr, r.IsClientError(), "status %d client error", tc.status)
		assert.Equal(t, tc.serverErr, r.IsServerError(), "status %d server error", tc.status)
	}
}

func TestResponse_ContentTypePredicates(t *testing.T) {
	t.Parallel()
	assert.True(t, respWith(200, "application/json").IsJSON())
	assert.True(t, respWith(200, "application/json; charset=utf-8").IsJSON())
	assert.False(t, respWith(200, "text/html").IsJSON())
	assert.False(t, respWith(200, "").IsJSON())

	assert.True(t, respWith(200, "application/xml").IsXML())
	assert.True(t, respWith(200, "text/xml").IsXML())
	assert.False(t, respWith(200, "application/json").IsXML())
}

func TestResponse_HeaderLookupCaseInsensitive(t *testing.T) {
	t.Parallel()
	h := http.Header{}
	h.Set("X-Request-Id", "abc123")
	r := &apiclient.Response{Headers: h}

	assert.Equal(t, "abc123", r.Header("x-request-id"))
	assert.True(t, r.HasHeader("X-REQUEST-ID"))
	assert.False(t, r.HasHeader("X-Missing"))
}

// TestDecodeJSON_Failure: a non-JSON body asked to deserialize fails with
// the typed error immediately.
func TestDecodeJSON_Failure(t *testing.T) {
	t.Parallel()
	r := &apiclient.Response{Body: "<html>not json</html>"}

	var out map[string]any
	err := r.DecodeJSON(&out)

	var de *apiclient.DeserializationError
	require.ErrorAs(t, err, &de)
}
