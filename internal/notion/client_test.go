package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts an httptest server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("secret-token", WithBaseURL(srv.URL))
}

func TestClientSendsAuthAndVersionHeaders(t *testing.T) {
	var gotAuth, gotVersion, gotAgent string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
	}))

	_, err := client.SearchPages(context.Background(), "", 5)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, DefaultAPIVersion, gotVersion)
	assert.Equal(t, UserAgent, gotAgent)
}

func TestClientAPIVersionOverride(t *testing.T) {
	var gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotVersion = r.Header.Get("Notion-Version")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient("secret", WithBaseURL(srv.URL), WithAPIVersion("2023-01-01"))
	_, err := client.SearchPages(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", gotVersion)
}

func TestClientNotFoundError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"object_not_found","message":"Could not find block."}`))
	}))

	_, err := client.BlockChildren(context.Background(), "missing", 10)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "object_not_found", apiErr.Code)
	assert.Equal(t, "Could not find block.", apiErr.Message)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClientUnauthorizedError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`))
	}))

	_, err := client.SearchPages(context.Background(), "", 1)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
}

func TestClientDoesNotRetryBadRequest(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"object":"error","status":400,"code":"validation_error","message":"body failed validation"}`))
	}))

	_, err := client.SearchPages(context.Background(), "", 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0.1")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"object":"error","status":429,"code":"rate_limited","message":"Rate limited."}`))
			return
		}
		_, _ = w.Write([]byte(`{"results": [], "has_more": false}`))
	}))

	_, err := client.SearchPages(context.Background(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestReasonForStatus(t *testing.T) {
	cases := []struct {
		code   int
		reason Reason
	}{
		{400, ReasonInvalidRequest},
		{401, ReasonUnauthorized},
		{403, ReasonForbidden},
		{404, ReasonNotFound},
		{409, ReasonConflict},
		{429, ReasonRateLimited},
		{500, ReasonInternal},
		{502, ReasonInternal},
		{503, ReasonUnavailable},
		{418, ReasonUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.reason, reasonForStatus(tc.code), "status %d", tc.code)
	}
}
