package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHeadersDefaults(t *testing.T) {
	store := NewMemoryStore()

	h := buildHeaders(ModeToken, store, requestOptions{method: http.MethodPost})
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Empty(t, h.Get("Authorization"), "absent credential injects nothing")
}

func TestBuildHeadersMultipartSetsNoDefaultType(t *testing.T) {
	store := NewMemoryStore()

	h := buildHeaders(ModeToken, store, requestOptions{method: http.MethodPost, multipart: true})
	assert.Empty(t, h.Get("Content-Type"))
}

func TestBuildHeadersCallerContentTypeWins(t *testing.T) {
	store := NewMemoryStore()

	h := buildHeaders(ModeToken, store, requestOptions{
		method:      http.MethodPost,
		contentType: "text/csv",
	})
	assert.Equal(t, "text/csv", h.Get("Content-Type"))
}

func TestBuildHeadersExplicitHeadersOverride(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write("tok-1"))

	explicit := http.Header{}
	explicit.Set("authorization", "Bearer custom")
	explicit.Set("x-trace", "t-1")

	h := buildHeaders(ModeToken, store, requestOptions{
		method:  http.MethodGet,
		headers: explicit,
	})

	// Case-insensitive dedupe: the caller's value replaces the computed
	// one instead of stacking.
	require.Len(t, h.Values("Authorization"), 1)
	assert.Equal(t, "Bearer custom", h.Get("Authorization"))
	assert.Equal(t, "t-1", h.Get("X-Trace"))
}

func TestBuildHeadersSkipAuth(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write("tok-1"))

	h := buildHeaders(ModeToken, store, requestOptions{method: http.MethodPost, skipAuth: true})
	assert.Empty(t, h.Get("Authorization"))
}

func TestBuildHeadersSessionKey(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Write("key-9"))

	h := buildHeaders(ModeSessionKey, store, requestOptions{method: http.MethodGet})
	assert.Equal(t, "key-9", h.Get("X-Session-Key"))
	assert.Empty(t, h.Get("Authorization"))
}
