package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentloop/handoff/pkg/httpx"
)

func limitedHandler(config httpx.RateLimitConfig) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(ok)
}

func TestRateLimitMiddleware_AllowsWithinBurst(t *testing.T) {
	h := limitedHandler(httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}
}

func TestRateLimitMiddleware_BlocksOverBurst(t *testing.T) {
	h := limitedHandler(httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
		req.RemoteAddr = "10.0.0.2:50000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
	req.RemoteAddr = "10.0.0.2:50000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	h := limitedHandler(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})

	first := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
	first.RemoteAddr = "10.0.0.3:50000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same IP is now exhausted, a different IP is not.
	second := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
	second.RemoteAddr = "10.0.0.3:50000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	third := httptest.NewRequest(http.MethodPost, "/v1/tokens/redeem", nil)
	third.RemoteAddr = "10.0.0.4:50000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, third)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestIPKeyExtractor_ForwardedHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:50000"
	require.Equal(t, "10.0.0.5", httpx.IPKeyExtractor(req))

	req.Header.Set("X-Real-IP", "203.0.113.9")
	require.Equal(t, "203.0.113.9", httpx.IPKeyExtractor(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.9")
	require.Equal(t, "198.51.100.7", httpx.IPKeyExtractor(req))
}
