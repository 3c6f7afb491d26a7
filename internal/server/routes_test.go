package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exemplo/appserver/internal/server/health"
)

var fixedClock = func() time.Time {
	return time.Date(2024, time.January, 15, 10, 30, 0, 0, time.Local)
}

func newTestHandler(t *testing.T, cfg *Config, clock health.Clock) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg == nil {
		cfg = DefaultConfig()
	}
	h, err := SetupRoutes(cfg, NewServices(clock))
	require.NoError(t, err)
	return h
}

func request(h http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRoutes_Home(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	w := request(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "<html")
}

func TestRoutes_HealthMockedClock(t *testing.T) {
	h := newTestHandler(t, nil, fixedClock)

	w := request(h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "UP", "timestamp": "2024-01-15T10:30:00"}`, w.Body.String())
}

func TestRoutes_HealthTimestampsNonDecreasing(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	var prev time.Time
	for i := 0; i < 5; i++ {
		w := request(h, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 2)
		assert.Equal(t, "UP", body["status"])

		ts, err := health.ParseTimestamp(body["timestamp"])
		require.NoError(t, err)
		assert.False(t, ts.Before(prev))
		prev = ts
	}
}

func TestRoutes_NotFound(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	for _, path := range []string{"/nonexistent", "/health/", "/HEALTH", "/index.html", "/health/extra"} {
		t.Run(path, func(t *testing.T) {
			w := request(h, http.MethodGet, path)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Empty(t, w.Body.String())
		})
	}
}

func TestRoutes_UnsupportedMethodNeverOK(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/"},
		{http.MethodPut, "/"},
		{http.MethodDelete, "/health"},
		{http.MethodPatch, "/health"},
		{http.MethodPost, "/nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := request(h, tt.method, tt.path)
			assert.NotEqual(t, http.StatusOK, w.Code)
			assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, w.Code)
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, request(h, http.MethodPost, "/").Code)
}

func TestRoutes_RateLimitSkipsHealth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = "1-M"
	h := newTestHandler(t, cfg, nil)

	assert.Equal(t, http.StatusOK, request(h, http.MethodGet, "/").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(h, http.MethodGet, "/").Code)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, request(h, http.MethodGet, "/health").Code)
	}
}

func TestRoutes_InvalidRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = "lots"

	_, err := SetupRoutes(cfg, NewServices(nil))
	assert.Error(t, err)
}

func TestRoutes_ConcurrentRequests(t *testing.T) {
	h := newTestHandler(t, nil, fixedClock)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := "/"
			if i%2 == 0 {
				path = "/health"
			}
			w := request(h, http.MethodGet, path)
			assert.Equal(t, http.StatusOK, w.Code)
		}(i)
	}
	wg.Wait()
}

func requestWithHeaders(h http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_Preflight(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	preflight := map[string]string{
		"Origin":                        "http://frontend.test",
		"Access-Control-Request-Method": http.MethodGet,
	}

	for _, path := range []string{"/nonexistent", "/health/", "/index.html"} {
		t.Run("unknown "+path, func(t *testing.T) {
			w := requestWithHeaders(h, http.MethodOptions, path, preflight)
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
			assert.Empty(t, w.Body.String())
		})
	}

	for _, path := range []string{"/", "/health"} {
		t.Run("known "+path, func(t *testing.T) {
			w := requestWithHeaders(h, http.MethodOptions, path, preflight)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, http.MethodGet, w.Header().Get("Access-Control-Allow-Methods"))
		})
	}
}

func TestRoutes_PlainOptionsNotAllowed(t *testing.T) {
	h := newTestHandler(t, nil, nil)

	w := request(h, http.MethodOptions, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	assert.Empty(t, w.Body.String())
}

func TestRoutes_ErrorsNotCompressed(t *testing.T) {
	h := newTestHandler(t, nil, nil)
	gz := map[string]string{"Accept-Encoding": "gzip"}

	for _, tt := range []struct {
		method, path string
		code         int
	}{
		{http.MethodGet, "/nonexistent", http.StatusNotFound},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
	} {
		w := requestWithHeaders(h, tt.method, tt.path, gz)
		assert.Equal(t, tt.code, w.Code)
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Zero(t, w.Body.Len())
	}

	w := requestWithHeaders(h, http.MethodGet, "/", gz)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRoutes_RateLimitIgnoresForwardedFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = "1-M"
	h := newTestHandler(t, cfg, nil)

	assert.Equal(t, http.StatusOK,
		requestWithHeaders(h, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "203.0.113.1"}).Code)

	for _, ip := range []string{"203.0.113.2", "203.0.113.3", "198.51.100.7"} {
		w := requestWithHeaders(h, http.MethodGet, "/", map[string]string{"X-Forwarded-For": ip})
		assert.Equal(t, http.StatusTooManyRequests, w.Code, "X-Forwarded-For %s", ip)
	}
}

func TestRoutes_TrustedProxyForwardsClientIP(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = "1-M"
	// httptest requests come from 192.0.2.1
	cfg.HTTP.TrustedProxies = []string{"192.0.2.0/24"}
	h := newTestHandler(t, cfg, nil)

	for _, ip := range []string{"203.0.113.1", "203.0.113.2"} {
		w := requestWithHeaders(h, http.MethodGet, "/", map[string]string{"X-Forwarded-For": ip})
		assert.Equal(t, http.StatusOK, w.Code, "X-Forwarded-For %s", ip)
	}
}
