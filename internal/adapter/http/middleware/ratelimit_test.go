package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/pkg/config"
)

func limitedRouter(t *testing.T, requests int, window time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	limiter, err := NewRateLimiter(&config.AppConfig{
		RateLimitConfigs: map[string]config.RateLimitConfig{
			"GET /ping": {Requests: requests, Window: window},
		},
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	return router
}

func ping(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	router := limitedRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		rec := ping(router)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := ping(router)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRateLimiterRemainingHeaderCountsDown(t *testing.T) {
	router := limitedRouter(t, 2, time.Minute)

	assert.Equal(t, "1", ping(router).Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "0", ping(router).Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimiterUnconfiguredRouteSkipped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter, err := NewRateLimiter(&config.AppConfig{
		RateLimitConfigs: map[string]config.RateLimitConfig{
			"GET /other": {Requests: 1, Window: time.Minute},
		},
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, ping(router).Code)
	}
}

func TestMemoryBackendWindowDoesNotSlide(t *testing.T) {
	backend := newMemoryBackend()
	ctx := t.Context()
	window := 60 * time.Millisecond

	n, err := backend.Incr(ctx, "k", window)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	time.Sleep(40 * time.Millisecond)

	n, err = backend.Incr(ctx, "k", window)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Past the end of the window opened by the first increment; steady
	// traffic must not have pushed it forward.
	time.Sleep(40 * time.Millisecond)

	n, err = backend.Incr(ctx, "k", window)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryBackendWindowExpiry(t *testing.T) {
	backend := newMemoryBackend()
	ctx := t.Context()

	n, err := backend.Incr(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = backend.Incr(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	time.Sleep(80 * time.Millisecond)

	n, err = backend.Incr(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
