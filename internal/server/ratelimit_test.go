package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ccerrors "careercompass/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterBurst(t *testing.T) {
	logger, err := ccerrors.New("error")
	require.NoError(t, err)

	limiter := NewRateLimiter(60, time.Minute, 2, logger)
	defer limiter.Close()

	// Burst capacity of 2 with a refill rate of 1/s: two immediate requests
	// pass, the third is rejected
	assert.True(t, limiter.Allow("client-a"))
	assert.True(t, limiter.Allow("client-a"))
	assert.False(t, limiter.Allow("client-a"))

	// Independent keys get their own bucket
	assert.True(t, limiter.Allow("client-b"))
}

func TestRateLimiterStats(t *testing.T) {
	logger, err := ccerrors.New("error")
	require.NoError(t, err)

	limiter := NewRateLimiter(120, time.Minute, 5, logger)
	defer limiter.Close()

	limiter.Allow("client-a")
	limiter.Allow("client-b")

	stats := limiter.GetStats()
	assert.Equal(t, 2, stats["active_limiters"])
	assert.InDelta(t, 2.0, stats["rate_per_second"].(float64), 0.001)
	assert.Equal(t, 5, stats["burst_capacity"])
}

func TestGetRateLimitKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.Header.Set("X-API-Key", "my-key")
	req.RemoteAddr = "10.1.2.3:5555"

	assert.Equal(t, "api:my-key", getRateLimitKey(req, true, true))
	assert.Equal(t, "ip:10.1.2.3", getRateLimitKey(req, false, true))
	assert.Equal(t, "", getRateLimitKey(req, false, false))

	// Bearer token is the fallback when no X-API-Key header is present
	req.Header.Del("X-API-Key")
	req.Header.Set("Authorization", "Bearer token-123")
	assert.Equal(t, "api:token-123", getRateLimitKey(req, true, false))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.10:40000"
	assert.Equal(t, "192.0.2.10", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	assert.Equal(t, "203.0.113.5", getClientIP(req))
}

func TestParseFirstIP(t *testing.T) {
	assert.Equal(t, "203.0.113.5", parseFirstIP("203.0.113.5, 10.0.0.1"))
	assert.Equal(t, "10.0.0.1", parseFirstIP("not-an-ip, 10.0.0.1"))
	assert.Equal(t, "", parseFirstIP("garbage"))
}
