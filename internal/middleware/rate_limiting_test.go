package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v9"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcan/atelier/internal/telemetry/metrics"
)

func TestRateLimit(t *testing.T) {
	db, _ := redismock.NewClientMock()
	limiter := redis_rate.NewLimiter(db)

	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RateLimit(limiter, "test-router", 10, metrics.NewTestManager())(next)
	require.NotNil(t, wrapped)

	// the mock has no scripted redis replies, the limiter errors and the
	// request never reaches the handler
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, req)
	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(
	_ context.Context, _ string, _ redis_rate.Limit,
) (*redis_rate.Result, error) {
	return &redis_rate.Result{Allowed: 1}, nil
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(
	_ context.Context, _ string, _ redis_rate.Limit,
) (*redis_rate.Result, error) {
	return &redis_rate.Result{Allowed: 0, RetryAfter: 42 * time.Second}, nil
}

func TestRateLimit_AllowAndDeny(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	m := metrics.NewTestManager()

	wrapped := RateLimit(allowAllLimiter{}, "test-router", 10, m)(next)
	rr := httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	wrapped = RateLimit(denyAllLimiter{}, "test-router", 10, m)(next)
	rr = httptest.NewRecorder()
	wrapped.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "retry after")
}
