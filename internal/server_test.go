package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcan/atelier/internal/auth"
	"github.com/burakcan/atelier/internal/config"
	"github.com/burakcan/atelier/internal/telemetry/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	rdb, _ := redismock.NewClientMock()
	codec := auth.NewCodec([]byte("test-secret"), time.Hour)
	return &Server{
		config: &config.Config{
			SessionCookieName:           auth.SessionCookieName,
			LoginRateLimitAllowedPerMin: 10,
		},
		versionInfo:     "test",
		redisClient:     rdb,
		sessionCodec:    codec,
		sessionResolver: auth.NewSessionResolver(codec, auth.SessionCookieName),
		metricsManager:  metrics.NewTestManager(),
		promRegistry:    prometheus.NewRegistry(),
	}
}

func TestServer_routerSetup(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()
	require.NotNil(t, router)

	for _, name := range []string{
		"login", "logout", "verify",
		"new-blog", "list-blogs", "get-blog", "update-blog", "delete-blog",
		"new-job", "list-jobs", "get-job", "update-job", "delete-job",
		"new-project", "list-projects", "update-project", "delete-project",
		"new-contact-message", "list-contact-messages",
		"root", "version", "myip",
	} {
		assert.NotNil(t, router.GetRoute(name), "route %s not registered", name)
	}
}

func TestServer_unknownPath(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	req := httptest.NewRequest("GET", "/definitely-not-here", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_unauthenticatedMutationRejected(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()

	// no db is reached: the session check fires first
	req := httptest.NewRequest("POST", "/api/blogs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `{"error":"Unauthorized. Please login first."}`, rr.Body.String())
}
