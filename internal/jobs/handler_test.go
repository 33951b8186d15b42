package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcan/atelier/internal/auth"
)

func newJobsRouter(t *testing.T, policy auth.MutationPolicy, initial ...*Job) (*mux.Router, *repoMock) {
	t.Helper()
	repo := newRepoMock(initial...)
	codec := auth.NewCodec([]byte("test-secret"), time.Hour)
	resolver := auth.NewSessionResolver(codec, auth.SessionCookieName)
	router := mux.NewRouter()
	NewHandler(repo, resolver, policy).SetupRoutes(router)
	return router, repo
}

func doJSON(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

const validJobBody = `{
	"title": "Backend Engineer",
	"department": "Engineering",
	"location": "Remote",
	"type": "Full-time",
	"description": "Build services."
}`

func TestJobsHandler_Create(t *testing.T) {
	router, _ := newJobsRouter(t, auth.PolicyPublic)

	// no session cookie, mutations are public
	rr := doJSON(router, "POST", "/api/jobs", validJobBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	var j Job
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &j))
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, "Engineering", j.Department)
	assert.NotZero(t, j.ID)

	rr = doJSON(router, "POST", "/api/jobs", `{"title":"only title"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Missing fields"}`, rr.Body.String())
}

func TestJobsHandler_AuthenticatedPolicy(t *testing.T) {
	router, _ := newJobsRouter(t, auth.PolicyAuthenticated)

	rr := doJSON(router, "POST", "/api/jobs", validJobBody)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, `{"error":"Unauthorized. Please login first."}`, rr.Body.String())

	// reads stay public regardless of the mutation policy
	rr = doJSON(router, "GET", "/api/jobs", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestJobsHandler_GetAndList(t *testing.T) {
	older := &Job{ID: 1, Title: "first", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := &Job{ID: 2, Title: "second", CreatedAt: time.Now().Add(-time.Hour)}
	router, _ := newJobsRouter(t, auth.PolicyPublic, newer, older)

	rr := doJSON(router, "GET", "/api/jobs/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var j Job
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &j))
	assert.Equal(t, "first", j.Title)

	rr = doJSON(router, "GET", "/api/jobs/99", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Job not found"}`, rr.Body.String())

	rr = doJSON(router, "GET", "/api/jobs/nope", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Invalid job ID"}`, rr.Body.String())

	// oldest first
	rr = doJSON(router, "GET", "/api/jobs", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []*Job
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, 2, all[1].ID)
}

func TestJobsHandler_Update(t *testing.T) {
	router, _ := newJobsRouter(t, auth.PolicyPublic, &Job{ID: 4, Title: "old"})

	rr := doJSON(router, "PUT", "/api/jobs/4", validJobBody)
	require.Equal(t, http.StatusOK, rr.Code)
	var j Job
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &j))
	assert.Equal(t, "Backend Engineer", j.Title)

	rr = doJSON(router, "PUT", "/api/jobs/99", validJobBody)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Job not found"}`, rr.Body.String())

	rr = doJSON(router, "PUT", "/api/jobs/4", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestJobsHandler_Delete(t *testing.T) {
	router, repo := newJobsRouter(t, auth.PolicyPublic, &Job{ID: 4, Title: "old"})

	rr := doJSON(router, "DELETE", "/api/jobs/4", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	_, err := repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrJobNotFound)

	// deleting again still succeeds
	rr = doJSON(router, "DELETE", "/api/jobs/4", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
