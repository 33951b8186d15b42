package portfolio

import (
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

func newPortfolioRouter(t *testing.T, initial ...*Project) *mux.Router {
	t.Helper()
	repo := newRepoMock(initial...)
	codec := auth.NewCodec([]byte("test-secret"), time.Hour)
	resolver := auth.NewSessionResolver(codec, auth.SessionCookieName)
	router := mux.NewRouter()
	NewHandler(repo, resolver, auth.PolicyPublic).SetupRoutes(router)
	return router
}

func doJSON(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPortfolioHandler_Create(t *testing.T) {
	router := newPortfolioRouter(t)

	rr := doJSON(router, "POST", "/api/portfolio",
		`{"title":"Site redesign","description":"Full rebrand","image":"https://img.test/p.png"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var p Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Site redesign", p.Title)
	require.NotNil(t, p.Image)
	assert.Equal(t, "https://img.test/p.png", *p.Image)

	// image is optional, blank becomes null
	rr = doJSON(router, "POST", "/api/portfolio", `{"title":"t","description":"d","image":""}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"image":null`)

	rr = doJSON(router, "POST", "/api/portfolio", `{"title":"no description"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Title and description are required"}`, rr.Body.String())
}

func TestPortfolioHandler_Update(t *testing.T) {
	router := newPortfolioRouter(t, &Project{ID: 2, Title: "old", Description: "old"})

	rr := doJSON(router, "PUT", "/api/portfolio/2", `{"title":"new","description":"newer"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var p Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "new", p.Title)
	assert.Nil(t, p.Image)

	rr = doJSON(router, "PUT", "/api/portfolio/99", `{"title":"t","description":"d"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Project not found"}`, rr.Body.String())

	rr = doJSON(router, "PUT", "/api/portfolio/abc", `{"title":"t","description":"d"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"error":"Invalid project ID"}`, rr.Body.String())

	rr = doJSON(router, "PUT", "/api/portfolio/2", `{"title":"","description":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPortfolioHandler_Delete(t *testing.T) {
	router := newPortfolioRouter(t, &Project{ID: 2, Title: "old", Description: "old"})

	rr := doJSON(router, "DELETE", "/api/portfolio/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"message":"Project deleted successfully"}`, rr.Body.String())

	rr = doJSON(router, "DELETE", "/api/portfolio/2", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, `{"error":"Project not found"}`, rr.Body.String())
}

func TestPortfolioHandler_List(t *testing.T) {
	older := &Project{ID: 1, Title: "first", Description: "d", CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := &Project{ID: 2, Title: "second", Description: "d", CreatedAt: time.Now().Add(-time.Hour)}
	router := newPortfolioRouter(t, older, newer)

	rr := doJSON(router, "GET", "/api/portfolio", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var all []*Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 2)
	// newest first
	assert.Equal(t, 2, all[0].ID)
	assert.Equal(t, 1, all[1].ID)
}
