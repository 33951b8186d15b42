package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burakcan/atelier/internal/telemetry/metrics"
)

func TestContactHandler(t *testing.T) {
	repo := newRepoMock()
	router := mux.NewRouter()
	NewHandler(repo, metrics.NewTestManager()).SetupRoutes(router)

	req := httptest.NewRequest("POST", "/api/contact",
		strings.NewReader(`{"name":"Ana","email":"ana@test.dev","message":"hi there"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"success":true}`, rr.Body.String())

	stored, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "ana@test.dev", stored[0].Email)

	req = httptest.NewRequest("POST", "/api/contact", strings.NewReader(`{broken`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req = httptest.NewRequest("GET", "/api/contact", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var all []*Message
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Ana", all[0].Name)
}
