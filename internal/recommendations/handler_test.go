package recommendations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/shared/server/middleware"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doGet(t *testing.T, router *gin.Engine, path, guest string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if guest != "" {
		req.Header.Set("X-Guest-Id", guest)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestListRecommendationsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.preferDogs(t, "guest:g1")
	router := newTestRouter(f.svc)

	resp := doGet(t, router, "/api/v1/recommendations?limit=2", "g1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var list List
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, "guest:g1", list.UserID)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "d1", list.Items[0].Animal.ID)
	assert.Contains(t, resp.Body.String(), `"recommendationReason":"Matches your dog preference"`)

	resp = doGet(t, router, "/api/v1/recommendations?limit=2", "g1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cached":true`)

	resp = doGet(t, router, "/api/v1/recommendations?limit=2&refresh=true", "g1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"cached":false`)
}

func TestListRecommendationsRejectsBadLimit(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(f.svc)

	for _, q := range []string{"abc", "-1"} {
		resp := doGet(t, router, "/api/v1/recommendations?limit="+q, "g1")
		assert.Equal(t, http.StatusBadRequest, resp.Code, q)
		assert.Contains(t, resp.Body.String(), "invalid_limit")
	}
}

func TestListRecommendationsRequiresIdentity(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(f.svc)

	resp := doGet(t, router, "/api/v1/recommendations", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestReasonEndpoint(t *testing.T) {
	f := newFixture(t)
	f.preferDogs(t, "guest:g1")
	router := newTestRouter(f.svc)

	resp := doGet(t, router, "/api/v1/recommendations/d1/reason", "g1")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "d1", body["animalId"])
	assert.Equal(t, "Matches your dog preference", body["reason"])

	resp = doGet(t, router, "/api/v1/recommendations/missing/reason", "g1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUnknownGuestGetsEmptyList(t *testing.T) {
	f := newFixture(t)
	router := newTestRouter(f.svc)

	resp := doGet(t, router, "/api/v1/recommendations", "fresh")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"items":[]`)
}
