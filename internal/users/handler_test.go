package users

import (
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestPutThenGetPreferences(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	body := `{"preferredSpecies":"Cat","preferredSize":"small","ageMinYears":1,"ageMaxYears":4,"goodWithChildren":true}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/me/preferences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"preferredSize":"Small"`)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me/preferences", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"preferredSpecies":"Cat"`)
	assert.Contains(t, resp.Body.String(), `"userId":"guest:g1"`)
}

func TestPutPreferencesValidation(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/me/preferences", strings.NewReader(`{"ageMinYears":9,"ageMaxYears":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"invalid_preferences"`)
}

func TestGetPreferencesEmptyForNewUser(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/preferences", nil)
	req.Header.Set("X-Guest-Id", "new")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"userId":"guest:new"`)
}

func TestMeRejectsGuests(t *testing.T) {
	router := newTestRouter(NewService(NewMemoryRepo()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
