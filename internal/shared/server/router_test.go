package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/server/middleware"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": middleware.UserIDFromContext(c)})
	})
}

type downHealth struct{}

func (downHealth) Status(context.Context) (map[string]any, bool) {
	return map[string]any{"ok": false}, false
}

func testConfig() config.Config {
	return config.Config{Env: "test", CORSAllowOrigin: []string{"http://localhost:5173"}}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRouterPublicRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig()})

	resp := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))

	resp = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRouterHealthReportsOutage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{Config: testConfig(), Health: downHealth{}})

	resp := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestRouterRequiresIdentityAndRateLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limits := middleware.RateLimitConfig{
		Rules:    map[string]middleware.RateLimitRule{"RECOMMENDATIONS": {Rate: 0.001, Burst: 1}},
		GroupFor: routeGroup,
	}
	r := NewRouter(RouterDeps{Config: testConfig(), Handlers: []RouteRegistrar{pingHandler{}}, RateLimit: &limits})

	resp := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp = serve(r, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "guest:g1")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp = serve(r, req)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":8080", Addr(""))
	assert.Equal(t, ":9000", Addr("9000"))
	assert.Equal(t, ":9000", Addr(":9000"))
}
