package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/shared/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth("/api/v1/health"))
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/api/v1/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c), "guest": IsGuest(c)})
	})
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	router := newAuthRouter()
	router.OPTIONS("/api/v1/recommendations", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestAuthPublicPrefix(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), `"code":"unauthorized"`)
}

func TestAuthGuestHeader(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"userId":"guest:abc","guest":true}`, resp.Body.String())
}

func TestAuthBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-secret")
	token, err := auth.SignJWT(auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-42"}})
	require.NoError(t, err)

	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"userId":"user-42","guest":false}`, resp.Body.String())
}

func TestAuthRejectsBadToken(t *testing.T) {
	router := newAuthRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
