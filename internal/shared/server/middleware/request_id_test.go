package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"petmatch-backend/internal/shared/telemetry"
)

func TestRequestIDGeneratesUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c)+"|"+telemetry.RequestIDFrom(c.Request.Context()))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	id := resp.Header().Get("X-Request-Id")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id+"|"+id, resp.Body.String())
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", "client-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, "client-123", resp.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("a", 200))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.NotEqual(t, strings.Repeat("a", 200), resp.Header().Get("X-Request-Id"))
}
