package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"petmatch-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	router := gin.New()
	router.Use(RequestID(), Auth(), Logging())
	router.GET("/api/v1/recommendations/:animalId/reason", func(c *gin.Context) {
		c.Set("animalId", c.Param("animalId"))
		c.Set("cache", "miss")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/a-1/reason", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	entries := logs.FilterMessage("request.complete").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log, got %d", len(entries))
	}
	payload := entries[0].ContextMap()

	required := []string{"request_id", "user_id", "animal_id", "duration_ms", "status", "route", "cache"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["user_id"] != "guest:guest1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["animal_id"] != "a-1" {
		t.Fatalf("unexpected animal_id: %v", payload["animal_id"])
	}
	if payload["route"] != "/api/v1/recommendations/:animalId/reason" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["request_id"] == "" {
		t.Fatalf("expected request_id to be set")
	}
}
