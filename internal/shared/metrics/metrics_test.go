package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestScorerOutcomeCounter(t *testing.T) {
	before := testutil.ToFloat64(ScorerOutcomes.WithLabelValues("similarity", "failed"))
	IncScorerOutcome("similarity", "failed")
	after := testutil.ToFloat64(ScorerOutcomes.WithLabelValues("similarity", "failed"))
	if after-before != 1 {
		t.Fatalf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandlerServesPrometheusText(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncRecommendation("personalized")

	r := gin.New()
	r.GET("/metrics", Handler())
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "petmatch_recommendation_requests_total") {
		t.Fatalf("expected recommendation counter in output")
	}
}
