package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecommendationRequests counts ranking requests by how the list was produced.
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_recommendation_requests_total",
			Help: "Recommendation requests by outcome (personalized, popular, empty, cached)",
		},
		[]string{"outcome"},
	)

	// RecommendationDuration tracks end-to-end ranking latency.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "petmatch_recommendation_duration_seconds",
			Help:    "Recommendation ranking duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// ScorerOutcomes counts scorer runs by scorer and status.
	ScorerOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_scorer_outcomes_total",
			Help: "Scorer outcomes by scorer and status (scored, unavailable, failed)",
		},
		[]string{"scorer", "status"},
	)

	// CacheLookups counts recommendation cache lookups by result.
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_recommendation_cache_lookups_total",
			Help: "Recommendation cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// ViewsRecorded counts appended view events.
	ViewsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "petmatch_views_recorded_total",
			Help: "Animal profile views recorded",
		},
	)

	// RefreshJobs counts refresh jobs by stage.
	RefreshJobs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "petmatch_refresh_jobs_total",
			Help: "Score refresh jobs by stage (received, completed, failed, deleted_unrecoverable)",
		},
		[]string{"stage"},
	)
)

// IncRecommendation increments the request counter for outcome.
func IncRecommendation(outcome string) {
	RecommendationRequests.WithLabelValues(outcome).Inc()
}

// ObserveRecommendationDuration records how long a ranking took.
func ObserveRecommendationDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	RecommendationDuration.Observe(d.Seconds())
}

// IncScorerOutcome increments the scorer outcome counter.
func IncScorerOutcome(scorer, status string) {
	ScorerOutcomes.WithLabelValues(scorer, status).Inc()
}

// IncCacheLookup increments the cache lookup counter.
func IncCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

// IncViewsRecorded increments the recorded views counter.
func IncViewsRecorded() {
	ViewsRecorded.Inc()
}

// IncRefreshJob increments the refresh job counter for stage.
func IncRefreshJob(stage string) {
	RefreshJobs.WithLabelValues(stage).Inc()
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
