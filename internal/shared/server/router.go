package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/metrics"
	"petmatch-backend/internal/shared/server/middleware"
	"petmatch-backend/internal/shared/server/respond"
)

const apiPrefix = "/api/v1"

// RouteRegistrar is implemented by every domain handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Status(ctx context.Context) (map[string]any, bool)
}

// RouterDeps holds the handlers mounted under /api/v1.
type RouterDeps struct {
	Config    config.Config
	Health    HealthChecker
	Handlers  []RouteRegistrar
	RateLimit *middleware.RateLimitConfig
}

// DefaultRateLimits limits ranking requests harder than catalog reads.
func DefaultRateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"RECOMMENDATIONS": {Rate: 5, Burst: 20},
			"VIEWS":           {Rate: 10, Burst: 30},
			"DEFAULT":         {Rate: 20, Burst: 60},
		},
		GroupFor: routeGroup,
	}
}

func routeGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case strings.HasPrefix(path, apiPrefix+"/recommendations"):
		return "RECOMMENDATIONS"
	case strings.HasPrefix(path, apiPrefix+"/views"):
		return "VIEWS"
	case path == apiPrefix+"/health", path == "/metrics":
		return "UNLIMITED"
	default:
		return "DEFAULT"
	}
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	limits := DefaultRateLimits()
	if deps.RateLimit != nil {
		limits = *deps.RateLimit
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(apiPrefix+"/health", apiPrefix+"/animals", "/metrics"),
		middleware.RateLimit(limits),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group(apiPrefix)
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		payload, ok := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
