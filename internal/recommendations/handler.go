package recommendations

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"petmatch-backend/internal/animals"
	"petmatch-backend/internal/shared/server/middleware"
	"petmatch-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/recommendations", h.list)
	rg.GET("/recommendations/:animalId/reason", h.reason)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	list, err := h.Svc.Recommend(c.Request.Context(), userID, limit, refresh)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recommendations", nil)
		return
	}
	switch {
	case refresh:
		c.Set("cache", "bypass")
	case list.Cached:
		c.Set("cache", "hit")
	default:
		c.Set("cache", "miss")
	}
	respond.OK(c, list)
}

func (h *Handler) reason(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing user identity", nil)
		return
	}
	animalID := c.Param("animalId")
	c.Set("animalId", animalID)

	reason, err := h.Svc.Reason(c.Request.Context(), userID, animalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "animal not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to explain recommendation", nil)
		return
	}
	respond.OK(c, gin.H{"animalId": animalID, "reason": reason})
}
