package views

import (
	"errors"
	"net/http"

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
	rg.POST("/views", h.record)
	rg.GET("/views/recent", h.recent)
}

type recordRequest struct {
	AnimalID        string `json:"animalId"`
	DurationSeconds int    `json:"durationSeconds"`
}

func (h *Handler) record(c *gin.Context) {
	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	c.Set("animalId", req.AnimalID)
	view, err := h.Svc.Record(c.Request.Context(), RecordInput{
		UserID:          middleware.UserIDFromContext(c),
		IsGuest:         middleware.IsGuest(c),
		AnimalID:        req.AnimalID,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidView):
			respond.Error(c, http.StatusBadRequest, "invalid_view", err.Error(), nil)
		case errors.Is(err, animals.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "animal not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record view", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, view)
}

func (h *Handler) recent(c *gin.Context) {
	items, err := h.Svc.Recent(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load recent views", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}
