package animals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"petmatch-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/animals", h.list)
	rg.GET("/animals/:animalId", h.get)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.ListAvailable(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list animals", nil)
		return
	}
	if items == nil {
		items = []Animal{}
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("animalId")
	c.Set("animalId", id)
	animal, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "animal not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load animal", nil)
		return
	}
	respond.OK(c, animal)
}
