package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

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
	rg.GET("/me", h.me)
	rg.GET("/me/preferences", h.getPreferences)
	rg.PUT("/me/preferences", h.putPreferences)
}

type preferencesRequest struct {
	PreferredSpecies  string   `json:"preferredSpecies"`
	PreferredSize     string   `json:"preferredSize"`
	PreferredEnergy   string   `json:"preferredEnergy"`
	AgeMinYears       *float64 `json:"ageMinYears"`
	AgeMaxYears       *float64 `json:"ageMaxYears"`
	GoodWithChildren  bool     `json:"goodWithChildren"`
	GoodWithOtherPets bool     `json:"goodWithOtherPets"`
}

func (h *Handler) me(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
	})
}

func (h *Handler) getPreferences(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	prefs, err := h.Svc.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPreferencesNotFound) {
			respond.OK(c, Preferences{UserID: userID})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load preferences", nil)
		return
	}
	respond.OK(c, prefs)
}

func (h *Handler) putPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", nil)
		return
	}
	ctx := c.Request.Context()
	userID := middleware.UserIDFromContext(c)
	if err := h.Svc.Ensure(ctx, userID, middleware.IsGuest(c)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save preferences", nil)
		return
	}
	prefs, err := h.Svc.UpdatePreferences(ctx, Preferences{
		UserID:            userID,
		PreferredSpecies:  req.PreferredSpecies,
		PreferredSize:     req.PreferredSize,
		PreferredEnergy:   req.PreferredEnergy,
		AgeMinYears:       req.AgeMinYears,
		AgeMaxYears:       req.AgeMaxYears,
		GoodWithChildren:  req.GoodWithChildren,
		GoodWithOtherPets: req.GoodWithOtherPets,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPreferences) {
			respond.Error(c, http.StatusBadRequest, "invalid_preferences", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save preferences", nil)
		return
	}
	respond.OK(c, prefs)
}
