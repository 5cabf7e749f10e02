package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"athlos/gym-app/internal/service"
)

// GymHandler exposes the gym management endpoints.
type GymHandler struct {
	gymService service.GymService
}

// NewGymHandler creates a new GymHandler.
func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

type GymRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	TaxID   string `json:"taxId" binding:"required,max=18"`
	Address string `json:"address" binding:"max=255"`
	Phone   string `json:"phone" binding:"max=15"`
}

// CreateGym registers a new gym. System admin only.
func (h *GymHandler) CreateGym(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	gym, err := h.gymService.Create(c.Request.Context(), actor, service.GymInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gym)
}

// ListGyms returns the gyms visible to the caller's scope.
func (h *GymHandler) ListGyms(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	gyms, err := h.gymService.List(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gyms)
}

// GetGym returns one gym if the caller's scope covers it.
func (h *GymHandler) GetGym(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	gym, err := h.gymService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gym)
}

// UpdateGym updates a gym the caller administers.
func (h *GymHandler) UpdateGym(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	gym, err := h.gymService.Update(c.Request.Context(), actor, id, service.GymInput{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gym)
}

// DeleteGym removes a gym. System admin only.
func (h *GymHandler) DeleteGym(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.gymService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GymHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGymNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGymTaxIDTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
