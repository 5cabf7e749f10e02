package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/service"
)

// TrainerHandler exposes the trainer profile endpoints.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

type TrainerUpdateRequest struct {
	License   string `json:"license" binding:"required,max=20"`
	Specialty string `json:"specialty" binding:"max=100"`
}

// TrainerResponse flattens the profile with its user identity.
type TrainerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	License   string    `json:"license"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListTrainers returns the trainers visible to the caller's scope.
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	profiles, err := h.trainerService.List(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]TrainerResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, mapTrainerToResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetTrainer returns one trainer profile if the caller's scope covers it.
func (h *TrainerHandler) GetTrainer(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.trainerService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainerToResponse(profile))
}

// UpdateTrainer updates a trainer profile.
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req TrainerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.trainerService.Update(c.Request.Context(), actor, id, service.TrainerUpdateInput{
		License:   req.License,
		Specialty: req.Specialty,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainerToResponse(profile))
}

func (h *TrainerHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLicenseTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func mapTrainerToResponse(p *domain.TrainerProfile) TrainerResponse {
	resp := TrainerResponse{
		ID:        p.UserID,
		License:   p.License,
		Specialty: p.Specialty,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		resp.Name = p.User.FullName()
		resp.Email = p.User.Email
	}
	return resp
}
