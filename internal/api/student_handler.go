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

// StudentHandler exposes the student profile endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type StudentUpdateRequest struct {
	TrainerID    *uuid.UUID `json:"trainerId"`
	ClearTrainer bool       `json:"clearTrainer"`
	GymID        *uuid.UUID `json:"gymId"`
	ClearGym     bool       `json:"clearGym"`
	BirthDate    *time.Time `json:"birthDate"`
	Goal         *string    `json:"goal"`
}

// StudentResponse flattens the profile with its user identity.
type StudentResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	TrainerID *uuid.UUID `json:"trainerId,omitempty"`
	GymID     *uuid.UUID `json:"gymId,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Goal      string     `json:"goal,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ListStudents returns the students visible to the caller's scope.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	profiles, err := h.studentService.List(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]StudentResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, mapStudentToResponse(&profiles[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetStudent returns one student profile if the caller's scope covers it.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.studentService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapStudentToResponse(profile))
}

// UpdateStudent updates a student profile, including trainer and gym links.
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.studentService.Update(c.Request.Context(), actor, id, service.StudentUpdateInput{
		TrainerID:    req.TrainerID,
		ClearTrainer: req.ClearTrainer,
		GymID:        req.GymID,
		ClearGym:     req.ClearGym,
		BirthDate:    req.BirthDate,
		Goal:         req.Goal,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapStudentToResponse(profile))
}

func (h *StudentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTrainerNotFound):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func mapStudentToResponse(p *domain.StudentProfile) StudentResponse {
	resp := StudentResponse{
		ID:        p.UserID,
		TrainerID: p.TrainerID,
		GymID:     p.GymID,
		BirthDate: p.BirthDate,
		Goal:      p.Goal,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		resp.Name = p.User.FullName()
		resp.Email = p.User.Email
	}
	return resp
}
