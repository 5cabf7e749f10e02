package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"athlos/gym-app/internal/service"
)

// WorkoutHandler exposes the workout plan endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type WorkoutItemRequest struct {
	ExerciseID uuid.UUID `json:"exerciseId" binding:"required"`
	Sets       uint      `json:"sets" binding:"required,min=1"`
	Reps       string    `json:"reps" binding:"required,max=20"`
	LoadKg     *uint     `json:"loadKg"`
	Notes      string    `json:"notes" binding:"max=200"`
}

type WorkoutCreateRequest struct {
	StudentID uuid.UUID            `json:"studentId" binding:"required"`
	Name      string               `json:"name" binding:"required,max=50"`
	Active    *bool                `json:"active"`
	Items     []WorkoutItemRequest `json:"items"`
}

type WorkoutUpdateRequest struct {
	Name   *string              `json:"name" binding:"omitempty,max=50"`
	Active *bool                `json:"active"`
	Items  []WorkoutItemRequest `json:"items"`
}

// CreateWorkout creates a workout with its prescribed exercises.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	var req WorkoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), actor, service.WorkoutCreateInput{
		StudentID: req.StudentID,
		Name:      req.Name,
		Active:    req.Active,
		Items:     mapItemInputs(req.Items),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// ListWorkouts returns the workouts visible to the caller's scope.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), actor)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout returns one workout with its items.
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// UpdateWorkout updates workout fields and, when items are sent, replaces the
// full item list atomically.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req WorkoutUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.WorkoutUpdateInput{Name: req.Name, Active: req.Active}
	if req.Items != nil {
		input.Items = mapItemInputs(req.Items)
	}

	workout, err := h.workoutService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// DeleteWorkout removes a workout and its items.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), actor, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound), errors.Is(err, service.ErrStudentNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDuplicateExercise):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrWorkoutItemInvalid):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func mapItemInputs(items []WorkoutItemRequest) []service.WorkoutItemInput {
	inputs := make([]service.WorkoutItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, service.WorkoutItemInput{
			ExerciseID: item.ExerciseID,
			Sets:       item.Sets,
			Reps:       item.Reps,
			LoadKg:     item.LoadKg,
			Notes:      item.Notes,
		})
	}
	return inputs
}
