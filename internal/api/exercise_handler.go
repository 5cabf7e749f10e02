package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"athlos/gym-app/internal/service"
)

// ExerciseHandler exposes the shared exercise catalog endpoints.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ImageUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

// ListExercises returns the catalog, optionally filtered by ?category=.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise returns one catalog entry.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// GetCategories returns the distinct catalog categories.
func (h *ExerciseHandler) GetCategories(c *gin.Context) {
	categories, err := h.exerciseService.Categories(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ImportExercises upserts a catalog batch. System admin only.
func (h *ExerciseHandler) ImportExercises(c *gin.Context) {
	var entries []service.ExerciseInput
	if err := c.ShouldBindJSON(&entries); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.exerciseService.Import(c.Request.Context(), entries)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"created": result.Created,
		"updated": result.Updated,
		"failed":  result.Failed,
	})
}

// RequestImageUpload registers a new image on the exercise and returns a
// presigned PUT URL the client uploads to directly.
func (h *ExerciseHandler) RequestImageUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	key, url, err := h.exerciseService.ImageUploadURL(c.Request.Context(), id, req.ContentType)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ImageUploadResponse{Key: key, UploadURL: url})
}

// GetImageURLs resolves the exercise's images into presigned GET URLs.
func (h *ExerciseHandler) GetImageURLs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	urls, err := h.exerciseService.ImageDownloadURLs(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

func (h *ExerciseHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExerciseExists):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
