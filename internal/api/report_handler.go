package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"athlos/gym-app/internal/domain"
	"athlos/gym-app/internal/service"
)

// ReportHandler exposes the dashboard and report endpoints. Both dispatch on
// the caller's role so every role shares one URL.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// asOf reads an optional RFC 3339 ?asOf= instant, defaulting to now.
func asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid asOf, expected RFC 3339")
		return time.Time{}, false
	}
	return t, true
}

// GetDashboard returns the role-specific dashboard payload.
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	at, ok := asOf(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var payload any
	switch actor.Role {
	case domain.RoleTrainer:
		payload, err = h.reportService.TrainerDashboard(ctx, actor, at)
	case domain.RoleStudent:
		payload, err = h.reportService.StudentDashboard(ctx, actor, at)
	case domain.RoleGymAdmin:
		payload, err = h.reportService.GymDashboard(ctx, actor, at)
	case domain.RoleSystemAdmin:
		payload, err = h.reportService.SystemDashboard(ctx, actor, at)
	default:
		abortWithError(c, http.StatusForbidden, "Unknown role")
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GetReport returns the role-specific periodic report. The window comes from
// ?period= (week, month, quarter, year), defaulting to month.
func (h *ReportHandler) GetReport(c *gin.Context) {
	actor, err := getActorFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	at, ok := asOf(c)
	if !ok {
		return
	}
	period := service.ParsePeriod(c.Query("period"))

	ctx := c.Request.Context()
	var payload any
	switch actor.Role {
	case domain.RoleTrainer:
		payload, err = h.reportService.TrainerReport(ctx, actor, period, at)
	case domain.RoleStudent:
		payload, err = h.reportService.StudentReport(ctx, actor, period, at)
	case domain.RoleGymAdmin:
		payload, err = h.reportService.GymReport(ctx, actor, period, at)
	case domain.RoleSystemAdmin:
		payload, err = h.reportService.SystemReport(ctx, actor, period, at)
	default:
		abortWithError(c, http.StatusForbidden, "Unknown role")
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *ReportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrStudentNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
