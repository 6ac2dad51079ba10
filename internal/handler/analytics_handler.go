package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/service"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// AnalyticsHandler exposes the dashboard aggregation endpoints.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs AnalyticsHandler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func analyticsFilterFromQuery(c *gin.Context) models.AnalyticsFilter {
	return models.AnalyticsFilter{
		DistrictID: c.Query("district_id"),
		MandalID:   c.Query("mandal_id"),
		SchoolID:   c.Query("school_id"),
		ExamID:     c.Query("exam_id"),
	}
}

// Stats godoc
// @Summary Scoped dashboard summary
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param district_id query string false "Narrow to district"
// @Param mandal_id query string false "Narrow to mandal"
// @Param school_id query string false "Narrow to school"
// @Param exam_id query string false "Narrow to exam"
// @Success 200 {object} response.Envelope
// @Router /analytics/stats [get]
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	summary, err := h.analytics.Stats(c.Request.Context(), middleware.CurrentUser(c), analyticsFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// EntityPerformance godoc
// @Summary Per-child-entity performance chart rows
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param exam_id query string false "Narrow to exam"
// @Success 200 {object} response.Envelope
// @Router /analytics/entity-performance [get]
func (h *AnalyticsHandler) EntityPerformance(c *gin.Context) {
	rows, err := h.analytics.EntityPerformance(c.Request.Context(), middleware.CurrentUser(c), analyticsFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// DrillDown godoc
// @Summary Child rollups for one hierarchy position
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param level query string true "Hierarchy level" Enums(root, district, mandal)
// @Param parent_id query string false "Parent entity id"
// @Param exam_id query string false "Narrow to exam"
// @Success 200 {object} response.Envelope
// @Router /analytics/drill-down [get]
func (h *AnalyticsHandler) DrillDown(c *gin.Context) {
	level := models.DrillLevel(c.DefaultQuery("level", string(models.LevelRoot)))
	rows, err := h.analytics.DrillDown(c.Request.Context(), middleware.CurrentUser(c), level, c.Query("parent_id"), c.Query("exam_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// StudentMarks godoc
// @Summary Flat marks grid for one school
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param school_id query string true "School"
// @Param exam_id query string false "Narrow to exam"
// @Success 200 {object} response.Envelope
// @Router /analytics/student-marks [get]
func (h *AnalyticsHandler) StudentMarks(c *gin.Context) {
	rows, err := h.analytics.StudentMarks(c.Request.Context(), middleware.CurrentUser(c), c.Query("school_id"), c.Query("exam_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// AdminStats godoc
// @Summary Scoped entity counts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/stats [get]
func (h *AnalyticsHandler) AdminStats(c *gin.Context) {
	stats, err := h.analytics.AdminStats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
