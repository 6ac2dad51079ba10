package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/service"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// MarkHandler exposes the mark-entry grid and the bulk write endpoint.
type MarkHandler struct {
	marks *service.MarkService
}

// NewMarkHandler constructs MarkHandler.
func NewMarkHandler(marks *service.MarkService) *MarkHandler {
	return &MarkHandler{marks: marks}
}

// Fetch godoc
// @Summary Fetch the mark-entry grid for a class
// @Tags Marks
// @Produce json
// @Security BearerAuth
// @Param exam_id query string true "Exam"
// @Param subject_id query string false "Subject"
// @Param class_id query string true "Class"
// @Param school_id query string true "School"
// @Success 200 {object} response.Envelope
// @Router /marks/fetch [get]
func (h *MarkHandler) Fetch(c *gin.Context) {
	filter := models.MarkFetchFilter{
		ExamID:    c.Query("exam_id"),
		SubjectID: c.Query("subject_id"),
		ClassID:   c.Query("class_id"),
		SchoolID:  c.Query("school_id"),
	}

	rows, err := h.marks.Fetch(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// BulkUpdate godoc
// @Summary Save one exam/subject batch of marks
// @Tags Marks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.BulkMarkUpdateRequest true "Marks batch"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /marks/bulk-update [post]
func (h *MarkHandler) BulkUpdate(c *gin.Context) {
	var req models.BulkMarkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload"))
		return
	}

	count, err := h.marks.BulkUpdate(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"updated": count}, nil)
}
