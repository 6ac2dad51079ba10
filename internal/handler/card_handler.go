package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/service"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// CardHandler exposes the QR access-card data and its downloadable exports.
type CardHandler struct {
	cards *service.CardService
}

// NewCardHandler constructs CardHandler.
func NewCardHandler(cards *service.CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// QRData godoc
// @Summary Access-card rows for one school
// @Tags Cards
// @Produce json
// @Security BearerAuth
// @Param schoolId path string true "School ID"
// @Param class_id query string false "Narrow to class"
// @Success 200 {object} response.Envelope
// @Router /schools/{schoolId}/qr-data [get]
func (h *CardHandler) QRData(c *gin.Context) {
	rows, err := h.cards.Rows(c.Request.Context(), middleware.CurrentUser(c), c.Param("schoolId"), c.Query("class_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// ExportCSV godoc
// @Summary Download access cards as CSV
// @Tags Cards
// @Produce text/csv
// @Security BearerAuth
// @Param schoolId path string true "School ID"
// @Param class_id query string false "Narrow to class"
// @Success 200 {file} file
// @Router /schools/{schoolId}/qr-data/export.csv [get]
func (h *CardHandler) ExportCSV(c *gin.Context) {
	payload, err := h.cards.ExportCSV(c.Request.Context(), middleware.CurrentUser(c), c.Param("schoolId"), c.Query("class_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "access-cards.csv"))
	c.Data(http.StatusOK, "text/csv", payload)
}

// ExportPDF godoc
// @Summary Download access cards as PDF
// @Tags Cards
// @Produce application/pdf
// @Security BearerAuth
// @Param schoolId path string true "School ID"
// @Param class_id query string false "Narrow to class"
// @Success 200 {file} file
// @Router /schools/{schoolId}/qr-data/export.pdf [get]
func (h *CardHandler) ExportPDF(c *gin.Context) {
	payload, err := h.cards.ExportPDF(c.Request.Context(), middleware.CurrentUser(c), c.Param("schoolId"), c.Query("class_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "access-cards.pdf"))
	c.Data(http.StatusOK, "application/pdf", payload)
}
