package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/service"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// PublicHandler exposes the unauthenticated parent portal endpoint.
type PublicHandler struct {
	public *service.PublicService
}

// NewPublicHandler constructs PublicHandler.
func NewPublicHandler(public *service.PublicService) *PublicHandler {
	return &PublicHandler{public: public}
}

// StudentResult godoc
// @Summary Resolve an access token to a student's results
// @Tags Public
// @Produce json
// @Param token path string true "Access token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/student/{token} [get]
func (h *PublicHandler) StudentResult(c *gin.Context) {
	result, err := h.public.StudentResult(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
