package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/service"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
	"github.com/praja-edu/results-portal-api/pkg/response"
)

// UserHandler exposes account provisioning endpoints.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Create godoc
// @Summary Create a subordinate account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateUserRequest true "Account payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/create-user [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// List godoc
// @Summary List accounts in jurisdiction
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param active query bool false "Filter by active state"
// @Param search query string false "Search username or name"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter models.UserFilter
	if role := c.Query("role"); role != "" {
		r := models.UserRole(role)
		filter.Role = &r
	}
	if active := c.Query("active"); active == "true" || active == "false" {
		v := active == "true"
		filter.Active = &v
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.DistrictID = c.Query("district_id")
	filter.MandalID = c.Query("mandal_id")
	filter.SchoolID = c.Query("school_id")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	users, total, err := h.users.List(c.Request.Context(), middleware.CurrentUser(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, users, pagination)
}

// Update godoc
// @Summary Update a subordinate account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body models.UpdateUserRequest true "Patch payload"
// @Success 200 {object} response.Envelope
// @Router /admin/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user, nil)
}

// Deactivate godoc
// @Summary Deactivate a subordinate account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 {object} nil
// @Router /admin/users/{id} [delete]
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.users.Deactivate(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
