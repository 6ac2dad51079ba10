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

// EntityHandler exposes the generic reference-entity listing plus the typed
// creation endpoints.
type EntityHandler struct {
	entities *service.EntityService
}

// NewEntityHandler constructs EntityHandler.
func NewEntityHandler(entities *service.EntityService) *EntityHandler {
	return &EntityHandler{entities: entities}
}

// List godoc
// @Summary List reference entities by type
// @Tags Entities
// @Produce json
// @Security BearerAuth
// @Param type path string true "Entity type" Enums(districts, mandals, schools, classes, subjects, exams, students)
// @Param district_id query string false "Filter by district"
// @Param mandal_id query string false "Filter by mandal"
// @Param school_id query string false "Filter by school"
// @Param class_id query string false "Filter by class"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /entities/{type} [get]
func (h *EntityHandler) List(c *gin.Context) {
	kind := models.EntityKind(c.Param("type"))
	query := models.EntityFilter{
		DistrictID: c.Query("district_id"),
		MandalID:   c.Query("mandal_id"),
		SchoolID:   c.Query("school_id"),
		ClassID:    c.Query("class_id"),
	}

	out, err := h.entities.List(c.Request.Context(), middleware.CurrentUser(c), kind, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// CreateDistrict godoc
// @Summary Create a district
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateDistrictRequest true "District payload"
// @Success 201 {object} response.Envelope
// @Router /districts [post]
func (h *EntityHandler) CreateDistrict(c *gin.Context) {
	var req models.CreateDistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid district payload"))
		return
	}
	district, err := h.entities.CreateDistrict(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, district)
}

// CreateMandal godoc
// @Summary Create a mandal
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateMandalRequest true "Mandal payload"
// @Success 201 {object} response.Envelope
// @Router /mandals [post]
func (h *EntityHandler) CreateMandal(c *gin.Context) {
	var req models.CreateMandalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mandal payload"))
		return
	}
	mandal, err := h.entities.CreateMandal(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mandal)
}

// CreateSchool godoc
// @Summary Create a school
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateSchoolRequest true "School payload"
// @Success 201 {object} response.Envelope
// @Router /schools [post]
func (h *EntityHandler) CreateSchool(c *gin.Context) {
	var req models.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload"))
		return
	}
	school, err := h.entities.CreateSchool(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, school)
}

// CreateClass godoc
// @Summary Register a grade level
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Router /classes [post]
func (h *EntityHandler) CreateClass(c *gin.Context) {
	var req models.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload"))
		return
	}
	class, err := h.entities.CreateClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} response.Envelope
// @Router /subjects [post]
func (h *EntityHandler) CreateSubject(c *gin.Context) {
	var req models.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload"))
		return
	}
	subject, err := h.entities.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// CreateExam godoc
// @Summary Create an exam
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Router /exams [post]
func (h *EntityHandler) CreateExam(c *gin.Context) {
	var req models.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload"))
		return
	}
	exam, err := h.entities.CreateExam(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exam)
}

// CreateStudent godoc
// @Summary Enroll a student
// @Tags Entities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *EntityHandler) CreateStudent(c *gin.Context) {
	var req models.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload"))
		return
	}
	student, err := h.entities.CreateStudent(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}
