package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/service"
)

type publicRepoStub struct {
	student *models.PublicStudentRow
	marks   []models.PublicMarkRow
}

func (s *publicRepoStub) StudentByToken(_ context.Context, _ string) (*models.PublicStudentRow, error) {
	if s.student == nil {
		return nil, sql.ErrNoRows
	}
	return s.student, nil
}

func (s *publicRepoStub) MarksForStudent(_ context.Context, _ string, _ *string) ([]models.PublicMarkRow, error) {
	return s.marks, nil
}

func performPublicRequest(t *testing.T, stub *publicRepoStub, token string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler := NewPublicHandler(service.NewPublicService(stub, zap.NewNop()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodGet, "/public/student/"+token, nil)
	require.NoError(t, err)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: token}}

	handler.StudentResult(c)
	return w
}

func TestPublicHandlerMalformedToken(t *testing.T) {
	w := performPublicRequest(t, &publicRepoStub{}, "not-a-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Equal(t, "result not found", envelope.Error.Message)
}

func TestPublicHandlerUnknownToken(t *testing.T) {
	w := performPublicRequest(t, &publicRepoStub{}, "a81bc81b-dead-4e5d-abff-90865d1e13b1")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicHandlerSuccess(t *testing.T) {
	grade := 7
	stub := &publicRepoStub{student: &models.PublicStudentRow{
		StudentID:    "st1",
		Name:         "Anjali",
		PENNumber:    "PEN001",
		GradeLevel:   &grade,
		SchoolName:   "ZPHS Gollaprolu",
		UDISECode:    "28113300101",
		DistrictName: "Kakinada",
	}}
	w := performPublicRequest(t, stub, "a81bc81b-dead-4e5d-abff-90865d1e13b1")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data models.PublicStudentResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Anjali", envelope.Data.Student.Name)
	assert.Equal(t, "Class 7", envelope.Data.Student.ClassName)
}
