package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/middleware"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/service"
)

type markRepoStub struct {
	saved []models.Mark
}

func (s *markRepoStub) FetchForEntry(_ context.Context, _ models.MarkFetchFilter) ([]models.MarkEntryRow, error) {
	return nil, nil
}

func (s *markRepoStub) BulkUpsert(_ context.Context, _, _ string, marks []models.Mark) error {
	s.saved = marks
	return nil
}

func newMarkTestContext(t *testing.T, body []byte) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/marks/bulk-update", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin", Role: models.RoleAdmin})
	return w, c
}

func TestMarkHandlerBulkUpdateMalformedJSON(t *testing.T) {
	stub := &markRepoStub{}
	handler := NewMarkHandler(service.NewMarkService(stub, nil, nil, nil, zap.NewNop()))

	w, c := newMarkTestContext(t, []byte("{not json"))
	handler.BulkUpdate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.saved)
}

func TestMarkHandlerBulkUpdateSuccess(t *testing.T) {
	stub := &markRepoStub{}
	handler := NewMarkHandler(service.NewMarkService(stub, nil, nil, nil, zap.NewNop()))

	body, err := json.Marshal(models.BulkMarkUpdateRequest{
		ExamID:    "6f1d1a10-0000-4000-8000-000000000001",
		SubjectID: "6f1d1a10-0000-4000-8000-000000000002",
		SchoolID:  "6f1d1a10-0000-4000-8000-000000000003",
		MarksData: []models.MarkEntry{
			{StudentID: "6f1d1a10-0000-4000-8000-000000000004", MarksObtained: 92, MaxMarks: 100},
		},
	})
	require.NoError(t, err)

	w, c := newMarkTestContext(t, body)
	handler.BulkUpdate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.saved, 1)
	assert.Equal(t, "A1", *stub.saved[0].Grade)

	var envelope struct {
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 1, envelope.Data["updated"])
}
