package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type fakeMarkRepo struct {
	rows       []models.MarkEntryRow
	saved      []models.Mark
	savedExam  string
	saveCalled int
}

func (f *fakeMarkRepo) FetchForEntry(_ context.Context, _ models.MarkFetchFilter) ([]models.MarkEntryRow, error) {
	return f.rows, nil
}

func (f *fakeMarkRepo) BulkUpsert(_ context.Context, examID, _ string, marks []models.Mark) error {
	f.saveCalled++
	f.savedExam = examID
	f.saved = marks
	return nil
}

type fakeInvalidator struct {
	patterns []string
}

func (f *fakeInvalidator) Invalidate(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

const (
	testExamID    = "6f1d1a10-0000-4000-8000-000000000001"
	testSubjectID = "6f1d1a10-0000-4000-8000-000000000002"
	testSchoolID  = "6f1d1a10-0000-4000-8000-000000000003"
	testStudentID = "6f1d1a10-0000-4000-8000-000000000004"
)

func validBulkRequest() models.BulkMarkUpdateRequest {
	return models.BulkMarkUpdateRequest{
		ExamID:    testExamID,
		SubjectID: testSubjectID,
		SchoolID:  testSchoolID,
		MarksData: []models.MarkEntry{
			{StudentID: testStudentID, MarksObtained: 86, MaxMarks: 100},
		},
	}
}

func TestBulkUpdateClassifiesMissingGrades(t *testing.T) {
	repo := &fakeMarkRepo{}
	cache := &fakeInvalidator{}
	svc := NewMarkService(repo, cache, nil, nil, zap.NewNop())

	count, err := svc.BulkUpdate(context.Background(), adminClaims(), validBulkRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, repo.saved, 1)
	require.NotNil(t, repo.saved[0].Grade)
	assert.Equal(t, "A2", *repo.saved[0].Grade)
	assert.Equal(t, []string{"analytics:*"}, cache.patterns, "bulk write invalidates cached analytics")
}

func TestBulkUpdateKeepsExplicitGrade(t *testing.T) {
	repo := &fakeMarkRepo{}
	svc := NewMarkService(repo, nil, nil, nil, zap.NewNop())

	req := validBulkRequest()
	grade := "B1"
	req.MarksData[0].Grade = &grade

	_, err := svc.BulkUpdate(context.Background(), adminClaims(), req)
	require.NoError(t, err)
	assert.Equal(t, "B1", *repo.saved[0].Grade)
}

func TestBulkUpdateOutsideSchoolJurisdiction(t *testing.T) {
	repo := &fakeMarkRepo{}
	svc := NewMarkService(repo, nil, nil, nil, zap.NewNop())

	other := "6f1d1a10-0000-4000-8000-00000000ffff"
	caller := &models.JWTClaims{Role: models.RoleSchoolAdmin, SchoolID: &other}

	_, err := svc.BulkUpdate(context.Background(), caller, validBulkRequest())
	assert.Equal(t, appErrors.ErrOutsideSchool, err)
	assert.Zero(t, repo.saveCalled)
}

func TestBulkUpdateValidatesPayload(t *testing.T) {
	svc := NewMarkService(&fakeMarkRepo{}, nil, nil, nil, zap.NewNop())

	req := validBulkRequest()
	req.MarksData = nil
	_, err := svc.BulkUpdate(context.Background(), adminClaims(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	req = validBulkRequest()
	req.MarksData[0].MaxMarks = 0
	_, err = svc.BulkUpdate(context.Background(), adminClaims(), req)
	appErr = appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFetchRequiresGridKeys(t *testing.T) {
	svc := NewMarkService(&fakeMarkRepo{}, nil, nil, nil, zap.NewNop())

	_, err := svc.Fetch(context.Background(), adminClaims(), models.MarkFetchFilter{ExamID: testExamID})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestFetchReturnsEmptySliceNotNil(t *testing.T) {
	svc := NewMarkService(&fakeMarkRepo{}, nil, nil, nil, zap.NewNop())

	rows, err := svc.Fetch(context.Background(), adminClaims(), models.MarkFetchFilter{
		ExamID: testExamID, ClassID: "c1", SchoolID: testSchoolID,
	})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
