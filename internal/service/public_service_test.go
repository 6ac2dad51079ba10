package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type fakePublicRepo struct {
	student    *models.PublicStudentRow
	marks      []models.PublicMarkRow
	tokenCalls int
}

func (f *fakePublicRepo) StudentByToken(_ context.Context, _ string) (*models.PublicStudentRow, error) {
	f.tokenCalls++
	if f.student == nil {
		return nil, sql.ErrNoRows
	}
	return f.student, nil
}

func (f *fakePublicRepo) MarksForStudent(_ context.Context, _ string, _ *string) ([]models.PublicMarkRow, error) {
	return f.marks, nil
}

const validToken = "a81bc81b-dead-4e5d-abff-90865d1e13b1"

func sampleStudentRow() *models.PublicStudentRow {
	grade := 6
	classID := "c1"
	return &models.PublicStudentRow{
		StudentID:    "st1",
		ClassID:      &classID,
		Name:         "Anjali",
		PENNumber:    "PEN001",
		GradeLevel:   &grade,
		SchoolName:   "ZPHS Gollaprolu",
		UDISECode:    "28113300101",
		DistrictName: "Kakinada",
	}
}

func TestStudentResultRejectsMalformedTokenWithoutQuery(t *testing.T) {
	repo := &fakePublicRepo{student: sampleStudentRow()}
	svc := NewPublicService(repo, zap.NewNop())

	for _, token := range []string{
		"",
		"short",
		"zzzzzzzz-dead-4e5d-abff-90865d1e13b1",
		"a81bc81bdead4e5dabff90865d1e13b1",
		"a81bc81b-dead-4e5d-abff-90865d1e13b1x",
		"' OR 1=1 --",
	} {
		_, err := svc.StudentResult(context.Background(), token)
		appErr := appErrors.FromError(err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code, "token=%q", token)
	}
	assert.Zero(t, repo.tokenCalls, "malformed tokens never reach the repository")
}

func TestStudentResultUnknownTokenSharesGenericMessage(t *testing.T) {
	svc := NewPublicService(&fakePublicRepo{}, zap.NewNop())

	_, errUnknown := svc.StudentResult(context.Background(), validToken)
	_, errMalformed := svc.StudentResult(context.Background(), "nope")

	a, b := appErrors.FromError(errUnknown), appErrors.FromError(errMalformed)
	assert.Equal(t, appErrors.ErrNotFound.Code, a.Code)
	assert.Equal(t, a.Message, b.Message, "body never says whether the token shape was valid")
}

func TestStudentResultGroupsByExamAndHidesInternalIDs(t *testing.T) {
	sa1 := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	fa2 := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	grade := "B1"
	avg := 61.25
	repo := &fakePublicRepo{
		student: sampleStudentRow(),
		marks: []models.PublicMarkRow{
			{ExamID: "e2", ExamName: "SA1", ExamDate: &sa1, SubjectName: "Telugu", MarksObtained: 72, MaxMarks: 100, Grade: &grade, ClassAverage: &avg},
			{ExamID: "e2", ExamName: "SA1", ExamDate: &sa1, SubjectName: "Maths", MarksObtained: 45, MaxMarks: 100},
			{ExamID: "e1", ExamName: "FA2", ExamDate: &fa2, SubjectName: "Telugu", MarksObtained: 30, MaxMarks: 50},
		},
	}
	svc := NewPublicService(repo, zap.NewNop())

	result, err := svc.StudentResult(context.Background(), validToken)
	require.NoError(t, err)

	assert.Equal(t, "Anjali", result.Student.Name)
	assert.Equal(t, "Class 6", result.Student.ClassName)
	assert.Equal(t, "Kakinada", result.Student.School.District)

	require.Len(t, result.Results, 2)
	assert.Equal(t, "SA1", result.Results[0].ExamName, "most recent exam first")
	require.Len(t, result.Results[0].Subjects, 2)
	assert.Equal(t, "B1", result.Results[0].Subjects[0].Grade, "stored grade wins")
	assert.Equal(t, "C2", result.Results[0].Subjects[1].Grade, "missing grade classified from marks")
	assert.Equal(t, avg, *result.Results[0].Subjects[0].ClassAverage)
	// 30/50 is 60%, one short of the B2 band.
	assert.Equal(t, "C1", result.Results[1].Subjects[0].Grade)

	payload, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "st1", "internal student id never serialised")
	assert.NotContains(t, string(payload), "exam_id")
}

func TestStudentResultNoMarksYieldsEmptyResults(t *testing.T) {
	svc := NewPublicService(&fakePublicRepo{student: sampleStudentRow()}, zap.NewNop())

	result, err := svc.StudentResult(context.Background(), validToken)
	require.NoError(t, err)
	assert.NotNil(t, result.Results)
	assert.Empty(t, result.Results)
}
