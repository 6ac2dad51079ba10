package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/grading"
	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type publicRepository interface {
	StudentByToken(ctx context.Context, token string) (*models.PublicStudentRow, error)
	MarksForStudent(ctx context.Context, studentID string, classID *string) ([]models.PublicMarkRow, error)
}

// tokenPattern matches the UUID shape access tokens are minted in. Anything
// else is rejected before a query runs.
var tokenPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// PublicService assembles the unauthenticated parent-portal payload. The
// response never carries internal row ids. Malformed tokens are rejected
// before any query runs; both rejections share one generic message so the
// body never reveals whether a token is validly shaped or merely unassigned.
type PublicService struct {
	repo   publicRepository
	logger *zap.Logger
}

// NewPublicService constructs a PublicService instance.
func NewPublicService(repo publicRepository, logger *zap.Logger) *PublicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicService{repo: repo, logger: logger}
}

// StudentResult resolves an access token into the full result payload: the
// student's identity, school context and marks grouped by exam, most recent
// exam first.
func (s *PublicService) StudentResult(ctx context.Context, token string) (*models.PublicStudentResult, error) {
	if !tokenPattern.MatchString(token) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "result not found")
	}

	row, err := s.repo.StudentByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "result not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve token")
	}

	marks, err := s.repo.MarksForStudent(ctx, row.StudentID, row.ClassID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch results")
	}

	result := &models.PublicStudentResult{
		Student: assembleStudentInfo(row),
		Results: groupByExam(marks),
	}
	return result, nil
}

func assembleStudentInfo(row *models.PublicStudentRow) models.PublicStudentInfo {
	info := models.PublicStudentInfo{
		Name:        row.Name,
		NameTelugu:  row.NameTelugu,
		PENNumber:   row.PENNumber,
		ParentPhone: row.ParentPhone,
		School: models.PublicSchoolInfo{
			Name:          row.SchoolName,
			NameTelugu:    row.SchoolTelugu,
			UDISECode:     row.UDISECode,
			District:      row.DistrictName,
			Address:       row.Address,
			AddressTelugu: row.AddressTelugu,
		},
	}
	if row.GradeLevel != nil {
		info.ClassName = fmt.Sprintf("Class %d", *row.GradeLevel)
	}
	if row.DateOfBirth != nil {
		info.DateOfBirth = row.DateOfBirth.Format("2006-01-02")
	}
	return info
}

// groupByExam folds the flat mark rows into per-exam groups, preserving the
// repository's most-recent-first ordering. The stored grade wins; rows
// persisted without one are classified on the fine scale.
func groupByExam(marks []models.PublicMarkRow) []models.PublicExamResult {
	results := []models.PublicExamResult{}
	index := map[string]int{}
	for _, mark := range marks {
		i, ok := index[mark.ExamID]
		if !ok {
			i = len(results)
			index[mark.ExamID] = i
			exam := models.PublicExamResult{
				ExamName:   mark.ExamName,
				ExamTelugu: mark.ExamTelugu,
			}
			if mark.ExamDate != nil {
				exam.ExamDate = mark.ExamDate.Format("2006-01-02")
			}
			results = append(results, exam)
		}

		grade := ""
		if mark.Grade != nil && *mark.Grade != "" {
			grade = *mark.Grade
		} else {
			grade = grading.Fine(mark.MarksObtained, mark.MaxMarks)
		}

		results[i].Subjects = append(results[i].Subjects, models.PublicSubjectResult{
			Name:         mark.SubjectName,
			NameTelugu:   mark.SubjectTelugu,
			Marks:        mark.MarksObtained,
			Max:          mark.MaxMarks,
			Grade:        grade,
			ClassAverage: mark.ClassAverage,
			ClassHighest: mark.ClassHighest,
			ClassLowest:  mark.ClassLowest,
		})
	}
	return results
}
