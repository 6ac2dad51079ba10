package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/grading"
	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/scope"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type markRepository interface {
	FetchForEntry(ctx context.Context, filter models.MarkFetchFilter) ([]models.MarkEntryRow, error)
	BulkUpsert(ctx context.Context, examID, subjectID string, marks []models.Mark) error
}

type analyticsCacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// MarkService handles the mark-entry grid and the bulk write path. Every
// successful write invalidates the cached analytics payloads, since the
// class rollups they summarise just changed.
type MarkService struct {
	repo      markRepository
	cache     analyticsCacheInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarkService constructs a MarkService instance.
func NewMarkService(repo markRepository, cache analyticsCacheInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MarkService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Fetch returns the entry grid rows for a class: every enrolled student,
// pre-filled with any mark already recorded for the exam/subject.
func (s *MarkService) Fetch(ctx context.Context, caller *models.JWTClaims, filter models.MarkFetchFilter) ([]models.MarkEntryRow, error) {
	if filter.ExamID == "" || filter.ClassID == "" || filter.SchoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam_id, class_id and school_id are required")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery("", "", filter.SchoolID)); err != nil {
		return nil, err
	}

	rows, err := s.repo.FetchForEntry(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch marks")
	}
	if rows == nil {
		rows = []models.MarkEntryRow{}
	}
	return rows, nil
}

// BulkUpdate upserts one exam/subject batch of marks and lets the repository
// recompute the affected class statistics in the same transaction. Entries
// without an explicit grade are classified on the fine scale first.
func (s *MarkService) BulkUpdate(ctx context.Context, caller *models.JWTClaims, req models.BulkMarkUpdateRequest) (int, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery("", "", req.SchoolID)); err != nil {
		return 0, err
	}

	marks := make([]models.Mark, 0, len(req.MarksData))
	for _, entry := range req.MarksData {
		grade := entry.Grade
		if grade == nil || *grade == "" {
			g := grading.Fine(entry.MarksObtained, entry.MaxMarks)
			grade = &g
		}
		marks = append(marks, models.Mark{
			StudentID:     entry.StudentID,
			ExamID:        req.ExamID,
			SubjectID:     req.SubjectID,
			MarksObtained: entry.MarksObtained,
			MaxMarks:      entry.MaxMarks,
			Grade:         grade,
		})
	}

	if err := s.repo.BulkUpsert(ctx, req.ExamID, req.SubjectID, marks); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
		}
	}
	s.metrics.AddMarksWritten(len(marks))

	s.logger.Info("marks saved",
		zap.String("exam_id", req.ExamID),
		zap.String("subject_id", req.SubjectID),
		zap.String("school_id", req.SchoolID),
		zap.Int("count", len(marks)),
		zap.String("by", caller.UserID))
	return len(marks), nil
}
