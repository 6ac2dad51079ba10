package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/scope"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type entityRepository interface {
	ListDistricts(ctx context.Context, filter models.EntityFilter) ([]models.District, error)
	ListMandals(ctx context.Context, filter models.EntityFilter) ([]models.Mandal, error)
	ListSchools(ctx context.Context, filter models.EntityFilter) ([]models.School, error)
	ListClasses(ctx context.Context) ([]models.Class, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListExams(ctx context.Context) ([]models.Exam, error)
	ListStudents(ctx context.Context, filter models.EntityFilter) ([]models.Student, error)
	GetSchool(ctx context.Context, id string) (*models.School, error)
	CreateDistrict(ctx context.Context, district *models.District) error
	CreateMandal(ctx context.Context, mandal *models.Mandal) error
	CreateSchool(ctx context.Context, school *models.School) error
	CountClassesByGradeLevels(ctx context.Context, levels []int) (int, error)
	CreateClass(ctx context.Context, class *models.Class) error
	CreateSubject(ctx context.Context, subject *models.Subject) error
	CreateExam(ctx context.Context, exam *models.Exam) error
	CreateStudent(ctx context.Context, student *models.Student) error
}

// EntityService serves the generic reference-entity listing and the typed
// creation operations. Listings are always scope-resolved: a caller's own
// jurisdiction overrides whatever filters arrive on the query string.
type EntityService struct {
	repo      entityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEntityService constructs an EntityService instance.
func NewEntityService(repo entityRepository, validate *validator.Validate, logger *zap.Logger) *EntityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EntityService{repo: repo, validator: validate, logger: logger}
}

// List dispatches a generic entity listing by kind. Unknown kinds are a
// not-found, never a query against a caller-named table.
func (s *EntityService) List(ctx context.Context, caller *models.JWTClaims, kind models.EntityKind, query models.EntityFilter) (interface{}, error) {
	if !models.KnownEntityKind(kind) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown entity type")
	}

	eff := scope.Resolve(scope.FromClaims(caller), scope.FromQuery(query.DistrictID, query.MandalID, query.SchoolID))
	filter := models.EntityFilter{ClassID: query.ClassID}
	filter.DistrictID, filter.MandalID, filter.SchoolID = eff.Filter()

	var (
		out interface{}
		err error
	)
	switch kind {
	case models.KindDistricts:
		out, err = s.repo.ListDistricts(ctx, filter)
	case models.KindMandals:
		out, err = s.repo.ListMandals(ctx, filter)
	case models.KindSchools:
		out, err = s.repo.ListSchools(ctx, filter)
	case models.KindClasses:
		out, err = s.repo.ListClasses(ctx)
	case models.KindSubjects:
		out, err = s.repo.ListSubjects(ctx)
	case models.KindExams:
		out, err = s.repo.ListExams(ctx)
	case models.KindStudents:
		out, err = s.repo.ListStudents(ctx, filter)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list entities")
	}
	return out, nil
}

// CreateDistrict creates a district. Admin only; the route guard enforces it.
func (s *EntityService) CreateDistrict(ctx context.Context, req models.CreateDistrictRequest) (*models.District, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid district payload")
	}
	district := &models.District{Name: req.Name, NameTelugu: req.NameTelugu}
	if err := s.repo.CreateDistrict(ctx, district); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create district")
	}
	return district, nil
}

// CreateMandal creates a mandal inside the caller's jurisdiction.
func (s *EntityService) CreateMandal(ctx context.Context, caller *models.JWTClaims, req models.CreateMandalRequest) (*models.Mandal, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mandal payload")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery(req.DistrictID, "", "")); err != nil {
		return nil, err
	}
	mandal := &models.Mandal{DistrictID: req.DistrictID, Name: req.Name, NameTelugu: req.NameTelugu}
	if err := s.repo.CreateMandal(ctx, mandal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create mandal")
	}
	return mandal, nil
}

// CreateSchool creates a school after validating that every offered grade
// level exists as a class record.
func (s *EntityService) CreateSchool(ctx context.Context, caller *models.JWTClaims, req models.CreateSchoolRequest) (*models.School, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid school payload")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery(req.DistrictID, req.MandalID, "")); err != nil {
		return nil, err
	}

	if len(req.GradeLevels) > 0 {
		levels := dedupeInts(req.GradeLevels)
		count, err := s.repo.CountClassesByGradeLevels(ctx, levels)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check grade levels")
		}
		if count != len(levels) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "one or more grade levels have no class record")
		}
	}

	school := &models.School{
		DistrictID:    req.DistrictID,
		MandalID:      req.MandalID,
		Name:          req.Name,
		NameTelugu:    req.NameTelugu,
		Address:       req.Address,
		AddressTelugu: req.AddressTelugu,
		UDISECode:     req.UDISECode,
	}
	if err := s.repo.CreateSchool(ctx, school); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create school")
	}
	s.logger.Info("school created", zap.String("school_id", school.ID), zap.String("udise", school.UDISECode))
	return school, nil
}

// CreateClass registers a system-wide grade level.
func (s *EntityService) CreateClass(ctx context.Context, req models.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	class := &models.Class{GradeLevel: req.GradeLevel}
	if err := s.repo.CreateClass(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}
	return class, nil
}

// CreateSubject creates a subject.
func (s *EntityService) CreateSubject(ctx context.Context, req models.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := &models.Subject{Name: req.Name, NameTelugu: req.NameTelugu}
	if err := s.repo.CreateSubject(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// CreateExam creates a global exam.
func (s *EntityService) CreateExam(ctx context.Context, req models.CreateExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exam payload")
	}
	exam := &models.Exam{
		Name:       req.Name,
		NameTelugu: req.NameTelugu,
		ExamCode:   req.ExamCode,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	if err := s.repo.CreateExam(ctx, exam); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam")
	}
	return exam, nil
}

// CreateStudent enrolls a student into a school inside the caller's
// jurisdiction. The public access token is minted here, server-side.
func (s *EntityService) CreateStudent(ctx context.Context, caller *models.JWTClaims, req models.CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	school, err := s.repo.GetSchool(ctx, req.SchoolID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch school")
	}
	target := scope.FromQuery(school.DistrictID, school.MandalID, school.ID)
	if err := scope.Authorize(scope.FromClaims(caller), target); err != nil {
		return nil, err
	}

	student := &models.Student{
		SchoolID:    req.SchoolID,
		ClassID:     req.ClassID,
		Name:        req.Name,
		NameTelugu:  req.NameTelugu,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		PENNumber:   req.PENNumber,
		ParentPhone: req.ParentPhone,
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

func dedupeInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := make([]int, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
