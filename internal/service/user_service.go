package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/scope"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Deactivate(ctx context.Context, id string) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
}

type userSchoolRepository interface {
	GetSchool(ctx context.Context, id string) (*models.School, error)
}

// UserService enforces the two account provisioning rules: the creator must
// be strictly more senior than the new role, and the new account's posting
// must sit inside the creator's jurisdiction.
type UserService struct {
	repo      userRepository
	schools   userSchoolRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, schools userSchoolRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, schools: schools, validator: validate, logger: logger}
}

// Create provisions a subordinate account on behalf of the given caller.
func (s *UserService) Create(ctx context.Context, caller *models.JWTClaims, req models.CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	if !scope.CanManage(caller.Role, req.Role) {
		return nil, appErrors.ErrRoleHierarchy
	}

	target := scope.Scope{DistrictID: req.DistrictID, MandalID: req.MandalID, SchoolID: req.SchoolID}

	// A school_admin posting inherits the school's mandal and district so the
	// denormalised scope columns stay consistent down the hierarchy.
	if req.Role == models.RoleSchoolAdmin {
		if req.SchoolID == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "school_id is required for school_admin accounts")
		}
		school, err := s.schools.GetSchool(ctx, *req.SchoolID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "school not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch school")
		}
		target.DistrictID = &school.DistrictID
		target.MandalID = &school.MandalID
	}

	if err := scope.Authorize(scope.FromClaims(caller), target); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "username already taken")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         req.Role,
		DistrictID:   target.DistrictID,
		MandalID:     target.MandalID,
		SchoolID:     target.SchoolID,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("created_by", caller.UserID))
	return user, nil
}

// List returns accounts visible to the caller. Non-admin callers only see
// accounts within their own jurisdiction.
func (s *UserService) List(ctx context.Context, caller *models.JWTClaims, filter models.UserFilter) ([]models.User, int, error) {
	eff := scope.Resolve(scope.FromClaims(caller), scope.FromQuery(filter.DistrictID, filter.MandalID, filter.SchoolID))
	filter.DistrictID, filter.MandalID, filter.SchoolID = eff.Filter()
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, total, nil
}

// Update patches a subordinate account.
func (s *UserService) Update(ctx context.Context, caller *models.JWTClaims, id string, req models.UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user, err := s.manageable(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
		}
	}
	return user, nil
}

// Deactivate soft-deletes a subordinate account.
func (s *UserService) Deactivate(ctx context.Context, caller *models.JWTClaims, id string) error {
	if _, err := s.manageable(ctx, caller, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate user")
	}
	s.logger.Info("user deactivated", zap.String("user_id", id), zap.String("by", caller.UserID))
	return nil
}

// manageable loads the target account and checks both provisioning rules
// against the caller.
func (s *UserService) manageable(ctx context.Context, caller *models.JWTClaims, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	if !scope.CanManage(caller.Role, user.Role) {
		return nil, appErrors.ErrRoleHierarchy
	}
	target := scope.Scope{DistrictID: user.DistrictID, MandalID: user.MandalID, SchoolID: user.SchoolID}
	if err := scope.Authorize(scope.FromClaims(caller), target); err != nil {
		return nil, err
	}
	return user, nil
}
