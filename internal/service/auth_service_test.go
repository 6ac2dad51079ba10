package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/praja-edu/results-portal-api/internal/models"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
)

type fakeAuthRepo struct {
	users      map[string]*models.User
	scopeNames map[string]*models.ScopeNames
	lastLogins []string
}

func (f *fakeAuthRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthRepo) ScopeNames(_ context.Context, userID string) (*models.ScopeNames, error) {
	if names, ok := f.scopeNames[userID]; ok {
		return names, nil
	}
	return &models.ScopeNames{}, nil
}

func (f *fakeAuthRepo) UpdateLastLogin(_ context.Context, id string) error {
	f.lastLogins = append(f.lastLogins, id)
	return nil
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthService(repo *fakeAuthRepo) *AuthService {
	return NewAuthService(repo, nil, zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "results-portal",
	})
}

func TestLoginSuccessEmbedsScopeInToken(t *testing.T) {
	district := "d1"
	districtName := "Kakinada"
	repo := &fakeAuthRepo{
		users: map[string]*models.User{
			"deo_kkd": {ID: "u1", Username: "deo_kkd", PasswordHash: hashOf(t, "secret123"), FullName: "District Officer", Role: models.RoleDEO, DistrictID: &district, Active: true},
		},
		scopeNames: map[string]*models.ScopeNames{
			"u1": {DistrictName: &districtName},
		},
	}
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "deo_kkd", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, []string{"u1"}, repo.lastLogins)
	require.NotNil(t, resp.User.DistrictName)
	assert.Equal(t, "Kakinada", *resp.User.DistrictName)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleDEO, claims.Role)
	require.NotNil(t, claims.DistrictID)
	assert.Equal(t, "d1", *claims.DistrictID)
	assert.Nil(t, claims.SchoolID)
}

func TestLoginUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	repo := &fakeAuthRepo{users: map[string]*models.User{
		"meo_one": {ID: "u2", Username: "meo_one", PasswordHash: hashOf(t, "correct"), Role: models.RoleMEO, Active: true},
	}}
	svc := newAuthService(repo)

	_, errUnknown := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "whatever"})
	_, errWrongPw := svc.Login(context.Background(), models.LoginRequest{Username: "meo_one", Password: "wrong"})

	assert.Equal(t, appErrors.ErrInvalidCredentials, errUnknown)
	assert.Equal(t, appErrors.ErrInvalidCredentials, errWrongPw)
	assert.Empty(t, repo.lastLogins)
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := &fakeAuthRepo{users: map[string]*models.User{
		"old_admin": {ID: "u3", Username: "old_admin", PasswordHash: hashOf(t, "secret123"), Role: models.RoleAdmin, Active: false},
	}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "old_admin", Password: "secret123"})
	assert.Equal(t, appErrors.ErrInactiveAccount, err)
}

func TestLoginValidatesPayload(t *testing.T) {
	svc := newAuthService(&fakeAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "", Password: ""})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	repo := &fakeAuthRepo{users: map[string]*models.User{
		"admin": {ID: "u4", Username: "admin", PasswordHash: hashOf(t, "secret123"), Role: models.RoleAdmin, Active: true},
	}}
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	assert.Equal(t, appErrors.ErrUnauthorized, err)

	other := NewAuthService(repo, nil, zap.NewNop(), AuthConfig{Secret: "other-secret", Expiration: time.Hour})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.Equal(t, appErrors.ErrUnauthorized, err)
}

func TestMe(t *testing.T) {
	repo := &fakeAuthRepo{users: map[string]*models.User{
		"admin": {ID: "u5", Username: "admin", FullName: "Root", Role: models.RoleAdmin, Active: true},
	}}
	svc := newAuthService(repo)

	info, err := svc.Me(context.Background(), "u5")
	require.NoError(t, err)
	assert.Equal(t, "Root", info.FullName)

	_, err = svc.Me(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound, err)
}
