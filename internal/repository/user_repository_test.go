package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praja-edu/results-portal-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "full_name", "role", "district_id", "mandal_id", "school_id", "active", "last_login", "created_at", "updated_at"})
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := userRows().
		AddRow("u1", "deo_gtr", "hash", "District Officer", "deo", "d1", nil, nil, true, nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT .+ FROM users WHERE username").
		WithArgs("deo_gtr").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "deo_gtr")
	require.NoError(t, err)
	assert.Equal(t, models.RoleDEO, user.Role)
	assert.Equal(t, "d1", *user.DistrictID)
	assert.Nil(t, user.SchoolID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsernameNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT .+ FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Username: "meo_one", PasswordHash: "hash", FullName: "Mandal Officer", Role: models.RoleMEO, Active: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListFiltersAndPages(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleSchoolAdmin
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users WHERE 1=1 AND role = .+ AND district_id = ").
		WithArgs(role, "d1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT .+ FROM users WHERE 1=1 AND role = .+ AND district_id = .+ ORDER BY created_at DESC LIMIT .+ OFFSET ").
		WithArgs(role, "d1", 20, 0).
		WillReturnRows(userRows().
			AddRow("u2", "sa_one", "hash", "School Admin", "school_admin", "d1", "m1", "s1", true, nil, time.Now(), time.Now()))

	users, total, err := repo.List(context.Background(), models.UserFilter{Role: &role, DistrictID: "d1", Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET active = false").
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryScopeNames(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"district_name", "mandal_name", "school_name"}).
		AddRow("Kakinada", "Gollaprolu", nil)
	mock.ExpectQuery("LEFT JOIN districts d ON d.id = u.district_id").
		WithArgs("u1").
		WillReturnRows(rows)

	names, err := repo.ScopeNames(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Kakinada", *names.DistrictName)
	assert.Equal(t, "Gollaprolu", *names.MandalName)
	assert.Nil(t, names.SchoolName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
