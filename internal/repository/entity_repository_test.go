package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praja-edu/results-portal-api/internal/models"
)

func TestEntityRepositoryListSchoolsScoped(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "district_id", "mandal_id", "name", "name_telugu", "address", "address_telugu", "udise_code", "created_at"}).
		AddRow("s1", "d1", "m1", "ZPHS Gollaprolu", nil, nil, nil, "28113300101", time.Now())
	mock.ExpectQuery("FROM schools WHERE 1=1 AND district_id = .+ AND mandal_id = ").
		WithArgs("d1", "m1").
		WillReturnRows(rows)

	schools, err := repo.ListSchools(context.Background(), models.EntityFilter{DistrictID: "d1", MandalID: "m1"})
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "ZPHS Gollaprolu", schools[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryListStudentsJoinsSchoolScope(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "school_id", "class_id", "name", "name_telugu", "gender", "date_of_birth", "pen_number", "parent_phone", "created_at"}).
		AddRow("st1", "s1", "c1", "Anjali", nil, "F", nil, "PEN001", nil, time.Now())
	mock.ExpectQuery("FROM students st JOIN schools sch ON sch.id = st.school_id WHERE 1=1 AND sch.district_id = ").
		WithArgs("d1").
		WillReturnRows(rows)

	students, err := repo.ListStudents(context.Background(), models.EntityFilter{DistrictID: "d1"})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Empty(t, students[0].AccessToken, "token never selected by listings")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryCreateStudentGeneratesToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository(db)

	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), "s1", "c1", "Anjali", nil, nil, nil, "PEN001", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	student := &models.Student{SchoolID: "s1", ClassID: "c1", Name: "Anjali", PENNumber: "PEN001"}
	require.NoError(t, repo.CreateStudent(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.NotEmpty(t, student.AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryCountClassesByGradeLevels(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM classes WHERE grade_level IN").
		WithArgs(6, 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountClassesByGradeLevels(context.Background(), []int{6, 7})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountClassesByGradeLevels(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryListClasses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grade_level", "created_at"}).
		AddRow("c1", 6, time.Now()).
		AddRow("c2", 7, time.Now())
	mock.ExpectQuery("FROM classes ORDER BY grade_level").WillReturnRows(rows)

	classes, err := repo.ListClasses(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 6, classes[0].GradeLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
