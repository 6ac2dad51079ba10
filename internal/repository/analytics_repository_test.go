package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praja-edu/results-portal-api/internal/models"
)

func TestAnalyticsRepositoryStudentAggregates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "avg_percent", "min_percent", "grade_a_marks"}).
		AddRow("st1", 85.5, 70.0, 2).
		AddRow("st2", 48.0, 30.0, 0)
	mock.ExpectQuery("SELECT m.student_id,.+FROM marks m.+WHERE 1=1 AND sch.id = .+ AND m.exam_id = .+ GROUP BY m.student_id").
		WithArgs("s1", "e1").
		WillReturnRows(rows)

	aggs, err := repo.StudentAggregates(context.Background(), models.AnalyticsFilter{SchoolID: "s1", ExamID: "e1"})
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, 85.5, aggs[0].AvgPercent)
	assert.Equal(t, 0, aggs[1].GradeAMark)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryChildAggregatesUnknownLevel(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	aggs, err := repo.ChildStudentAggregates(context.Background(), models.LevelSchool, "s1", "")
	require.NoError(t, err)
	assert.Empty(t, aggs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryChildAggregatesDistrictLevel(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"entity_id", "entity_name", "student_id", "avg_percent", "min_percent", "grade_a_marks"}).
		AddRow("m1", "Gollaprolu", "st1", 62.0, 40.0, 0)
	mock.ExpectQuery("JOIN mandals mn ON mn.id = sch.mandal_id").
		WithArgs("d1").
		WillReturnRows(rows)

	aggs, err := repo.ChildStudentAggregates(context.Background(), models.LevelDistrict, "d1", "")
	require.NoError(t, err)
	require.Len(t, aggs, 1)
	assert.Equal(t, "Gollaprolu", aggs[0].EntityName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schools sch WHERE 1=1 AND sch.district_id = ").
		WithArgs("d1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.SchoolCount(context.Background(), models.AnalyticsFilter{DistrictID: "d1"})
	require.NoError(t, err)
	assert.Equal(t, 42, count)

	mock.ExpectQuery("SELECT COUNT\\(DISTINCT m.exam_id\\) FROM marks m").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err = repo.ExamCount(context.Background(), models.AnalyticsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryStudentMarks(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"student_name", "pen_number", "subject_name", "marks_obtained", "max_marks", "grade"}).
		AddRow("Anjali", "PEN001", "Telugu", 72.0, 100.0, "B1")
	mock.ExpectQuery("JOIN subjects sub ON sub.id = m.subject_id\\s+WHERE st.school_id = .+ AND m.exam_id = ").
		WithArgs("s1", "e1").
		WillReturnRows(rows)

	marks, err := repo.StudentMarks(context.Background(), "s1", "e1")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "Telugu", marks[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
