package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicRepositoryStudentByToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPublicRepository(db)

	grade := 6
	rows := sqlmock.NewRows([]string{"student_id", "class_id", "name", "name_telugu", "pen_number", "parent_phone", "date_of_birth", "grade_level", "school_name", "school_name_telugu", "udise_code", "school_address", "school_address_telugu", "district_name"}).
		AddRow("st1", "c1", "Anjali", nil, "PEN001", nil, time.Now(), grade, "ZPHS Gollaprolu", nil, "28113300101", nil, nil, "Kakinada")
	mock.ExpectQuery("WHERE st.access_token = ").
		WithArgs("tok-1").
		WillReturnRows(rows)

	row, err := repo.StudentByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "Anjali", row.Name)
	assert.Equal(t, 6, *row.GradeLevel)
	assert.Equal(t, "Kakinada", row.DistrictName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicRepositoryStudentByTokenUnknown(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPublicRepository(db)

	mock.ExpectQuery("WHERE st.access_token = ").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.StudentByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPublicRepositoryMarksForStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPublicRepository(db)

	avg := 64.5
	rows := sqlmock.NewRows([]string{"exam_id", "exam_name", "exam_name_telugu", "start_date", "subject_name", "subject_name_telugu", "marks_obtained", "max_marks", "grade", "class_average", "class_highest", "class_lowest"}).
		AddRow("e1", "SA1", nil, time.Now(), "Telugu", nil, 72.0, 100.0, "B1", avg, 90.0, 31.0).
		AddRow("e1", "SA1", nil, time.Now(), "Maths", nil, 55.0, 100.0, "C1", nil, nil, nil)
	classID := "c1"
	mock.ExpectQuery("LEFT JOIN class_statistics cs").
		WithArgs("st1", &classID).
		WillReturnRows(rows)

	marks, err := repo.MarksForStudent(context.Background(), "st1", &classID)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, avg, *marks[0].ClassAverage)
	assert.Nil(t, marks[1].ClassAverage, "missing rollup leaves statistics unset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicRepositoryAccessCardRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPublicRepository(db)

	rows := sqlmock.NewRows([]string{"student_name", "name_telugu", "pen_number", "grade_level", "school_name", "access_token"}).
		AddRow("Anjali", "", "PEN001", 6, "ZPHS Gollaprolu", "tok-1")
	mock.ExpectQuery("WHERE st.school_id = .+ AND st.class_id = ").
		WithArgs("s1", "c1").
		WillReturnRows(rows)

	cards, err := repo.AccessCardRows(context.Background(), "s1", "c1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "tok-1", cards[0].AccessToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
