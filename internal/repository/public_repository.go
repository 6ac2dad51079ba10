package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/praja-edu/results-portal-api/internal/models"
)

// PublicRepository serves the token-keyed parent portal reads and the access
// card export rows.
type PublicRepository struct {
	db *sqlx.DB
}

// NewPublicRepository creates a new public repository.
func NewPublicRepository(db *sqlx.DB) *PublicRepository {
	return &PublicRepository{db: db}
}

// StudentByToken resolves an access token to the student and their school
// context. Returns sql.ErrNoRows for unknown tokens.
func (r *PublicRepository) StudentByToken(ctx context.Context, token string) (*models.PublicStudentRow, error) {
	const query = `SELECT st.id AS student_id, st.class_id, st.name, st.name_telugu, st.pen_number,
        st.parent_phone, st.date_of_birth, c.grade_level,
        sch.name AS school_name, sch.name_telugu AS school_name_telugu, sch.udise_code,
        sch.address AS school_address, sch.address_telugu AS school_address_telugu,
        d.name AS district_name
        FROM students st
        LEFT JOIN classes c ON c.id = st.class_id
        JOIN schools sch ON sch.id = st.school_id
        JOIN districts d ON d.id = sch.district_id
        WHERE st.access_token = $1`
	var row models.PublicStudentRow
	if err := r.db.GetContext(ctx, &row, query, token); err != nil {
		return nil, err
	}
	return &row, nil
}

// MarksForStudent returns the student's marks joined with exam, subject and
// the matching class statistic, most recent exam first. A nil classID simply
// never matches a rollup row.
func (r *PublicRepository) MarksForStudent(ctx context.Context, studentID string, classID *string) ([]models.PublicMarkRow, error) {
	const query = `SELECT m.exam_id, e.name AS exam_name, e.name_telugu AS exam_name_telugu, e.start_date,
        sub.name AS subject_name, sub.name_telugu AS subject_name_telugu,
        m.marks_obtained, m.max_marks, m.grade,
        cs.average_marks AS class_average, cs.highest_marks AS class_highest, cs.lowest_marks AS class_lowest
        FROM marks m
        JOIN exams e ON e.id = m.exam_id
        JOIN subjects sub ON sub.id = m.subject_id
        LEFT JOIN class_statistics cs ON cs.exam_id = m.exam_id AND cs.subject_id = m.subject_id AND cs.class_id = $2
        WHERE m.student_id = $1
        ORDER BY e.start_date DESC NULLS LAST, sub.name ASC`
	var rows []models.PublicMarkRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID, classID); err != nil {
		return nil, fmt.Errorf("marks for student: %w", err)
	}
	return rows, nil
}

// AccessCardRows returns the identity and token rows needed to mint QR
// access cards for one school, optionally narrowed to one class.
func (r *PublicRepository) AccessCardRows(ctx context.Context, schoolID, classID string) ([]models.AccessCardRow, error) {
	query := `SELECT st.name AS student_name, COALESCE(st.name_telugu, '') AS name_telugu,
        st.pen_number, c.grade_level, sch.name AS school_name, st.access_token
        FROM students st
        JOIN classes c ON c.id = st.class_id
        JOIN schools sch ON sch.id = st.school_id
        WHERE st.school_id = $1`
	args := []interface{}{schoolID}
	if classID != "" {
		args = append(args, classID)
		query += fmt.Sprintf(" AND st.class_id = $%d", len(args))
	}
	query += " ORDER BY c.grade_level ASC, st.name ASC"

	var rows []models.AccessCardRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("access card rows: %w", err)
	}
	return rows, nil
}
