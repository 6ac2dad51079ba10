package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/praja-edu/results-portal-api/internal/models"
)

// AnalyticsRepository runs the per-student SQL aggregates the analytics
// engine is built on. Grade banding and pass decisions happen in Go; SQL only
// produces per-student averages, minimums and A-band mark counts.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// scopeClause appends jurisdiction predicates against the schools alias and
// returns the extended query/args pair. All analytics joins expose the
// student's school as "sch".
func scopeClause(query string, args []interface{}, filter models.AnalyticsFilter) (string, []interface{}) {
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND sch.district_id = $%d", len(args))
	}
	if filter.MandalID != "" {
		args = append(args, filter.MandalID)
		query += fmt.Sprintf(" AND sch.mandal_id = $%d", len(args))
	}
	if filter.SchoolID != "" {
		args = append(args, filter.SchoolID)
		query += fmt.Sprintf(" AND sch.id = $%d", len(args))
	}
	return query, args
}

// SchoolCount counts schools in scope.
func (r *AnalyticsRepository) SchoolCount(ctx context.Context, filter models.AnalyticsFilter) (int, error) {
	query := `SELECT COUNT(*) FROM schools sch WHERE 1=1`
	args := []interface{}{}
	query, args = scopeClause(query, args, filter)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count schools: %w", err)
	}
	return count, nil
}

// StudentCount counts enrolled students in scope.
func (r *AnalyticsRepository) StudentCount(ctx context.Context, filter models.AnalyticsFilter) (int, error) {
	query := `SELECT COUNT(*) FROM students st JOIN schools sch ON sch.id = st.school_id WHERE 1=1`
	args := []interface{}{}
	query, args = scopeClause(query, args, filter)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// ExamCount counts distinct exams with at least one mark in scope.
func (r *AnalyticsRepository) ExamCount(ctx context.Context, filter models.AnalyticsFilter) (int, error) {
	query := `SELECT COUNT(DISTINCT m.exam_id) FROM marks m
        JOIN students st ON st.id = m.student_id
        JOIN schools sch ON sch.id = st.school_id WHERE 1=1`
	args := []interface{}{}
	query, args = scopeClause(query, args, filter)

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count exams: %w", err)
	}
	return count, nil
}

// studentAggregateSelect is the shared per-student aggregate projection. A
// zero max-marks row contributes NULL percentages, which AVG and MIN skip.
const studentAggregateSelect = `
        AVG(m.marks_obtained / NULLIF(m.max_marks, 0) * 100) AS avg_percent,
        MIN(m.marks_obtained / NULLIF(m.max_marks, 0) * 100) AS min_percent,
        COUNT(*) FILTER (WHERE m.marks_obtained / NULLIF(m.max_marks, 0) * 100 >= 80) AS grade_a_marks`

// StudentAggregates returns one aggregate row per student with marks in
// scope, optionally narrowed to one exam.
func (r *AnalyticsRepository) StudentAggregates(ctx context.Context, filter models.AnalyticsFilter) ([]models.StudentAggregate, error) {
	query := `SELECT m.student_id,` + studentAggregateSelect + `
        FROM marks m
        JOIN students st ON st.id = m.student_id
        JOIN schools sch ON sch.id = st.school_id WHERE 1=1`
	args := []interface{}{}
	query, args = scopeClause(query, args, filter)
	if filter.ExamID != "" {
		args = append(args, filter.ExamID)
		query += fmt.Sprintf(" AND m.exam_id = $%d", len(args))
	}
	query += " GROUP BY m.student_id"

	var aggregates []models.StudentAggregate
	if err := r.db.SelectContext(ctx, &aggregates, query, args...); err != nil {
		return nil, fmt.Errorf("student aggregates: %w", err)
	}
	return aggregates, nil
}

// ChildStudentAggregates returns per-student aggregates tagged with the child
// entity the student rolls up into, one hierarchy level below the given
// level. Unknown levels yield no rows.
func (r *AnalyticsRepository) ChildStudentAggregates(ctx context.Context, level models.DrillLevel, parentID, examID string) ([]models.ChildStudentAggregate, error) {
	var query string
	args := []interface{}{}

	switch level {
	case models.LevelRoot:
		query = `SELECT d.id AS entity_id, d.name AS entity_name, m.student_id,` + studentAggregateSelect + `
            FROM marks m
            JOIN students st ON st.id = m.student_id
            JOIN schools sch ON sch.id = st.school_id
            JOIN districts d ON d.id = sch.district_id WHERE 1=1`
	case models.LevelDistrict:
		args = append(args, parentID)
		query = `SELECT mn.id AS entity_id, mn.name AS entity_name, m.student_id,` + studentAggregateSelect + `
            FROM marks m
            JOIN students st ON st.id = m.student_id
            JOIN schools sch ON sch.id = st.school_id
            JOIN mandals mn ON mn.id = sch.mandal_id
            WHERE mn.district_id = $1`
	case models.LevelMandal:
		args = append(args, parentID)
		query = `SELECT sch.id AS entity_id, sch.name AS entity_name, m.student_id,` + studentAggregateSelect + `
            FROM marks m
            JOIN students st ON st.id = m.student_id
            JOIN schools sch ON sch.id = st.school_id
            WHERE sch.mandal_id = $1`
	default:
		return nil, nil
	}

	if examID != "" {
		args = append(args, examID)
		query += fmt.Sprintf(" AND m.exam_id = $%d", len(args))
	}
	query += " GROUP BY entity_id, entity_name, m.student_id"

	var aggregates []models.ChildStudentAggregate
	if err := r.db.SelectContext(ctx, &aggregates, query, args...); err != nil {
		return nil, fmt.Errorf("child student aggregates: %w", err)
	}
	return aggregates, nil
}

// StudentMarks returns the flat subject marks for one school, optionally one
// exam, for the school-level marks grid.
func (r *AnalyticsRepository) StudentMarks(ctx context.Context, schoolID, examID string) ([]models.StudentMarkRow, error) {
	query := `SELECT st.name AS student_name, st.pen_number, sub.name AS subject_name,
        m.marks_obtained, m.max_marks, m.grade
        FROM marks m
        JOIN students st ON st.id = m.student_id
        JOIN subjects sub ON sub.id = m.subject_id
        WHERE st.school_id = $1`
	args := []interface{}{schoolID}
	if examID != "" {
		args = append(args, examID)
		query += fmt.Sprintf(" AND m.exam_id = $%d", len(args))
	}
	query += " ORDER BY st.name ASC, sub.name ASC"

	var rows []models.StudentMarkRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("student marks: %w", err)
	}
	return rows, nil
}

// EntityCounts returns scoped entity totals for the admin dashboard.
func (r *AnalyticsRepository) EntityCounts(ctx context.Context, filter models.AnalyticsFilter) (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	query := `SELECT COUNT(*) FROM districts d WHERE 1=1`
	args := []interface{}{}
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND d.id = $%d", len(args))
	}
	if err := r.db.GetContext(ctx, &stats.Districts, query, args...); err != nil {
		return nil, fmt.Errorf("count districts: %w", err)
	}

	query = `SELECT COUNT(*) FROM mandals mn WHERE 1=1`
	args = args[:0]
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND mn.district_id = $%d", len(args))
	}
	if filter.MandalID != "" {
		args = append(args, filter.MandalID)
		query += fmt.Sprintf(" AND mn.id = $%d", len(args))
	}
	if err := r.db.GetContext(ctx, &stats.Mandals, query, args...); err != nil {
		return nil, fmt.Errorf("count mandals: %w", err)
	}

	var err error
	if stats.Schools, err = r.SchoolCount(ctx, filter); err != nil {
		return nil, err
	}
	if stats.Students, err = r.StudentCount(ctx, filter); err != nil {
		return nil, err
	}
	return stats, nil
}
