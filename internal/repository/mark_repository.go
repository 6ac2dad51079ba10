package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praja-edu/results-portal-api/internal/models"
)

// MarkRepository handles mark persistence and the class statistics rollup.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository creates a new mark repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// FetchForEntry returns one row per enrolled student of the class, left
// joined with any mark already recorded for the exam (and subject, when
// given) so the entry grid can be pre-filled.
func (r *MarkRepository) FetchForEntry(ctx context.Context, filter models.MarkFetchFilter) ([]models.MarkEntryRow, error) {
	query := `SELECT st.id AS student_id, st.name AS student_name, st.pen_number,
        m.subject_id, m.marks_obtained, m.max_marks, m.grade
        FROM students st
        LEFT JOIN marks m ON m.student_id = st.id AND m.exam_id = $1`
	args := []interface{}{filter.ExamID}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		query += fmt.Sprintf(" AND m.subject_id = $%d", len(args))
	}
	args = append(args, filter.ClassID)
	query += fmt.Sprintf(" WHERE st.class_id = $%d", len(args))
	args = append(args, filter.SchoolID)
	query += fmt.Sprintf(" AND st.school_id = $%d ORDER BY st.name ASC", len(args))

	var rows []models.MarkEntryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("fetch mark entry rows: %w", err)
	}
	return rows, nil
}

// BulkUpsert writes one exam/subject batch of marks and recomputes the class
// statistics for every class represented among the batch's students, all in
// one transaction. The rollup is recomputed from every mark row for the
// (exam, subject, class) key, not just the rows written here, so replaying
// an identical batch converges on identical statistics.
func (r *MarkRepository) BulkUpsert(ctx context.Context, examID, subjectID string, marks []models.Mark) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark batch: %w", err)
	}

	studentIDs := make([]string, 0, len(marks))
	now := time.Now().UTC()
	for i := range marks {
		if marks[i].ID == "" {
			marks[i].ID = uuid.NewString()
		}
		if marks[i].CreatedAt.IsZero() {
			marks[i].CreatedAt = now
		}
		marks[i].UpdatedAt = now
		studentIDs = append(studentIDs, marks[i].StudentID)

		const query = `INSERT INTO marks (id, student_id, exam_id, subject_id, marks_obtained, max_marks, grade, created_at, updated_at)
            VALUES (:id, :student_id, :exam_id, :subject_id, :marks_obtained, :max_marks, :grade, :created_at, :updated_at)
            ON CONFLICT (student_id, exam_id, subject_id)
            DO UPDATE SET marks_obtained = EXCLUDED.marks_obtained, max_marks = EXCLUDED.max_marks, grade = EXCLUDED.grade, updated_at = EXCLUDED.updated_at`
		if _, err := tx.NamedExecContext(ctx, query, marks[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("upsert mark: %w", err)
		}
	}

	if err := r.recomputeStatistics(ctx, tx, examID, subjectID, studentIDs); err != nil {
		tx.Rollback() //nolint:errcheck
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark batch: %w", err)
	}
	return nil
}

// recomputeStatistics rebuilds the (exam, subject, class) rollups for every
// class the given students belong to, from scratch.
func (r *MarkRepository) recomputeStatistics(ctx context.Context, tx *sqlx.Tx, examID, subjectID string, studentIDs []string) error {
	if len(studentIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(studentIDs))
	args := make([]interface{}, 0, len(studentIDs)+2)
	args = append(args, examID, subjectID)
	for i, id := range studentIDs {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := fmt.Sprintf(`SELECT st.class_id,
        AVG(m.marks_obtained) AS average_marks,
        MAX(m.marks_obtained) AS highest_marks,
        MIN(m.marks_obtained) AS lowest_marks
        FROM marks m
        JOIN students st ON st.id = m.student_id
        WHERE m.exam_id = $1 AND m.subject_id = $2
        AND st.class_id IN (SELECT DISTINCT class_id FROM students WHERE id IN (%s))
        GROUP BY st.class_id`, strings.Join(placeholders, ","))

	type aggregate struct {
		ClassID      string  `db:"class_id"`
		AverageMarks float64 `db:"average_marks"`
		HighestMarks float64 `db:"highest_marks"`
		LowestMarks  float64 `db:"lowest_marks"`
	}

	var aggregates []aggregate
	if err := tx.SelectContext(ctx, &aggregates, query, args...); err != nil {
		return fmt.Errorf("recompute class statistics: %w", err)
	}

	now := time.Now().UTC()
	for _, agg := range aggregates {
		stat := models.ClassStatistic{
			ID:           uuid.NewString(),
			ExamID:       examID,
			SubjectID:    subjectID,
			ClassID:      agg.ClassID,
			AverageMarks: round2(agg.AverageMarks),
			HighestMarks: agg.HighestMarks,
			LowestMarks:  agg.LowestMarks,
			UpdatedAt:    now,
		}
		const upsert = `INSERT INTO class_statistics (id, exam_id, subject_id, class_id, average_marks, highest_marks, lowest_marks, updated_at)
            VALUES (:id, :exam_id, :subject_id, :class_id, :average_marks, :highest_marks, :lowest_marks, :updated_at)
            ON CONFLICT (exam_id, subject_id, class_id)
            DO UPDATE SET average_marks = EXCLUDED.average_marks, highest_marks = EXCLUDED.highest_marks, lowest_marks = EXCLUDED.lowest_marks, updated_at = EXCLUDED.updated_at`
		if _, err := tx.NamedExecContext(ctx, upsert, stat); err != nil {
			return fmt.Errorf("upsert class statistic: %w", err)
		}
	}
	return nil
}

// StatisticsFor returns the rollups currently stored for an exam/subject pair.
func (r *MarkRepository) StatisticsFor(ctx context.Context, examID, subjectID string) ([]models.ClassStatistic, error) {
	const query = `SELECT id, exam_id, subject_id, class_id, average_marks, highest_marks, lowest_marks, updated_at
        FROM class_statistics WHERE exam_id = $1 AND subject_id = $2 ORDER BY class_id`
	var stats []models.ClassStatistic
	if err := r.db.SelectContext(ctx, &stats, query, examID, subjectID); err != nil {
		return nil, fmt.Errorf("fetch class statistics: %w", err)
	}
	return stats, nil
}
