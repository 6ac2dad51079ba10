package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/praja-edu/results-portal-api/internal/models"
)

// EntityRepository serves the reference entities: the jurisdiction hierarchy,
// classes, subjects, exams and students. Every entity kind has its own
// hand-written statements; request input never reaches an identifier position.
type EntityRepository struct {
	db *sqlx.DB
}

// NewEntityRepository creates a new entity repository.
func NewEntityRepository(db *sqlx.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

// ListDistricts returns districts, narrowed to one when the filter names it.
func (r *EntityRepository) ListDistricts(ctx context.Context, filter models.EntityFilter) ([]models.District, error) {
	query := `SELECT id, name, name_telugu, created_at FROM districts WHERE 1=1`
	args := []interface{}{}
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	query += " ORDER BY name ASC"

	var districts []models.District
	if err := r.db.SelectContext(ctx, &districts, query, args...); err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return districts, nil
}

// ListMandals returns mandals within the filtered district.
func (r *EntityRepository) ListMandals(ctx context.Context, filter models.EntityFilter) ([]models.Mandal, error) {
	query := `SELECT id, district_id, name, name_telugu, created_at FROM mandals WHERE 1=1`
	args := []interface{}{}
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND district_id = $%d", len(args))
	}
	if filter.MandalID != "" {
		args = append(args, filter.MandalID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	query += " ORDER BY name ASC"

	var mandals []models.Mandal
	if err := r.db.SelectContext(ctx, &mandals, query, args...); err != nil {
		return nil, fmt.Errorf("list mandals: %w", err)
	}
	return mandals, nil
}

// ListSchools returns schools within the filtered jurisdiction.
func (r *EntityRepository) ListSchools(ctx context.Context, filter models.EntityFilter) ([]models.School, error) {
	query := `SELECT id, district_id, mandal_id, name, name_telugu, address, address_telugu, udise_code, created_at
        FROM schools WHERE 1=1`
	args := []interface{}{}
	if filter.DistrictID != "" {
		args = append(args, filter.DistrictID)
		query += fmt.Sprintf(" AND district_id = $%d", len(args))
	}
	if filter.MandalID != "" {
		args = append(args, filter.MandalID)
		query += fmt.Sprintf(" AND mandal_id = $%d", len(args))
	}
	if filter.SchoolID != "" {
		args = append(args, filter.SchoolID)
		query += fmt.Sprintf(" AND id = $%d", len(args))
	}
	query += " ORDER BY name ASC"

	var schools []models.School
	if err := r.db.SelectContext(ctx, &schools, query, args...); err != nil {
		return nil, fmt.Errorf("list schools: %w", err)
	}
	return schools, nil
}

// ListClasses returns the global grade-level records.
func (r *EntityRepository) ListClasses(ctx context.Context) ([]models.Class, error) {
	const query = `SELECT id, grade_level, created_at FROM classes ORDER BY grade_level ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListSubjects returns all subjects.
func (r *EntityRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	const query = `SELECT id, name, name_telugu, created_at FROM subjects ORDER BY name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListExams returns all exams, most recent first.
func (r *EntityRepository) ListExams(ctx context.Context) ([]models.Exam, error) {
	const query = `SELECT id, name, name_telugu, exam_code, start_date, end_date, created_at
        FROM exams ORDER BY start_date DESC NULLS LAST, name ASC`
	var exams []models.Exam
	if err := r.db.SelectContext(ctx, &exams, query); err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return exams, nil
}

// ListStudents returns students within the filtered jurisdiction. The access
// token column is deliberately not selected here.
func (r *EntityRepository) ListStudents(ctx context.Context, filter models.EntityFilter) ([]models.Student, error) {
	query := `SELECT st.id, st.school_id, st.class_id, st.name, st.name_telugu, st.gender,
        st.date_of_birth, st.pen_number, st.parent_phone, st.created_at
        FROM students st JOIN schools sch ON sch.id = st.school_id WHERE 1=1`
	args := []interface{}{}
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
		query += fmt.Sprintf(" AND st.school_id = $%d", len(args))
	}
	if filter.ClassID != "" {
		args = append(args, filter.ClassID)
		query += fmt.Sprintf(" AND st.class_id = $%d", len(args))
	}
	query += " ORDER BY st.name ASC"

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// GetSchool fetches one school by id.
func (r *EntityRepository) GetSchool(ctx context.Context, id string) (*models.School, error) {
	const query = `SELECT id, district_id, mandal_id, name, name_telugu, address, address_telugu, udise_code, created_at
        FROM schools WHERE id = $1`
	var school models.School
	if err := r.db.GetContext(ctx, &school, query, id); err != nil {
		return nil, err
	}
	return &school, nil
}

// GetStudent fetches one student by id, token included, for internal use.
func (r *EntityRepository) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, school_id, class_id, name, name_telugu, gender, date_of_birth,
        pen_number, parent_phone, access_token, created_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateDistrict inserts a district.
func (r *EntityRepository) CreateDistrict(ctx context.Context, district *models.District) error {
	district.ID = uuid.NewString()
	district.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO districts (id, name, name_telugu, created_at)
        VALUES (:id, :name, :name_telugu, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, district); err != nil {
		return fmt.Errorf("create district: %w", err)
	}
	return nil
}

// CreateMandal inserts a mandal.
func (r *EntityRepository) CreateMandal(ctx context.Context, mandal *models.Mandal) error {
	mandal.ID = uuid.NewString()
	mandal.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO mandals (id, district_id, name, name_telugu, created_at)
        VALUES (:id, :district_id, :name, :name_telugu, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mandal); err != nil {
		return fmt.Errorf("create mandal: %w", err)
	}
	return nil
}

// CreateSchool inserts a school.
func (r *EntityRepository) CreateSchool(ctx context.Context, school *models.School) error {
	school.ID = uuid.NewString()
	school.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO schools (id, district_id, mandal_id, name, name_telugu, address, address_telugu, udise_code, created_at)
        VALUES (:id, :district_id, :mandal_id, :name, :name_telugu, :address, :address_telugu, :udise_code, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, school); err != nil {
		return fmt.Errorf("create school: %w", err)
	}
	return nil
}

// CountClassesByGradeLevels returns how many of the given grade levels exist
// as class records. Used to validate a school's offered grades.
func (r *EntityRepository) CountClassesByGradeLevels(ctx context.Context, levels []int) (int, error) {
	if len(levels) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`SELECT COUNT(*) FROM classes WHERE grade_level IN (?)`, levels)
	if err != nil {
		return 0, fmt.Errorf("build grade level query: %w", err)
	}
	query = r.db.Rebind(query)
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count classes by grade level: %w", err)
	}
	return count, nil
}

// CreateClass inserts a grade-level record.
func (r *EntityRepository) CreateClass(ctx context.Context, class *models.Class) error {
	class.ID = uuid.NewString()
	class.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO classes (id, grade_level, created_at) VALUES (:id, :grade_level, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// CreateSubject inserts a subject.
func (r *EntityRepository) CreateSubject(ctx context.Context, subject *models.Subject) error {
	subject.ID = uuid.NewString()
	subject.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO subjects (id, name, name_telugu, created_at)
        VALUES (:id, :name, :name_telugu, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}

// CreateExam inserts an exam.
func (r *EntityRepository) CreateExam(ctx context.Context, exam *models.Exam) error {
	exam.ID = uuid.NewString()
	exam.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO exams (id, name, name_telugu, exam_code, start_date, end_date, created_at)
        VALUES (:id, :name, :name_telugu, :exam_code, :start_date, :end_date, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exam); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// CreateStudent inserts a student together with its freshly generated access
// token.
func (r *EntityRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	student.ID = uuid.NewString()
	if student.AccessToken == "" {
		student.AccessToken = uuid.NewString()
	}
	student.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO students (id, school_id, class_id, name, name_telugu, gender, date_of_birth, pen_number, parent_phone, access_token, created_at)
        VALUES (:id, :school_id, :class_id, :name, :name_telugu, :gender, :date_of_birth, :pen_number, :parent_phone, :access_token, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}
