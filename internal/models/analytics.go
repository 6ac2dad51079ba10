package models

// AnalyticsFilter carries the scope-resolved effective jurisdiction filter
// plus the optional exam narrowing for aggregation queries.
type AnalyticsFilter struct {
	DistrictID string
	MandalID   string
	SchoolID   string
	ExamID     string
}

// DrillLevel identifies the hierarchy level of a drill-down request.
type DrillLevel string

const (
	LevelRoot     DrillLevel = "root"
	LevelDistrict DrillLevel = "district"
	LevelMandal   DrillLevel = "mandal"
	LevelSchool   DrillLevel = "school"
)

// StudentAggregate is the per-student SQL aggregate every analytics view is
// built from: the student's mean percentage across subjects, their weakest
// subject percentage, and how many of their marks fall in the coarse A band.
type StudentAggregate struct {
	StudentID  string  `db:"student_id"`
	AvgPercent float64 `db:"avg_percent"`
	MinPercent float64 `db:"min_percent"`
	GradeAMark int     `db:"grade_a_marks"`
}

// ChildStudentAggregate extends StudentAggregate with the child entity the
// student rolls up into for drill-down queries.
type ChildStudentAggregate struct {
	EntityID   string  `db:"entity_id"`
	EntityName string  `db:"entity_name"`
	StudentID  string  `db:"student_id"`
	AvgPercent float64 `db:"avg_percent"`
	MinPercent float64 `db:"min_percent"`
	GradeAMark int     `db:"grade_a_marks"`
}

// StatSummary is the scoped dashboard summary: entity counts plus a coarse
// per-student grade census.
type StatSummary struct {
	TotalSchools   int     `json:"total_schools"`
	TotalStudents  int     `json:"total_students"`
	TotalExams     int     `json:"total_exams"`
	AvgScore       float64 `json:"avg_score"`
	PassPercentage float64 `json:"pass_percentage"`
	GradeAStudents int     `json:"grade_a_students"`
	GradeBStudents int     `json:"grade_b_students"`
	GradeCStudents int     `json:"grade_c_students"`
	GradeDStudents int     `json:"grade_d_students"`
}

// EntityPerformanceRow is one chart row per child entity.
type EntityPerformanceRow struct {
	EntityID       string  `json:"id"`
	EntityName     string  `json:"name"`
	AvgScore       float64 `json:"avg_score"`
	PassPercentage float64 `json:"pass_percentage"`
	StudentCount   int     `json:"student_count"`
}

// DrillDownRow is one rollup row per child entity, ordered worst pass
// percentage first so at-risk entities surface at the top.
type DrillDownRow struct {
	EntityID       string  `json:"id"`
	EntityName     string  `json:"name"`
	AvgScore       float64 `json:"avg_score"`
	PassPercentage float64 `json:"pass_percentage"`
	GradeACount    int     `json:"grade_a_count"`
	StudentCount   int     `json:"student_count"`
}

// StudentMarkRow is one flat subject mark for the school-level marks grid.
type StudentMarkRow struct {
	StudentName   string  `db:"student_name" json:"student_name"`
	PENNumber     string  `db:"pen_number" json:"pen_number"`
	SubjectName   string  `db:"subject_name" json:"subject_name"`
	MarksObtained float64 `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64 `db:"max_marks" json:"max_marks"`
	Grade         *string `db:"grade" json:"grade,omitempty"`
}

// AdminStats reports scoped entity counts for the landing dashboard.
type AdminStats struct {
	Districts int            `json:"districts"`
	Mandals   int            `json:"mandals"`
	Schools   int            `json:"schools"`
	Students  int            `json:"students"`
	Officials map[string]int `json:"officials,omitempty"`
}
