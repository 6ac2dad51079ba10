package models

import "time"

// PublicStudentRow is the raw join of a student with their school context,
// keyed by access token. Internal ids stay in this struct and are stripped
// before the response is assembled.
type PublicStudentRow struct {
	StudentID     string     `db:"student_id"`
	ClassID       *string    `db:"class_id"`
	Name          string     `db:"name"`
	NameTelugu    *string    `db:"name_telugu"`
	PENNumber     string     `db:"pen_number"`
	ParentPhone   *string    `db:"parent_phone"`
	DateOfBirth   *time.Time `db:"date_of_birth"`
	GradeLevel    *int       `db:"grade_level"`
	SchoolName    string     `db:"school_name"`
	SchoolTelugu  *string    `db:"school_name_telugu"`
	UDISECode     string     `db:"udise_code"`
	Address       *string    `db:"school_address"`
	AddressTelugu *string    `db:"school_address_telugu"`
	DistrictName  string     `db:"district_name"`
}

// PublicMarkRow is one mark joined with exam, subject and the matching
// class statistic when one exists.
type PublicMarkRow struct {
	ExamID        string     `db:"exam_id"`
	ExamName      string     `db:"exam_name"`
	ExamTelugu    *string    `db:"exam_name_telugu"`
	ExamDate      *time.Time `db:"start_date"`
	SubjectName   string     `db:"subject_name"`
	SubjectTelugu *string    `db:"subject_name_telugu"`
	MarksObtained float64    `db:"marks_obtained"`
	MaxMarks      float64    `db:"max_marks"`
	Grade         *string    `db:"grade"`
	ClassAverage  *float64   `db:"class_average"`
	ClassHighest  *float64   `db:"class_highest"`
	ClassLowest   *float64   `db:"class_lowest"`
}

// PublicSchoolInfo is the school context shown on the parent portal.
type PublicSchoolInfo struct {
	Name          string  `json:"name"`
	NameTelugu    *string `json:"name_telugu,omitempty"`
	UDISECode     string  `json:"udise_code"`
	District      string  `json:"district"`
	Address       *string `json:"address,omitempty"`
	AddressTelugu *string `json:"address_telugu,omitempty"`
}

// PublicStudentInfo identifies the student without exposing internal ids.
type PublicStudentInfo struct {
	Name        string           `json:"name"`
	NameTelugu  *string          `json:"name_telugu,omitempty"`
	PENNumber   string           `json:"pen_number"`
	ClassName   string           `json:"class_name"`
	ParentPhone *string          `json:"parent_phone,omitempty"`
	DateOfBirth string           `json:"dob,omitempty"`
	School      PublicSchoolInfo `json:"school"`
}

// PublicSubjectResult is one graded subject, enriched with class statistics
// when the matching (exam, subject, class) rollup exists.
type PublicSubjectResult struct {
	Name         string   `json:"name"`
	NameTelugu   *string  `json:"name_telugu,omitempty"`
	Marks        float64  `json:"marks"`
	Max          float64  `json:"max"`
	Grade        string   `json:"grade"`
	ClassAverage *float64 `json:"class_average,omitempty"`
	ClassHighest *float64 `json:"class_highest,omitempty"`
	ClassLowest  *float64 `json:"class_lowest,omitempty"`
}

// PublicExamResult groups one exam's subjects, most recent exam first.
type PublicExamResult struct {
	ExamName   string                `json:"exam_name"`
	ExamTelugu *string               `json:"exam_name_telugu,omitempty"`
	ExamDate   string                `json:"exam_date,omitempty"`
	Subjects   []PublicSubjectResult `json:"subjects"`
}

// PublicStudentResult is the full parent-portal payload for one token.
type PublicStudentResult struct {
	Student PublicStudentInfo  `json:"student"`
	Results []PublicExamResult `json:"results"`
}

// AccessCardRow carries everything an external renderer needs to mint one
// QR access card: identity fields plus the public result URL.
type AccessCardRow struct {
	StudentName string `db:"student_name" json:"student_name"`
	NameTelugu  string `db:"name_telugu" json:"name_telugu,omitempty"`
	PENNumber   string `db:"pen_number" json:"pen_number"`
	GradeLevel  int    `db:"grade_level" json:"grade_level"`
	SchoolName  string `db:"school_name" json:"school_name"`
	AccessToken string `db:"access_token" json:"access_token"`
	PublicURL   string `json:"public_url"`
}
