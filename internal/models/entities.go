package models

import "time"

// EntityKind enumerates the reference entities served by the generic
// listing/creation endpoints. Each kind maps to a fixed, hand-written
// statement; there is no dynamic table or column dispatch.
type EntityKind string

const (
	KindDistricts EntityKind = "districts"
	KindMandals   EntityKind = "mandals"
	KindSchools   EntityKind = "schools"
	KindClasses   EntityKind = "classes"
	KindSubjects  EntityKind = "subjects"
	KindExams     EntityKind = "exams"
	KindStudents  EntityKind = "students"
)

// KnownEntityKind reports whether kind is part of the dispatch set.
func KnownEntityKind(kind EntityKind) bool {
	switch kind {
	case KindDistricts, KindMandals, KindSchools, KindClasses, KindSubjects, KindExams, KindStudents:
		return true
	}
	return false
}

// District is the top of the jurisdiction hierarchy.
type District struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	NameTelugu *string   `db:"name_telugu" json:"name_telugu,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Mandal belongs to exactly one district.
type Mandal struct {
	ID         string    `db:"id" json:"id"`
	DistrictID string    `db:"district_id" json:"district_id"`
	Name       string    `db:"name" json:"name"`
	NameTelugu *string   `db:"name_telugu" json:"name_telugu,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// School belongs to one district and one mandal and carries the external
// UDISE registry code.
type School struct {
	ID            string    `db:"id" json:"id"`
	DistrictID    string    `db:"district_id" json:"district_id"`
	MandalID      string    `db:"mandal_id" json:"mandal_id"`
	Name          string    `db:"name" json:"name"`
	NameTelugu    *string   `db:"name_telugu" json:"name_telugu,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	AddressTelugu *string   `db:"address_telugu" json:"address_telugu,omitempty"`
	UDISECode     string    `db:"udise_code" json:"udise_code"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Class is a system-wide grade level; cohorts are derived from a student's
// class plus school.
type Class struct {
	ID         string    `db:"id" json:"id"`
	GradeLevel int       `db:"grade_level" json:"grade_level"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Subject is global, not owned by any school.
type Subject struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	NameTelugu *string   `db:"name_telugu" json:"name_telugu,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Exam is global and visible to all schools.
type Exam struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	NameTelugu *string    `db:"name_telugu" json:"name_telugu,omitempty"`
	ExamCode   string     `db:"exam_code" json:"exam_code"`
	StartDate  *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate    *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// Student owns exactly one immutable access token used for the public
// result link. The token is never listed by the generic entity endpoint.
type Student struct {
	ID          string     `db:"id" json:"id"`
	SchoolID    string     `db:"school_id" json:"school_id"`
	ClassID     string     `db:"class_id" json:"class_id"`
	Name        string     `db:"name" json:"name"`
	NameTelugu  *string    `db:"name_telugu" json:"name_telugu,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	PENNumber   string     `db:"pen_number" json:"pen_number"`
	ParentPhone *string    `db:"parent_phone" json:"parent_phone,omitempty"`
	AccessToken string     `db:"access_token" json:"-"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// EntityFilter narrows generic entity listings. The district/mandal/school
// values are the scope-resolved effective filters, never raw caller input
// for non-admin roles.
type EntityFilter struct {
	DistrictID string
	MandalID   string
	SchoolID   string
	ClassID    string
}

// CreateDistrictRequest creates a district.
type CreateDistrictRequest struct {
	Name       string  `json:"name" validate:"required"`
	NameTelugu *string `json:"name_telugu"`
}

// CreateMandalRequest creates a mandal under a district.
type CreateMandalRequest struct {
	DistrictID string  `json:"district_id" validate:"required,uuid"`
	Name       string  `json:"name" validate:"required"`
	NameTelugu *string `json:"name_telugu"`
}

// CreateSchoolRequest creates a school together with the grade levels it
// offers; the grade levels are validated against the global class records.
type CreateSchoolRequest struct {
	DistrictID    string  `json:"district_id" validate:"required,uuid"`
	MandalID      string  `json:"mandal_id" validate:"required,uuid"`
	Name          string  `json:"name" validate:"required"`
	NameTelugu    *string `json:"name_telugu"`
	Address       *string `json:"address"`
	AddressTelugu *string `json:"address_telugu"`
	UDISECode     string  `json:"udise_code" validate:"required"`
	GradeLevels   []int   `json:"grade_levels" validate:"omitempty,dive,min=1,max=12"`
}

// CreateClassRequest registers a system-wide grade level.
type CreateClassRequest struct {
	GradeLevel int `json:"grade_level" validate:"required,min=1,max=12"`
}

// CreateSubjectRequest creates a subject.
type CreateSubjectRequest struct {
	Name       string  `json:"name" validate:"required"`
	NameTelugu *string `json:"name_telugu"`
}

// CreateExamRequest creates a global exam.
type CreateExamRequest struct {
	Name       string     `json:"name" validate:"required"`
	NameTelugu *string    `json:"name_telugu"`
	ExamCode   string     `json:"exam_code" validate:"required"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
}

// CreateStudentRequest enrolls a student; the access token is generated
// server-side and never supplied by the caller.
type CreateStudentRequest struct {
	SchoolID    string     `json:"school_id" validate:"required,uuid"`
	ClassID     string     `json:"class_id" validate:"required,uuid"`
	Name        string     `json:"name" validate:"required"`
	NameTelugu  *string    `json:"name_telugu"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=M F O"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	PENNumber   string     `json:"pen_number" validate:"required"`
	ParentPhone *string    `json:"parent_phone"`
}
