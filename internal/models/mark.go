package models

import "time"

// Mark is the fact record for one (student, exam, subject) triple. Rows are
// only written through the bulk-update upsert; the triple is unique.
type Mark struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	ExamID        string    `db:"exam_id" json:"exam_id"`
	SubjectID     string    `db:"subject_id" json:"subject_id"`
	MarksObtained float64   `db:"marks_obtained" json:"marks_obtained"`
	MaxMarks      float64   `db:"max_marks" json:"max_marks"`
	Grade         *string   `db:"grade" json:"grade,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ClassStatistic is the denormalised rollup for one (exam, subject, class)
// key. It is recomputed wholesale inside the mark write transaction and is
// never hand-edited.
type ClassStatistic struct {
	ID           string    `db:"id" json:"id"`
	ExamID       string    `db:"exam_id" json:"exam_id"`
	SubjectID    string    `db:"subject_id" json:"subject_id"`
	ClassID      string    `db:"class_id" json:"class_id"`
	AverageMarks float64   `db:"average_marks" json:"average_marks"`
	HighestMarks float64   `db:"highest_marks" json:"highest_marks"`
	LowestMarks  float64   `db:"lowest_marks" json:"lowest_marks"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// MarkEntry is one row of a bulk mark submission. Grade is optional; when
// absent it is classified from the marks before persisting.
type MarkEntry struct {
	StudentID     string  `json:"student_id" validate:"required,uuid"`
	MarksObtained float64 `json:"marks_obtained" validate:"min=0"`
	MaxMarks      float64 `json:"max_marks" validate:"gt=0"`
	Grade         *string `json:"grade"`
}

// BulkMarkUpdateRequest carries one exam/subject batch spanning the students
// of one school (possibly several classes).
type BulkMarkUpdateRequest struct {
	ExamID    string      `json:"exam_id" validate:"required,uuid"`
	SubjectID string      `json:"subject_id" validate:"required,uuid"`
	SchoolID  string      `json:"school_id" validate:"required,uuid"`
	MarksData []MarkEntry `json:"marks_data" validate:"required,min=1,dive"`
}

// MarkFetchFilter selects rows for the mark-entry grid prefill.
type MarkFetchFilter struct {
	ExamID    string
	SubjectID string
	ClassID   string
	SchoolID  string
}

// MarkEntryRow is a grid prefill row: the enrolled student plus any mark
// already recorded for the requested exam/subject.
type MarkEntryRow struct {
	StudentID     string   `db:"student_id" json:"student_id"`
	StudentName   string   `db:"student_name" json:"student_name"`
	PENNumber     string   `db:"pen_number" json:"pen_number"`
	SubjectID     *string  `db:"subject_id" json:"subject_id,omitempty"`
	MarksObtained *float64 `db:"marks_obtained" json:"marks_obtained,omitempty"`
	MaxMarks      *float64 `db:"max_marks" json:"max_marks,omitempty"`
	Grade         *string  `db:"grade" json:"grade,omitempty"`
}
