package models

import "time"

type ProgressRecord struct {
	ID          string    `json:"id" db:"id"`
	StudentID   int       `json:"student_id" db:"student_id"`
	SubjectID   int       `json:"subject_id" db:"subject_id"`
	Content     string    `json:"content" db:"content"`
	Progression string    `json:"progression" db:"progression"`
	Comment     string    `json:"comment" db:"comment"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// WorkingRow is one editable row of a working set: one per subject when a
// student is selected, one per student when a subject is selected. ID is nil
// until the row has been persisted once.
type WorkingRow struct {
	ID          *string `json:"id"`
	StudentID   int     `json:"student_id" validate:"required"`
	SubjectID   int     `json:"subject_id" validate:"required"`
	StudentName string  `json:"student_name,omitempty"`
	SubjectName string  `json:"subject_name,omitempty"`
	Content     string  `json:"content"`
	Progression string  `json:"progression"`
	Comment     string  `json:"comment"`
}

// SaveOutcome reports what happened to a single row of a batch save. The
// batch is not transactional; callers inspect outcomes to learn which rows
// were committed.
type SaveOutcome struct {
	StudentID int    `json:"student_id"`
	SubjectID int    `json:"subject_id"`
	Op        string `json:"op"` // "inserted" or "updated"
	ID        string `json:"id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ReportRow is one line of a student's progress report, joined with the
// subject name.
type ReportRow struct {
	SubjectName string `json:"subject_name" db:"subject_name"`
	Content     string `json:"content" db:"content"`
	Progression string `json:"progression" db:"progression"`
	Comment     string `json:"comment" db:"comment"`
}
