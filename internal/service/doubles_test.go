package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/floreser/school-portal/internal/models"
)

// In-memory repository doubles shared by the service tests. They mirror the
// Postgres behavior the services rely on: nil results for missing rows, the
// single-row password expectation and the one-record-per-pair constraint.

type memStudentRepo struct {
	students []models.Student
}

func (r *memStudentRepo) GetAll(_ context.Context) ([]models.Student, error) {
	out := append([]models.Student(nil), r.students...)
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *memStudentRepo) GetByID(_ context.Context, id int) (*models.Student, error) {
	for i := range r.students {
		if r.students[i].ID == id {
			s := r.students[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (r *memStudentRepo) GetByPassword(_ context.Context, password string) (*models.Student, error) {
	var matches []models.Student
	for _, s := range r.students {
		if s.Password == password {
			matches = append(matches, s)
		}
	}
	if len(matches) != 1 {
		return nil, nil
	}
	return &matches[0], nil
}

type memSubjectRepo struct {
	subjects []models.Subject
}

func (r *memSubjectRepo) GetAll(_ context.Context) ([]models.Subject, error) {
	out := append([]models.Subject(nil), r.subjects...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memSubjectRepo) GetByID(_ context.Context, id int) (*models.Subject, error) {
	for i := range r.subjects {
		if r.subjects[i].ID == id {
			s := r.subjects[i]
			return &s, nil
		}
	}
	return nil, nil
}

type memProgressRepo struct {
	records map[string]models.ProgressRecord
	names   map[int]string // subject id -> name, for report rows

	// failPair makes Insert fail for one (student, subject) pair, to
	// exercise the fail-soft batch path.
	failPair [2]int
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{
		records: make(map[string]models.ProgressRecord),
		names:   make(map[int]string),
	}
}

func (r *memProgressRepo) GetByStudent(_ context.Context, studentID int) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memProgressRepo) GetBySubject(_ context.Context, subjectID int) ([]models.ProgressRecord, error) {
	var out []models.ProgressRecord
	for _, rec := range r.records {
		if rec.SubjectID == subjectID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memProgressRepo) GetReportByStudent(_ context.Context, studentID int) ([]models.ReportRow, error) {
	var report []models.ReportRow
	for _, rec := range r.records {
		if rec.StudentID == studentID {
			report = append(report, models.ReportRow{
				SubjectName: r.names[rec.SubjectID],
				Content:     rec.Content,
				Progression: rec.Progression,
				Comment:     rec.Comment,
			})
		}
	}
	sort.Slice(report, func(i, j int) bool { return report[i].SubjectName < report[j].SubjectName })
	return report, nil
}

func (r *memProgressRepo) Insert(_ context.Context, record *models.ProgressRecord) error {
	if record.StudentID == r.failPair[0] && record.SubjectID == r.failPair[1] {
		return errors.New("insert rejected")
	}
	for _, rec := range r.records {
		if rec.StudentID == record.StudentID && rec.SubjectID == record.SubjectID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	r.records[record.ID] = *record
	return nil
}

func (r *memProgressRepo) Update(_ context.Context, id string, content, progression, comment string, updatedAt time.Time) error {
	rec, ok := r.records[id]
	if !ok {
		return errors.New("no such record")
	}
	rec.Content = content
	rec.Progression = progression
	rec.Comment = comment
	rec.UpdatedAt = updatedAt
	r.records[id] = rec
	return nil
}

type memScheduleRepo struct {
	entries []models.ScheduleEntry
}

func (r *memScheduleRepo) GetAll(_ context.Context) ([]models.ScheduleEntry, error) {
	return append([]models.ScheduleEntry(nil), r.entries...), nil
}

type capturedPublisher struct {
	events []*models.ProgressSavedEvent
}

func (p *capturedPublisher) PublishProgressSaved(_ context.Context, event *models.ProgressSavedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturedPublisher) Close() error { return nil }
