package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/repository"
	"github.com/floreser/school-portal/internal/service/integration"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
)

// Owner types for a working-set save: the axis the rows were edited along.
const (
	OwnerStudent = "student"
	OwnerSubject = "subject"
)

type ProgressService interface {
	BuildStudentWorkingSet(ctx context.Context, studentID int) ([]models.WorkingRow, error)
	BuildSubjectWorkingSet(ctx context.Context, subjectID int) ([]models.WorkingRow, error)
	SaveAll(ctx context.Context, ownerType string, ownerID int, rows []models.WorkingRow) (*models.SaveProgressResponse, error)
	GetStudentReport(ctx context.Context, studentID int) ([]models.ReportRow, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	studentRepo  repository.StudentRepository
	subjectRepo  repository.SubjectRepository
	publisher    integration.Publisher
	validate     *validator.Validate
	logger       zerolog.Logger
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	studentRepo repository.StudentRepository,
	subjectRepo repository.SubjectRepository,
	publisher integration.Publisher,
	logger zerolog.Logger,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		studentRepo:  studentRepo,
		subjectRepo:  subjectRepo,
		publisher:    publisher,
		validate:     validator.New(),
		logger:       logger,
	}
}

// BuildStudentWorkingSet merges the student's progress records with the full
// subject roster so every subject has an editable row. Missing records
// default to empty strings and a nil id.
func (s *progressService) BuildStudentWorkingSet(ctx context.Context, studentID int) ([]models.WorkingRow, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}

	records, err := s.progressRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	bySubject := make(map[int]*models.ProgressRecord, len(records))
	for i := range records {
		bySubject[records[i].SubjectID] = &records[i]
	}

	rows := make([]models.WorkingRow, 0, len(subjects))
	for _, subject := range subjects {
		row := models.WorkingRow{
			StudentID:   studentID,
			SubjectID:   subject.ID,
			StudentName: student.FullName,
			SubjectName: subject.Name,
		}
		if existing, ok := bySubject[subject.ID]; ok {
			id := existing.ID
			row.ID = &id
			row.Content = existing.Content
			row.Progression = existing.Progression
			row.Comment = existing.Comment
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// BuildSubjectWorkingSet is the transposed view: one row per student for a
// selected subject, ordered by student name.
func (s *progressService) BuildSubjectWorkingSet(ctx context.Context, subjectID int) ([]models.WorkingRow, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}

	records, err := s.progressRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	byStudent := make(map[int]*models.ProgressRecord, len(records))
	for i := range records {
		byStudent[records[i].StudentID] = &records[i]
	}

	rows := make([]models.WorkingRow, 0, len(students))
	for _, student := range students {
		row := models.WorkingRow{
			StudentID:   student.ID,
			SubjectID:   subjectID,
			StudentName: student.FullName,
			SubjectName: subject.Name,
		}
		if existing, ok := byStudent[student.ID]; ok {
			id := existing.ID
			row.ID = &id
			row.Content = existing.Content
			row.Progression = existing.Progression
			row.Comment = existing.Comment
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func (s *progressService) GetStudentReport(ctx context.Context, studentID int) ([]models.ReportRow, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	report, err := s.progressRepo.GetReportByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress report: %w", err)
	}
	return report, nil
}

// SaveAll commits the working set sequentially in iteration order. Rows with
// an id update in place; rows without one are inserted (even when unedited)
// and adopt the new id so a repeat save updates instead of duplicating. The
// batch is fail-soft and not transactional: every row is attempted, failures
// are recorded per row, and rows already committed stay committed.
func (s *progressService) SaveAll(ctx context.Context, ownerType string, ownerID int, rows []models.WorkingRow) (*models.SaveProgressResponse, error) {
	req := models.SaveProgressRequest{Rows: rows}
	if err := s.validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid working set: %w", err)
	}

	outcomes := make([]models.SaveOutcome, 0, len(rows))
	saved, failed := 0, 0
	var firstErr error

	for i := range rows {
		row := &rows[i]
		outcome := models.SaveOutcome{
			StudentID: row.StudentID,
			SubjectID: row.SubjectID,
		}

		if row.ID != nil && *row.ID != "" {
			outcome.Op = "updated"
			outcome.ID = *row.ID
			err := s.progressRepo.Update(ctx, *row.ID, row.Content, row.Progression, row.Comment, time.Now().UTC())
			if err != nil {
				outcome.Error = err.Error()
			}
		} else {
			outcome.Op = "inserted"
			record := &models.ProgressRecord{
				ID:          uuid.New().String(),
				StudentID:   row.StudentID,
				SubjectID:   row.SubjectID,
				Content:     row.Content,
				Progression: row.Progression,
				Comment:     row.Comment,
				UpdatedAt:   time.Now().UTC(),
			}
			if err := s.progressRepo.Insert(ctx, record); err != nil {
				outcome.Error = err.Error()
			} else {
				row.ID = &record.ID
				outcome.ID = record.ID
			}
		}

		if outcome.Error != "" {
			failed++
			if firstErr == nil {
				firstErr = errors.New(outcome.Error)
			}
		} else {
			saved++
		}
		outcomes = append(outcomes, outcome)
	}

	resp := &models.SaveProgressResponse{
		Saved:    saved,
		Failed:   failed,
		Outcomes: outcomes,
	}

	if failed > 0 {
		resp.Message = fmt.Sprintf("%d of %d rows failed to save: %v", failed, len(rows), firstErr)
		s.logger.Error().
			Str("owner_type", ownerType).
			Int("owner_id", ownerID).
			Int("saved", saved).
			Int("failed", failed).
			Msg("Batch save partially failed")
		return resp, nil
	}

	s.logger.Info().
		Str("owner_type", ownerType).
		Int("owner_id", ownerID).
		Int("saved", saved).
		Msg("Progress saved")

	if s.publisher != nil {
		event := &models.ProgressSavedEvent{
			OwnerType: ownerType,
			OwnerID:   ownerID,
			Saved:     saved,
			Timestamp: time.Now().Unix(),
		}
		if err := s.publisher.PublishProgressSaved(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish progress.saved event")
		}
	}

	return resp, nil
}
