package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/repository"
)

// RosterService serves the read-only student and subject lists the teacher
// dashboard navigates by. Both tables are managed externally.
type RosterService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	ListSubjects(ctx context.Context) ([]models.Subject, error)
}

type rosterService struct {
	studentRepo repository.StudentRepository
	subjectRepo repository.SubjectRepository
	logger      zerolog.Logger
}

func NewRosterService(studentRepo repository.StudentRepository, subjectRepo repository.SubjectRepository, logger zerolog.Logger) RosterService {
	return &rosterService{
		studentRepo: studentRepo,
		subjectRepo: subjectRepo,
		logger:      logger,
	}
}

func (s *rosterService) ListStudents(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	return students, nil
}

func (s *rosterService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	return subjects, nil
}
