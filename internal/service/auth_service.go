package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
	"github.com/floreser/school-portal/internal/repository"
)

var ErrInvalidPassword = errors.New("invalid password")

type AuthService interface {
	StudentLogin(ctx context.Context, password string) (*models.StudentLoginResponse, error)
	TeacherLogin(ctx context.Context, password string) (*models.TeacherLoginResponse, error)
	Logout(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*Session, error)
}

type authService struct {
	studentRepo     repository.StudentRepository
	progressRepo    repository.ProgressRepository
	sessions        SessionStore
	teacherPassword string
	sessionTTL      time.Duration
	logger          zerolog.Logger
}

func NewAuthService(
	studentRepo repository.StudentRepository,
	progressRepo repository.ProgressRepository,
	sessions SessionStore,
	teacherPassword string,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		studentRepo:     studentRepo,
		progressRepo:    progressRepo,
		sessions:        sessions,
		teacherPassword: teacherPassword,
		sessionTTL:      sessionTTL,
		logger:          logger,
	}
}

// StudentLogin resolves the shared secret to exactly one student
// (case-sensitive, input trimmed) and returns their progress report along
// with a fresh session.
func (s *authService) StudentLogin(ctx context.Context, password string) (*models.StudentLoginResponse, error) {
	student, err := s.studentRepo.GetByPassword(ctx, strings.TrimSpace(password))
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, ErrInvalidPassword
	}

	report, err := s.progressRepo.GetReportByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress report: %w", err)
	}

	session, err := s.newSession(ctx, RoleStudent, student.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("student_id", student.ID).
		Str("full_name", student.FullName).
		Msg("Student logged in")

	return &models.StudentLoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Student:   *student,
		Report:    report,
	}, nil
}

// TeacherLogin checks the shared teacher secret. Advisory access control
// only; there is no per-teacher identity.
func (s *authService) TeacherLogin(ctx context.Context, password string) (*models.TeacherLoginResponse, error) {
	if s.teacherPassword == "" {
		return nil, errors.New("teacher access is not configured")
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.teacherPassword)) != 1 {
		return nil, ErrInvalidPassword
	}

	session, err := s.newSession(ctx, RoleTeacher, 0)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Msg("Teacher logged in")

	return &models.TeacherLoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *authService) newSession(ctx context.Context, role string, studentID int) (*Session, error) {
	session := Session{
		Token:     uuid.New().String(),
		Role:      role,
		StudentID: studentID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Put(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *authService) GetSession(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, token)
}
