package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/repository"
	"github.com/floreser/school-portal/internal/service/export"
	"github.com/floreser/school-portal/internal/service/timetable"
)

type ExportService interface {
	ExportStudentSchedule(ctx context.Context, fullName string) (filename string, data []byte, err error)
	ListArchivedExports(ctx context.Context) ([]string, error)
}

type exportService struct {
	scheduleRepo repository.ScheduleRepository
	archive      repository.ArchiveRepository
	logger       zerolog.Logger
}

// NewExportService builds the export engine. archive may be nil when object
// storage is not configured; exports are then download-only.
func NewExportService(scheduleRepo repository.ScheduleRepository, archive repository.ArchiveRepository, logger zerolog.Logger) ExportService {
	return &exportService{
		scheduleRepo: scheduleRepo,
		archive:      archive,
		logger:       logger,
	}
}

func (s *exportService) ExportStudentSchedule(ctx context.Context, fullName string) (string, []byte, error) {
	entries, err := s.scheduleRepo.GetAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	matched := timetable.MatchStudent(fullName, entries)
	data, err := export.BuildSchedulePDF(fullName, matched)
	if err != nil {
		return "", nil, err
	}

	filename := export.FileName(fullName)

	if s.archive != nil {
		now := time.Now()
		key := fmt.Sprintf("exports/%d/%02d/%s", now.Year(), now.Month(), filename)
		// Archiving is best-effort; the download is served either way.
		if err := s.archive.Put(ctx, key, data, "application/pdf"); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("Failed to archive schedule export")
		}
	}

	s.logger.Info().
		Str("student", fullName).
		Str("filename", filename).
		Int("classes", len(matched)).
		Msg("Schedule exported")

	return filename, data, nil
}

// ListArchivedExports returns the object keys of past schedule exports. An
// unconfigured archive reads as empty rather than an error.
func (s *exportService) ListArchivedExports(ctx context.Context) ([]string, error) {
	if s.archive == nil {
		return nil, nil
	}
	keys, err := s.archive.List(ctx, "exports/")
	if err != nil {
		return nil, fmt.Errorf("failed to list archived exports: %w", err)
	}
	return keys, nil
}
