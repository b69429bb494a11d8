package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
)

type ScheduleRepository interface {
	GetAll(ctx context.Context) ([]models.ScheduleEntry, error)
}

type scheduleRepository struct {
	*PostgresRepository
}

func NewScheduleRepository(db *sql.DB, logger zerolog.Logger) ScheduleRepository {
	return &scheduleRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *scheduleRepository) GetAll(ctx context.Context) ([]models.ScheduleEntry, error) {
	query := `
		SELECT id, day, time, teacher, subject, students
		FROM schedule
		ORDER BY day ASC, time ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var entry models.ScheduleEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Day,
			&entry.Time,
			&entry.Teacher,
			&entry.Subject,
			&entry.Students,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
