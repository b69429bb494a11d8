package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
)

type SubjectRepository interface {
	GetAll(ctx context.Context) ([]models.Subject, error)
	GetByID(ctx context.Context, id int) (*models.Subject, error)
}

type subjectRepository struct {
	*PostgresRepository
}

func NewSubjectRepository(db *sql.DB, logger zerolog.Logger) SubjectRepository {
	return &subjectRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *subjectRepository) GetAll(ctx context.Context) ([]models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}

	return subjects, rows.Err()
}

func (r *subjectRepository) GetByID(ctx context.Context, id int) (*models.Subject, error) {
	query := `
		SELECT id, name
		FROM subjects
		WHERE id = $1
	`

	subject := &models.Subject{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&subject.ID, &subject.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return subject, err
}
