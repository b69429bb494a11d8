package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
)

type ProgressRepository interface {
	GetByStudent(ctx context.Context, studentID int) ([]models.ProgressRecord, error)
	GetBySubject(ctx context.Context, subjectID int) ([]models.ProgressRecord, error)
	GetReportByStudent(ctx context.Context, studentID int) ([]models.ReportRow, error)
	Insert(ctx context.Context, record *models.ProgressRecord) error
	Update(ctx context.Context, id string, content, progression, comment string, updatedAt time.Time) error
}

type progressRepository struct {
	*PostgresRepository
}

func NewProgressRepository(db *sql.DB, logger zerolog.Logger) ProgressRepository {
	return &progressRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *progressRepository) GetByStudent(ctx context.Context, studentID int) ([]models.ProgressRecord, error) {
	query := `
		SELECT id, student_id, subject_id, content, progression, comment, updated_at
		FROM progress
		WHERE student_id = $1
	`

	return r.queryRecords(ctx, query, studentID)
}

func (r *progressRepository) GetBySubject(ctx context.Context, subjectID int) ([]models.ProgressRecord, error) {
	query := `
		SELECT id, student_id, subject_id, content, progression, comment, updated_at
		FROM progress
		WHERE subject_id = $1
	`

	return r.queryRecords(ctx, query, subjectID)
}

func (r *progressRepository) queryRecords(ctx context.Context, query string, arg interface{}) ([]models.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ProgressRecord
	for rows.Next() {
		var record models.ProgressRecord
		err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.SubjectID,
			&record.Content,
			&record.Progression,
			&record.Comment,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *progressRepository) GetReportByStudent(ctx context.Context, studentID int) ([]models.ReportRow, error) {
	query := `
		SELECT sub.name, p.content, p.progression, p.comment
		FROM progress p
		JOIN subjects sub ON sub.id = p.subject_id
		WHERE p.student_id = $1
		ORDER BY sub.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []models.ReportRow
	for rows.Next() {
		var row models.ReportRow
		if err := rows.Scan(&row.SubjectName, &row.Content, &row.Progression, &row.Comment); err != nil {
			return nil, err
		}
		report = append(report, row)
	}

	return report, rows.Err()
}

func (r *progressRepository) Insert(ctx context.Context, record *models.ProgressRecord) error {
	// UNIQUE(student_id, subject_id) backs the one-record-per-pair invariant;
	// a conflicting insert fails instead of duplicating the pair.
	query := `
		INSERT INTO progress (id, student_id, subject_id, content, progression, comment, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.StudentID,
		record.SubjectID,
		record.Content,
		record.Progression,
		record.Comment,
		record.UpdatedAt,
	)

	return err
}

func (r *progressRepository) Update(ctx context.Context, id string, content, progression, comment string, updatedAt time.Time) error {
	query := `
		UPDATE progress
		SET content = $1, progression = $2, comment = $3, updated_at = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query, content, progression, comment, updatedAt, id)
	return err
}
