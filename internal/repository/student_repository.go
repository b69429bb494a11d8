package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/floreser/school-portal/internal/models"
)

type StudentRepository interface {
	GetAll(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id int) (*models.Student, error)
	GetByPassword(ctx context.Context, password string) (*models.Student, error)
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT id, full_name, password
		FROM students
		ORDER BY full_name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.FullName, &student.Password); err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) GetByID(ctx context.Context, id int) (*models.Student, error) {
	query := `
		SELECT id, full_name, password
		FROM students
		WHERE id = $1
	`

	student := &models.Student{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.FullName,
		&student.Password,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}

// GetByPassword carries the portal's single-row expectation: exactly one
// student must match the shared secret, case-sensitively. Zero or multiple
// matches both resolve to no student.
func (r *studentRepository) GetByPassword(ctx context.Context, password string) (*models.Student, error) {
	query := `
		SELECT id, full_name, password
		FROM students
		WHERE password = $1
		LIMIT 2
	`

	rows, err := r.db.QueryContext(ctx, query, password)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(&student.ID, &student.FullName, &student.Password); err != nil {
			return nil, err
		}
		matches = append(matches, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matching students: %w", err)
	}

	if len(matches) != 1 {
		return nil, nil
	}

	return &matches[0], nil
}
