package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/uptrace/bun"
)

// BunStudentRepository implements StudentRepository using Bun ORM
type BunStudentRepository struct {
	db *bun.DB
}

// NewBunStudentRepository creates a new Bun-based student repository
func NewBunStudentRepository(db *bun.DB) *BunStudentRepository {
	return &BunStudentRepository{db: db}
}

// Create inserts a new student into the database
func (r *BunStudentRepository) Create(ctx context.Context, student *models.Student) error {
	_, err := r.db.NewInsert().
		Model(student).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by their ID
func (r *BunStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student := new(models.Student)
	err := r.db.NewSelect().
		Model(student).
		Where("st.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get student by ID: %w", err)
	}
	return student, nil
}

// GetByEmail retrieves a student by their email
func (r *BunStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	student := new(models.Student)
	err := r.db.NewSelect().
		Model(student).
		Where("st.email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get student by email: %w", err)
	}
	return student, nil
}

// GetByStudentNumber retrieves a student by their campus-issued number
func (r *BunStudentRepository) GetByStudentNumber(ctx context.Context, studentNumber string) (*models.Student, error) {
	student := new(models.Student)
	err := r.db.NewSelect().
		Model(student).
		Where("st.student_number = ?", studentNumber).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student with number %s: %w", studentNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("get student by number: %w", err)
	}
	return student, nil
}

// Update updates an existing student
func (r *BunStudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(student).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("student %d: %w", student.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a student by their ID
func (r *BunStudentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Student)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("student %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves all students
func (r *BunStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := r.db.NewSelect().
		Model(&students).
		Order("last_name ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// SearchByName retrieves students whose name or last name contains the
// fragment, case-insensitively
func (r *BunStudentRepository) SearchByName(ctx context.Context, fragment string) ([]models.Student, error) {
	pattern := "%" + fragment + "%"
	var students []models.Student
	err := r.db.NewSelect().
		Model(&students).
		Where("LOWER(st.name) LIKE LOWER(?) OR LOWER(st.last_name) LIKE LOWER(?)", pattern, pattern).
		Order("last_name ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search students by name: %w", err)
	}
	return students, nil
}
