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

// BunEnrollmentRepository implements EnrollmentRepository using Bun ORM
type BunEnrollmentRepository struct {
	db *bun.DB
}

// NewBunEnrollmentRepository creates a new Bun-based enrollment repository
func NewBunEnrollmentRepository(db *bun.DB) *BunEnrollmentRepository {
	return &BunEnrollmentRepository{db: db}
}

// Create inserts a new enrollment into the database
func (r *BunEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	_, err := r.db.NewInsert().
		Model(enrollment).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// GetByID retrieves an enrollment by its ID
func (r *BunEnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment := new(models.Enrollment)
	err := r.db.NewSelect().
		Model(enrollment).
		Where("en.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get enrollment by ID: %w", err)
	}
	return enrollment, nil
}

// GetByStudentAndCourse retrieves the enrollment linking a student to a course
func (r *BunEnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	enrollment := new(models.Enrollment)
	err := r.db.NewSelect().
		Model(enrollment).
		Where("en.student_id = ? AND en.course_id = ?", studentID, courseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("enrollment of student %d in course %d: %w", studentID, courseID, ErrNotFound)
		}
		return nil, fmt.Errorf("get enrollment by student and course: %w", err)
	}
	return enrollment, nil
}

// Update updates an existing enrollment
func (r *BunEnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(enrollment).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("enrollment %d: %w", enrollment.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an enrollment by its ID
func (r *BunEnrollmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Enrollment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("enrollment %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves all enrollments
func (r *BunEnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.NewSelect().
		Model(&enrollments).
		Order("enrollment_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListByStudent retrieves all enrollments of a student
func (r *BunEnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.NewSelect().
		Model(&enrollments).
		Where("en.student_id = ?", studentID).
		Order("enrollment_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by student: %w", err)
	}
	return enrollments, nil
}

// ListByCourse retrieves all enrollments in a course
func (r *BunEnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.NewSelect().
		Model(&enrollments).
		Where("en.course_id = ?", courseID).
		Order("enrollment_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by course: %w", err)
	}
	return enrollments, nil
}

// ListByState retrieves all enrollments in a given state
func (r *BunEnrollmentRepository) ListByState(ctx context.Context, state models.EnrollmentState) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.NewSelect().
		Model(&enrollments).
		Where("en.enrollment_state = ?", string(state)).
		Order("enrollment_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments by state: %w", err)
	}
	return enrollments, nil
}

// CountActiveByCourse counts the ACTIVE enrollments in a course
func (r *BunEnrollmentRepository) CountActiveByCourse(ctx context.Context, courseID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.Enrollment)(nil)).
		Where("en.course_id = ? AND en.enrollment_state = ?", courseID, string(models.EnrollmentActive)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count active enrollments: %w", err)
	}
	return count, nil
}
