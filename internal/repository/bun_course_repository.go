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

// BunCourseRepository implements CourseRepository using Bun ORM
type BunCourseRepository struct {
	db *bun.DB
}

// NewBunCourseRepository creates a new Bun-based course repository
func NewBunCourseRepository(db *bun.DB) *BunCourseRepository {
	return &BunCourseRepository{db: db}
}

// Create inserts a new course into the database
func (r *BunCourseRepository) Create(ctx context.Context, course *models.Course) error {
	_, err := r.db.NewInsert().
		Model(course).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by its ID
func (r *BunCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course := new(models.Course)
	err := r.db.NewSelect().
		Model(course).
		Where("co.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get course by ID: %w", err)
	}
	return course, nil
}

// GetByCode retrieves a course by its course code
func (r *BunCourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	course := new(models.Course)
	err := r.db.NewSelect().
		Model(course).
		Where("co.course_code = ?", code).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("course with code %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("get course by code: %w", err)
	}
	return course, nil
}

// Update updates an existing course
func (r *BunCourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(course).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", course.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a course by its ID
func (r *BunCourseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Course)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves all courses
func (r *BunCourseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.NewSelect().
		Model(&courses).
		Order("course_code ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// SearchByName retrieves courses whose name contains the fragment,
// case-insensitively
func (r *BunCourseRepository) SearchByName(ctx context.Context, fragment string) ([]models.Course, error) {
	pattern := "%" + fragment + "%"
	var courses []models.Course
	err := r.db.NewSelect().
		Model(&courses).
		Where("LOWER(co.name) LIKE LOWER(?)", pattern).
		Order("course_code ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search courses by name: %w", err)
	}
	return courses, nil
}

// SearchByCode retrieves courses whose course code contains the fragment,
// case-insensitively
func (r *BunCourseRepository) SearchByCode(ctx context.Context, fragment string) ([]models.Course, error) {
	pattern := "%" + fragment + "%"
	var courses []models.Course
	err := r.db.NewSelect().
		Model(&courses).
		Where("LOWER(co.course_code) LIKE LOWER(?)", pattern).
		Order("course_code ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search courses by code: %w", err)
	}
	return courses, nil
}

// ListByProfessor retrieves all courses taught by a professor
func (r *BunCourseRepository) ListByProfessor(ctx context.Context, professorID int64) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.NewSelect().
		Model(&courses).
		Where("co.professor_id = ?", professorID).
		Order("course_code ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses by professor: %w", err)
	}
	return courses, nil
}
