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

// BunProfessorRepository implements ProfessorRepository using Bun ORM
type BunProfessorRepository struct {
	db *bun.DB
}

// NewBunProfessorRepository creates a new Bun-based professor repository
func NewBunProfessorRepository(db *bun.DB) *BunProfessorRepository {
	return &BunProfessorRepository{db: db}
}

// Create inserts a new professor into the database
func (r *BunProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	_, err := r.db.NewInsert().
		Model(professor).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// GetByID retrieves a professor by their ID
func (r *BunProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	professor := new(models.Professor)
	err := r.db.NewSelect().
		Model(professor).
		Where("pr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("professor %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get professor by ID: %w", err)
	}
	return professor, nil
}

// GetByEmail retrieves a professor by their email
func (r *BunProfessorRepository) GetByEmail(ctx context.Context, email string) (*models.Professor, error) {
	professor := new(models.Professor)
	err := r.db.NewSelect().
		Model(professor).
		Where("pr.email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("professor with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get professor by email: %w", err)
	}
	return professor, nil
}

// Update updates an existing professor
func (r *BunProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	professor.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(professor).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update professor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("professor %d: %w", professor.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a professor by their ID
func (r *BunProfessorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.NewDelete().
		Model((*models.Professor)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete professor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("professor %d: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves all professors
func (r *BunProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	var professors []models.Professor
	err := r.db.NewSelect().
		Model(&professors).
		Order("last_name ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return professors, nil
}

// SearchByName retrieves professors whose name or last name contains the
// fragment, case-insensitively
func (r *BunProfessorRepository) SearchByName(ctx context.Context, fragment string) ([]models.Professor, error) {
	pattern := "%" + fragment + "%"
	var professors []models.Professor
	err := r.db.NewSelect().
		Model(&professors).
		Where("LOWER(pr.name) LIKE LOWER(?) OR LOWER(pr.last_name) LIKE LOWER(?)", pattern, pattern).
		Order("last_name ASC", "name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("search professors by name: %w", err)
	}
	return professors, nil
}
