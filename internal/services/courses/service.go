// Package courses holds the business rules for course management.
package courses

import (
	"context"
	"errors"
	"regexp"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

var (
	ErrInvalidCode      = errors.New("EL CÓDIGO DEL CURSO NO ES VÁLIDO. DEBE SEGUIR EL FORMATO: 3-4 LETRAS MAYÚSCULAS SEGUIDO DE UN GUION Y 3 DÍGITOS (EJ: PROG-101)")
	ErrInvalidCapacity  = errors.New("LA CAPACIDAD MÁXIMA DEL CURSO NO ES VÁLIDA. DEBE ESTAR ENTRE 1 Y 50 ESTUDIANTES")
	ErrInvalidProfessor = errors.New("NO SE PUEDE CREAR O ACTUALIZAR UN CURSO CON UN ID DE PROFESOR INVÁLIDO")
	ErrNotFound         = errors.New("EL CURSO CON ESTE ID, NO SE ENCUENTRA REGISTRADO")
	ErrCodeExists       = errors.New("ESTE CÓDIGO DE CURSO YA SE ENCUENTRA REGISTRADO")
)

var codePattern = regexp.MustCompile(`^[A-Z]{3,4}-[0-9]{3}$`)

// DefaultMaxCapacity is applied when the request omits the capacity.
const DefaultMaxCapacity = 50

// Input carries the writable fields of a course.
type Input struct {
	Name        string
	CourseCode  string
	Description string
	MaxCapacity int
	ProfessorID int64
}

// Service implements course management on top of the repositories.
type Service struct {
	repo          repository.CourseRepository
	professorRepo repository.ProfessorRepository
}

// NewService constructs a course service.
func NewService(repo repository.CourseRepository, professorRepo repository.ProfessorRepository) *Service {
	return &Service{repo: repo, professorRepo: professorRepo}
}

// Create validates the input, checks the professor exists, enforces course
// code uniqueness and persists a new course.
func (s *Service) Create(ctx context.Context, in Input) (*models.Course, error) {
	in = applyDefaults(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByCode(ctx, in.CourseCode); err == nil {
		return nil, ErrCodeExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	course := &models.Course{
		Name:        in.Name,
		CourseCode:  in.CourseCode,
		Description: in.Description,
		MaxCapacity: in.MaxCapacity,
		ProfessorID: in.ProfessorID,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns all courses.
func (s *Service) List(ctx context.Context) ([]models.Course, error) {
	return s.repo.List(ctx)
}

// GetByID returns one course or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return course, nil
}

// Update replaces the writable fields of an existing course. A code change
// must not collide with another course.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*models.Course, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	in = applyDefaults(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	if other, err := s.repo.GetByCode(ctx, in.CourseCode); err == nil {
		if other.ID != existing.ID {
			return nil, ErrCodeExists
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	existing.Name = in.Name
	existing.CourseCode = in.CourseCode
	existing.Description = in.Description
	existing.MaxCapacity = in.MaxCapacity
	existing.ProfessorID = in.ProfessorID

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a course or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SearchByName returns courses whose name contains the text,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, text string) ([]models.Course, error) {
	return s.repo.SearchByName(ctx, text)
}

// SearchByCode returns courses whose course code contains the text,
// case-insensitively.
func (s *Service) SearchByCode(ctx context.Context, text string) ([]models.Course, error) {
	return s.repo.SearchByCode(ctx, text)
}

func applyDefaults(in Input) Input {
	if in.MaxCapacity == 0 {
		in.MaxCapacity = DefaultMaxCapacity
	}
	return in
}

func (s *Service) validate(ctx context.Context, in Input) error {
	if !codePattern.MatchString(in.CourseCode) {
		return ErrInvalidCode
	}
	if in.MaxCapacity < 1 || in.MaxCapacity > DefaultMaxCapacity {
		return ErrInvalidCapacity
	}
	if in.ProfessorID <= 0 {
		return ErrInvalidProfessor
	}
	if _, err := s.professorRepo.GetByID(ctx, in.ProfessorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidProfessor
		}
		return err
	}
	return nil
}
