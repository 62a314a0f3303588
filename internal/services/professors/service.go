// Package professors holds the business rules for professor management.
package professors

import (
	"context"
	"errors"
	"regexp"

	"github.com/unicampus/campusapi/internal/auth"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

var (
	ErrInvalidEmail = errors.New("EL CORREO ELECTRÓNICO DEBE TENER FORMATO VÁLIDO DE DOMINIO UNIVERSITARIO (@universidad.com)")
	ErrInvalidPhone = errors.New("EL NÚMERO DE TELÉFONO DEBE TENER FORMATO VÁLIDO (7-15 DÍGITOS)")
	ErrInvalidRoles = errors.New("LOS ROLES ASIGNADOS AL PROFESOR NO SON VÁLIDOS. SOLO SE PERMITEN: ROLE_PROFESSOR Y ROLE_ADMIN")
	ErrNotFound     = errors.New("EL PROFESOR CON ESTE ID NO EXISTE EN EL SISTEMA")
	ErrEmailExists  = errors.New("EL PROFESOR CON ESTE CORREO ELECTRÓNICO YA EXISTE EN EL SISTEMA")
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@universidad\.com$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,20}$`)
)

// Input carries the writable fields of a professor.
type Input struct {
	Name         string
	LastName     string
	Email        string
	Phone        string
	Address      string
	City         string
	Roles        []string
	PasswordHash string
}

// Service implements professor management on top of the repository.
type Service struct {
	repo repository.ProfessorRepository
}

// NewService constructs a professor service.
func NewService(repo repository.ProfessorRepository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, enforces email uniqueness and persists a new
// professor. An empty role set defaults to the professor role.
func (s *Service) Create(ctx context.Context, in Input) (*models.Professor, error) {
	roles, err := validate(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	professor := &models.Professor{
		Name:         in.Name,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		Roles:        roles,
		PasswordHash: in.PasswordHash,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, err
	}
	return professor, nil
}

// List returns all professors.
func (s *Service) List(ctx context.Context) ([]models.Professor, error) {
	return s.repo.List(ctx)
}

// GetByID returns one professor or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return professor, nil
}

// Update replaces the writable fields of an existing professor. The stored
// password hash is preserved.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*models.Professor, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	roles, err := validate(in)
	if err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.LastName = in.LastName
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.Address = in.Address
	existing.City = in.City
	existing.Roles = roles

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a professor or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SearchByName returns professors whose name or last name contains the text,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, text string) ([]models.Professor, error) {
	return s.repo.SearchByName(ctx, text)
}

// validate checks the input and returns the canonical role set to store.
// Professors may only hold the professor and admin roles.
func validate(in Input) (models.RoleList, error) {
	if !emailPattern.MatchString(in.Email) {
		return nil, ErrInvalidEmail
	}
	if in.Phone != "" && !phonePattern.MatchString(in.Phone) {
		return nil, ErrInvalidPhone
	}

	if len(in.Roles) == 0 {
		return models.RoleList{string(auth.RoleProfessor)}, nil
	}

	canonical, err := auth.CanonicalizeRoles(in.Roles)
	if err != nil {
		return nil, ErrInvalidRoles
	}
	for _, role := range canonical {
		if role != auth.RoleProfessor && role != auth.RoleAdmin {
			return nil, ErrInvalidRoles
		}
	}
	return models.RoleList(auth.RoleStrings(canonical)), nil
}
