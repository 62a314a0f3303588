// Package students holds the business rules for student management.
package students

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/unicampus/campusapi/internal/auth"
	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

// Validation and lookup errors. The text is surfaced verbatim in the error
// envelope.
var (
	ErrInvalidEmail         = errors.New("EL CORREO ELECTRÓNICO NO ES VÁLIDO. DEBE TERMINAR EN @universidad.com")
	ErrInvalidPhone         = errors.New("EL NÚMERO DE TELÉFONO DEBE TENER FORMATO VÁLIDO (7-15 DÍGITOS)")
	ErrInvalidStudentNumber = errors.New("EL NÚMERO DE ESTUDIANTE DEBE TENER ENTRE 8 Y 10 DÍGITOS NUMÉRICOS")
	ErrNotFound             = errors.New("ESTUDIANTE CON ESE ID, NO ENCONTRADO")
	ErrEmailExists          = errors.New("ESTE CORREO ELECTRONICO YA SE ENCUENTRA REGISTRADO")
	ErrNumberExists         = errors.New("ESTE NUMERO DE ESTUDIANTE YA SE ENCUENTRA REGISTRADO")
)

// DefaultPhone is stored when the optional phone field is omitted.
const DefaultPhone = "No especificado"

var (
	emailPattern         = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@universidad\.com$`)
	phonePattern         = regexp.MustCompile(`^\+?[0-9]{7,20}$`)
	studentNumberPattern = regexp.MustCompile(`^[0-9]{8,10}$`)
)

// Input carries the writable fields of a student.
type Input struct {
	Name          string
	LastName      string
	Email         string
	Address       string
	Phone         string
	StudentNumber string
	PasswordHash  string
}

// Service implements student management on top of the repository.
type Service struct {
	repo repository.StudentRepository
}

// NewService constructs a student service.
func NewService(repo repository.StudentRepository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, enforces email and student number uniqueness
// and persists a new student. New students always get the student role.
func (s *Service) Create(ctx context.Context, in Input) (*models.Student, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.repo.GetByStudentNumber(ctx, in.StudentNumber); err == nil {
		return nil, ErrNumberExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	student := &models.Student{
		Name:            in.Name,
		LastName:        in.LastName,
		Email:           in.Email,
		Address:         in.Address,
		Phone:           phoneOrDefault(in.Phone),
		StudentNumber:   in.StudentNumber,
		EnrollmentState: models.EnrollmentActive,
		Roles:           models.RoleList{string(auth.RoleStudent)},
		PasswordHash:    in.PasswordHash,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// List returns all students.
func (s *Service) List(ctx context.Context) ([]models.Student, error) {
	return s.repo.List(ctx)
}

// GetByID returns one student or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return student, nil
}

// Update replaces the writable fields of an existing student. The stored
// password hash and role set are preserved.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*models.Student, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := validate(in); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.LastName = in.LastName
	existing.Email = in.Email
	existing.Address = in.Address
	existing.Phone = phoneOrDefault(in.Phone)
	existing.StudentNumber = in.StudentNumber

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes a student or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SearchByName returns students whose name or last name contains the text,
// case-insensitively.
func (s *Service) SearchByName(ctx context.Context, text string) ([]models.Student, error) {
	return s.repo.SearchByName(ctx, text)
}

func validate(in Input) error {
	if !emailPattern.MatchString(in.Email) {
		return ErrInvalidEmail
	}
	if in.Phone != "" && in.Phone != DefaultPhone && !phonePattern.MatchString(in.Phone) {
		return ErrInvalidPhone
	}
	if !studentNumberPattern.MatchString(in.StudentNumber) {
		return ErrInvalidStudentNumber
	}
	return nil
}

func phoneOrDefault(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return DefaultPhone
	}
	return phone
}
