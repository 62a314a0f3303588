// Package enrollments holds the business rules linking students to courses.
package enrollments

import (
	"context"
	"errors"
	"time"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

var (
	ErrNotFound         = errors.New("NO SE ENCONTRÓ UNA MATRÍCULA CON EL ID ESPECIFICADO")
	ErrInvalidStudentID = errors.New("NO SE PUEDE CREAR UNA MATRÍCULA CON UN ID DE ESTUDIANTE INVÁLIDO")
	ErrInvalidCourseID  = errors.New("NO SE PUEDE CREAR UNA MATRÍCULA CON UN ID DE CURSO INVÁLIDO")
	ErrInvalidDate      = errors.New("NO SE PUEDE CREAR UNA MATRÍCULA CON UNA FECHA INVÁLIDA")
	ErrInvalidState     = errors.New("EL ESTADO DE LA MATRÍCULA NO ES VÁLIDO. SOLO SE PERMITEN: ACTIVE, CANCELLED Y GRADUATED")
	ErrNoneInState      = errors.New("NO SE ENCONTRARON MATRÍCULAS CON EL ESTADO ESPECIFICADO")
	ErrCourseFull       = errors.New("EL CURSO HA ALCANZADO SU CAPACIDAD MÁXIMA DE ESTUDIANTES")
)

// Input carries the writable fields of an enrollment.
type Input struct {
	StudentID      int64
	CourseID       int64
	EnrollmentDate time.Time
	State          models.EnrollmentState
}

// Service implements enrollment management on top of the repositories.
type Service struct {
	repo       repository.EnrollmentRepository
	courseRepo repository.CourseRepository
}

// NewService constructs an enrollment service.
func NewService(repo repository.EnrollmentRepository, courseRepo repository.CourseRepository) *Service {
	return &Service{repo: repo, courseRepo: courseRepo}
}

// Create validates the input, checks the course still has a free seat and
// persists a new enrollment. A zero state defaults to ACTIVE.
func (s *Service) Create(ctx context.Context, in Input) (*models.Enrollment, error) {
	in = applyDefaults(in)
	if err := validate(in); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, in.CourseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCourseID
		}
		return nil, err
	}

	active, err := s.repo.CountActiveByCourse(ctx, in.CourseID)
	if err != nil {
		return nil, err
	}
	if active >= course.MaxCapacity {
		return nil, ErrCourseFull
	}

	enrollment := &models.Enrollment{
		StudentID:       in.StudentID,
		CourseID:        in.CourseID,
		EnrollmentDate:  in.EnrollmentDate,
		EnrollmentState: in.State,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// List returns all enrollments.
func (s *Service) List(ctx context.Context) ([]models.Enrollment, error) {
	return s.repo.List(ctx)
}

// GetByID returns one enrollment or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// Update replaces the writable fields of an existing enrollment.
func (s *Service) Update(ctx context.Context, id int64, in Input) (*models.Enrollment, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	in = applyDefaults(in)
	if err := validate(in); err != nil {
		return nil, err
	}

	existing.StudentID = in.StudentID
	existing.CourseID = in.CourseID
	existing.EnrollmentDate = in.EnrollmentDate
	existing.EnrollmentState = in.State

	if err := s.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existing, nil
}

// Delete removes an enrollment or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListByStudent returns the enrollments of one student.
func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByCourse returns the enrollments in one course.
func (s *Service) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	return s.repo.ListByCourse(ctx, courseID)
}

// ListByState returns the enrollments in a state; an empty result is an
// error, matching the lookup endpoints' contract.
func (s *Service) ListByState(ctx context.Context, state models.EnrollmentState) ([]models.Enrollment, error) {
	if !state.Valid() {
		return nil, ErrInvalidState
	}
	enrollments, err := s.repo.ListByState(ctx, state)
	if err != nil {
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ErrNoneInState
	}
	return enrollments, nil
}

func applyDefaults(in Input) Input {
	if in.State == "" {
		in.State = models.EnrollmentActive
	}
	return in
}

func validate(in Input) error {
	if in.CourseID <= 0 {
		return ErrInvalidCourseID
	}
	if in.StudentID <= 0 {
		return ErrInvalidStudentID
	}
	if in.EnrollmentDate.IsZero() {
		return ErrInvalidDate
	}
	if !in.State.Valid() {
		return ErrInvalidState
	}
	return nil
}
