package repository

import (
	"context"
	"errors"

	"github.com/unicampus/campusapi/internal/db/models"
)

// ErrNotFound is wrapped by every repository when a lookup matches no row, so
// callers can branch with errors.Is without caring which entity missed.
var ErrNotFound = errors.New("not found")

// StudentRepository exposes persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByStudentNumber(ctx context.Context, studentNumber string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Student, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Student, error)
}

// ProfessorRepository exposes persistence operations for professors.
type ProfessorRepository interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	GetByEmail(ctx context.Context, email string) (*models.Professor, error)
	Update(ctx context.Context, professor *models.Professor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Professor, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Professor, error)
}

// CourseRepository exposes persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Course, error)
	SearchByName(ctx context.Context, fragment string) ([]models.Course, error)
	SearchByCode(ctx context.Context, fragment string) ([]models.Course, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]models.Course, error)
}

// EnrollmentRepository exposes persistence operations for enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	ListByState(ctx context.Context, state models.EnrollmentState) ([]models.Enrollment, error)
	CountActiveByCourse(ctx context.Context, courseID int64) (int, error)
}
