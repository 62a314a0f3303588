package enrollments

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

type mockEnrollmentRepository struct {
	enrollments map[int64]*models.Enrollment
	nextID      int64
}

func newMockEnrollmentRepository() *mockEnrollmentRepository {
	return &mockEnrollmentRepository{enrollments: map[int64]*models.Enrollment{}, nextID: 1}
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = m.nextID
	m.nextID++
	copied := *enrollment
	m.enrollments[enrollment.ID] = &copied
	return nil
}

func (m *mockEnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := m.enrollments[id]
	if !ok {
		return nil, fmt.Errorf("get enrollment: %w", repository.ErrNotFound)
	}
	copied := *enrollment
	return &copied, nil
}

func (m *mockEnrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID && enrollment.CourseID == courseID {
			copied := *enrollment
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get enrollment: %w", repository.ErrNotFound)
}

func (m *mockEnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	if _, ok := m.enrollments[enrollment.ID]; !ok {
		return fmt.Errorf("update enrollment: %w", repository.ErrNotFound)
	}
	copied := *enrollment
	m.enrollments[enrollment.ID] = &copied
	return nil
}

func (m *mockEnrollmentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.enrollments[id]; !ok {
		return fmt.Errorf("delete enrollment: %w", repository.ErrNotFound)
	}
	delete(m.enrollments, id)
	return nil
}

func (m *mockEnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	out := make([]models.Enrollment, 0, len(m.enrollments))
	for _, enrollment := range m.enrollments {
		out = append(out, *enrollment)
	}
	return out, nil
}

func (m *mockEnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.StudentID == studentID {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.CourseID == courseID {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepository) ListByState(ctx context.Context, state models.EnrollmentState) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, enrollment := range m.enrollments {
		if enrollment.EnrollmentState == state {
			out = append(out, *enrollment)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepository) CountActiveByCourse(ctx context.Context, courseID int64) (int, error) {
	count := 0
	for _, enrollment := range m.enrollments {
		if enrollment.CourseID == courseID && enrollment.EnrollmentState == models.EnrollmentActive {
			count++
		}
	}
	return count, nil
}

type mockCourseRepository struct {
	courses map[int64]*models.Course
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error { return nil }

func (m *mockCourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := m.courses[id]
	if !ok {
		return nil, fmt.Errorf("get course: %w", repository.ErrNotFound)
	}
	copied := *course
	return &copied, nil
}

func (m *mockCourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	return nil, fmt.Errorf("get course: %w", repository.ErrNotFound)
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error { return nil }
func (m *mockCourseRepository) Delete(ctx context.Context, id int64) error              { return nil }

func (m *mockCourseRepository) List(ctx context.Context) ([]models.Course, error) { return nil, nil }

func (m *mockCourseRepository) SearchByName(ctx context.Context, fragment string) ([]models.Course, error) {
	return nil, nil
}

func (m *mockCourseRepository) SearchByCode(ctx context.Context, fragment string) ([]models.Course, error) {
	return nil, nil
}

func (m *mockCourseRepository) ListByProfessor(ctx context.Context, professorID int64) ([]models.Course, error) {
	return nil, nil
}

func newTestService(capacity int) (*Service, *mockEnrollmentRepository) {
	repo := newMockEnrollmentRepository()
	courses := &mockCourseRepository{courses: map[int64]*models.Course{
		1: {ID: 1, Name: "Redes", CourseCode: "NET-101", MaxCapacity: capacity, ProfessorID: 7},
	}}
	return NewService(repo, courses), repo
}

func enrollmentInput(studentID int64) Input {
	return Input{
		StudentID:      studentID,
		CourseID:       1,
		EnrollmentDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		State:          models.EnrollmentActive,
	}
}

func TestService_Create(t *testing.T) {
	t.Run("persists and defaults the state", func(t *testing.T) {
		service, _ := newTestService(10)

		in := enrollmentInput(3)
		in.State = ""
		enrollment, err := service.Create(context.Background(), in)
		require.NoError(t, err)

		assert.NotZero(t, enrollment.ID)
		assert.Equal(t, models.EnrollmentActive, enrollment.EnrollmentState)
	})

	t.Run("rejects unknown course", func(t *testing.T) {
		service, _ := newTestService(10)

		in := enrollmentInput(3)
		in.CourseID = 99
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidCourseID)
	})

	t.Run("rejects non-positive ids", func(t *testing.T) {
		service, _ := newTestService(10)

		in := enrollmentInput(0)
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidStudentID)

		in = enrollmentInput(3)
		in.CourseID = 0
		_, err = service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidCourseID)
	})

	t.Run("rejects zero date", func(t *testing.T) {
		service, _ := newTestService(10)

		in := enrollmentInput(3)
		in.EnrollmentDate = time.Time{}
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("rejects unknown state", func(t *testing.T) {
		service, _ := newTestService(10)

		in := enrollmentInput(3)
		in.State = "PAUSED"
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("full course rejects new active enrollments", func(t *testing.T) {
		service, _ := newTestService(2)

		for studentID := int64(1); studentID <= 2; studentID++ {
			_, err := service.Create(context.Background(), enrollmentInput(studentID))
			require.NoError(t, err)
		}

		_, err := service.Create(context.Background(), enrollmentInput(3))
		assert.ErrorIs(t, err, ErrCourseFull)
	})

	t.Run("cancelled enrollments do not hold a seat", func(t *testing.T) {
		service, repo := newTestService(2)

		first, err := service.Create(context.Background(), enrollmentInput(1))
		require.NoError(t, err)
		_, err = service.Create(context.Background(), enrollmentInput(2))
		require.NoError(t, err)

		first.EnrollmentState = models.EnrollmentCancelled
		require.NoError(t, repo.Update(context.Background(), first))

		_, err = service.Create(context.Background(), enrollmentInput(3))
		assert.NoError(t, err)
	})
}

func TestService_ListByState(t *testing.T) {
	service, _ := newTestService(10)

	_, err := service.Create(context.Background(), enrollmentInput(1))
	require.NoError(t, err)

	t.Run("returns matches", func(t *testing.T) {
		enrollments, err := service.ListByState(context.Background(), models.EnrollmentActive)
		require.NoError(t, err)
		assert.Len(t, enrollments, 1)
	})

	t.Run("empty result is an error", func(t *testing.T) {
		_, err := service.ListByState(context.Background(), models.EnrollmentGraduated)
		assert.ErrorIs(t, err, ErrNoneInState)
	})

	t.Run("unknown state is rejected", func(t *testing.T) {
		_, err := service.ListByState(context.Background(), "PAUSED")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	service, _ := newTestService(10)

	created, err := service.Create(context.Background(), enrollmentInput(1))
	require.NoError(t, err)

	in := enrollmentInput(1)
	in.State = models.EnrollmentGraduated
	updated, err := service.Update(context.Background(), created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentGraduated, updated.EnrollmentState)

	_, err = service.Update(context.Background(), 999, in)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, service.Delete(context.Background(), created.ID), ErrNotFound)
}
