package students

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

type mockStudentRepository struct {
	students map[int64]*models.Student
	nextID   int64
}

func newMockStudentRepository() *mockStudentRepository {
	return &mockStudentRepository{students: map[int64]*models.Student{}, nextID: 1}
}

func (m *mockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	student.ID = m.nextID
	m.nextID++
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *mockStudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, fmt.Errorf("get student: %w", repository.ErrNotFound)
	}
	copied := *student
	return &copied, nil
}

func (m *mockStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	for _, student := range m.students {
		if student.Email == email {
			copied := *student
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get student: %w", repository.ErrNotFound)
}

func (m *mockStudentRepository) GetByStudentNumber(ctx context.Context, number string) (*models.Student, error) {
	for _, student := range m.students {
		if student.StudentNumber == number {
			copied := *student
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get student: %w", repository.ErrNotFound)
}

func (m *mockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	if _, ok := m.students[student.ID]; !ok {
		return fmt.Errorf("update student: %w", repository.ErrNotFound)
	}
	copied := *student
	m.students[student.ID] = &copied
	return nil
}

func (m *mockStudentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.students[id]; !ok {
		return fmt.Errorf("delete student: %w", repository.ErrNotFound)
	}
	delete(m.students, id)
	return nil
}

func (m *mockStudentRepository) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, student := range m.students {
		out = append(out, *student)
	}
	return out, nil
}

func (m *mockStudentRepository) SearchByName(ctx context.Context, fragment string) ([]models.Student, error) {
	return nil, nil
}

func validInput() Input {
	return Input{
		Name:          "Alice",
		LastName:      "Jiménez",
		Email:         "alice@universidad.com",
		Address:       "Calle 1 #2-3",
		Phone:         "+573001234567",
		StudentNumber: "20240001",
		PasswordHash:  "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("persists with defaults", func(t *testing.T) {
		repo := newMockStudentRepository()
		service := NewService(repo)

		in := validInput()
		in.Phone = ""
		student, err := service.Create(context.Background(), in)
		require.NoError(t, err)

		assert.NotZero(t, student.ID)
		assert.Equal(t, DefaultPhone, student.Phone)
		assert.Equal(t, models.EnrollmentActive, student.EnrollmentState)
		assert.Equal(t, models.RoleList{"ROLE_STUDENT"}, student.Roles)
	})

	t.Run("rejects invalid email domain", func(t *testing.T) {
		service := NewService(newMockStudentRepository())

		in := validInput()
		in.Email = "alice@gmail.com"
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		service := NewService(newMockStudentRepository())

		in := validInput()
		in.Phone = "abc123"
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("rejects bad student number", func(t *testing.T) {
		service := NewService(newMockStudentRepository())

		for _, number := range []string{"1234567", "12345678901", "12a45678"} {
			in := validInput()
			in.StudentNumber = number
			_, err := service.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidStudentNumber, "number %q", number)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newMockStudentRepository()
		service := NewService(repo)

		_, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)

		in := validInput()
		in.StudentNumber = "20240002"
		_, err = service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("rejects duplicate student number", func(t *testing.T) {
		repo := newMockStudentRepository()
		service := NewService(repo)

		_, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)

		in := validInput()
		in.Email = "bob@universidad.com"
		_, err = service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrNumberExists)
	})
}

func TestService_GetByID(t *testing.T) {
	repo := newMockStudentRepository()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	got, err := service.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = service.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Update(t *testing.T) {
	repo := newMockStudentRepository()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("preserves password hash and roles", func(t *testing.T) {
		in := validInput()
		in.Name = "Alicia"
		in.PasswordHash = ""

		updated, err := service.Update(context.Background(), created.ID, in)
		require.NoError(t, err)

		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, created.PasswordHash, updated.PasswordHash)
		assert.Equal(t, created.Roles, updated.Roles)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Update(context.Background(), 999, validInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validation still applies", func(t *testing.T) {
		in := validInput()
		in.Email = "nope"
		_, err := service.Update(context.Background(), created.ID, in)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestService_Delete(t *testing.T) {
	repo := newMockStudentRepository()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, service.Delete(context.Background(), created.ID), ErrNotFound)
}
