package professors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicampus/campusapi/internal/db/models"
	"github.com/unicampus/campusapi/internal/repository"
)

type mockProfessorRepository struct {
	professors map[int64]*models.Professor
	nextID     int64
}

func newMockProfessorRepository() *mockProfessorRepository {
	return &mockProfessorRepository{professors: map[int64]*models.Professor{}, nextID: 1}
}

func (m *mockProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	professor.ID = m.nextID
	m.nextID++
	copied := *professor
	m.professors[professor.ID] = &copied
	return nil
}

func (m *mockProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	professor, ok := m.professors[id]
	if !ok {
		return nil, fmt.Errorf("get professor: %w", repository.ErrNotFound)
	}
	copied := *professor
	return &copied, nil
}

func (m *mockProfessorRepository) GetByEmail(ctx context.Context, email string) (*models.Professor, error) {
	for _, professor := range m.professors {
		if professor.Email == email {
			copied := *professor
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get professor: %w", repository.ErrNotFound)
}

func (m *mockProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	if _, ok := m.professors[professor.ID]; !ok {
		return fmt.Errorf("update professor: %w", repository.ErrNotFound)
	}
	copied := *professor
	m.professors[professor.ID] = &copied
	return nil
}

func (m *mockProfessorRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.professors[id]; !ok {
		return fmt.Errorf("delete professor: %w", repository.ErrNotFound)
	}
	delete(m.professors, id)
	return nil
}

func (m *mockProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	out := make([]models.Professor, 0, len(m.professors))
	for _, professor := range m.professors {
		out = append(out, *professor)
	}
	return out, nil
}

func (m *mockProfessorRepository) SearchByName(ctx context.Context, fragment string) ([]models.Professor, error) {
	return nil, nil
}

func validInput() Input {
	return Input{
		Name:         "Pedro",
		LastName:     "Gómez",
		Email:        "pedro@universidad.com",
		Phone:        "3001234567",
		Address:      "Carrera 9 #10-11",
		City:         "Bogotá",
		PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("empty roles default to professor", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		professor, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, models.RoleList{"ROLE_PROFESSOR"}, professor.Roles)
	})

	t.Run("roles are canonicalized", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		in := validInput()
		in.Roles = []string{" role_admin ", "ROLE_PROFESSOR"}
		professor, err := service.Create(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, models.RoleList{"ROLE_ADMIN", "ROLE_PROFESSOR"}, professor.Roles)
	})

	t.Run("student role is not assignable", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		in := validInput()
		in.Roles = []string{"ROLE_STUDENT"}
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidRoles)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		in := validInput()
		in.Roles = []string{"ROLE_DEAN"}
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidRoles)
	})

	t.Run("rejects non-university email", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		in := validInput()
		in.Email = "pedro@hotmail.com"
		_, err := service.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		service := NewService(newMockProfessorRepository())

		_, err := service.Create(context.Background(), validInput())
		require.NoError(t, err)

		_, err = service.Create(context.Background(), validInput())
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Update(t *testing.T) {
	repo := newMockProfessorRepository()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	t.Run("preserves the password hash", func(t *testing.T) {
		in := validInput()
		in.City = "Medellín"
		in.PasswordHash = ""

		updated, err := service.Update(context.Background(), created.ID, in)
		require.NoError(t, err)
		assert.Equal(t, "Medellín", updated.City)
		assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := service.Update(context.Background(), 999, validInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	repo := newMockProfessorRepository()
	service := NewService(repo)

	created, err := service.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, service.Delete(context.Background(), created.ID), ErrNotFound)
}
