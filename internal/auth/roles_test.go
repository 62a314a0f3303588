package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeRole(t *testing.T) {
	t.Run("passes known roles through", func(t *testing.T) {
		for _, name := range []string{"ROLE_ADMIN", "ROLE_PROFESSOR", "ROLE_STUDENT"} {
			role, err := CanonicalizeRole(name)
			require.NoError(t, err)
			assert.Equal(t, Role(name), role)
		}
	})

	t.Run("trims and uppercases", func(t *testing.T) {
		role, err := CanonicalizeRole("  role_admin\t")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, role)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once, err := CanonicalizeRole("role_student")
		require.NoError(t, err)
		twice, err := CanonicalizeRole(string(once))
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, name := range []string{"", "ROLE_SUPERUSER", "ADMIN", "ROLE_ADMIN EXTRA"} {
			_, err := CanonicalizeRole(name)
			assert.Error(t, err, "name %q", name)
		}
	})
}

func TestCanonicalizeRoles(t *testing.T) {
	t.Run("preserves order and drops duplicates", func(t *testing.T) {
		roles, err := CanonicalizeRoles([]string{"role_professor", "ROLE_ADMIN", " role_professor ", "ROLE_ADMIN"})
		require.NoError(t, err)
		assert.Equal(t, []Role{RoleProfessor, RoleAdmin}, roles)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		roles, err := CanonicalizeRoles(nil)
		require.NoError(t, err)
		assert.Empty(t, roles)
	})

	t.Run("one bad name fails the whole set", func(t *testing.T) {
		_, err := CanonicalizeRoles([]string{"ROLE_ADMIN", "ROLE_WIZARD"})
		assert.Error(t, err)
	})
}

func TestHasAny(t *testing.T) {
	held := []Role{RoleStudent}

	assert.True(t, HasAny(held, []Role{RoleAdmin, RoleStudent}))
	assert.False(t, HasAny(held, []Role{RoleAdmin, RoleProfessor}))
	assert.False(t, HasAny(nil, []Role{RoleAdmin}))
	assert.False(t, HasAny(held, nil))
}

func TestHasAll(t *testing.T) {
	held := []Role{RoleAdmin, RoleProfessor}

	assert.True(t, HasAll(held, []Role{RoleProfessor}))
	assert.True(t, HasAll(held, []Role{RoleAdmin, RoleProfessor}))
	assert.False(t, HasAll(held, []Role{RoleAdmin, RoleStudent}))
	assert.True(t, HasAll(held, nil))
}
