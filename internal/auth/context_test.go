package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrincipalContext(t *testing.T) {
	t.Run("empty context has no principal", func(t *testing.T) {
		_, ok := PrincipalFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), Principal{
			Subject: "alice@universidad.com",
			Roles:   []Role{RoleStudent},
		})

		got, ok := PrincipalFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice@universidad.com", got.Subject)
		assert.Equal(t, []Role{RoleStudent}, got.Roles)
	})

	t.Run("installation is set-once", func(t *testing.T) {
		ctx := WithPrincipal(context.Background(), Principal{Subject: "first@universidad.com", Roles: []Role{RoleAdmin}})
		ctx = WithPrincipal(ctx, Principal{Subject: "second@universidad.com", Roles: []Role{RoleStudent}})

		got, ok := PrincipalFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "first@universidad.com", got.Subject)
	})
}
