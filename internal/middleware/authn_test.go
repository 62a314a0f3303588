package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/auth"
)

func newTestCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	return codec
}

// principalProbe records whether a principal reached the downstream handler.
type principalProbe struct {
	called    bool
	principal auth.Principal
	ok        bool
}

func (p *principalProbe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		p.principal, p.ok = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	codec := newTestCodec(t)
	mw := Authenticate(codec, zap.NewNop())

	token, err := codec.Mint("alice@universidad.com", []string{"ROLE_STUDENT"}, time.Now())
	require.NoError(t, err)

	t.Run("valid bearer token installs the principal", func(t *testing.T) {
		probe := &principalProbe{}
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		mw(probe.handler()).ServeHTTP(httptest.NewRecorder(), req)

		require.True(t, probe.called)
		require.True(t, probe.ok)
		assert.Equal(t, "alice@universidad.com", probe.principal.Subject)
		assert.Equal(t, []auth.Role{auth.RoleStudent}, probe.principal.Roles)
	})

	t.Run("missing header passes through unauthenticated", func(t *testing.T) {
		probe := &principalProbe{}
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante/1", nil)

		mw(probe.handler()).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, probe.called)
		assert.False(t, probe.ok)
	})

	t.Run("lowercase scheme is not bearer", func(t *testing.T) {
		probe := &principalProbe{}
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante/1", nil)
		req.Header.Set("Authorization", "bearer "+token)

		mw(probe.handler()).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, probe.called)
		assert.False(t, probe.ok)
	})

	t.Run("invalid token still reaches the handler", func(t *testing.T) {
		probe := &principalProbe{}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante/1", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")

		mw(probe.handler()).ServeHTTP(rec, req)

		assert.True(t, probe.called)
		assert.False(t, probe.ok)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("expired token passes through unauthenticated", func(t *testing.T) {
		stale, err := codec.Mint("alice@universidad.com", []string{"ROLE_STUDENT"}, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		probe := &principalProbe{}
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante/1", nil)
		req.Header.Set("Authorization", "Bearer "+stale)

		mw(probe.handler()).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, probe.called)
		assert.False(t, probe.ok)
	})
}
