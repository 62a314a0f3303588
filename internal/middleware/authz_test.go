package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/auth"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apierror.Response {
	t.Helper()
	var envelope apierror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestAuthorize(t *testing.T) {
	mw := Authorize(auth.DefaultPolicyTable(), zap.NewNop())

	t.Run("public route needs no principal", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/cursos", nil)

		mw(okHandler(&called)).ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected route without principal is 401", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/estudiante", nil)

		mw(okHandler(&called)).ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, http.StatusUnauthorized, envelope.Status)
		assert.Equal(t, "Unauthorized", envelope.Error)
		assert.Equal(t, apierror.MessageMissingToken, envelope.Message)
		assert.Equal(t, "/api/estudiante", envelope.Path)
	})

	t.Run("principal without the needed role is 403", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/estudiante/42", nil)
		ctx := auth.WithPrincipal(req.Context(), auth.Principal{
			Subject: "alice@universidad.com",
			Roles:   []auth.Role{auth.RoleStudent},
		})

		mw(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		envelope := decodeEnvelope(t, rec)
		assert.Equal(t, apierror.MessageInsufficientRole, envelope.Message)
	})

	t.Run("principal with a matching role passes", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/estudiante/42", nil)
		ctx := auth.WithPrincipal(req.Context(), auth.Principal{
			Subject: "root@universidad.com",
			Roles:   []auth.Role{auth.RoleAdmin},
		})

		mw(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unlisted route requires any authenticated principal", func(t *testing.T) {
		called := false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/enrollments", nil)

		mw(okHandler(&called)).ServeHTTP(rec, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		called = false
		rec = httptest.NewRecorder()
		ctx := auth.WithPrincipal(req.Context(), auth.Principal{
			Subject: "alice@universidad.com",
			Roles:   []auth.Role{auth.RoleStudent},
		})
		mw(okHandler(&called)).ServeHTTP(rec, req.WithContext(ctx))
		assert.True(t, called)
	})
}
