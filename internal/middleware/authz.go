package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/apierror"
	"github.com/unicampus/campusapi/internal/auth"
)

// Authorize returns the authorization middleware. It resolves the route
// policy and enforces it against the ambient principal. The split is strict:
// missing or invalid authentication is 401, a valid principal without the
// needed role is 403.
func Authorize(table *auth.PolicyTable, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy := table.Resolve(r.Method, r.URL.Path)
			if policy.Kind == auth.PolicyPublic {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				logger.Debug("request rejected, no principal",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				apierror.Write(w, r, http.StatusUnauthorized, apierror.MessageMissingToken)
				return
			}

			if !policy.RolesSatisfiedBy(principal) {
				logger.Debug("request rejected, insufficient role",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("subject", principal.Subject),
				)
				apierror.Write(w, r, http.StatusForbidden, apierror.MessageInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
