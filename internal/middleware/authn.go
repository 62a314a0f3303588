package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unicampus/campusapi/internal/auth"
)

// bearerPrefix must match exactly, space included, case-sensitive.
const bearerPrefix = "Bearer "

// Authenticate returns the request-authentication middleware. It runs once
// per request: when a valid bearer token is present it installs the principal
// on the context, otherwise it leaves the request unauthenticated. It never
// short-circuits; rejecting unauthenticated requests is the authorization
// middleware's job. Token reject reasons go to the internal log only.
func Authenticate(codec *auth.TokenCodec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			claims, err := codec.Verify(ctx, header[len(bearerPrefix):], time.Now())
			if err != nil {
				logger.Debug("token rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx = auth.WithPrincipal(ctx, auth.Principal{
				Subject: claims.Subject,
				Roles:   claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
