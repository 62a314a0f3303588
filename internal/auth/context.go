package auth

import "context"

// Realm identifies the credential store a principal belongs to.
type Realm string

const (
	RealmStudent   Realm = "student"
	RealmProfessor Realm = "professor"
)

// Principal is the authenticated identity attached to a request. It is
// constructed by the request-authentication middleware from verified token
// claims, lives only for the duration of the request, and is never persisted.
type Principal struct {
	// Subject is the principal's email, unique within its realm.
	Subject string
	// Roles is the canonicalized, non-empty role set from the token.
	Roles []Role
}

type principalContextKey struct{}

// WithPrincipal installs the authenticated principal on the context.
// Installation is set-once: if a principal is already present the context is
// returned unchanged, so the slot can only move NONE → AUTHENTICATED.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	if _, ok := PrincipalFromContext(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext retrieves the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
