package auth

import (
	"context"

	"github.com/devpress/devpress/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal attaches the authenticated principal to ctx.
func ContextWithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal set by the auth
// middleware. The second return is false when no middleware ran.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}

// UserIDFromContext returns the authenticated user ID, or zero when
// the request is unauthenticated.
func UserIDFromContext(ctx context.Context) int64 {
	p, ok := PrincipalFromContext(ctx)
	if !ok {
		return 0
	}
	return p.UserID
}
