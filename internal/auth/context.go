package auth

import (
	"context"

	"github.com/google/uuid"
)

type claimsKey struct{}

// ContextWithClaims attaches the authenticated caller's claims; the auth
// middleware sets this once per request.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// UserIDFromContext returns the authenticated user scoping this request.
// Every cashbook record is owned by this ID.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok {
		return uuid.Nil, false
	}
	return c.UserID, true
}
