package httpx

import (
	"context"

	"github.com/aussiebroadwan/aurora/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID      ctxKey = "user_id"
	CtxKeyPermissions ctxKey = "permissions"
	CtxKeyClaims      ctxKey = "claims"
)

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// ClaimsFromContext returns the verified access-token claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

func permissionsFromCtx(ctx context.Context) []string {
	if v, ok := ctx.Value(CtxKeyPermissions).([]string); ok {
		return v
	}
	return nil
}

// ContextWithClaims injects claims the same way AuthnMiddleware does. It is
// exported for handler tests that bypass token verification.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyPermissions, c.Permissions)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
