package middleware

import (
	"context"

	"github.com/dokanly/posledger/internal/core/domain"
)

const (
	userIDCtxKey = contextKey("userID")
	tenantCtxKey = contextKey("tenant")
)

// GetUserIDFromCtx retrieves the authenticated user ID from the context.
func GetUserIDFromCtx(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	return userID, ok
}

// GetTenantFromCtx retrieves the tenant context placed by the auth
// middleware. The ledger trusts this scope has already been authorized.
func GetTenantFromCtx(ctx context.Context) (domain.TenantContext, bool) {
	tc, ok := ctx.Value(tenantCtxKey).(domain.TenantContext)
	return tc, ok
}

// WithIdentity returns a context carrying the user ID and tenant context.
// Exposed for tests and for the auth middleware.
func WithIdentity(ctx context.Context, userID string, tc domain.TenantContext) context.Context {
	ctx = context.WithValue(ctx, userIDCtxKey, userID)
	return context.WithValue(ctx, tenantCtxKey, tc)
}
