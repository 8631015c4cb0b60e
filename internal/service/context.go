package service

import "context"

type ctxKey string

const ctxClaimsKey ctxKey = "claims"

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(ctxClaimsKey).(*Claims)
	return c, ok && c != nil
}

func IsAdminContext(ctx context.Context) bool {
	c, ok := ClaimsFromContext(ctx)
	return ok && c.IsAdmin
}
