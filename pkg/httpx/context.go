package httpx

import "context"

type ctxKey string

const (
	// CtxKeyCallerID carries the authenticated caller identity (the JWT
	// subject) established by AuthnMiddleware.
	CtxKeyCallerID ctxKey = "caller_id"
)

// CallerID returns the authenticated caller identity from the context, or ""
// when the request is unauthenticated.
func CallerID(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCallerID).(string); ok {
		return v
	}
	return ""
}
