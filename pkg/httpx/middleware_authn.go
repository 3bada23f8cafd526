package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rentloop/handoff/pkg/slogx"
)

// AuthnMiddleware verifies the platform-issued bearer JWT (HS256, shared
// secret) and injects its subject into the request context as the caller
// identity. Token issuance itself lives in the platform's auth service; this
// service only consumes identities.
func AuthnMiddleware(secret []byte) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims := jwt.RegisteredClaims{}
			_, err := jwt.ParseWithClaims(raw, &claims,
				func(t *jwt.Token) (any, error) { return secret, nil },
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			)
			if err != nil {
				log.Warn("bearer token verification failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}
			if claims.Subject == "" {
				writeBearerError(w, "token missing subject")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyCallerID, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
