package middleware

import (
	"context"
	"net/http"

	"blogql/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const authCtxKey contextKey = "authContext"

// ResolveAuthContext derives the request's AuthContext from whatever
// jwtauth.Verifier found. A missing or invalid token resolves to
// IsAuth=false and the request continues; rejection is each operation's
// own decision.
func ResolveAuthContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := security.AuthContext{}

		token, claims, err := jwtauth.FromContext(r.Context())
		if err == nil && token != nil {
			userID, idErr := security.GetUserIDFromClaims(claims)
			email, _ := security.GetEmailFromClaims(claims)
			if idErr == nil {
				auth = security.AuthContext{IsAuth: true, UserID: userID, Email: email}
			}
		}

		ctx := context.WithValue(r.Context(), authCtxKey, auth)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithAuthContext attaches an already-resolved AuthContext. Used by
// anything that invokes operations outside the HTTP middleware chain.
func WithAuthContext(ctx context.Context, auth security.AuthContext) context.Context {
	return context.WithValue(ctx, authCtxKey, auth)
}

// AuthFromContext returns the resolved AuthContext; the zero value means
// unauthenticated.
func AuthFromContext(ctx context.Context) security.AuthContext {
	auth, ok := ctx.Value(authCtxKey).(security.AuthContext)
	if !ok {
		return security.AuthContext{}
	}
	return auth
}
