package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	jwtutil "github.com/Lord-Boros/the-forbidden-button/pkg/jwt"
	"github.com/sirupsen/logrus"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware verifies the Authorization bearer token and threads the
// verified claims into the request context. Handlers load the user record
// themselves; the middleware only establishes identity.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				logrus.Warn("Request without bearer token")
				unauthorized(w)
				return
			}

			tokenStr := strings.TrimPrefix(auth, "Bearer ")
			claims, err := jwtutil.ParseToken(tokenStr, secret)
			if err != nil {
				logrus.WithError(err).Warn("Token verification failed")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the verified claims, or nil when the request
// did not pass the auth middleware.
func GetUserFromContext(ctx context.Context) *jwtutil.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwtutil.Claims)
	return claims
}

// WithUser injects claims into a context. Used by handler tests.
func WithUser(ctx context.Context, claims *jwtutil.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Authentication failed"})
}
