package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userKey contextKey = "user_email"

// TokenVerifier resolves a bearer token to the email of the user it was issued to.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			email, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), email)))
		})
	}
}

func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey, email)
}

// UserFromContext returns the authenticated email, or "" outside an authenticated request.
func UserFromContext(ctx context.Context) string {
	email, _ := ctx.Value(userKey).(string)
	return email
}
