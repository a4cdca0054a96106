package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/auralis/auralis/internal/ctxkeys"
	"github.com/auralis/auralis/internal/service"
)

type tokenVerifier interface {
	UserID(token string) (string, error)
}

type adminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// AuthMiddleware reads a JWT from the Authorization header or the auth cookie
// and adds the user id to the context if it verifies.
func AuthMiddleware(auth tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				cookie, err := r.Cookie(service.AuthCookieName)
				if err != nil {
					// No token, continue without auth
					next.ServeHTTP(w, r)
					return
				}
				token = cookie.Value
			}

			userID, err := auth.UserID(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireAdmin allows only authenticated admins. Others get 403.
func RequireAdmin(admins adminChecker, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		userID := ctxkeys.UserID(r.Context())

		ok, err := admins.IsAdmin(r.Context(), userID)
		if err != nil {
			slog.Error("failed to check admin", "error", err, "user_id", userID)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
