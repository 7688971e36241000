package middleware

import (
	"net/http"
	"strings"

	"github.com/nj-ramadhan/barakah-be/internal/user"
	"github.com/nj-ramadhan/barakah-be/internal/utils"
)

// RequireAuth guards private routes. Missing credentials answer 401;
// a present but invalid or expired token answers 403, which is the
// signal the mobile client keys its forced logout on.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := user.ParseToken(tokenStr)
		if err != nil || claims.TokenType != user.TokenTypeAccess {
			utils.WriteJSONError(w, "invalid or expired token", http.StatusForbidden)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the user to the context when a valid token is
// present and otherwise lets the request through anonymously. Used by
// routes like donation create that accept guests.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := user.ParseToken(tokenStr); err == nil && claims.TokenType == user.TokenTypeAccess {
				ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username, claims.Email)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}
