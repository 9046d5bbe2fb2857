package middleware

import (
	"net/http"
	"strings"

	"github.com/tasknest/tasknest-backend/internal/utils"
)

// TokenVerifier resolves a bearer token to a user id
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// AuthMiddleware validates bearer tokens in the Authorization header and
// stores the user id in the request context
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(authHeader, "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "No token provided")
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "Token expired/invalid")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUserID(r.Context(), userID)))
		})
	}
}
