package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/teachniche/marketplace/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

// tokenValidator is swappable so middleware tests can stub validation.
var tokenValidator JWTServiceInterface = &JWTService{}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokenValidator.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
