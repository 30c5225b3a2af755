// Package middleware holds the layers every guarded request passes through:
// token verification first, then the access-control table.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ecokan/vendo/handlers"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/services"
)

// AuthMiddleware verifies the bearer token on every guarded request.
type AuthMiddleware struct {
	authService services.AuthService
}

func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require rejects the request with 401 unless a valid, unexpired, unrevoked
// token is presented. On success the claims land in the request context.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		claims, err := m.authService.VerifyToken(parts[1])
		if err != nil {
			pkg.Error(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.SessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
