// Package handlers is the HTTP boundary. A handler parses the request, calls
// the service layer, and writes the result — business logic stays out.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/services"
)

// AuthHandler serves the sign-in and logout-all endpoints.
type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignIn godoc
// POST /auth/sign-in
// Body: { "username": "...", "password": "..." }
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	token, err := h.authService.SignIn(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// LogoutAll godoc
// POST /auth/logout/all
// Body: { "username": "...", "password": "..." }
// Password-based on purpose: it must work for a user who lost the token.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := h.authService.LogoutAll(r.Context(), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "All sessions have been logged out"})
}

// contextKey is a private type so context values cannot collide with keys
// set by other packages.
type contextKey string

// SessionContextKey carries the verified *models.TokenClaims, put there by
// the auth middleware.
const SessionContextKey contextKey = "session"

// sessionFromContext pulls the verified claims for the current request.
func sessionFromContext(r *http.Request) (*models.TokenClaims, bool) {
	claims, ok := r.Context().Value(SessionContextKey).(*models.TokenClaims)
	return claims, ok
}
