package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
	"github.com/ecokan/vendo/services"
)

// UserHandler serves the /users endpoints.
type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// POST /users — public, this is registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// List godoc
// GET /users — scoped to the caller's own record.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	users, err := h.userService.List(r.Context(), session.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, users)
}

// Get godoc
// GET /users/{id} — self-only.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	user, err := h.userService.Get(r.Context(), session.UserID, id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// Update godoc
// PUT /users/{id} — self-only, role is the only mutable field.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	user, err := h.userService.UpdateRole(r.Context(), session.UserID, id, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// Deposit godoc
// PUT /users/{id}/deposit — buyers only; the coin lands on the session user.
func (h *UserHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	user, err := h.userService.Deposit(r.Context(), session.UserID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// Reset godoc
// PUT /users/{id}/reset — buyers only; zeroes the session user's balance.
func (h *UserHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	user, err := h.userService.Reset(r.Context(), session.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// Delete godoc
// DELETE /users/{id} — self-only.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
		return
	}

	id, err := pathID(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := h.userService.Delete(r.Context(), session.UserID, id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}

// pathID parses the {id} path segment as an integer.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
