package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecokan/vendo/handlers"
	"github.com/ecokan/vendo/models"
)

// serveAs routes the request through a real mux so r.Pattern is populated,
// with claims for the given role already in the context.
func serveAs(t *testing.T, role models.Role, method, pattern, target string) *httptest.ResponseRecorder {
	t.Helper()

	acl := NewACL()
	mux := http.NewServeMux()
	mux.Handle(method+" "+pattern, acl.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	claims := &models.TokenClaims{UserID: 1, Username: "franz", Role: role}
	req := httptest.NewRequest(method, target, nil)
	req = req.WithContext(context.WithValue(req.Context(), handlers.SessionContextKey, claims))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRequireAllowsPermittedRole(t *testing.T) {
	rec := serveAs(t, models.RoleBuyer, http.MethodPut, "/users/{id}/deposit", "/users/1/deposit")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveAs(t, models.RoleSeller, http.MethodPost, "/products", "/products")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireDeniesWrongRole(t *testing.T) {
	rec := serveAs(t, models.RoleSeller, http.MethodPut, "/users/{id}/deposit", "/users/1/deposit")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message": "You do not have permission to this resource"}`, rec.Body.String())

	rec = serveAs(t, models.RoleBuyer, http.MethodPost, "/products", "/products")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireDeniesUnlistedRoute(t *testing.T) {
	rec := serveAs(t, models.RoleBuyer, http.MethodGet, "/unknown", "/unknown")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireWithoutClaims(t *testing.T) {
	acl := NewACL()
	handler := acl.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message": "You are not authorized"}`, rec.Body.String())
}

func TestValidateCoversGuardedRoutes(t *testing.T) {
	acl := NewACL()

	require.NoError(t, acl.Validate([]string{
		"GET /users",
		"GET /users/{id}",
		"PUT /users/{id}",
		"DELETE /users/{id}",
		"PUT /users/{id}/deposit",
		"PUT /users/{id}/reset",
		"POST /products",
		"POST /products/buy",
		"PUT /products/{id}",
		"DELETE /products/{id}",
	}))

	assert.Error(t, acl.Validate([]string{"GET /unknown"}))
	assert.Error(t, acl.Validate([]string{"not-a-pattern"}))
}

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/users/{id}":   "/users/{id}",
		"users/{id}":    "/users/{id}",
		"/users//{id}/": "/users/{id}",
		"//users":       "/users",
		"/":             "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePath(in), "input %q", in)
	}
}
