package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ecokan/vendo/handlers"
	"github.com/ecokan/vendo/models"
	"github.com/ecokan/vendo/pkg"
)

// routeKey identifies one guarded route shape. Lookup is an exact string
// match on the normalized route template, not a pattern match, which is why
// normalization has to be deterministic.
type routeKey struct {
	Method string
	Path   string
}

func (k routeKey) String() string {
	return k.Method + " " + k.Path
}

// ACL maps each guarded route to the roles allowed through it. The table is
// static policy; anything not listed is denied.
type ACL struct {
	table map[routeKey]map[models.Role]bool
}

// NewACL builds the access table for the whole HTTP surface.
func NewACL() *ACL {
	both := map[models.Role]bool{models.RoleBuyer: true, models.RoleSeller: true}
	buyerOnly := map[models.Role]bool{models.RoleBuyer: true, models.RoleSeller: false}
	sellerOnly := map[models.Role]bool{models.RoleBuyer: false, models.RoleSeller: true}

	return &ACL{table: map[routeKey]map[models.Role]bool{
		{http.MethodGet, "/users"}:              both,
		{http.MethodGet, "/users/{id}"}:         both,
		{http.MethodPut, "/users/{id}"}:         both,
		{http.MethodPut, "/users/{id}/deposit"}: buyerOnly,
		{http.MethodPut, "/users/{id}/reset"}:   buyerOnly,
		{http.MethodDelete, "/users/{id}"}:      both,
		{http.MethodPost, "/products"}:          sellerOnly,
		{http.MethodPost, "/products/buy"}:      buyerOnly,
		{http.MethodPut, "/products/{id}"}:      sellerOnly,
		{http.MethodDelete, "/products/{id}"}:   sellerOnly,
	}}
}

// Require runs after AuthMiddleware and denies the request unless the
// caller's role is permitted on this route.
func (a *ACL) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(handlers.SessionContextKey).(*models.TokenClaims)
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "You are not authorized")
			return
		}

		key := routeKey{Method: r.Method, Path: NormalizePath(patternPath(r.Pattern))}

		roles, ok := a.table[key]
		if !ok || !roles[claims.Role] {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "You do not have permission to this resource")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Validate confirms every guarded route pattern has a table entry, so a
// missing policy row fails at startup instead of denying live traffic.
// Patterns come in the mux form "METHOD /path/{id}".
func (a *ACL) Validate(patterns []string) error {
	for _, pattern := range patterns {
		method, path, ok := strings.Cut(pattern, " ")
		if !ok {
			return fmt.Errorf("malformed route pattern %q", pattern)
		}
		key := routeKey{Method: method, Path: NormalizePath(path)}
		if _, exists := a.table[key]; !exists {
			return fmt.Errorf("no access table entry for route %q", key)
		}
	}
	return nil
}

// NormalizePath drops empty segments and rebuilds the path with one leading
// slash. "/users//{id}/" and "users/{id}" both normalize to "/users/{id}".
func NormalizePath(path string) string {
	segments := []string{}
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// patternPath strips the method prefix from a mux pattern:
// "PUT /users/{id}/deposit" → "/users/{id}/deposit".
func patternPath(pattern string) string {
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}
