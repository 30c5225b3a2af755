package main

import (
	"fmt"
	"net/http"

	"github.com/ecokan/vendo/handlers"
	"github.com/ecokan/vendo/middleware"
)

// newRouter registers every route on a fresh mux. It returns the guarded
// route patterns so main can check the access-control table covers them all.
func newRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	authMiddleware *middleware.AuthMiddleware,
	acl *middleware.ACL,
) (*http.ServeMux, []string) {
	mux := http.NewServeMux()

	var guardedPatterns []string

	// Guarded routes pass through the auth middleware first, then the
	// role table. Both run after routing so r.Pattern is populated.
	guarded := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authMiddleware.Require(acl.Require(h)))
		guardedPatterns = append(guardedPatterns, pattern)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok","service":"vendo"}`)
	})

	// Auth. Both endpoints authenticate by credentials in the body, so
	// neither needs a token. Logout must stay reachable for a user whose
	// token was stolen and used elsewhere.
	mux.HandleFunc("POST /auth/sign-in", authHandler.SignIn)
	mux.HandleFunc("POST /auth/logout/all", authHandler.LogoutAll)

	// Users. Registration is public; everything else requires a session.
	mux.HandleFunc("POST /users", userHandler.Create)
	guarded("GET /users", userHandler.List)
	guarded("GET /users/{id}", userHandler.Get)
	guarded("PUT /users/{id}", userHandler.Update)
	guarded("DELETE /users/{id}", userHandler.Delete)
	guarded("PUT /users/{id}/deposit", userHandler.Deposit)
	guarded("PUT /users/{id}/reset", userHandler.Reset)

	// Products. Browsing is public, selling and buying are not.
	mux.HandleFunc("GET /products", productHandler.List)
	mux.HandleFunc("GET /products/{id}", productHandler.Get)
	guarded("POST /products", productHandler.Create)
	guarded("POST /products/buy", productHandler.Buy)
	guarded("PUT /products/{id}", productHandler.Update)
	guarded("DELETE /products/{id}", productHandler.Delete)

	return mux, guardedPatterns
}
