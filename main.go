// Package main is the entry point of the vendo backend.
//
// This file is the dependency injection wire-up:
//  1. Load config
//  2. Initialize database
//  3. Create repositories
//  4. Create session caches
//  5. Create services
//  6. Create handlers and middleware
//  7. Register routes, validate the access-control table
//  8. Configure CORS
//  9. Start the HTTP server with graceful shutdown
//
// No globals. Everything is constructed here and passed down.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/ecokan/vendo/config"
	"github.com/ecokan/vendo/database"
	"github.com/ecokan/vendo/handlers"
	"github.com/ecokan/vendo/middleware"
	"github.com/ecokan/vendo/pkg/sessioncache"
	"github.com/ecokan/vendo/repository"
	"github.com/ecokan/vendo/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] vendo server starting...")

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// 2. Database
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to open embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// 3. Repository layer
	userRepo := repository.NewSQLiteUserRepo(db.Conn)
	productRepo := repository.NewSQLiteProductRepo(db.Conn)

	// 4. Session caches
	//
	// Token lifetime and cache TTL are the same value on purpose: an entry
	// that fell out of the cache corresponds to a token that expired anyway.
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	sessions := sessioncache.New(cfg.Session.CacheSize, tokenTTL)

	// 5. Service layer
	authService := services.NewAuthService(userRepo, sessions, cfg.Auth.PrivateKey, cfg.Auth.PublicKey, tokenTTL)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(db.Conn, productRepo, userRepo)

	// 6. Handlers and middleware
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	acl := middleware.NewACL()

	// 7. Routes
	mux, guardedPatterns := newRouter(authHandler, userHandler, productHandler, authMiddleware, acl)

	// Every guarded route must have a row in the access-control table.
	// Failing at startup beats a 403 surprise in production.
	if err := acl.Validate(guardedPatterns); err != nil {
		log.Fatalf("[main] access-control table incomplete: %v", err)
	}

	// 8. CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := corsHandler.Handler(mux)

	// 9. HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
