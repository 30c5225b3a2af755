// Package config loads all application configuration from environment
// variables, with .env support for development.
package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Config carries every runtime setting, grouped by concern.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Session  SessionConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string
}

// AuthConfig holds the token signing key pair and validity window.
// Tokens are signed with the private key and verified with the public one,
// so verification-only replicas never need the private half.
type AuthConfig struct {
	PrivateKey    *rsa.PrivateKey
	PublicKey     *rsa.PublicKey
	TokenTTLHours int
}

// SessionConfig bounds the in-memory session caches.
type SessionConfig struct {
	CacheSize int
}

// Load reads the environment into a Config. A .env file is loaded first when
// present; missing .env is not an error, production uses real env variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %w", err)
	}

	cacheSize, err := strconv.Atoi(getEnv("SESSION_CACHE_SIZE", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_CACHE_SIZE: %w", err)
	}

	privateKey, publicKey, err := loadKeyPair()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/vendo.db"),
		},
		Auth: AuthConfig{
			PrivateKey:    privateKey,
			PublicKey:     publicKey,
			TokenTTLHours: ttlHours,
		},
		Session: SessionConfig{
			CacheSize: cacheSize,
		},
	}

	return cfg, nil
}

// Addr returns the listen address, e.g. "0.0.0.0:8080".
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// loadKeyPair reads AUTH_PRIVATE_KEY and AUTH_PUBLIC_KEY. The values are PEM
// blocks; escaped "\n" sequences are unescaped so the keys can live in a
// single-line env var.
func loadKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privatePEM := pemFromEnv("AUTH_PRIVATE_KEY")
	publicPEM := pemFromEnv("AUTH_PUBLIC_KEY")
	if privatePEM == "" || publicPEM == "" {
		return nil, nil, fmt.Errorf("AUTH_PRIVATE_KEY and AUTH_PUBLIC_KEY are required")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid AUTH_PRIVATE_KEY: %w", err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid AUTH_PUBLIC_KEY: %w", err)
	}

	return privateKey, publicKey, nil
}

func pemFromEnv(key string) string {
	return strings.ReplaceAll(os.Getenv(key), `\n`, "\n")
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
