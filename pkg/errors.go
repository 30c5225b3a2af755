// Package pkg holds utilities shared across the project.
// This file defines the domain-level error taxonomy.
//
// Services return these sentinels, usually wrapped with fmt.Errorf("%w: detail", ...),
// and the handler layer maps them to HTTP status codes. Comparison is done with
// errors.Is, so wrapped errors still match.
package pkg

import "errors"

// Domain-level errors. The mapping to HTTP status codes lives in response.go.
//
// ErrServer covers insufficient-funds conditions on purpose: the deployed
// behavior surfaces them as 500 and clients encode that expectation.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNoAccess      = errors.New("no access")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrServer        = errors.New("server error")
)
