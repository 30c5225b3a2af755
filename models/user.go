// Package models defines the domain models and the request shapes the API
// accepts, together with their validation rules.
package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Role decides which side of the machine a user operates:
// buyers deposit coins and purchase, sellers stock products.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
)

// Valid reports whether the role is one of the two known variants.
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// DepositDenominations are the only coin values the machine accepts.
var DepositDenominations = []int{5, 10, 20, 50, 100}

// User is an account holder. Deposit is an integer balance in coin units and
// is only ever changed by deposit, purchase and reset operations — never set
// directly through an update.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Deposit      int    `json:"deposit"`
	PasswordHash string `json:"-"` // never serialized
	Role         Role   `json:"role"`
}

// CreateUserRequest is the registration payload. The plain password is hashed
// in the service layer.
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || utf8.RuneCountInString(r.Username) > 64 {
		return fmt.Errorf("Invalid parameters to create a user")
	}
	if r.Password == "" {
		return fmt.Errorf("Invalid parameters to create a user")
	}
	if !r.Role.Valid() {
		return fmt.Errorf("Invalid parameters to create a user")
	}
	return nil
}

// UpdateUserRequest carries the only user field a holder may rewrite: the role.
type UpdateUserRequest struct {
	Role Role `json:"role"`
}

func (r *UpdateUserRequest) Validate() error {
	if !r.Role.Valid() {
		return fmt.Errorf("Role is required and must be either 'BUYER' or 'SELLER'")
	}
	return nil
}

// DepositRequest adds a single coin to the caller's balance.
type DepositRequest struct {
	Deposit int `json:"deposit"`
}

func (r *DepositRequest) Validate() error {
	for _, v := range DepositDenominations {
		if r.Deposit == v {
			return nil
		}
	}
	return fmt.Errorf("Invalid amount, value should be 5, 10, 20, 50 or 100")
}

// SignInRequest carries the credentials for sign-in and logout-all.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}
