package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the signed session payload: the user record minus the
// password hash, plus the registered issue/expiry timestamps. The token id
// (jti) doubles as the session identity — the session caches key on it.
type TokenClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Deposit  int    `json:"deposit"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}
