package ds

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims carries the user id in the standard subject claim; UserID mirrors
// it for clients that decode the token locally.
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
