package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the JWT payload. The username travels in the registered
// Subject claim; Role is the account's global role, not a ledger grant.
type AppClaims struct {
	UserID int  `json:"user_id"`
	Role   Role `json:"role"`
	jwt.RegisteredClaims
}
