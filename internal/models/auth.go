package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required,oneof=STUDENT TUTOR COORDINATOR"`
}

// TokenClaims is the JWT payload the backend embeds in access tokens.
// Parsed without signature verification; the token's authority rests with
// the backend, the client only reads identity hints out of it.
type TokenClaims struct {
	UserID   string `json:"userId"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}
