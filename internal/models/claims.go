package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims represents the custom claims carried in access tokens
type AccessClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
