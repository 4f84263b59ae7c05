package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest defines the structure for admin login requests
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // seconds
}

// AdminClaims are the claims of an admin token
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleAdmin is the only role issued
const RoleAdmin = "admin"
