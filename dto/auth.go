package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

// TokenRequest exchanges the static API key for a bearer token
type TokenRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// TokenResponse represents the response after a successful exchange
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
