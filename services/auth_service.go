package services

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kubealloc/dto"
)

// VerifyAPIKey checks a presented API key against the configured one.
// KUBEALLOC_API_KEY_HASH (a bcrypt hash) takes precedence over the
// plaintext KUBEALLOC_API_KEY.
func VerifyAPIKey(presented string) error {
	if presented == "" {
		return errors.New("API key is required")
	}

	if hash := os.Getenv("KUBEALLOC_API_KEY_HASH"); hash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(presented)); err != nil {
			return errors.New("invalid API key")
		}
		return nil
	}

	key := os.Getenv("KUBEALLOC_API_KEY")
	if key == "" {
		return errors.New("no API key configured")
	}
	if presented != key {
		return errors.New("invalid API key")
	}
	return nil
}

// IssueToken exchanges a valid API key for a short-lived bearer token
func IssueToken(req dto.TokenRequest) (*dto.TokenResponse, error) {
	if err := VerifyAPIKey(req.APIKey); err != nil {
		return nil, err
	}

	token, expiresAt, err := GenerateToken("api-client")
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GenerateToken generates a new JWT token for an authenticated client
func GenerateToken(client string) (string, time.Time, error) {
	// Get secret key from environment
	secretKey := os.Getenv("KUBEALLOC_JWT_SECRET")
	if secretKey == "" {
		return "", time.Time{}, errors.New("KUBEALLOC_JWT_SECRET not set in environment")
	}

	// Set expiration time
	expiresAt := time.Now().Add(24 * time.Hour)

	// Create claims with expiry time
	claims := dto.TokenClaims{
		Client: client,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	// Create the token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token with our secret key
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	// Get secret key from environment
	secretKey := os.Getenv("KUBEALLOC_JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("KUBEALLOC_JWT_SECRET not set in environment")
	}

	// Parse the token
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	// Check if token is valid
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Get claims
	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
