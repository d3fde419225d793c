package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateAPIKey creates a random URL-safe API key of the specified length
func GenerateAPIKey(length int) (string, error) {
	// Ensure minimum length
	if length < 16 {
		length = 16
	}

	// We need more random bytes than the final length because of
	// base64 encoding
	b := make([]byte, length*2)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %v", err)
	}

	key := base64.RawURLEncoding.EncodeToString(b)
	if len(key) > length {
		key = key[:length]
	}

	return key, nil
}
