package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kubealloc/dto"
)

func TestVerifyAPIKeyPlaintext(t *testing.T) {
	t.Setenv("KUBEALLOC_API_KEY_HASH", "")
	t.Setenv("KUBEALLOC_API_KEY", "secret-key")

	assert.NoError(t, VerifyAPIKey("secret-key"))
	assert.Error(t, VerifyAPIKey("wrong-key"))
	assert.Error(t, VerifyAPIKey(""))
}

func TestVerifyAPIKeyHashTakesPrecedence(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-key"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Setenv("KUBEALLOC_API_KEY_HASH", string(hash))
	t.Setenv("KUBEALLOC_API_KEY", "plaintext-key")

	assert.NoError(t, VerifyAPIKey("hashed-key"))
	assert.Error(t, VerifyAPIKey("plaintext-key"))
}

func TestVerifyAPIKeyUnconfigured(t *testing.T) {
	t.Setenv("KUBEALLOC_API_KEY_HASH", "")
	t.Setenv("KUBEALLOC_API_KEY", "")

	assert.Error(t, VerifyAPIKey("anything"))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("KUBEALLOC_JWT_SECRET", "test-secret")

	token, expiresAt, err := GenerateToken("api-client")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "api-client", claims.Client)
}

func TestValidateTokenRejectsBadSignature(t *testing.T) {
	t.Setenv("KUBEALLOC_JWT_SECRET", "test-secret")

	token, _, err := GenerateToken("api-client")
	require.NoError(t, err)

	t.Setenv("KUBEALLOC_JWT_SECRET", "other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestIssueToken(t *testing.T) {
	t.Setenv("KUBEALLOC_API_KEY_HASH", "")
	t.Setenv("KUBEALLOC_API_KEY", "secret-key")
	t.Setenv("KUBEALLOC_JWT_SECRET", "test-secret")

	resp, err := IssueToken(dto.TokenRequest{APIKey: "secret-key"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = IssueToken(dto.TokenRequest{APIKey: "wrong-key"})
	assert.Error(t, err)
}
