package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/customer-service/internal/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("account-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.Subject)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := auth.NewTokenManager("secret-a", 60)
	other := auth.NewTokenManager("secret-b", 60)

	token, _, err := tm.GenerateToken("account-123")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}
