package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("rahasia-sekali")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia-sekali", hash)

	assert.True(t, CheckPasswordHash("rahasia-sekali", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}

func TestGenerateTokenPair(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := User{ID: 1, Username: "ahmad", Email: "ahmad@example.com"}

	access, refresh, err := GenerateTokenPair(u)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, accessClaims.TokenType)
	assert.Equal(t, uint(1), accessClaims.UserID)
	assert.Equal(t, "ahmad", accessClaims.Username)

	refreshClaims, err := ParseToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
}

func TestParseToken_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret must be rejected.
	t.Setenv("JWT_SECRET", "other-secret")
	access, _, err := GenerateTokenPair(User{ID: 2})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "test-secret")
	_, err = ParseToken(access)
	assert.Error(t, err)
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokenPair(User{ID: 1})
	assert.Error(t, err)
}
