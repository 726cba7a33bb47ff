package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tok, err := GenerateToken("secret", 7, "a@a", "Employee", time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@a", claims.Email)
	assert.Equal(t, "Employee", claims.Type)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken("secret", 7, "a@a", "Employee", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("other", tok)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := GenerateToken("secret", 7, "a@a", "Employee", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("secret", tok)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("azerty")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("azerty", hash))
	assert.False(t, CheckPasswordHash("qwerty", hash))
}
