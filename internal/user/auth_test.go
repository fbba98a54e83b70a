package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	password := "secret"
	hash, err := HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "secret"
	hash, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateJWT_NoSecret(t *testing.T) {
	_, err := NewTokens("").GenerateJWT(1, "USER", "test@example.com")
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Equal(t, "JWT_SECRET is not set", err.Error())
}

func TestParseJWT(t *testing.T) {
	tokens := NewTokens("testsecret")
	tokenStr, err := tokens.GenerateJWT(1, "ADMIN", "admin@rzparfum.ma")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		claims, err := tokens.ParseJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, "ADMIN", claims.Role)
		assert.Equal(t, "admin@rzparfum.ma", claims.Email)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		_, err := tokens.ParseJWT("invalid-token-string")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		_, err := NewTokens("other").ParseJWT(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Contains(t, err.Error(), "signature is invalid")
	})

	t.Run("Expired", func(t *testing.T) {
		late := NewTokens("testsecret")
		late.now = func() time.Time { return time.Now().Add(AccessTokenTTL + time.Minute) }

		_, err := late.ParseJWT(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("ResetTokenRejected", func(t *testing.T) {
		reset, err := tokens.GenerateResetToken(1, "admin@rzparfum.ma")
		require.NoError(t, err)

		_, err = tokens.ParseJWT(reset)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseResetToken(t *testing.T) {
	tokens := NewTokens("testsecret")

	reset, err := tokens.GenerateResetToken(7, "a@b.co")
	require.NoError(t, err)

	claims, err := tokens.ParseResetToken(reset)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, PurposePasswordReset, claims.Purpose)

	access, err := tokens.GenerateJWT(7, "USER", "a@b.co")
	require.NoError(t, err)
	_, err = tokens.ParseResetToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	late := NewTokens("testsecret")
	late.now = func() time.Time { return time.Now().Add(2 * ResetTokenTTL) }
	_, err = late.ParseResetToken(reset)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
