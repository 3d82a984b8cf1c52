package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accessClaims(userID string) models.Claims {
	return models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Type:             models.AccessTokenType,
		Username:         "alice",
		Email:            "alice@example.com",
		FullName:         "Alice A",
	}
}

func TestGenerateJWTToken_Success(t *testing.T) {
	signed, err := GenerateJWTToken("test-issuer", accessClaims("user-123"), time.Hour, "secret-key")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ValidateAndParseJWTToken(signed, "secret-key", "test-issuer", models.AccessTokenType)
	require.NoError(t, err)

	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, "user-123", claims.UserID())
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice A", claims.FullName)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateJWTToken_UniqueWithinSameSecond(t *testing.T) {
	first, err := GenerateJWTToken("iss", accessClaims("user-1"), time.Hour, "key")
	require.NoError(t, err)
	second, err := GenerateJWTToken("iss", accessClaims("user-1"), time.Hour, "key")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		claims   models.Claims
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", accessClaims("u"), time.Hour, "key"},
		{"zero duration", "iss", accessClaims("u"), 0, "key"},
		{"empty key", "iss", accessClaims("u"), time.Hour, ""},
		{"empty subject", "iss", accessClaims(""), time.Hour, "key"},
		{"empty type", "iss", models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.claims, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_InvalidKey(t *testing.T) {
	signed, _ := GenerateJWTToken("iss", accessClaims("u"), time.Hour, "correct-key")

	_, err := ValidateAndParseJWTToken(signed, "wrong-key", "iss", models.AccessTokenType)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	// Token that expired 1 second ago
	signed, err := GenerateJWTToken("iss", accessClaims("u"), -time.Second, "key")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "key", "iss", models.AccessTokenType)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	signed, _ := GenerateJWTToken("real-issuer", accessClaims("u"), time.Hour, "key")

	_, err := ValidateAndParseJWTToken(signed, "key", "fake-issuer", models.AccessTokenType)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongType(t *testing.T) {
	signed, _ := GenerateJWTToken("iss", accessClaims("u"), time.Hour, "key")

	_, err := ValidateAndParseJWTToken(signed, "key", "iss", models.RefreshTokenType)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAndParseJWTToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseJWTToken("not.a.token", "key", "iss", models.AccessTokenType)
	assert.Error(t, err)
}
