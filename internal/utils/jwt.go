package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidTokenType is returned when a token of one kind is presented
// where the other kind is expected (e.g. an access token used as refresh).
var ErrInvalidTokenType = errors.New("unexpected token type")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token from claims.
//
// The standard claims are filled in here:
//   - Issuer    (iss): identifies the service that issued the token
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - ID        (jti): a fresh UUIDv7, so that two tokens issued in the same
//     second for the same user are still distinct
//
// claims.Subject and claims.Type must be set by the caller.
//
// Example usage:
//
//	signed, err := utils.GenerateJWTToken("users", models.Claims{...}, time.Hour, "secret")
func GenerateJWTToken(issuer string, claims models.Claims, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}
	if claims.Subject == "" || claims.Type == "" {
		return "", errors.New("subject and token type are required")
	}

	now := time.Now()
	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	claims.ID = NewUUIDGenerator().Generate()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//   - Token type (typ) check against tokenType
//
// Example usage:
//
//	claims, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "users", models.AccessTokenType)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer, tokenType string) (models.Claims, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, errors.New("empty subject error")
	}
	if claims.Type != tokenType {
		return models.Claims{}, fmt.Errorf("%w: want %q, got %q", ErrInvalidTokenType, tokenType, claims.Type)
	}

	return *claims, nil
}
