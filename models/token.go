package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the "typ" claim.
const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

// Claims is the JWT claim set used for both access and refresh tokens.
//
// It embeds [jwt.RegisteredClaims] for the standard claims: "sub" holds the
// user ID, "jti" a unique token ID so that two tokens issued within the same
// second never collide. Profile claims are only filled for access tokens.
type Claims struct {
	jwt.RegisteredClaims

	// Type is either AccessTokenType or RefreshTokenType.
	Type string `json:"typ"`

	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
}

// UserID returns the user identifier from the "sub" claim.
func (c Claims) UserID() string {
	return c.Subject
}

// TokenPair is an ephemeral access/refresh token pair. Only the refresh
// token is ever persisted.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsComplete reports whether both tokens are present.
func (p TokenPair) IsComplete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// LoginResult is returned by a successful login: the sanitized user and the
// freshly issued token pair.
type LoginResult struct {
	User User `json:"user"`
	TokenPair
}
