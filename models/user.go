package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents an account entity used for authentication and profile
// rendering. The same struct is persisted by every store driver: bson tags
// are used by the Mongo repository, db tags by the SQL repository.
//
// Sensitive fields (PasswordHash, RefreshToken) are never serialized to JSON.
type User struct {
	// ID is the immutable unique identifier of the user (UUIDv7).
	ID string `json:"_id" bson:"_id" db:"id"`

	// Username is unique and stored lower-cased.
	Username string `json:"username" bson:"username" db:"username"`

	// Email is unique and stored lower-cased.
	Email string `json:"email" bson:"email" db:"email"`

	// FullName is the display name of the user.
	FullName string `json:"fullName" bson:"fullName" db:"full_name"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-" bson:"passwordHash,omitempty" db:"password_hash"`

	// AvatarURL is the remote URL returned by the media uploader. Required.
	AvatarURL string `json:"avatar" bson:"avatar" db:"avatar_url"`

	// CoverImageURL is optional and empty when no cover image was uploaded.
	CoverImageURL string `json:"coverImage" bson:"coverImage" db:"cover_image_url"`

	// RefreshToken is the only refresh token currently trusted for this user.
	// Empty means no active session.
	RefreshToken string `json:"-" bson:"refreshToken,omitempty" db:"refresh_token"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// IsEmpty reports whether u is the zero user, i.e. nothing was read back
// from the store.
func (u User) IsEmpty() bool {
	return u.ID == ""
}

// IsPasswordCorrect compares plain against the stored bcrypt hash.
func (u User) IsPasswordCorrect(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// SetPassword replaces PasswordHash with the bcrypt hash of plain using the
// given cost. Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func (u *User) SetPassword(plain string, cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// Normalize lower-cases and trims the unique identifiers of the user.
func (u *User) Normalize() {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullName = strings.TrimSpace(u.FullName)
}

// Sanitized returns a copy of u with secret fields cleared. Used when a
// profile is read back for an API response.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}

// UserUpdate describes a partial profile update. Nil fields are left untouched.
type UserUpdate struct {
	FullName      *string
	Email         *string
	AvatarURL     *string
	CoverImageURL *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Email == nil && u.AvatarURL == nil && u.CoverImageURL == nil
}
