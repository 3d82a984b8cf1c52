package store

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts and their refresh tokens.
//
// Implementations must keep username and email unique and must update the
// refresh token with single-field writes that never touch other fields.
type UserRepository interface {
	// FindByID returns the full user record, secrets included.
	FindByID(ctx context.Context, id string) (models.User, error)

	// FindProfileByID returns the user without PasswordHash and RefreshToken.
	FindProfileByID(ctx context.Context, id string) (models.User, error)

	// FindByUsernameOrEmail returns the first user matching either
	// identifier. Empty identifiers are ignored.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error)

	// Create inserts a new user. Returns ErrUserAlreadyExists on a
	// uniqueness violation.
	Create(ctx context.Context, user models.User) error

	// SetRefreshToken overwrites the stored refresh token.
	SetRefreshToken(ctx context.Context, id, refreshToken string) error

	// SwapRefreshToken replaces the stored refresh token only if it still
	// equals expected. Returns ErrRefreshTokenMismatch otherwise.
	SwapRefreshToken(ctx context.Context, id, expected, refreshToken string) error

	// ClearRefreshToken removes the stored refresh token and returns the
	// user as it is after the update.
	ClearRefreshToken(ctx context.Context, id string) (models.User, error)

	// UpdatePassword overwrites the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// UpdateUser applies a partial profile update and returns the user as
	// it is after the update.
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error)
}
