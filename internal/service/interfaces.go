package service

import (
	"context"

	"github.com/MKhiriev/go-user-service/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// Every method returns either a value or an *apperr.Error describing the
// failure; foreign errors are never returned.

// TokenService issues and rotates access/refresh token pairs.
type TokenService interface {
	// IssueTokenPair signs a new pair for userID and overwrites the
	// persisted refresh token.
	IssueTokenPair(ctx context.Context, userID string) (models.TokenPair, error)

	// RotateTokenPair signs a new pair and persists it only if the stored
	// refresh token still equals presented.
	RotateTokenPair(ctx context.Context, userID, presented string) (models.TokenPair, error)

	ParseAccessToken(ctx context.Context, token string) (models.Claims, error)
	ParseRefreshToken(ctx context.Context, token string) (models.Claims, error)
}

// AuthService implements the registration, login, logout and refresh flows.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest, files models.RegisterFiles) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error)
	Logout(ctx context.Context, userID string) error
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Authenticate verifies an access token and returns its user.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// UserService implements the account flows of an authenticated user.
type UserService interface {
	CurrentUser(ctx context.Context, userID string) (models.User, error)
	ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error
	UpdateAccount(ctx context.Context, userID string, req models.UpdateAccountRequest) (models.User, error)
	UpdateAvatar(ctx context.Context, userID, localPath string) (models.User, error)
	UpdateCoverImage(ctx context.Context, userID, localPath string) (models.User, error)
}

// AppInfoService reports the version of the running service.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
