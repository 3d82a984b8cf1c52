package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

// tokenService is the concrete implementation of TokenService.
// Access and refresh tokens are HS256 JWTs signed with distinct secrets.
type tokenService struct {
	// userRepository loads the user embedded into the access token and
	// persists the refresh token.
	userRepository store.UserRepository

	accessTokenSecret  string
	refreshTokenSecret string
	accessTokenTTL     time.Duration
	refreshTokenTTL    time.Duration

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	logger *logger.Logger
}

// NewTokenService constructs a TokenService with secrets and lifetimes taken
// from cfg. The returned service is safe for concurrent use.
func NewTokenService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		userRepository:     userRepository,
		accessTokenSecret:  cfg.AccessTokenSecret,
		refreshTokenSecret: cfg.RefreshTokenSecret,
		accessTokenTTL:     cfg.AccessTokenTTL,
		refreshTokenTTL:    cfg.RefreshTokenTTL,
		tokenIssuer:        cfg.TokenIssuer,
		logger:             logger,
	}
}

// IssueTokenPair loads the user, signs both tokens and overwrites the stored
// refresh token with a single-field update.
//
// Any failure is returned as an internal error; the pair is never partial.
func (t *tokenService) IssueTokenPair(ctx context.Context, userID string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	pair, err := t.signPair(ctx, userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err = t.userRepository.SetRefreshToken(ctx, userID, pair.RefreshToken); err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to persist refresh token")
		return models.TokenPair{}, apperr.Internal(apperr.MsgTokenGenerationFailed, err)
	}

	return pair, nil
}

// RotateTokenPair works like IssueTokenPair but persists the new refresh
// token with a compare-and-swap against presented. A lost race or a reused
// token yields an auth error.
func (t *tokenService) RotateTokenPair(ctx context.Context, userID, presented string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	pair, err := t.signPair(ctx, userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	err = t.userRepository.SwapRefreshToken(ctx, userID, presented, pair.RefreshToken)
	switch {
	case errors.Is(err, store.ErrRefreshTokenMismatch):
		log.Warn().Str("user_id", userID).Msg("refresh token rotation lost: token expired or already used")
		return models.TokenPair{}, apperr.Auth(apperr.MsgRefreshTokenExpiredOrUsed, err)
	case err != nil:
		log.Err(err).Str("user_id", userID).Msg("failed to rotate refresh token")
		return models.TokenPair{}, apperr.Internal(apperr.MsgTokenGenerationFailed, err)
	}

	return pair, nil
}

// ParseAccessToken verifies signature, issuer, expiry and type of an access
// token.
func (t *tokenService) ParseAccessToken(_ context.Context, token string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, t.accessTokenSecret, t.tokenIssuer, models.AccessTokenType)
	if err != nil {
		return models.Claims{}, apperr.Auth(apperr.MsgInvalidAccessToken, err)
	}
	return claims, nil
}

// ParseRefreshToken verifies signature, issuer, expiry and type of a refresh
// token.
func (t *tokenService) ParseRefreshToken(_ context.Context, token string) (models.Claims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, t.refreshTokenSecret, t.tokenIssuer, models.RefreshTokenType)
	if err != nil {
		return models.Claims{}, apperr.Auth(apperr.MsgInvalidRefreshToken, err)
	}
	return claims, nil
}

func (t *tokenService) signPair(ctx context.Context, userID string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	user, err := t.userRepository.FindByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to load user for token issuance")
		return models.TokenPair{}, apperr.Internal(apperr.MsgTokenGenerationFailed, err)
	}

	accessClaims := models.Claims{
		Type:     models.AccessTokenType,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	}
	accessClaims.Subject = user.ID

	accessToken, err := utils.GenerateJWTToken(t.tokenIssuer, accessClaims, t.accessTokenTTL, t.accessTokenSecret)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to sign access token")
		return models.TokenPair{}, apperr.Internal(apperr.MsgTokenGenerationFailed, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err))
	}

	refreshClaims := models.Claims{Type: models.RefreshTokenType}
	refreshClaims.Subject = user.ID

	refreshToken, err := utils.GenerateJWTToken(t.tokenIssuer, refreshClaims, t.refreshTokenTTL, t.refreshTokenSecret)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("failed to sign refresh token")
		return models.TokenPair{}, apperr.Internal(apperr.MsgTokenGenerationFailed, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err))
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
