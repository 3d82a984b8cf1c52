package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/internal/validators"
	"github.com/MKhiriev/go-user-service/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the refresh
// token lifecycle on top of a UserRepository and a TokenService.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokenService   TokenService
	mediaUploader  adapter.MediaUploader
	eventPublisher adapter.EventPublisher
	validator      validators.Validator
	ids            *utils.UUIDGenerator

	// passwordHashCost is the bcrypt cost of new password hashes.
	passwordHashCost int

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(
	userRepository store.UserRepository,
	tokenService TokenService,
	mediaUploader adapter.MediaUploader,
	eventPublisher adapter.EventPublisher,
	cfg config.Auth,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:   userRepository,
		tokenService:     tokenService,
		mediaUploader:    mediaUploader,
		eventPublisher:   eventPublisher,
		validator:        validators.NewUserValidator(),
		ids:              utils.NewUUIDGenerator(),
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

// Register creates a new account.
//
// Steps, in order:
//  1. all four fields must be non-blank (validation error);
//  2. username and email must be free (conflict error);
//  3. an avatar file is required (validation error, before any upload);
//  4. avatar and cover image are uploaded concurrently. A missing avatar URL
//     is a validation error, a failed cover upload is logged and stored empty;
//  5. the user is created with lower-cased identifiers and a bcrypt hash. A
//     duplicate raced in after step 2 is a conflict error;
//  6. the profile is read back without secrets (internal error if missing).
func (a *authService) Register(ctx context.Context, req models.RegisterRequest, files models.RegisterFiles) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("invalid registration data provided")
		return models.User{}, validationError(err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
	}
	user.Normalize()

	_, err := a.userRepository.FindByUsernameOrEmail(ctx, user.Username, user.Email)
	switch {
	case err == nil:
		log.Info().Str("username", user.Username).Msg("registration rejected: user already exists")
		return models.User{}, apperr.Conflict(apperr.MsgUserAlreadyExists, store.ErrUserAlreadyExists)
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Msg("user lookup before registration failed")
		return models.User{}, apperr.Internal("", err)
	}

	if files.AvatarPath == "" {
		return models.User{}, apperr.Validation(apperr.MsgAvatarRequired)
	}

	avatar, cover, err := a.uploadImages(ctx, files)
	if err != nil {
		return models.User{}, err
	}
	user.AvatarURL = avatar.URL
	user.CoverImageURL = cover.URL

	if err = user.SetPassword(req.Password, a.passwordHashCost); err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, apperr.Internal("", err)
	}

	user.ID = a.ids.Generate()
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	user.UpdatedAt = user.CreatedAt

	err = a.userRepository.Create(ctx, user)
	switch {
	case errors.Is(err, store.ErrUserAlreadyExists):
		return models.User{}, apperr.Conflict(apperr.MsgUserAlreadyExists, err)
	case err != nil:
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, apperr.Internal("", err)
	}

	created, err := a.userRepository.FindProfileByID(ctx, user.ID)
	if err != nil || created.IsEmpty() {
		log.Err(err).Str("user_id", user.ID).Msg("created user could not be read back")
		return models.User{}, apperr.Internal(apperr.MsgRegistrationFailed, err)
	}

	a.publish(ctx, models.UserRegistered, created)
	return created.Sanitized(), nil
}

// uploadImages uploads the avatar and, when given, the cover image in
// parallel. Only the avatar decides the outcome.
func (a *authService) uploadImages(ctx context.Context, files models.RegisterFiles) (avatar, cover models.UploadResult, err error) {
	log := logger.FromContext(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, uploadErr := a.mediaUploader.Upload(gctx, files.AvatarPath)
		if uploadErr != nil {
			return uploadErr
		}
		avatar = res
		return nil
	})
	if files.CoverImagePath != "" {
		g.Go(func() error {
			res, uploadErr := a.mediaUploader.Upload(gctx, files.CoverImagePath)
			if uploadErr != nil {
				log.Warn().Err(uploadErr).Msg("cover image upload failed, continuing without it")
				return nil
			}
			cover = res
			return nil
		})
	}

	if err = g.Wait(); err != nil || avatar.URL == "" {
		log.Warn().Err(err).Msg("avatar upload did not produce a usable url")
		return models.UploadResult{}, models.UploadResult{}, apperr.Validation(apperr.MsgAvatarUploadFailed)
	}

	return avatar, cover, nil
}

// Login authenticates a user by username or email and issues a token pair.
//
// Returns:
//   - a validation error when no identifier or no password is given;
//   - a not-found error when no user matches;
//   - an auth error on a password mismatch;
//   - an internal error when the pair cannot be issued.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.LoginResult{}, validationError(err)
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := a.userRepository.FindByUsernameOrEmail(ctx, username, email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return models.LoginResult{}, apperr.NotFound(apperr.MsgUserDoesNotExist)
	case err != nil:
		log.Err(err).Msg("user search by username or email failed")
		return models.LoginResult{}, apperr.Internal("", err)
	}

	if !user.IsPasswordCorrect(req.Password) {
		log.Info().Str("user_id", user.ID).Msg("wrong password")
		return models.LoginResult{}, apperr.Auth(apperr.MsgInvalidCredentials, nil)
	}

	pair, err := a.tokenService.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return models.LoginResult{}, err
	}

	profile, err := a.userRepository.FindProfileByID(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("failed to read profile after login")
		return models.LoginResult{}, apperr.Internal("", err)
	}

	a.publish(ctx, models.UserLoggedIn, profile)
	return models.LoginResult{User: profile.Sanitized(), TokenPair: pair}, nil
}

// Logout clears the persisted refresh token of userID.
func (a *authService) Logout(ctx context.Context, userID string) error {
	user, err := a.userRepository.ClearRefreshToken(ctx, userID)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return apperr.NotFound(apperr.MsgUserNotFound)
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("failed to clear refresh token")
		return apperr.Internal("", err)
	}

	a.publish(ctx, models.UserLoggedOut, user)
	return nil
}

// Refresh exchanges a valid refresh token for a new pair.
//
// The presented token must verify and must equal the one persisted for its
// user; the new refresh token is swapped in only if it still does, so two
// concurrent refreshes with the same token cannot both succeed.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if refreshToken == "" {
		return models.TokenPair{}, apperr.Auth(apperr.MsgUnauthorizedRequest, nil)
	}

	claims, err := a.tokenService.ParseRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Debug().Err(err).Msg("refresh token rejected")
		return models.TokenPair{}, err
	}

	user, err := a.userRepository.FindByID(ctx, claims.UserID())
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return models.TokenPair{}, apperr.Auth(apperr.MsgInvalidRefreshToken, err)
	case err != nil:
		log.Err(err).Str("user_id", claims.UserID()).Msg("user lookup for refresh failed")
		return models.TokenPair{}, apperr.Internal("", err)
	}

	if user.RefreshToken != refreshToken {
		log.Warn().Str("user_id", user.ID).Msg("presented refresh token is not the persisted one")
		return models.TokenPair{}, apperr.Auth(apperr.MsgRefreshTokenExpiredOrUsed, nil)
	}

	return a.tokenService.RotateTokenPair(ctx, user.ID, refreshToken)
}

// Authenticate verifies accessToken and loads its user. Every failure is an
// auth error.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	if accessToken == "" {
		return models.User{}, apperr.Auth(apperr.MsgUnauthorizedRequest, nil)
	}

	claims, err := a.tokenService.ParseAccessToken(ctx, accessToken)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindByID(ctx, claims.UserID())
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			logger.FromContext(ctx).Err(err).Str("user_id", claims.UserID()).Msg("user lookup for access token failed")
		}
		return models.User{}, apperr.Auth(apperr.MsgInvalidAccessToken, err)
	}

	return user.Sanitized(), nil
}

// publish sends a user event. Failures never fail the flow.
func (a *authService) publish(ctx context.Context, eventType models.UserEventType, user models.User) {
	if err := a.eventPublisher.Publish(ctx, models.NewUserEvent(eventType, user)); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("event", string(eventType)).Msg("failed to publish user event")
	}
}
