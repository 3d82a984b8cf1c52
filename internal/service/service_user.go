package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/go-user-service/internal/adapter"
	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/config"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/store"
	"github.com/MKhiriev/go-user-service/internal/validators"
	"github.com/MKhiriev/go-user-service/models"
)

type userService struct {
	userRepository   store.UserRepository
	mediaUploader    adapter.MediaUploader
	validator        validators.Validator
	passwordHashCost int

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, mediaUploader adapter.MediaUploader, cfg config.Auth, logger *logger.Logger) UserService {
	return &userService{
		userRepository:   userRepository,
		mediaUploader:    mediaUploader,
		validator:        validators.NewUserValidator(),
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

func (u *userService) CurrentUser(ctx context.Context, userID string) (models.User, error) {
	user, err := u.userRepository.FindProfileByID(ctx, userID)
	if err != nil {
		return models.User{}, u.storeError(ctx, "CurrentUser", err)
	}
	return user.Sanitized(), nil
}

// ChangePassword replaces the password after checking the old one. A wrong
// old password is a validation error, not an auth error: the caller is
// already authenticated.
func (u *userService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := u.validator.Validate(ctx, req); err != nil {
		return validationError(err)
	}

	user, err := u.userRepository.FindByID(ctx, userID)
	if err != nil {
		return u.storeError(ctx, "ChangePassword", err)
	}

	if !user.IsPasswordCorrect(req.OldPassword) {
		return apperr.Validation(apperr.MsgInvalidOldPassword)
	}

	if err = user.SetPassword(req.NewPassword, u.passwordHashCost); err != nil {
		logger.FromContext(ctx).Err(err).Msg("password hashing failed")
		return apperr.Internal("", err)
	}

	if err = u.userRepository.UpdatePassword(ctx, userID, user.PasswordHash); err != nil {
		return u.storeError(ctx, "ChangePassword", err)
	}

	return nil
}

func (u *userService) UpdateAccount(ctx context.Context, userID string, req models.UpdateAccountRequest) (models.User, error) {
	if err := u.validator.Validate(ctx, req); err != nil {
		return models.User{}, validationError(err)
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := u.userRepository.UpdateUser(ctx, userID, models.UserUpdate{FullName: &fullName, Email: &email})
	if err != nil {
		return models.User{}, u.storeError(ctx, "UpdateAccount", err)
	}

	return user.Sanitized(), nil
}

func (u *userService) UpdateAvatar(ctx context.Context, userID, localPath string) (models.User, error) {
	if localPath == "" {
		return models.User{}, apperr.Validation(apperr.MsgAvatarRequired)
	}

	url, err := u.upload(ctx, localPath, apperr.MsgAvatarUploadFailed)
	if err != nil {
		return models.User{}, err
	}

	user, err := u.userRepository.UpdateUser(ctx, userID, models.UserUpdate{AvatarURL: &url})
	if err != nil {
		return models.User{}, u.storeError(ctx, "UpdateAvatar", err)
	}

	return user.Sanitized(), nil
}

func (u *userService) UpdateCoverImage(ctx context.Context, userID, localPath string) (models.User, error) {
	if localPath == "" {
		return models.User{}, apperr.Validation(apperr.MsgCoverImageRequired)
	}

	url, err := u.upload(ctx, localPath, apperr.MsgCoverImageUploadFailed)
	if err != nil {
		return models.User{}, err
	}

	user, err := u.userRepository.UpdateUser(ctx, userID, models.UserUpdate{CoverImageURL: &url})
	if err != nil {
		return models.User{}, u.storeError(ctx, "UpdateCoverImage", err)
	}

	return user.Sanitized(), nil
}

func (u *userService) upload(ctx context.Context, localPath, failureMsg string) (string, error) {
	res, err := u.mediaUploader.Upload(ctx, localPath)
	if err != nil || res.URL == "" {
		logger.FromContext(ctx).Warn().Err(err).Msg("media upload did not produce a usable url")
		return "", apperr.Validation(failureMsg)
	}
	return res.URL, nil
}

// storeError maps repository errors of the account flows.
func (u *userService) storeError(ctx context.Context, funcName string, err error) error {
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return apperr.NotFound(apperr.MsgUserNotFound)
	case errors.Is(err, store.ErrUserAlreadyExists):
		return apperr.Conflict(apperr.MsgEmailAlreadyTaken, err)
	}

	logger.FromContext(ctx).Err(err).Str("func", "*userService."+funcName).Msg("store operation failed")
	return apperr.Internal("", err)
}
