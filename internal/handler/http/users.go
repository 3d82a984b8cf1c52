package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/internal/utils"
	"github.com/MKhiriev/go-user-service/models"
)

// register accepts a multipart form with the text fields and the avatar and
// coverImage files. A JSON body is accepted too, it just carries no files.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		req   models.RegisterRequest
		files models.RegisterFiles
	)

	if isMultipart(r) {
		if err := h.parseMultipart(r); err != nil {
			log.Err(err).Msg("invalid multipart form was passed")
			writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
			return
		}
		req = models.RegisterRequest{
			Username: r.FormValue("username"),
			FullName: r.FormValue("fullName"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}

		var err error
		files.AvatarPath, err = h.saveFormFile(r, avatarField)
		if err == nil {
			files.CoverImagePath, err = h.saveFormFile(r, coverImageField)
		}
		defer cleanupUploads(r, files.AvatarPath, files.CoverImagePath)
		if err != nil {
			writeError(w, r, apperr.Internal("", err))
			return
		}
	} else if err := utils.ReadJSON(r, &req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
		return
	}

	user, err := h.services.AuthService.Register(ctx, req, files)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusCreated, user, apperr.MsgUserRegistered)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookies(w, result.TokenPair)
	writeSuccess(w, r, http.StatusOK, result, apperr.MsgUserLoggedIn)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, ErrNoUserInContext))
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	h.clearTokenCookies(w)
	writeSuccess(w, r, http.StatusOK, struct{}{}, apperr.MsgUserLoggedOut)
}

// refreshToken reads the refresh token from its cookie, falling back to the
// JSON body.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	token := cookieValue(r, refreshTokenCookie)
	if token == "" {
		var req models.RefreshRequest
		if err := utils.ReadJSON(r, &req); err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("refresh request body is not JSON")
		}
		token = req.RefreshToken
	}

	pair, err := h.services.AuthService.Refresh(r.Context(), token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.setTokenCookies(w, pair)
	writeSuccess(w, r, http.StatusOK, pair, apperr.MsgAccessTokenRefreshed)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, ErrNoUserInContext))
		return
	}

	user, err := h.services.UserService.CurrentUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, user, apperr.MsgCurrentUserFetched)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, ErrNoUserInContext))
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
		return
	}

	if err := h.services.UserService.ChangePassword(r.Context(), userID, req); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, struct{}{}, apperr.MsgPasswordChanged)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, ErrNoUserInContext))
		return
	}

	var req models.UpdateAccountRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
		return
	}

	user, err := h.services.UserService.UpdateAccount(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, user, apperr.MsgAccountUpdated)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, avatarField, h.services.UserService.UpdateAvatar, apperr.MsgAvatarRequired, apperr.MsgAvatarUpdated)
}

func (h *Handler) updateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, coverImageField, h.services.UserService.UpdateCoverImage, apperr.MsgCoverImageRequired, apperr.MsgCoverImageUpdated)
}

// updateImage saves the single file of field and hands it to update. The
// temp file is removed once the request is done.
func (h *Handler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID, localPath string) (models.User, error),
	requiredMsg, successMsg string,
) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, apperr.Auth(apperr.MsgUnauthorizedRequest, ErrNoUserInContext))
		return
	}

	if !isMultipart(r) {
		writeError(w, r, apperr.Validation(requiredMsg))
		return
	}
	if err := h.parseMultipart(r); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid multipart form was passed")
		writeError(w, r, apperr.Validation(apperr.MsgInvalidDataProvided))
		return
	}

	path, err := h.saveFormFile(r, field)
	defer cleanupUploads(r, path)
	if err != nil {
		writeError(w, r, apperr.Internal("", err))
		return
	}

	user, err := update(r.Context(), userID, path)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, user, successMsg)
}
