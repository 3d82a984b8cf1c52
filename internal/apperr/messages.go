// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apperr

// Human-readable messages written into failure envelopes. Keeping them in one
// place keeps the wording of the API consistent between handlers, services
// and the auth middleware.
const (
	// MsgAllFieldsRequired is returned when a registration or account form
	// misses one of its mandatory fields.
	MsgAllFieldsRequired = "All fields are required"

	// MsgUserAlreadyExists is returned when the username or email of a new
	// account is already taken.
	MsgUserAlreadyExists = "User with email or username already exists"

	// MsgEmailAlreadyTaken is returned when an account update tries to move
	// to an email that belongs to somebody else.
	MsgEmailAlreadyTaken = "Email is already in use"

	// MsgAvatarRequired is returned when a registration or avatar update
	// arrives without an avatar file.
	MsgAvatarRequired = "Avatar file is required"

	// MsgAvatarUploadFailed is returned when the media service did not
	// produce a usable URL for the avatar.
	MsgAvatarUploadFailed = "Error while uploading avatar"

	// MsgCoverImageRequired is returned when a cover image update arrives
	// without a file.
	MsgCoverImageRequired = "Cover image file is required"

	// MsgCoverImageUploadFailed is returned when the media service did not
	// produce a usable URL for the cover image.
	MsgCoverImageUploadFailed = "Error while uploading cover image"

	// MsgRegistrationFailed is returned when the new account cannot be read
	// back after creation.
	MsgRegistrationFailed = "Something went wrong while registering the user"

	// MsgInvalidEmail is returned when an email address cannot be parsed.
	MsgInvalidEmail = "Invalid email address"

	// MsgOldAndNewPasswordRequired is returned when change-password misses
	// one of the passwords.
	MsgOldAndNewPasswordRequired = "Old and new password are required"

	// MsgUsernameOrEmailRequired is returned when a login request carries
	// neither identifier.
	MsgUsernameOrEmailRequired = "Username or email is required"

	// MsgPasswordRequired is returned when a login request has no password.
	MsgPasswordRequired = "Password is required"

	// MsgUserDoesNotExist is returned by login when no user matches.
	MsgUserDoesNotExist = "User does not exist"

	// MsgInvalidCredentials is returned by login on a password mismatch.
	MsgInvalidCredentials = "Invalid user credentials"

	// MsgTokenGenerationFailed is returned when a token pair cannot be
	// issued or persisted.
	MsgTokenGenerationFailed = "Something went wrong while generating refresh and access token"

	// MsgUnauthorizedRequest is returned when a protected route or the
	// refresh endpoint is called without a token.
	MsgUnauthorizedRequest = "Unauthorized request"

	// MsgInvalidAccessToken is returned when the access token fails
	// verification or its user no longer exists.
	MsgInvalidAccessToken = "Invalid Access Token"

	// MsgInvalidRefreshToken is returned when the refresh token fails
	// verification or its user no longer exists.
	MsgInvalidRefreshToken = "Invalid refresh token"

	// MsgRefreshTokenExpiredOrUsed is returned when the presented refresh
	// token is not the one currently trusted for the user.
	MsgRefreshTokenExpiredOrUsed = "Refresh token is expired or used"

	// MsgUserNotFound is returned when an authenticated user vanished from
	// the store.
	MsgUserNotFound = "User not found"

	// MsgInvalidOldPassword is returned by change-password on a mismatch.
	MsgInvalidOldPassword = "Invalid old password"

	// MsgInvalidDataProvided is returned when a request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgTooManyRequests is returned by the rate limiter.
	MsgTooManyRequests = "Too many requests"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal Server Error"
)

// Success messages of the envelope.
const (
	MsgUserRegistered       = "User registered successfully"
	MsgUserLoggedIn         = "User logged In Successfully"
	MsgUserLoggedOut        = "User logged Out"
	MsgAccessTokenRefreshed = "Access token refreshed"
	MsgCurrentUserFetched   = "User fetched successfully"
	MsgPasswordChanged      = "Password changed successfully"
	MsgAccountUpdated       = "Account details updated successfully"
	MsgAvatarUpdated        = "Avatar image updated successfully"
	MsgCoverImageUpdated    = "Cover image updated successfully"
)
