package service

import (
	"errors"

	"github.com/MKhiriev/go-user-service/internal/apperr"
	"github.com/MKhiriev/go-user-service/internal/validators"
)

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrTokenCreationFailed   = errors.New("token creation failed")
)

// validationMessages maps validator errors to the client-facing message.
var validationMessages = map[error]string{
	validators.ErrAllFieldsRequired:         apperr.MsgAllFieldsRequired,
	validators.ErrInvalidEmail:              apperr.MsgInvalidEmail,
	validators.ErrUsernameOrEmailRequired:   apperr.MsgUsernameOrEmailRequired,
	validators.ErrPasswordRequired:          apperr.MsgPasswordRequired,
	validators.ErrOldAndNewPasswordRequired: apperr.MsgOldAndNewPasswordRequired,
}

// validationError converts a validator error into an apperr validation
// error. Unknown validator errors are programming mistakes and become
// internal errors.
func validationError(err error) error {
	for target, msg := range validationMessages {
		if errors.Is(err, target) {
			return apperr.Validation(msg)
		}
	}
	return apperr.Internal("", err)
}
