package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrAllFieldsRequired         = errors.New("all fields are required")
	ErrInvalidEmail              = errors.New("invalid email address")
	ErrUsernameOrEmailRequired   = errors.New("username or email is required")
	ErrPasswordRequired          = errors.New("password is required")
	ErrOldAndNewPasswordRequired = errors.New("old and new password are required")
)
