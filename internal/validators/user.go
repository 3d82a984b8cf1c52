package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-user-service/models"
)

const (
	FieldUsername            = "username"
	FieldFullName            = "full_name"
	FieldEmail               = "email"
	FieldEmailFormat         = "email_format"
	FieldPassword            = "password"
	FieldUsernameOrEmail     = "username_or_email"
	FieldOldAndNewPasswords  = "old_and_new_passwords"
	FieldAccountUpdateFields = "account_update_fields"
)

// UserValidator checks the user request payloads of the auth and account
// flows. Values are checked after trimming whitespace.
type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	case models.UpdateAccountRequest:
		return v.validateUpdateAccountRequest(ctx, value, fields...)
	case *models.UpdateAccountRequest:
		return v.validateUpdateAccountRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(_ context.Context, request models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldFullName, FieldEmail, FieldPassword, FieldEmailFormat}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if isBlank(request.Username) {
				return ErrAllFieldsRequired
			}
		case FieldFullName:
			if isBlank(request.FullName) {
				return ErrAllFieldsRequired
			}
		case FieldEmail:
			if isBlank(request.Email) {
				return ErrAllFieldsRequired
			}
		case FieldPassword:
			if isBlank(request.Password) {
				return ErrAllFieldsRequired
			}
		case FieldEmailFormat:
			if !isEmail(request.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsernameOrEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsernameOrEmail:
			if isBlank(request.Username) && isBlank(request.Email) {
				return ErrUsernameOrEmailRequired
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateChangePasswordRequest(_ context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldAndNewPasswords}
	}

	for _, f := range fields {
		switch f {
		case FieldOldAndNewPasswords:
			if request.OldPassword == "" || isBlank(request.NewPassword) {
				return ErrOldAndNewPasswordRequired
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUpdateAccountRequest(_ context.Context, request models.UpdateAccountRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAccountUpdateFields, FieldEmailFormat}
	}

	for _, f := range fields {
		switch f {
		case FieldAccountUpdateFields:
			if isBlank(request.FullName) || isBlank(request.Email) {
				return ErrAllFieldsRequired
			}
		case FieldEmailFormat:
			if !isEmail(request.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isEmail accepts a bare address only, "Name <a@b>" forms are rejected.
func isEmail(s string) bool {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
