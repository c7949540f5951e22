package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/globalmart/auth-service/models"
)

const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldFullName        = "full_name"
	FieldPhone           = "phone"
)

// AuthRequestValidator validates the request payloads of the auth API:
// registration, login, and profile updates.
type AuthRequestValidator struct {
	// passwordMinLength is the minimum accepted plaintext password length.
	passwordMinLength int
}

func NewAuthRequestValidator(passwordMinLength int) Validator {
	return &AuthRequestValidator{passwordMinLength: passwordMinLength}
}

func (v *AuthRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, value, fields...)
	case *models.ProfileUpdate:
		return v.validateProfileUpdate(ctx, *value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *AuthRequestValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldEmail, FieldFullName, FieldPassword, FieldConfirmPassword) {
		switch field {
		case FieldEmail:
			if err := validateEmail(req.Email); err != nil {
				return err
			}
		case FieldFullName:
			if strings.TrimSpace(req.FullName) == "" {
				return ErrEmptyFullName
			}
		case FieldPassword:
			if len(req.Password) < v.passwordMinLength {
				return ErrPasswordTooShort
			}
		case FieldConfirmPassword:
			if req.Password != req.ConfirmPassword {
				return ErrPasswordMismatch
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *AuthRequestValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	for _, field := range fieldsOrDefault(fields, FieldEmail, FieldPassword) {
		switch field {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *AuthRequestValidator) validateProfileUpdate(_ context.Context, update models.ProfileUpdate, fields ...string) error {
	if update.FullName == nil && update.Phone == nil {
		return ErrNoFieldsToUpdate
	}

	for _, field := range fieldsOrDefault(fields, FieldFullName, FieldPhone) {
		switch field {
		case FieldFullName:
			if update.FullName != nil && strings.TrimSpace(*update.FullName) == "" {
				return ErrEmptyFullName
			}
		case FieldPhone:
			if update.Phone != nil && strings.TrimSpace(*update.Phone) == "" {
				return ErrEmptyPhone
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

// validateEmail rejects addresses the mail package cannot parse.
func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}

	return nil
}

func fieldsOrDefault(fields []string, defaults ...string) []string {
	if len(fields) > 0 {
		return fields
	}
	return defaults
}
