package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password is shorter than the minimum length")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrEmptyPassword    = errors.New("password is required")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrEmptyFullName    = errors.New("full name cannot be blank")
	ErrEmptyPhone       = errors.New("phone cannot be blank")
)
