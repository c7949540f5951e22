package validators

import (
	"context"
	"testing"

	"github.com/globalmart/auth-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAuthRequestValidator_Register(t *testing.T) {
	v := NewAuthRequestValidator(6)

	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  models.RegisterRequest{Email: "shopper@example.com", FullName: "Sam Shopper", Password: "secret1", ConfirmPassword: "secret1"},
		},
		{
			name: "minimum length accepted",
			req:  models.RegisterRequest{Email: "shopper@example.com", FullName: "Sam Shopper", Password: "123456", ConfirmPassword: "123456"},
		},
		{
			name:    "empty email",
			req:     models.RegisterRequest{Email: "   ", FullName: "Sam Shopper", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "malformed email",
			req:     models.RegisterRequest{Email: "not-an-email", FullName: "Sam Shopper", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "blank full name",
			req:     models.RegisterRequest{Email: "shopper@example.com", FullName: "   ", Password: "secret1", ConfirmPassword: "secret1"},
			wantErr: ErrEmptyFullName,
		},
		{
			name:    "short password",
			req:     models.RegisterRequest{Email: "shopper@example.com", FullName: "Sam Shopper", Password: "12345", ConfirmPassword: "12345"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "confirmation mismatch",
			req:     models.RegisterRequest{Email: "shopper@example.com", FullName: "Sam Shopper", Password: "secret1", ConfirmPassword: "secret2"},
			wantErr: ErrPasswordMismatch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthRequestValidator_RegisterScopedFields(t *testing.T) {
	v := NewAuthRequestValidator(6)

	// only the email is validated, the short password is not reached
	req := models.RegisterRequest{Email: "shopper@example.com", Password: "123"}
	assert.NoError(t, v.Validate(context.Background(), req, FieldEmail))

	err := v.Validate(context.Background(), req, "favourite_colour")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestAuthRequestValidator_Login(t *testing.T) {
	v := NewAuthRequestValidator(6)

	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr error
	}{
		{name: "valid", req: models.LoginRequest{Email: "shopper@example.com", Password: "secret1"}},
		{name: "blank email", req: models.LoginRequest{Email: "  ", Password: "secret1"}, wantErr: ErrInvalidEmail},
		{name: "empty password", req: models.LoginRequest{Email: "shopper@example.com"}, wantErr: ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthRequestValidator_ProfileUpdate(t *testing.T) {
	v := NewAuthRequestValidator(6)

	tests := []struct {
		name    string
		update  models.ProfileUpdate
		wantErr error
	}{
		{name: "full name only", update: models.ProfileUpdate{FullName: strPtr("Jordan Smith")}},
		{name: "phone only", update: models.ProfileUpdate{Phone: strPtr("+1-555-0100")}},
		{name: "nothing to update", update: models.ProfileUpdate{}, wantErr: ErrNoFieldsToUpdate},
		{name: "blank full name", update: models.ProfileUpdate{FullName: strPtr("   ")}, wantErr: ErrEmptyFullName},
		{name: "blank phone", update: models.ProfileUpdate{Phone: strPtr("")}, wantErr: ErrEmptyPhone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAuthRequestValidator_UnsupportedType(t *testing.T) {
	v := NewAuthRequestValidator(6)

	err := v.Validate(context.Background(), 42)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestAuthRequestValidator_PointerInputs(t *testing.T) {
	v := NewAuthRequestValidator(6)

	req := &models.RegisterRequest{Email: "shopper@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	assert.NoError(t, v.Validate(context.Background(), req))

	login := &models.LoginRequest{Email: "shopper@example.com", Password: "secret1"}
	assert.NoError(t, v.Validate(context.Background(), login))
}
