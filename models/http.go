package models

// RegisterRequest is the payload of POST /api/auth/register.
// ConfirmPassword must repeat Password exactly; it is validated and then
// discarded, never stored.
type RegisterRequest struct {
	Email           string `json:"email"`
	FullName        string `json:"full_name"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// RememberMe selects the long-lived session TTL instead of the
	// default short-lived one.
	RememberMe bool `json:"remember_me"`
}

// ProfileUpdate represents a partial update of the mutable display
// attributes of a user. Only non-nil fields will be updated.
type ProfileUpdate struct {
	// FullName replaces the display name when non-nil.
	FullName *string `json:"full_name,omitempty"`

	// Phone replaces the contact number when non-nil.
	Phone *string `json:"phone,omitempty"`
}

// AuthResponse is returned by register, login and refresh. SessionToken is
// the revocable credential to keep; AccessToken is the short-lived JWT to
// attach to requests.
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	SessionToken string  `json:"session_token,omitempty"`
	ExpiresAt    int64   `json:"expires_at"`
	User         User    `json:"user"`
	Session      Session `json:"-"`
}
