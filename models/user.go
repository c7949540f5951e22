// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a user account.
type Role string

// Status is the lifecycle state of a user account. Accounts are never
// hard-deleted; deactivation flips the status to StatusInactive.
type Status string

const (
	// RoleMember is the default role assigned at registration.
	RoleMember Role = "member"

	// RoleAdmin marks accounts allowed to manage other users
	// (e.g. deactivate them).
	RoleAdmin Role = "admin"

	// StatusActive marks an account that may log in.
	StatusActive Status = "active"

	// StatusInactive marks a soft-deactivated account. Logins and session
	// validation for such accounts are rejected.
	StatusInactive Status = "inactive"
)

// User represents a storefront customer account used for authentication and
// authorization. It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique opaque identifier of the user (UUIDv7 string).
	// Assigned at creation and immutable afterwards.
	ID string `json:"id"`

	// Email is the unique identity key of the account. Uniqueness is
	// case-insensitive and enforced by the credential store at write time.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name"`

	// Phone is an optional contact number. Display attribute only.
	Phone string `json:"phone,omitempty"`

	// PasswordHash stores the PHC-encoded Argon2id hash of the user's
	// password. This value MUST be a derived value, never plaintext.
	// It is never serialized and never logged.
	PasswordHash string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// Status is the lifecycle state of the account.
	Status Status `json:"status"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last mutation of the record.
	UpdatedAt time.Time `json:"updated_at"`

	// LastLoginAt is the timestamp of the last successful login,
	// nil for accounts that have never logged in.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsActive reports whether the account is allowed to authenticate.
func (u User) IsActive() bool {
	return u.Status == StatusActive
}
