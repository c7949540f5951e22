// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session represents a server-side authenticated session. The token is an
// opaque, unguessable identifier generated from a CSPRNG; it carries no
// embedded data and is meaningful only as a lookup key in the session store.
type Session struct {
	// Token is the opaque session credential presented by the client on
	// subsequent requests. 32 random bytes, base64url-encoded.
	Token string `json:"token"`

	// UserID is the owning user. A weak reference: the user record is
	// looked up during validation, not embedded here.
	UserID string `json:"user_id"`

	// IssuedAt is the moment the session was created.
	IssuedAt time.Time `json:"issued_at"`

	// ExpiresAt is the moment the session stops validating. A session is
	// valid strictly before this instant.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// ExpiredAt reports whether the session is expired at the given instant.
// The boundary is inclusive: a session is expired exactly at ExpiresAt.
func (s Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
