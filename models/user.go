// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication, authorization
// and ownership of protected profile attributes.
//
// Phone, Address and MFASecret are held here as plaintext and encrypted at
// the persistence boundary by the store layer; a nil pointer means the
// attribute is absent, which is distinct from an empty string that was
// stored. PasswordHash and MFASecret must never cross a trust boundary.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"-"`

	// Email is the unique contact address used as the login identifier.
	Email string `json:"email"`

	// Username is the unique public name of the account.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON and never logged.
	PasswordHash string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Role is the account's capability level. Assigned server-side;
	// client-supplied role claims are ignored.
	Role Role `json:"role"`

	// Active indicates whether the account may authenticate at all.
	Active bool `json:"is_active"`

	// Phone is a protected profile attribute, encrypted at rest.
	Phone *string `json:"phone,omitempty"`

	// Address is a protected profile attribute, encrypted at rest.
	Address *string `json:"address,omitempty"`

	// MFAEnabled reports whether TOTP elevation is required at login.
	MFAEnabled bool `json:"mfa_enabled"`

	// MFASecret is the base32 TOTP shared secret, encrypted at rest.
	// Never exposed via JSON.
	MFASecret *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table associated with the
// User model.
func (u User) TableName() string {
	return "users"
}
