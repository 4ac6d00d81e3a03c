// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is a server-side authentication session bound to the network
// origin observed at login.
//
// Lifecycle: a session starts Active and moves to exactly one terminal
// state — Invalidated (origin mismatch or logout) or Expired (idle or
// absolute timeout). No transition leads back to Active; re-authentication
// mints a new session with a freshly observed bound address.
type Session struct {
	// SessionID is the opaque unique identifier of the session (UUID).
	SessionID string `json:"-"`

	// UserID is the owning account.
	UserID int64 `json:"-"`

	// BoundAddress is the network origin observed when the session was
	// created. Every authenticated request is compared against it.
	BoundAddress string `json:"-"`

	CreatedAt time.Time `json:"-"`

	// LastSeen is advanced on every successfully guarded request and
	// drives the idle-timeout check.
	LastSeen time.Time `json:"-"`

	// Valid is false once the session has been invalidated. Expiry is
	// derived from CreatedAt/LastSeen and the configured timeouts, so an
	// expired session may still carry Valid == true in storage.
	Valid bool `json:"-"`
}

// TableName returns the name of the database table associated with the
// Session model.
func (s Session) TableName() string {
	return "sessions"
}
