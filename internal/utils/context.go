// Package utils provides general-purpose helper utilities used across
// different parts of the application: type-safe context keys, HTTP response
// writing, session-token generation and validation, and UUID generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-shop-guard/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's identifier
// in the context. Populated by the session-guard middleware after the
// server-side session record has been verified; handlers never read identity
// from client-supplied data.
var UserIDCtxKey = contextKey("userID")

// SessionIDCtxKey is the key used to store the verified session identifier
// in the context.
var SessionIDCtxKey = contextKey("sessionID")

// RoleCtxKey is the key used to store the authenticated user's role in the
// context. The role always comes from the session's user record, never from
// a client claim.
var RoleCtxKey = contextKey("role")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  — value is found and has the correct int64 type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetSessionIDFromContext retrieves the verified session identifier from the
// context.
func GetSessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDCtxKey).(string)
	return sessionID, ok
}

// GetRoleFromContext retrieves the authenticated user's role from the
// context.
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleCtxKey).(models.Role)
	return role, ok
}
