// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded
	// as JSON at all.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgEmailAlreadyExists is returned when a registration request names
	// an email address that is already taken.
	MsgEmailAlreadyExists = "email already exists"

	// MsgInvalidOrderIdentifier is returned when the order path parameter
	// is not a numeric identifier.
	MsgInvalidOrderIdentifier = "invalid order identifier"

	// MsgInvalidAuditFilter is returned when an audit-log query parameter
	// cannot be parsed (actor ID, timestamps, or limit).
	MsgInvalidAuditFilter = "invalid audit filter"
)
