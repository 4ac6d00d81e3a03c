// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// AuditAction is the closed set of actions recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate       AuditAction = "CREATE"
	AuditActionUpdate       AuditAction = "UPDATE"
	AuditActionDelete       AuditAction = "DELETE"
	AuditActionAccessDenied AuditAction = "ACCESS-DENIED"
)

// Valid reports whether a is one of the enumerated audit actions.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionAccessDenied:
		return true
	}
	return false
}

// AuditEntry is one immutable record of a sensitive mutation or a denied
// access attempt. Entries are append-only: once written they are never
// updated or deleted, and retrieval returns entries newest first.
type AuditEntry struct {
	// ID is the server-assigned, strictly monotonic entry identifier.
	ID int64 `json:"id"`

	// ActorID is the acting user, or nil for unauthenticated/system actions.
	ActorID *int64 `json:"actor_id,omitempty"`

	// ResourceType names the kind of entity acted upon (e.g. "User",
	// "Order") or, for denials, the capability that was refused.
	ResourceType string `json:"resource_type"`

	// ResourceID identifies the concrete entity. Kept as a string so the
	// log can reference any resource regardless of its key type.
	ResourceID string `json:"resource_id"`

	Action AuditAction `json:"action"`

	// Detail is an optional JSON document describing the change. It must
	// never contain plaintext of protected attributes or key material.
	Detail *string `json:"detail,omitempty"`

	// Address is the network origin the triggering request arrived from.
	Address string `json:"address,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table associated with the
// AuditEntry model.
func (e AuditEntry) TableName() string {
	return "audit_logs"
}

// AuditFilter narrows an audit-log read. Zero values mean "no constraint";
// results are always returned newest first.
type AuditFilter struct {
	// ActorID restricts entries to a single acting user.
	ActorID *int64

	// ResourceType and ResourceID restrict entries to a single resource.
	// ResourceID is only applied when ResourceType is also set.
	ResourceType string
	ResourceID   string

	// From and To bound the entry timestamp (inclusive from, exclusive to).
	From time.Time
	To   time.Time

	// Limit caps the number of returned entries; 0 applies the
	// repository's default cap.
	Limit uint64
}
