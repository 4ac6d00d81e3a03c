// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the closed enumeration of capability levels a user account can
// hold. Authorization decisions are made by checking a Role against a
// required [Capability]; roles are never compared to client-supplied claims.
type Role string

const (
	// RoleCustomer is the default role assigned at registration.
	RoleCustomer Role = "customer"

	// RoleAdmin grants access to administrative capabilities such as the
	// audit-log read API.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the enumerated roles. Any value outside
// the enumeration is treated as no role at all and authorizes nothing.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Capability identifies a single guarded action or route. The set of
// capabilities a role holds is defined by the access policy's capability
// table; anything not listed there is denied.
type Capability string

const (
	CapabilityProfileRead  Capability = "profile:read"
	CapabilityProfileWrite Capability = "profile:write"
	CapabilityOrdersCreate Capability = "orders:create"
	CapabilityOrdersRead   Capability = "orders:read"
	CapabilityAuditRead    Capability = "audit:read"

	// CapabilityAdminDashboard guards the administrative surface as a whole.
	CapabilityAdminDashboard Capability = "admin-dashboard"
)
