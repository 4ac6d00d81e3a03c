// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the business-rule checks applied to domain
// entities before they reach storage. Validation is decoupled from both the
// transport layer and the repositories so services stay the single place
// where rules are enforced.
package validators

import "context"

// Validator checks an arbitrary value against domain rules. Passing field
// names restricts the check to those fields; passing none validates the
// whole entity.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
