// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default policy parameters applied when the corresponding configuration
// values are left unset. Kept as named constants rather than inline numbers
// so deployments can reason about (and override) each policy knob.
const (
	// DefaultSessionIdleTimeout is the inactivity window after which a
	// session expires.
	DefaultSessionIdleTimeout = 30 * time.Minute

	// DefaultSessionLifetime is the absolute session lifetime measured
	// from creation.
	DefaultSessionLifetime = 24 * time.Hour

	// DefaultMFASkew is the number of adjacent TOTP steps tolerated for
	// clock drift.
	DefaultMFASkew uint = 1

	// DefaultTokenDuration bounds how long a signed session token can
	// circulate. It intentionally matches the absolute session lifetime.
	DefaultTokenDuration = 24 * time.Hour
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and fills in the
// documented defaults for unset policy parameters.
//
// The master encryption key is deliberately NOT validated here: its decode
// and length checks belong to crypto.LoadMasterKey, which is called exactly
// once at startup and makes any problem fatal there.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Security.SessionIdleTimeout == 0 {
		cfg.Security.SessionIdleTimeout = DefaultSessionIdleTimeout
	}
	if cfg.Security.SessionLifetime == 0 {
		cfg.Security.SessionLifetime = DefaultSessionLifetime
	}
	if cfg.Security.MFASkew == 0 {
		cfg.Security.MFASkew = DefaultMFASkew
	}

	return nil
}
