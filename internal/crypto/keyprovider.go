// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the at-rest data-protection primitives of the
// application: master-key loading, authenticated encryption of attribute
// values, and the field codec applied at the persistence boundary.
//
// The master key is loaded exactly once at startup and passed by reference
// to every component that needs it; there is no ambient key lookup. No key
// rotation mechanism exists yet — the stored blob format carries no key
// version, so rotation would require a format change and a re-encryption
// pass.
package crypto

import (
	"encoding/base64"
	"fmt"
)

// masterKeySize is the required master key length: 32 bytes for AES-256.
const masterKeySize = 32

// MasterKey is the process-wide symmetric key protecting all encrypted
// attributes. It is immutable after load and must never be persisted,
// logged or echoed.
type MasterKey []byte

// LoadMasterKey decodes a base64-encoded 256-bit key from its
// configuration source.
//
// Returns [ErrKeyConfiguration] (wrapped with the reason) if the value is
// empty, not valid standard base64, or does not decode to exactly 32 bytes.
// The error never includes the key material itself.
func LoadMasterKey(encoded string) (MasterKey, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: key is not set", ErrKeyConfiguration)
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: key is not valid base64", ErrKeyConfiguration)
	}

	if len(key) != masterKeySize {
		return nil, fmt.Errorf("%w: decoded key is %d bytes, want %d", ErrKeyConfiguration, len(key), masterKeySize)
	}

	return MasterKey(key), nil
}
