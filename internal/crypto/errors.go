// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

// Sentinel errors returned by this package. Callers should match against
// them with [errors.Is].
var (
	// ErrKeyConfiguration is returned by [LoadMasterKey] when the
	// configured master key is absent, not valid base64, or does not
	// decode to exactly 32 bytes. It is a startup-fatal condition: the
	// process must not serve traffic without a valid key.
	ErrKeyConfiguration = errors.New("invalid master key configuration")

	// ErrIntegrity is returned by [Cipher.Decrypt] when the stored blob is
	// truncated or its authentication tag does not verify. Decryption
	// fails closed: no partial or garbled plaintext is ever returned.
	ErrIntegrity = errors.New("ciphertext integrity check failed")
)
