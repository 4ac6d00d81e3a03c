// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher is the stateless authenticated-encryption primitive built on the
// master key. It is pure and reentrant: safe to invoke concurrently without
// locking. The key is borrowed from the provider at construction and never
// copied into longer-lived structures.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds an AES-256-GCM [Cipher] over the given master key.
// Returns a wrapped [ErrKeyConfiguration] if the key cannot back an AES-256
// cipher (wrong length).
func NewCipher(key MasterKey) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyConfiguration, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyConfiguration, err)
	}

	return &Cipher{aead: aead}, nil
}

// Encrypt seals plaintext under a freshly generated random 12-byte nonce and
// returns the stored blob layout: nonce ‖ ciphertext ‖ tag. Every call reads
// a new nonce from the OS CSPRNG, so encrypting the same plaintext twice
// yields different blobs. An empty plaintext is valid and round-trips to an
// empty plaintext.
func (c *Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return c.seal(nonce, plaintext), nil
}

// Decrypt splits the blob produced by [Cipher.Encrypt] into nonce and
// ciphertext, verifies the authentication tag and returns the original
// plaintext.
//
// Returns [ErrIntegrity] if the blob is shorter than a nonce plus tag or if
// the tag does not verify (any single flipped byte in the stored value).
// The underlying GCM error is deliberately not wrapped: it carries no
// information useful to callers and must never leak plaintext fragments.
func (c *Cipher) Decrypt(blob []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(blob) < nonceSize+c.aead.Overhead() {
		return nil, fmt.Errorf("%w: blob too short", ErrIntegrity)
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrIntegrity
	}

	return plaintext, nil
}

// seal is the deterministic core of Encrypt, split out so tests can pin a
// nonce and assert exact blob contents. Production code paths always go
// through Encrypt with a random nonce; nonce reuse under the same key is
// forbidden.
func (c *Cipher) seal(nonce, plaintext []byte) []byte {
	// Seal appends ciphertext||tag to the nonce, giving the stored layout
	// in one allocation.
	return c.aead.Seal(nonce[:len(nonce):len(nonce)], nonce, plaintext, nil)
}
