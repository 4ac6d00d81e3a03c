// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// FieldCodec is the explicit encode/decode contract applied to protected
// entity attributes at the persistence boundary. The write path seals the
// plaintext with the process [Cipher]; the read path opens the stored blob
// and fails closed on any integrity violation.
//
// Absence is one bit of metadata outside the ciphertext: an absent value is
// represented as a nil blob (persisted as SQL NULL), which is distinct from
// the encryption of an empty string. Text is encoded as raw UTF-8 bytes, so
// multi-byte scripts round-trip unchanged; ciphertext length reveals only
// the byte length of the input.
type FieldCodec struct {
	cipher *Cipher
}

// NewFieldCodec constructs a [FieldCodec] over the given cipher.
func NewFieldCodec(cipher *Cipher) *FieldCodec {
	return &FieldCodec{cipher: cipher}
}

// Seal encrypts a required attribute value for storage.
func (f *FieldCodec) Seal(plaintext string) ([]byte, error) {
	return f.cipher.Encrypt([]byte(plaintext))
}

// Open decrypts a required attribute value read from storage.
// Returns [ErrIntegrity] if the blob fails authentication.
func (f *FieldCodec) Open(blob []byte) (string, error) {
	plaintext, err := f.cipher.Decrypt(blob)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// SealOptional encrypts an optional attribute. A nil input stays nil, which
// the store layer persists as SQL NULL — the "no value present" marker.
func (f *FieldCodec) SealOptional(plaintext *string) ([]byte, error) {
	if plaintext == nil {
		return nil, nil
	}

	return f.Seal(*plaintext)
}

// OpenOptional decrypts an optional attribute. A nil blob (SQL NULL) yields
// a nil pointer; everything else is decrypted, including blobs holding an
// encrypted empty string.
func (f *FieldCodec) OpenOptional(blob []byte) (*string, error) {
	if blob == nil {
		return nil, nil
	}

	plaintext, err := f.Open(blob)
	if err != nil {
		return nil, err
	}

	return &plaintext, nil
}
