// Package cryptox implements the cryptographic core of Inventa: content
// fingerprinting, per-user ECDSA keypairs, ownership-claim signing, and
// authenticated encryption of stored content.
//
// Persisted encodings are fixed for compatibility with existing records:
// fingerprints are lowercase hex, binary values (ciphertext, nonce, key,
// signature) are standard base64, timestamps are ISO-8601 UTC with a
// trailing Z.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the SHA-256 digest of data as a 64-character lowercase
// hex string. It is deterministic over the exact byte sequence supplied,
// including the empty one, and is used both as a content-addressing key and
// as the hash bound into signed ownership claims.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
