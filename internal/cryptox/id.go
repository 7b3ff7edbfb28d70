package cryptox

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/inventa-labs/inventa/internal/common"
)

// Persisted identifier prefixes. These formats are wire-compatible with
// existing records and must not change.
func randomID(prefix string, hexLen int) string {
	sum := sha256.Sum256(common.GenerateRandByteArray(16))
	return prefix + hex.EncodeToString(sum[:])[:hexLen]
}

// NewDocumentID returns a fresh document identifier, e.g. "doc_9f2d4c3a5e6b1a7d".
func NewDocumentID() string {
	return randomID("doc_", 16)
}

// NewUserID returns a fresh user identifier, e.g. "user_9f2d4c3a5e6b".
func NewUserID() string {
	return randomID("user_", 12)
}

// NewLoginID returns a fresh login-history identifier.
func NewLoginID() string {
	return randomID("login_", 12)
}
