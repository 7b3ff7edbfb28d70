package cryptox

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/inventa-labs/inventa/internal/common"
)

// Sign produces an ECDSA-SHA256 signature over claim using the PEM-encoded
// private key and returns it base64-encoded. ECDSA is randomized: two
// signatures over the same claim with the same key will differ byte-for-byte,
// and both verify.
//
// On any malformed key or signing failure it returns ErrorCryptoFailure and
// an empty string; callers must treat that as "claim unsigned" and refuse to
// persist the record.
func Sign(claim string, privatePEM string) (string, error) {
	key, err := parsePrivateKey(privatePEM)
	if err != nil {
		return "", err
	}

	digest := sha256.Sum256([]byte(claim))

	sig, err := ecdsa.SignASN1(rand.Reader, key, digest[:])
	if err != nil {
		return "", fmt.Errorf("%w: signing: %v", common.ErrorCryptoFailure, err)
	}

	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify reports whether signatureB64 is a valid ECDSA-SHA256 signature over
// claim under the PEM-encoded public key. Claim comparison is exact-string:
// no signature verifies against a different claim, even one with the same
// fields reordered. Malformed keys, signatures, or encodings yield false,
// never an error or a panic.
func Verify(claim string, signatureB64 string, publicPEM string) bool {
	key, err := parsePublicKey(publicPEM)
	if err != nil {
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return false
	}

	digest := sha256.Sum256([]byte(claim))
	return ecdsa.VerifyASN1(key, digest[:], sig)
}
