package cryptox

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/inventa-labs/inventa/internal/common"
)

// GenerateKeypair produces a fresh NIST P-256 ECDSA keypair and returns it
// PEM-encoded: the private key as PKCS#8 ("PRIVATE KEY"), the public key as
// PKIX ("PUBLIC KEY"). Both are self-describing strings that can be persisted
// as-is and reloaded without side-channel metadata.
func GenerateKeypair() (privatePEM string, publicPEM string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("keypair generation: %w", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("private key encoding: %w", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("public key encoding: %w", err)
	}

	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))

	return privatePEM, publicPEM, nil
}

// parsePrivateKey decodes a PKCS#8 PEM private key. Any malformed input is
// reported as ErrorCryptoFailure so callers never see a decode panic.
func parsePrivateKey(privatePEM string) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode([]byte(privatePEM))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in private key", common.ErrorCryptoFailure)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: private key parse: %v", common.ErrorCryptoFailure, err)
	}

	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ECDSA private key", common.ErrorCryptoFailure)
	}

	return key, nil
}

func parsePublicKey(publicPEM string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicPEM))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in public key", common.ErrorCryptoFailure)
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: public key parse: %v", common.ErrorCryptoFailure, err)
	}

	key, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: not an ECDSA public key", common.ErrorCryptoFailure)
	}

	return key, nil
}
