package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"

	"github.com/inventa-labs/inventa/internal/common"
)

const (
	keySize   = 32 // AES-256
	nonceSize = 12 // standard GCM nonce
)

// Envelope is the result of one Encrypt call. All fields are standard
// base64, matching the persisted record encoding. The key travels with the
// ciphertext because this system stores them together (see the secret-store
// notes in DESIGN.md).
type Envelope struct {
	CipherText string
	Nonce      string
	Key        string
}

// Encrypt seals plain with AES-256-GCM (no associated data). If key is nil a
// fresh random 256-bit key is generated. A fresh random 96-bit nonce is
// generated on every call regardless; a (key, nonce) pair must never encrypt
// more than one plaintext.
func Encrypt(plain []byte, key []byte) (*Envelope, error) {
	if key == nil {
		key = common.GenerateRandByteArray(keySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher init: %v", common.ErrorCryptoFailure, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: gcm init: %v", common.ErrorCryptoFailure, err)
	}

	nonce := common.GenerateRandByteArray(nonceSize)
	ciphertext := aesgcm.Seal(nil, nonce, plain, nil)

	return &Envelope{
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Key:        base64.StdEncoding.EncodeToString(key),
	}, nil
}

// Decrypt opens an AES-256-GCM envelope. Every failure mode (undecodable
// base64, wrong-length key or nonce, authentication tag mismatch) is
// reported as ErrorCryptoFailure so callers can distinguish "content
// unrecoverable" from "record not found".
func Decrypt(cipherTextB64, nonceB64, keyB64 string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(cipherTextB64)
	if err != nil {
		return nil, fmt.Errorf("%w: ciphertext decode: %v", common.ErrorCryptoFailure, err)
	}
	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce decode: %v", common.ErrorCryptoFailure, err)
	}
	key, err := base64.StdEncoding.DecodeString(keyB64)
	if err != nil {
		return nil, fmt.Errorf("%w: key decode: %v", common.ErrorCryptoFailure, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: cipher init: %v", common.ErrorCryptoFailure, err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: gcm init: %v", common.ErrorCryptoFailure, err)
	}

	if len(nonce) != aesgcm.NonceSize() {
		return nil, fmt.Errorf("%w: bad nonce length %d", common.ErrorCryptoFailure, len(nonce))
	}

	plain, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed", common.ErrorCryptoFailure)
	}

	return plain, nil
}
