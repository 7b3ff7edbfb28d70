package auth

import (
	"crypto/subtle"

	"github.com/inventa-labs/inventa/internal/common"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters: 1 pass, 64 MiB, 4 lanes, 32-byte tag.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPassword derives an argon2id verifier for password and returns it with
// the fresh random salt used.
func HashPassword(password string) (salt []byte, hash []byte) {
	salt = common.GenerateRandByteArray(16)
	hash = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return salt, hash
}

// CheckPassword reports whether password matches the stored salt+hash pair.
// Comparison is constant-time.
func CheckPassword(password string, salt []byte, hash []byte) bool {
	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}
