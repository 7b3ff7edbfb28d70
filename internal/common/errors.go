// Package common defines shared constants and sentinel errors used across
// the Inventa server and client layers. Callers should use errors.Is to
// match sentinel values and errors.As for *DuplicateContentError.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (missing or empty input).
	ErrorValidation = errors.New("validation error")

	// Uniqueness conflicts on registration (email or username taken).
	ErrorAlreadyExists = errors.New("already exists")

	// Crypto errors: key decode failure, signature creation failure,
	// decryption authentication failure. Never a raw decoding panic.
	ErrorCryptoFailure = errors.New("crypto failure")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// DuplicateContentError reports that content with the same fingerprint is
// already registered. It carries the existing record's identity so callers
// can short-circuit gracefully instead of treating this as exceptional.
type DuplicateContentError struct {
	ExistingID   string
	OwnerID      string
	RegisteredAt string
}

func (e *DuplicateContentError) Error() string {
	return fmt.Sprintf("content already registered as %s", e.ExistingID)
}
